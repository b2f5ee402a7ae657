package dashboard

import (
	"sort"
	"sync"
)

// Entry is a single table value as returned by Snapshot.
type Entry struct {
	Key    string  `json:"key"`
	Number float64 `json:"number,omitempty"`
	String string  `json:"string,omitempty"`
	IsText bool    `json:"is_text,omitempty"`
}

// Table is a thread-safe number/string table.
type Table struct {
	mu      sync.RWMutex
	numbers map[string]float64
	strings map[string]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		numbers: make(map[string]float64),
		strings: make(map[string]string),
	}
}

// SetDefaultNumber stores value under key unless the key already holds a number.
// It reports whether the default was written.
func (t *Table) SetDefaultNumber(key string, value float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.numbers[key]; ok {
		return false
	}
	t.numbers[key] = value
	return true
}

// GetNumber returns the number stored under key, or def if absent.
func (t *Table) GetNumber(key string, def float64) float64 {
	t.mu.RLock()
	v, ok := t.numbers[key]
	t.mu.RUnlock()
	if !ok {
		return def
	}
	return v
}

// LookupNumber returns the number stored under key and whether it exists.
func (t *Table) LookupNumber(key string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.numbers[key]
	return v, ok
}

// PutNumber stores a number, replacing any previous value.
func (t *Table) PutNumber(key string, value float64) {
	t.mu.Lock()
	t.numbers[key] = value
	t.mu.Unlock()
}

// PutString stores a string, replacing any previous value.
func (t *Table) PutString(key, value string) {
	t.mu.Lock()
	t.strings[key] = value
	t.mu.Unlock()
}

// GetString returns the string stored under key, or def if absent.
func (t *Table) GetString(key, def string) string {
	t.mu.RLock()
	v, ok := t.strings[key]
	t.mu.RUnlock()
	if !ok {
		return def
	}
	return v
}

// Delete removes key from both the number and string maps.
func (t *Table) Delete(key string) {
	t.mu.Lock()
	delete(t.numbers, key)
	delete(t.strings, key)
	t.mu.Unlock()
}

// Snapshot returns all entries sorted by key. If keys is non-empty only those
// keys are returned (missing keys are skipped).
func (t *Table) Snapshot(keys ...string) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]Entry, 0, len(t.numbers)+len(t.strings))
	if len(keys) > 0 {
		for _, k := range keys {
			if v, ok := t.numbers[k]; ok {
				entries = append(entries, Entry{Key: k, Number: v})
			}
			if v, ok := t.strings[k]; ok {
				entries = append(entries, Entry{Key: k, String: v, IsText: true})
			}
		}
	} else {
		for k, v := range t.numbers {
			entries = append(entries, Entry{Key: k, Number: v})
		}
		for k, v := range t.strings {
			entries = append(entries, Entry{Key: k, String: v, IsText: true})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}
