package dashboard

import (
	"sync"
	"testing"
)

func TestSetDefaultNumber_DoesNotOverwrite(t *testing.T) {
	tbl := NewTable()
	tbl.PutNumber("HueMin", 42)

	if tbl.SetDefaultNumber("HueMin", 0) {
		t.Error("SetDefaultNumber overwrote an existing value")
	}
	if got := tbl.GetNumber("HueMin", -1); got != 42 {
		t.Errorf("HueMin: got %v, want 42", got)
	}

	if !tbl.SetDefaultNumber("HueMax", 60) {
		t.Error("SetDefaultNumber did not write a missing key")
	}
	if got := tbl.GetNumber("HueMax", -1); got != 60 {
		t.Errorf("HueMax: got %v, want 60", got)
	}
}

func TestGetNumber_Default(t *testing.T) {
	tbl := NewTable()
	if got := tbl.GetNumber("missing", 7.5); got != 7.5 {
		t.Errorf("got %v, want 7.5", got)
	}
	if _, ok := tbl.LookupNumber("missing"); ok {
		t.Error("LookupNumber reported a missing key as present")
	}
}

func TestStrings(t *testing.T) {
	tbl := NewTable()
	if got := tbl.GetString("Color", "Unknown"); got != "Unknown" {
		t.Errorf("got %q, want Unknown", got)
	}
	tbl.PutString("Color", "Blue")
	if got := tbl.GetString("Color", "Unknown"); got != "Blue" {
		t.Errorf("got %q, want Blue", got)
	}
	tbl.Delete("Color")
	if got := tbl.GetString("Color", "Unknown"); got != "Unknown" {
		t.Errorf("after delete got %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	tbl := NewTable()
	tbl.PutNumber("b", 2)
	tbl.PutNumber("a", 1)
	tbl.PutString("c", "x")

	all := tbl.Snapshot()
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}
	if all[0].Key != "a" || all[1].Key != "b" || all[2].Key != "c" {
		t.Errorf("entries not sorted: %+v", all)
	}
	if !all[2].IsText || all[2].String != "x" {
		t.Errorf("string entry wrong: %+v", all[2])
	}

	some := tbl.Snapshot("b", "zzz")
	if len(some) != 1 || some[0].Number != 2 {
		t.Errorf("filtered snapshot wrong: %+v", some)
	}
}

func TestConcurrentAccess(t *testing.T) {
	tbl := NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				tbl.PutNumber("Direction", float64(j))
				_ = tbl.GetNumber("Direction", 0)
				tbl.PutString("Color", "Red")
				_ = tbl.Snapshot()
			}
		}(i)
	}
	wg.Wait()
}
