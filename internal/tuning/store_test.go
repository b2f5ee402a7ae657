package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a map-backed Provider.
type fakeProvider struct {
	values map[string]float64
	reads  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{values: make(map[string]float64)}
}

func (f *fakeProvider) SetDefaultNumber(key string, value float64) bool {
	if _, ok := f.values[key]; ok {
		return false
	}
	f.values[key] = value
	return true
}

func (f *fakeProvider) GetNumber(key string, def float64) float64 {
	f.reads++
	if v, ok := f.values[key]; ok {
		return v
	}
	return def
}

func (f *fakeProvider) PutNumber(key string, value float64) {
	f.values[key] = value
}

// unavailableProvider models a tuning source that cannot be reached.
type unavailableProvider struct{}

func (unavailableProvider) SetDefaultNumber(string, float64) bool { return false }
func (unavailableProvider) GetNumber(_ string, def float64) float64 { return def }

func testDefaults() Bounds {
	return Bounds{Color: DefaultHSV(), Accept: DefaultAcceptance()}
}

func TestNewStore_RegistersDefaults(t *testing.T) {
	p := newFakeProvider()
	NewStore(p, HSVKeys, testDefaults())

	assert.Equal(t, 50.0, p.values["HueMin"])
	assert.Equal(t, 90.0, p.values["HueMax"])
	assert.Equal(t, 100.0, p.values["SatMin"])
	assert.Equal(t, 255.0, p.values["ValMax"])
	assert.Equal(t, 20.0, p.values[KeyAreaMin])
	assert.Equal(t, 100.0, p.values[KeyFullnessMax])
	assert.Len(t, p.values, 12)
}

func TestNewStore_KeepsExistingValues(t *testing.T) {
	p := newFakeProvider()
	p.values["HueMin"] = 10

	s := NewStore(p, HSVKeys, testDefaults())
	assert.Equal(t, 10.0, s.Snapshot().Color.Min[0])
}

func TestSnapshot_ReadsLiveValues(t *testing.T) {
	p := newFakeProvider()
	s := NewStore(p, HLSKeys, Bounds{Color: DefaultHLS(), Accept: DefaultAcceptance()})

	p.PutNumber("LumMin", 150)
	p.PutNumber(KeyAspectMax, 3)

	b := s.Snapshot()
	assert.Equal(t, 150.0, b.Color.Min[1])
	assert.Equal(t, 3.0, b.Accept.AspectMax)
	assert.Equal(t, 12, p.reads, "every key is read once per snapshot")
}

func TestSnapshot_UnavailableSourceUsesDefaults(t *testing.T) {
	s := NewStore(unavailableProvider{}, HSVKeys, testDefaults())
	assert.Equal(t, testDefaults(), s.Snapshot())
}

func TestStore_Names(t *testing.T) {
	s := NewStore(newFakeProvider(), BGRKeys, testDefaults())
	names := s.Names()

	require.Len(t, names, 12)
	assert.Equal(t, []string{"BlueMin", "BlueMax", "GreenMin", "GreenMax", "RedMin", "RedMax"}, names[:6])
	assert.Contains(t, names, KeyFullnessMin)
}

func TestColorBound_Contains(t *testing.T) {
	b := ColorBound{Min: [3]float64{10, 20, 30}, Max: [3]float64{40, 50, 60}}

	tests := []struct {
		name       string
		c1, c2, c3 float64
		want       bool
	}{
		{"inside", 20, 30, 40, true},
		{"lower edges inclusive", 10, 20, 30, true},
		{"upper edges inclusive", 40, 50, 60, true},
		{"c1 below", 9, 30, 40, false},
		{"c2 above", 20, 51, 40, false},
		{"c3 above", 20, 30, 61, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.c1, tt.c2, tt.c3))
		})
	}

	inverted := ColorBound{Min: [3]float64{50, 0, 0}, Max: [3]float64{10, 255, 255}}
	assert.False(t, inverted.Contains(30, 100, 100))
}

func TestAcceptanceBounds_Degenerate(t *testing.T) {
	a := DefaultAcceptance()
	assert.False(t, a.Degenerate())

	a.AreaMin, a.AreaMax = 100, 10
	assert.True(t, a.Degenerate())

	a = DefaultAcceptance()
	a.FullnessMin = 101
	assert.True(t, a.Degenerate())
}

func writeTuningFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTuningFile(t, "[tuning]\nHueMin = 35\nAreaMax = 5000\nbogus = abc\n")
	p := newFakeProvider()

	n, err := LoadFile(path, p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 35.0, p.values["HueMin"])
	assert.Equal(t, 5000.0, p.values["AreaMax"])
	_, ok := p.values["bogus"]
	assert.False(t, ok)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.ini"), newFakeProvider())
	assert.Error(t, err)

	path := writeTuningFile(t, "[other]\nx = 1\n")
	_, err = LoadFile(path, newFakeProvider())
	assert.Error(t, err)

	path = writeTuningFile(t, "[tuning]\nx = nope\n")
	_, err = LoadFile(path, newFakeProvider())
	assert.Error(t, err)
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := writeTuningFile(t, "[camera]\nwidth = 320\n")
	require.NoError(t, SaveFile(path, map[string]float64{"HueMin": 12.5}))

	p := newFakeProvider()
	n, err := LoadFile(path, p)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 12.5, p.values["HueMin"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[camera]")
}

func TestFileWatcher_Poll(t *testing.T) {
	path := writeTuningFile(t, "[tuning]\nHueMin = 1\n")
	p := newFakeProvider()
	w := NewFileWatcher(path, time.Millisecond, p, zerolog.Nop())

	reloaded, err := w.Poll()
	require.NoError(t, err)
	assert.True(t, reloaded)
	assert.Equal(t, 1.0, p.values["HueMin"])

	reloaded, err = w.Poll()
	require.NoError(t, err)
	assert.False(t, reloaded, "unchanged file must not reload")

	require.NoError(t, os.WriteFile(path, []byte("[tuning]\nHueMin = 2\n"), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	reloaded, err = w.Poll()
	require.NoError(t, err)
	assert.True(t, reloaded)
	assert.Equal(t, 2.0, p.values["HueMin"])
}
