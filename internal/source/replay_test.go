package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func replayDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, dir, "frame_002.png", color.White)
	writePNG(t, dir, "frame_001.png", color.Black)
	writePNG(t, dir, "frame_003.png", color.White)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a frame"), 0o644))
	return dir
}

func TestNewReplay_SortsAndFilters(t *testing.T) {
	dir := replayDir(t)

	r, err := NewReplay(ReplayConfig{Dir: dir}, nil, zerolog.Nop())
	require.NoError(t, err)

	files := r.Files()
	require.Len(t, files, 3)
	assert.Equal(t, "frame_001.png", filepath.Base(files[0]))
	assert.Equal(t, "frame_003.png", filepath.Base(files[2]))
}

func TestNewReplay_Pattern(t *testing.T) {
	dir := replayDir(t)

	r, err := NewReplay(ReplayConfig{Dir: dir, Pattern: "*_002.*"}, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, r.Files(), 1)
}

func TestNewReplay_Empty(t *testing.T) {
	_, err := NewReplay(ReplayConfig{Dir: t.TempDir()}, nil, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrNoFrames))

	_, err = NewReplay(ReplayConfig{Dir: t.TempDir(), Pattern: "["}, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestReplay_RunLoops(t *testing.T) {
	r, err := NewReplay(ReplayConfig{Dir: replayDir(t), Loops: 2}, nil, zerolog.Nop())
	require.NoError(t, err)

	var frames []Frame
	err = r.Run(context.Background(), func(f Frame) { frames = append(frames, f) })
	require.NoError(t, err)

	require.Len(t, frames, 6)
	for i, f := range frames {
		assert.Equal(t, uint64(i+1), f.Seq)
		assert.Equal(t, 8, f.Image.Bounds().Dx())
	}
	assert.Equal(t, frames[0].Path, frames[3].Path)
	assert.Same(t, frames[0].Image, frames[3].Image, "second pass should come from the cache")
}

func TestReplay_RunFPS(t *testing.T) {
	r, err := NewReplay(ReplayConfig{Dir: replayDir(t), FPS: 100, Loops: 1}, nil, zerolog.Nop())
	require.NoError(t, err)

	start := time.Now()
	n := 0
	require.NoError(t, r.Run(context.Background(), func(Frame) { n++ }))

	assert.Equal(t, 3, n)
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestReplay_RunCancel(t *testing.T) {
	r, err := NewReplay(ReplayConfig{Dir: replayDir(t), FPS: 1000}, nil, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	err = r.Run(ctx, func(Frame) {
		n++
		if n == 5 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, n)
}

func TestReplay_SkipsUndecodable(t *testing.T) {
	dir := replayDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame_000.png"), []byte("broken"), 0o644))

	r, err := NewReplay(ReplayConfig{Dir: dir, Loops: 1}, nil, zerolog.Nop())
	require.NoError(t, err)

	n := 0
	require.NoError(t, r.Run(context.Background(), func(Frame) { n++ }))
	assert.Equal(t, 3, n)
}

func TestReplay_AllUndecodable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("broken"), 0o644))

	r, err := NewReplay(ReplayConfig{Dir: dir, Loops: 0}, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Error(t, r.Run(context.Background(), func(Frame) {}))
}

func TestReplay_RawFrames(t *testing.T) {
	dir := t.TempDir()
	// 2x1 frame: a blue pixel then a red one, stored B, G, R.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cam_001.bgr"), []byte{255, 0, 0, 0, 0, 255}, 0o644))
	// Wrong size for the configured camera.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cam_002.bgr"), []byte{1, 2, 3}, 0o644))

	r, err := NewReplay(ReplayConfig{Dir: dir, Loops: 1, Width: 2, Height: 1}, nil, zerolog.Nop())
	require.NoError(t, err)

	var frames []Frame
	require.NoError(t, r.Run(context.Background(), func(f Frame) { frames = append(frames, f) }))
	require.Len(t, frames, 1, "the malformed dump is skipped")

	img := frames[0].Image
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	r0, _, b0, _ := img.At(0, 0).RGBA()
	r1, _, b1, _ := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(0), r0)
	assert.Equal(t, uint32(0xffff), b0)
	assert.Equal(t, uint32(0xffff), r1)
	assert.Equal(t, uint32(0), b1)
}
