package imaging

import (
	"testing"
)

func TestProbe_Average(t *testing.T) {
	ch := &Channels{Width: 3, Height: 3, Space: SpaceBGR, Pix: make([]uint8, 27)}
	for i := 0; i < 9; i++ {
		ch.Pix[i*3] = uint8(i * 10)
		ch.Pix[i*3+1] = 100
		ch.Pix[i*3+2] = 200
	}

	got := ProbeCenter(ch, 1)
	want := [3]int{40, 100, 200}
	if got != want {
		t.Errorf("ProbeCenter = %v, want %v", got, want)
	}

	if got := Probe(ch, 2, 2, 0); got != [3]int{80, 100, 200} {
		t.Errorf("single pixel probe = %v", got)
	}
}

func TestProbe_ClampsAtEdge(t *testing.T) {
	ch := &Channels{Width: 2, Height: 1, Pix: []uint8{0, 0, 0, 90, 90, 90}}
	// Window at (0,0) radius 1: columns -1,0,1 clamp to 0,0,1; rows all clamp to 0.
	got := Probe(ch, 0, 0, 1)
	if got != [3]int{30, 30, 30} {
		t.Errorf("edge probe = %v, want [30 30 30]", got)
	}
}

func TestProbe_Empty(t *testing.T) {
	if got := ProbeCenter(nil, 1); got != [3]int{} {
		t.Errorf("nil probe = %v", got)
	}
	if got := Probe(&Channels{}, 0, 0, 1); got != [3]int{} {
		t.Errorf("empty probe = %v", got)
	}
}
