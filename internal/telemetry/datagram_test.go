package telemetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDatagram_Layout(t *testing.T) {
	b := EncodeDatagram(-150, 110)

	require.Len(t, b, DatagramSize)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0x6a, 0x00, 0x00, 0x00, 0x6e}, b)
}

func TestDatagram_RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 110, -150, 160, -160, math.MaxInt32, math.MinInt32}

	for _, dir := range values {
		for _, dist := range values {
			gotDir, gotDist, err := DecodeDatagram(EncodeDatagram(dir, dist))
			require.NoError(t, err)
			assert.Equal(t, dir, gotDir)
			assert.Equal(t, dist, gotDist)
		}
	}
}

func TestDecodeDatagram_WrongLength(t *testing.T) {
	for _, n := range []int{0, 4, 7, 9, 16} {
		_, _, err := DecodeDatagram(make([]byte, n))
		assert.Error(t, err, "length %d", n)
	}
}

func TestAppendDatagram_ReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, DatagramSize)
	out := AppendDatagram(buf, 1, 2)
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 2}, out)
	assert.Same(t, &buf[:1][0], &out[0], "should append in place")
}
