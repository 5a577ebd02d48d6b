package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type constFiller struct {
	calls int
}

func (f *constFiller) FillFrames(dst []int16) {
	f.calls++
	for i := range dst {
		dst[i] = int16(i)
	}
}

func TestFrameReaderConvertsToLittleEndianBytes(t *testing.T) {
	filler := &constFiller{}
	r := newFrameReader(filler)
	buf := make([]byte, 16) // 4 frames
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, 1, filler.calls)
	// sample 0 -> int16(0), little-endian bytes 0x00 0x00
	require.Equal(t, byte(0), buf[0])
	require.Equal(t, byte(0), buf[1])
	// sample 1 -> int16(1), little-endian bytes 0x01 0x00
	require.Equal(t, byte(1), buf[2])
	require.Equal(t, byte(0), buf[3])
}

func TestFrameReaderZeroLengthRead(t *testing.T) {
	r := newFrameReader(&constFiller{})
	n, err := r.Read(make([]byte, 2)) // less than one frame
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestNewAdapterAtSharedSampleRate(t *testing.T) {
	a, err := New(44100, &constFiller{})
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NoError(t, a.Stop())
}

func TestAcquireContextRejectsMismatchedSampleRate(t *testing.T) {
	_, err := New(44100, &constFiller{}) // establishes (or matches) the shared context
	require.NoError(t, err)
	_, err = New(22050, &constFiller{})
	require.Error(t, err)
}
