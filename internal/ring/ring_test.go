package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	_, err := New(100)
	require.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	r, err := New(8)
	require.NoError(t, err)
	require.True(t, r.WriteF64(1.5))
	require.True(t, r.WriteF64(2.5))
	require.Equal(t, uint64(2), r.Available())
	require.Equal(t, 1.5, r.ReadF64())
	require.Equal(t, 2.5, r.ReadF64())
	require.Equal(t, uint64(0), r.Available())
}

func TestReadEmptyReturnsSentinel(t *testing.T) {
	r, err := New(4)
	require.NoError(t, err)
	require.Equal(t, 0.0, r.ReadF64())
}

func TestWriteFullReturnsFalse(t *testing.T) {
	r, err := New(4) // usable capacity 3
	require.NoError(t, err)
	require.True(t, r.WriteF64(1))
	require.True(t, r.WriteF64(2))
	require.True(t, r.WriteF64(3))
	require.False(t, r.WriteF64(4))
	require.Equal(t, uint64(0), r.Space())
}

func TestFillRatio(t *testing.T) {
	r, err := New(4) // capacity = 3
	require.NoError(t, err)
	r.WriteF64(1)
	require.InDelta(t, 1.0/3.0, r.FillRatio(), 1e-9)
}

// TestAvailableSpaceInvariant property-tests that available+space always
// equals the usable capacity under any sequence of single-producer,
// single-consumer operations (S6).
func TestAvailableSpaceInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.SampledFrom([]int{2, 4, 8, 16, 32}).Draw(t, "capacity")
		r, err := New(capacity)
		require.NoError(t, err)

		ops := rapid.SliceOfN(rapid.Bool(), 1, 200).Draw(t, "ops")
		var produced, consumed []float64
		for i, writeOp := range ops {
			if writeOp {
				if r.WriteF64(float64(i)) {
					produced = append(produced, float64(i))
				}
			} else {
				if r.Available() > 0 {
					v := r.ReadF64()
					consumed = append(consumed, v)
				}
			}
			require.Equal(t, uint64(r.Capacity()), r.Available()+r.Space())
		}
		require.Equal(t, produced[:len(consumed)], consumed)
	})
}
