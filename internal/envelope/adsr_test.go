package envelope

import (
	"testing"

	"github.com/cbegin/qsynth-go/internal/tone"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func cfg() tone.EnvelopeCfg {
	return tone.EnvelopeCfg{
		AttackSeconds:  0.1,
		DecaySeconds:   0.1,
		SustainLevel:   0.6,
		ReleaseSeconds: 0.2,
	}
}

func TestNoteOnStartsAttackAndRampsToOne(t *testing.T) {
	e := New(cfg())
	e.NoteOn()
	require.Equal(t, Attack, e.stage)
	dt := 1.0 / 1000
	var last float64
	for i := 0; i < 100; i++ { // 100 ms: the full 0.1 s attack
		last = e.Process(dt)
	}
	require.InDelta(t, 1.0, last, 0.05)
}

func TestZeroAttackSkipsStraightToDecay(t *testing.T) {
	c := cfg()
	c.AttackSeconds = 0
	e := New(c)
	e.NoteOn()
	require.Equal(t, Decay, e.stage)
}

func TestDecaySettlesAtSustain(t *testing.T) {
	e := New(cfg())
	e.NoteOn()
	for i := 0; i < 10000; i++ {
		e.Process(1.0 / 1000)
	}
	require.Equal(t, Sustain, e.stage)
	require.InDelta(t, 0.6, e.Process(0), 1e-9)
}

func TestNoteOffIsIdempotent(t *testing.T) {
	e := New(cfg())
	e.NoteOn()
	for i := 0; i < 300; i++ {
		e.Process(1.0 / 1000)
	}
	e.NoteOff()
	rate1 := e.rate
	e.NoteOff()
	require.Equal(t, rate1, e.rate)
}

func TestReleaseReachesIdle(t *testing.T) {
	e := New(cfg())
	e.NoteOn()
	for i := 0; i < 300; i++ {
		e.Process(1.0 / 1000)
	}
	e.NoteOff()
	for i := 0; i < 10000; i++ {
		e.Process(1.0 / 1000)
	}
	require.Equal(t, Idle, e.stage)
	require.False(t, e.IsActive())
	require.Equal(t, 0.0, e.Process(0))
}

func TestZeroReleaseGoesImmediatelyIdle(t *testing.T) {
	c := cfg()
	c.ReleaseSeconds = 0
	e := New(c)
	e.NoteOn()
	e.NoteOff()
	require.Equal(t, Idle, e.stage)
}

// TestLevelStaysInUnitRange property-tests that Process never returns a
// level outside [0,1] regardless of stage-duration configuration or dt
// sequence (S-invariant from SPEC_FULL.md §8).
func TestLevelStaysInUnitRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := tone.EnvelopeCfg{
			AttackSeconds:  rapid.Float64Range(0, 2).Draw(t, "a"),
			DecaySeconds:   rapid.Float64Range(0, 2).Draw(t, "d"),
			SustainLevel:   rapid.Float64Range(0, 1).Draw(t, "s"),
			ReleaseSeconds: rapid.Float64Range(0, 2).Draw(t, "r"),
		}
		e := New(c)
		e.NoteOn()
		steps := rapid.IntRange(1, 500).Draw(t, "steps")
		noteOffAt := rapid.IntRange(0, steps).Draw(t, "noteOffAt")
		for i := 0; i < steps; i++ {
			if i == noteOffAt {
				e.NoteOff()
			}
			level := e.Process(1.0 / 1000)
			if level < 0 || level > 1 {
				t.Fatalf("level %v out of [0,1] at step %d", level, i)
			}
		}
	})
}
