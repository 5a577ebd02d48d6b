// Package voice implements a single polyphonic slot: a per-voice synthesis
// graph (multi-layer oscillator + filter + ADSR) and the per-sample step
// algorithm the voice-producer tier drives.
package voice

import (
	"math/rand"
	"sync/atomic"

	"github.com/cbegin/qsynth-go/internal/envelope"
	"github.com/cbegin/qsynth-go/internal/filter"
	"github.com/cbegin/qsynth-go/internal/osc"
	"github.com/cbegin/qsynth-go/internal/ring"
	"github.com/cbegin/qsynth-go/internal/tone"
)

// gainFloor is the cheap-gain shortcut threshold (SPEC_FULL.md §4.5 step 3):
// below this envelope gain, a voice emits silence without touching its
// oscillators or filter.
const gainFloor = 1e-4

// Voice is one polyphonic slot. It owns a private ring and is driven by
// exactly one producer goroutine; its Active flag and Pan are read by the
// mix worker from a different goroutine, so they are atomics.
type Voice struct {
	id int

	ring       *ring.Ring
	env        *envelope.ADSR
	filt       *filter.Biquad
	rng        *rand.Rand
	sampleRate float64

	tn          tone.Tone
	freqHz      float64
	amplitude   float64
	controlMode tone.ControlMode
	durationSec float64

	phases [tone.MaxLayers]float64

	active      atomic.Bool
	pan         atomic.Uint64 // float64 bits, 0..1
	curDuration float64       // only touched by the owning producer goroutine
	endRequested atomic.Bool
}

// New allocates an idle voice with the given private ring capacity.
func New(id int, sampleRate float64, ringCapacity int, seed int64) (*Voice, error) {
	r, err := ring.New(ringCapacity)
	if err != nil {
		return nil, err
	}
	return &Voice{
		id:         id,
		ring:       r,
		env:        envelope.New(tone.EnvelopeCfg{}),
		filt:       filter.New(tone.FilterCfg{}, sampleRate),
		rng:        rand.New(rand.NewSource(seed)),
		sampleRate: sampleRate,
	}, nil
}

// ID returns the voice's slot index.
func (v *Voice) ID() int { return v.id }

// Ring returns the voice's private SPSC ring.
func (v *Voice) Ring() *ring.Ring { return v.ring }

// Active reports whether the voice is currently allocated.
func (v *Voice) Active() bool { return v.active.Load() }

// Pan returns the voice's stereo pan, 0 (left) .. 1 (right).
func (v *Voice) Pan() float64 {
	return float64FromBits(v.pan.Load())
}

// Start allocates the voice to a new note. Per SPEC_FULL.md §4.5, every
// other field is initialized before `active` is set, as the very last step,
// so no other tier ever observes a half-initialized voice.
func (v *Voice) Start(tn tone.Tone, freqHz float64, note tone.NoteCfg, mode tone.ControlMode) {
	v.tn = tn
	v.freqHz = freqHz
	v.amplitude = note.Amplitude
	v.controlMode = mode
	v.durationSec = float64(note.DurationMs) / 1000.0
	v.curDuration = 0
	v.endRequested.Store(false)

	for i := range v.phases {
		v.phases[i] = 0
	}

	v.env.Reconfigure(tn.Envelope)
	v.env.NoteOn()

	v.filt.SetSampleRate(v.sampleRate)
	v.filt.SetType(tn.Filter.Type)
	v.filt.SetCutoff(tn.Filter.CutoffHz)
	v.filt.SetResonance(tn.Filter.ResonanceQ)
	v.filt.Reset()

	v.ring.Reset()
	v.pan.Store(bitsFromFloat64(note.Pan))

	v.active.Store(true)
}

// End triggers the envelope release. Idempotent.
func (v *Voice) End() {
	v.endRequested.Store(true)
	v.env.NoteOff()
}

// Step advances the voice by one sample (dt = 1/sampleRate) and returns the
// resulting output sample. See SPEC_FULL.md §4.5 for the numbered algorithm.
func (v *Voice) Step(dt float64) float64 {
	gain := v.env.Process(dt)

	if v.controlMode == tone.ControlDuration {
		v.curDuration += dt
		if v.curDuration >= v.durationSec && !v.endRequested.Load() {
			v.End()
		}
	}

	var sample float64
	if gain >= gainFloor {
		baseInc := osc.PhaseIncrement(v.freqHz, v.sampleRate)
		var mixSum float64
		for i, layer := range v.tn.ActiveLayers() {
			mixSum += layer.Mix * waveformSample(layer.Wave, v.phases[i]+layer.PhaseOffsetRad, v.rng)
			detuneMul := semitoneRatio(layer.DetuneSemitones)
			v.phases[i] = osc.WrapPhase(v.phases[i] + baseInc*detuneMul)
		}
		if v.tn.Filter.Type != tone.FilterNone {
			mixSum = v.filt.Process(mixSum)
		}
		sample = mixSum * gain * v.amplitude
	}

	if !v.env.IsActive() {
		v.active.Store(false)
	}
	return sample
}

func waveformSample(wave tone.WaveKind, phase float64, rng *rand.Rand) float64 {
	switch wave {
	case tone.WaveSine:
		return osc.Sine(phase)
	case tone.WaveSquare:
		return osc.Square(phase)
	case tone.WaveSawtooth:
		return osc.Sawtooth(phase)
	case tone.WaveTriangle:
		return osc.Triangle(phase)
	case tone.WaveNoise:
		return osc.Noise(rng)
	default:
		return 0
	}
}

func semitoneRatio(semitones float64) float64 {
	if semitones == 0 {
		return 1
	}
	return pow2(semitones / 12.0)
}
