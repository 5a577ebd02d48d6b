// Package tone defines the static, reusable sound description a voice is
// started with: layered waveforms, an optional filter, and an envelope.
package tone

// MaxLayers is the maximum number of oscillator layers a Tone may combine.
const MaxLayers = 4

// WaveKind selects a layer's oscillator.
type WaveKind int

const (
	WaveNone WaveKind = iota
	WaveSine
	WaveSquare
	WaveSawtooth
	WaveTriangle
	WaveNoise
)

func (w WaveKind) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	case WaveNoise:
		return "noise"
	default:
		return "none"
	}
}

// FilterKind selects the shared biquad's response type.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterLowPass
	FilterHighPass
	FilterBandPass
	FilterNotch
)

// FilterCfg configures the one biquad filter shared by all of a Tone's
// layers, applied to their mixed-down sum.
type FilterCfg struct {
	Type       FilterKind
	CutoffHz   float64
	ResonanceQ float64
}

// EnvelopeCfg holds the four absolute-time ADSR stage durations/levels (see
// SPEC_FULL.md's Open Question resolution: this is the absolute-time
// regime, so AttackSeconds/DecaySeconds/ReleaseSeconds are durations in
// seconds, not fractions of note duration).
type EnvelopeCfg struct {
	AttackSeconds  float64
	DecaySeconds   float64
	SustainLevel   float64
	ReleaseSeconds float64
}

// Layer is one oscillator contribution to a Tone. A layer with Wave ==
// WaveNone terminates the active layer list; later layers are ignored.
type Layer struct {
	Wave            WaveKind
	DetuneSemitones float64
	Mix             float64
	PhaseOffsetRad  float64
}

// Tone is the complete per-voice sound description: up to MaxLayers
// oscillator layers, one shared filter, and one shared envelope.
type Tone struct {
	Layers   [MaxLayers]Layer
	Filter   FilterCfg
	Envelope EnvelopeCfg
}

// ActiveLayers returns the layers up to (but not including) the first
// WaveNone layer.
func (t *Tone) ActiveLayers() []Layer {
	for i := range t.Layers {
		if t.Layers[i].Wave == WaveNone {
			return t.Layers[:i]
		}
	}
	return t.Layers[:]
}

// ControlMode selects how a voice decides when to end itself.
type ControlMode int

const (
	// ControlDuration ends the voice automatically once DurationMs of
	// elapsed time has passed, independent of the envelope.
	ControlDuration ControlMode = iota
	// ControlManual runs until an explicit EndNote call; DurationMs is
	// ignored.
	ControlManual
)

// NoteCfg is the per-note-on request passed to PlayNote.
type NoteCfg struct {
	MidiNote   int
	DurationMs int32
	Amplitude  float64
	Pan        float64 // 0 = hard left, 1 = hard right, 0.5 = center
}
