package pedal

import "math"

// sweepLFO is a single-waveform (sine) low-frequency oscillator driving the
// phaser's sweep: a plain phase accumulator fixed to a sine wave, which is
// the only waveform SPEC_FULL.md §4.9 calls for.
type sweepLFO struct {
	phase float64 // radians, [0, 2*pi)
}

func (l *sweepLFO) sample(rateHz, sampleRate float64) float64 {
	v := math.Sin(l.phase)
	l.phase += 2 * math.Pi * rateHz / sampleRate
	if l.phase >= 2*math.Pi {
		l.phase -= 2 * math.Pi
	}
	return v
}

func (l *sweepLFO) reset() { l.phase = 0 }

type phaserStage struct {
	coeff float64
	state float64
}

func (s *phaserStage) process(in float64) float64 {
	out := -in + s.state
	s.state = in + s.coeff*out
	return out
}

func (s *phaserStage) reset() { s.state = 0 }

// PhaserImpl cascades 4 allpass stages swept by a sine LFO. Unlike the
// original reference implementation, the feedback accumulator is a field on
// this struct rather than a function-local static shared by every instance
// (SPEC_FULL.md §9 — that sharing would otherwise leak energy between the
// left and right channel instances, violating the dual-mono contract).
type PhaserImpl struct {
	fs float64

	stages [4]phaserStage
	lfo    sweepLFO

	feedbackState float64

	rateHz     float64
	depth      float64
	feedback   float64
	wetDry     float64
	centerFreq float64
}

// NewPhaser constructs a PhaserImpl for the given sample rate.
func NewPhaser(sampleRate float64) *PhaserImpl {
	return &PhaserImpl{fs: sampleRate}
}

// SetParams applies {rate_hz, depth, feedback, wet_dry, center_freq_hz},
// clamped to SPEC_FULL.md §6's ranges.
func (ph *PhaserImpl) SetParams(p [MaxParams]float64) {
	ph.rateHz = clampF(p[0], 0.1, 10)
	ph.depth = clampF(p[1], 0, 1)
	ph.feedback = clampF(p[2], 0, 0.9)
	ph.wetDry = clampF(p[3], 0, 1)
	ph.centerFreq = clampF(p[4], 100, 2000)
}

// Process runs one sample through the swept allpass cascade.
func (ph *PhaserImpl) Process(x float64) float64 {
	lfoVal := ph.lfo.sample(ph.rateHz, ph.fs)

	freqVariation := ph.depth * ph.centerFreq * 0.8
	sweepFreq := ph.centerFreq + lfoVal*freqVariation
	sweepFreq = clampF(sweepFreq, 50, 4000)

	for i := range ph.stages {
		stageFreq := sweepFreq * (1 + float64(i)*0.3)
		ph.stages[i].coeff = allpassCoeff(stageFreq, ph.fs)
	}

	processed := x
	for i := range ph.stages {
		processed = ph.stages[i].process(processed)
	}
	processed += ph.feedbackState * ph.feedback
	ph.feedbackState = processed * 0.5

	wet := processed * ph.wetDry
	dry := x * (1 - ph.wetDry)
	return wet + dry
}

// Reset clears every stage's state, the sweep LFO phase, and the feedback
// accumulator.
func (ph *PhaserImpl) Reset() {
	for i := range ph.stages {
		ph.stages[i].reset()
	}
	ph.lfo.reset()
	ph.feedbackState = 0
}

func allpassCoeff(freqHz, sampleRate float64) float64 {
	omega := 2 * math.Pi * freqHz / sampleRate
	t := math.Tan(omega / 2)
	return (1 - t) / (1 + t)
}
