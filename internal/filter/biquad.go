// Package filter implements the RBJ-cookbook biquad used as each voice's
// shared post-mix filter.
package filter

import (
	"math"

	"github.com/cbegin/qsynth-go/internal/tone"
)

// Biquad is a direct-form-I biquad filter. Coefficients are recomputed only
// when the type, cutoff, or resonance change, not on every sample.
type Biquad struct {
	kind       tone.FilterKind
	cutoffHz   float64
	resonanceQ float64
	sampleRate float64

	a0, a1, a2 float64
	b1, b2     float64

	x1, x2 float64
	y1, y2 float64
}

// New constructs a Biquad for the given configuration and sample rate.
func New(cfg tone.FilterCfg, sampleRate float64) *Biquad {
	b := &Biquad{sampleRate: sampleRate}
	b.kind = cfg.Type
	b.cutoffHz = cfg.CutoffHz
	b.resonanceQ = cfg.ResonanceQ
	b.recompute()
	return b
}

// SetSampleRate updates the sample rate and forces a coefficient recompute.
func (b *Biquad) SetSampleRate(sampleRate float64) {
	if sampleRate == b.sampleRate {
		return
	}
	b.sampleRate = sampleRate
	b.recompute()
}

// SetType changes the filter response and recomputes coefficients if it
// actually changed.
func (b *Biquad) SetType(kind tone.FilterKind) {
	if kind == b.kind {
		return
	}
	b.kind = kind
	b.recompute()
}

// SetCutoff changes the cutoff frequency in Hz.
func (b *Biquad) SetCutoff(hz float64) {
	if hz == b.cutoffHz {
		return
	}
	b.cutoffHz = hz
	b.recompute()
}

// SetResonance changes the Q factor.
func (b *Biquad) SetResonance(q float64) {
	if q == b.resonanceQ {
		return
	}
	b.resonanceQ = q
	b.recompute()
}

func (b *Biquad) recompute() {
	if b.kind == tone.FilterNone || b.cutoffHz <= 0 || b.resonanceQ <= 0 {
		return
	}
	omega := 2 * math.Pi * b.cutoffHz / b.sampleRate
	sinOmega, cosOmega := math.Sin(omega), math.Cos(omega)
	alpha := sinOmega / (2 * b.resonanceQ)

	var b0, b1c, b2, a0, a1, a2 float64
	switch b.kind {
	case tone.FilterLowPass:
		b0 = (1 - cosOmega) / 2
		b1c = 1 - cosOmega
		b2 = (1 - cosOmega) / 2
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	case tone.FilterHighPass:
		b0 = (1 + cosOmega) / 2
		b1c = -(1 + cosOmega)
		b2 = (1 + cosOmega) / 2
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	case tone.FilterBandPass:
		b0 = alpha
		b1c = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	case tone.FilterNotch:
		b0 = 1
		b1c = -2 * cosOmega
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	default:
		return
	}

	b.a0 = b0 / a0
	b.a1 = b1c / a0
	b.a2 = b2 / a0
	b.b1 = a1 / a0
	b.b2 = a2 / a0
}

// Process runs one sample through the filter. A FilterNone configuration is
// a pass-through with no state.
func (b *Biquad) Process(x float64) float64 {
	if b.kind == tone.FilterNone {
		return x
	}
	y := b.a0*x + b.a1*b.x1 + b.a2*b.x2 - b.b1*b.y1 - b.b2*b.y2
	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y
	return y
}

// Reset clears the filter's delay lines.
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}
