// Package osc implements the waveform primitives shared by every voice
// layer: phase-based sine/square/sawtooth/triangle generators and a
// per-voice noise source.
package osc

import (
	"math"
	"math/rand"
)

// TwoPi is the phase wrap boundary for every oscillator in this package.
const TwoPi = 2 * math.Pi

// Sine returns sin(phase).
func Sine(phase float64) float64 {
	return math.Sin(phase)
}

// Square returns +1 when sin(phase) is non-negative and -1 otherwise, so the
// zero crossing itself reads as +1. The phase is reduced modulo TwoPi first,
// so a whole number of periods (TwoPi itself, say) lands on the crossing at 0
// rather than on the tiny negative value float64 sin(2π) yields.
func Square(phase float64) float64 {
	if math.Sin(math.Mod(phase, TwoPi)) >= 0 {
		return 1
	}
	return -1
}

// Sawtooth returns a band-naive ramp in [-1, 1).
func Sawtooth(phase float64) float64 {
	t := phase / TwoPi
	return 2 * (t - math.Floor(t+0.5))
}

// Triangle is derived from Sawtooth by folding it at the midpoint.
func Triangle(phase float64) float64 {
	s := Sawtooth(phase)
	if s > 0 {
		return 2*s - 1
	}
	return -2*s - 1
}

// Noise draws one uniform sample in [-1, 1] from rng. Every voice owns its
// own *rand.Rand so producer goroutines never contend on shared RNG state.
func Noise(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

// PhaseIncrement returns the per-sample phase step for a given frequency and
// sample rate.
func PhaseIncrement(freqHz, sampleRate float64) float64 {
	return TwoPi * freqHz / sampleRate
}

// WrapPhase folds phase back into [0, TwoPi).
func WrapPhase(phase float64) float64 {
	for phase >= TwoPi {
		phase -= TwoPi
	}
	for phase < 0 {
		phase += TwoPi
	}
	return phase
}
