// Package instrument holds the bit-exact reference instrument catalogue
// (SPEC_FULL.md §6), each entry a Tone plus display metadata.
package instrument

import (
	"fmt"
	"math"

	"github.com/cbegin/qsynth-go/internal/tone"
)

// Instrument pairs a Tone with the catalogue metadata used for
// introspection.
type Instrument struct {
	ID       int
	Name     string
	Category string
	Tone     tone.Tone
}

func deg(d float64) float64 { return d * math.Pi / 180 }

var catalogue = []Instrument{
	{
		ID: 0, Name: "Lead Square", Category: "Lead",
		Tone: tone.Tone{
			Layers: [tone.MaxLayers]tone.Layer{
				{Wave: tone.WaveSquare, DetuneSemitones: 0, Mix: 0.5, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveSawtooth, DetuneSemitones: 0.03, Mix: 0.3, PhaseOffsetRad: deg(180)},
				{Wave: tone.WaveSquare, DetuneSemitones: -12, Mix: 0.15, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveTriangle, DetuneSemitones: 12, Mix: 0.05, PhaseOffsetRad: deg(90)},
			},
			Filter:   tone.FilterCfg{Type: tone.FilterBandPass, CutoffHz: 2500, ResonanceQ: 0.6},
			Envelope: tone.EnvelopeCfg{AttackSeconds: 0.01, DecaySeconds: 0.2, SustainLevel: 0.6, ReleaseSeconds: 0.4},
		},
	},
	{
		ID: 1, Name: "Warm Bass", Category: "Bass",
		Tone: tone.Tone{
			Layers: [tone.MaxLayers]tone.Layer{
				{Wave: tone.WaveSawtooth, DetuneSemitones: 0, Mix: 0.6, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveSquare, DetuneSemitones: -12, Mix: 0.25, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveSine, DetuneSemitones: -24, Mix: 0.15, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveNone},
			},
			Filter:   tone.FilterCfg{Type: tone.FilterLowPass, CutoffHz: 800, ResonanceQ: 0.7},
			Envelope: tone.EnvelopeCfg{AttackSeconds: 0.02, DecaySeconds: 0.15, SustainLevel: 0.7, ReleaseSeconds: 0.8},
		},
	},
	{
		ID: 2, Name: "Ethereal Pad", Category: "Pad",
		Tone: tone.Tone{
			Layers: [tone.MaxLayers]tone.Layer{
				{Wave: tone.WaveSine, DetuneSemitones: 0, Mix: 0.4, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveTriangle, DetuneSemitones: 7, Mix: 0.3, PhaseOffsetRad: deg(90)},
				{Wave: tone.WaveSine, DetuneSemitones: 12, Mix: 0.2, PhaseOffsetRad: deg(180)},
				{Wave: tone.WaveTriangle, DetuneSemitones: 19, Mix: 0.1, PhaseOffsetRad: deg(270)},
			},
			Filter:   tone.FilterCfg{Type: tone.FilterLowPass, CutoffHz: 2000, ResonanceQ: 0.1},
			Envelope: tone.EnvelopeCfg{AttackSeconds: 0.8, DecaySeconds: 0.3, SustainLevel: 0.8, ReleaseSeconds: 1.2},
		},
	},
	{
		ID: 3, Name: "Metallic Pluck", Category: "Pluck",
		Tone: tone.Tone{
			Layers: [tone.MaxLayers]tone.Layer{
				{Wave: tone.WaveSawtooth, DetuneSemitones: 0, Mix: 0.5, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveSquare, DetuneSemitones: 0.03, Mix: 0.3, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveTriangle, DetuneSemitones: -0.03, Mix: 0.2, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveNone},
			},
			Filter:   tone.FilterCfg{Type: tone.FilterBandPass, CutoffHz: 3000, ResonanceQ: 0.8},
			Envelope: tone.EnvelopeCfg{AttackSeconds: 0.005, DecaySeconds: 0.2, SustainLevel: 0.1, ReleaseSeconds: 0.3},
		},
	},
	{
		ID: 4, Name: "Wobble Bass", Category: "Bass",
		Tone: tone.Tone{
			Layers: [tone.MaxLayers]tone.Layer{
				{Wave: tone.WaveSawtooth, DetuneSemitones: 0, Mix: 0.7, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveSquare, DetuneSemitones: 0.07, Mix: 0.3, PhaseOffsetRad: deg(180)},
				{Wave: tone.WaveNone},
				{Wave: tone.WaveNone},
			},
			Filter:   tone.FilterCfg{Type: tone.FilterLowPass, CutoffHz: 400, ResonanceQ: 0.9},
			Envelope: tone.EnvelopeCfg{AttackSeconds: 0.02, DecaySeconds: 0.15, SustainLevel: 0.7, ReleaseSeconds: 0.8},
		},
	},
	{
		ID: 5, Name: "Bell Lead", Category: "Lead",
		Tone: tone.Tone{
			Layers: [tone.MaxLayers]tone.Layer{
				{Wave: tone.WaveSine, DetuneSemitones: 0, Mix: 0.6, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveSine, DetuneSemitones: 12, Mix: 0.3, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveSine, DetuneSemitones: 19, Mix: 0.2, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveTriangle, DetuneSemitones: 24, Mix: 0.1, PhaseOffsetRad: deg(0)},
			},
			Filter:   tone.FilterCfg{Type: tone.FilterBandPass, CutoffHz: 1500, ResonanceQ: 0.3},
			Envelope: tone.EnvelopeCfg{AttackSeconds: 0.01, DecaySeconds: 0.2, SustainLevel: 0.6, ReleaseSeconds: 0.4},
		},
	},
	{
		ID: 6, Name: "Deep Drone", Category: "Bass",
		Tone: tone.Tone{
			Layers: [tone.MaxLayers]tone.Layer{
				{Wave: tone.WaveSine, DetuneSemitones: -12, Mix: 0.4, PhaseOffsetRad: deg(0)},
				{Wave: tone.WaveTriangle, DetuneSemitones: -24, Mix: 0.4, PhaseOffsetRad: deg(120)},
				{Wave: tone.WaveSawtooth, DetuneSemitones: -12.02, Mix: 0.2, PhaseOffsetRad: deg(240)},
				{Wave: tone.WaveNone},
			},
			Filter:   tone.FilterCfg{Type: tone.FilterLowPass, CutoffHz: 200, ResonanceQ: 0.5},
			Envelope: tone.EnvelopeCfg{AttackSeconds: 0.02, DecaySeconds: 0.15, SustainLevel: 0.7, ReleaseSeconds: 0.8},
		},
	},
}

// Count is the number of entries in the reference catalogue.
func Count() int { return len(catalogue) }

// Lookup returns the catalogue entry for id.
func Lookup(id int) (Instrument, error) {
	if id < 0 || id >= len(catalogue) {
		return Instrument{}, fmt.Errorf("instrument: id %d out of range (count %d)", id, len(catalogue))
	}
	return catalogue[id], nil
}

// All returns every catalogue entry, in ID order.
func All() []Instrument {
	out := make([]Instrument, len(catalogue))
	copy(out, catalogue)
	return out
}
