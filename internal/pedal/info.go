package pedal

// ParamSpec describes one named, bounded parameter of a pedal kind.
type ParamSpec struct {
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// Info is the read-only catalogue/introspection entry for a pedal kind,
// carried forward from the original reference's `pedal_info` surface
// (SPEC_FULL.md §6 — supplemented, not part of spec.md's data model, but
// not excluded by any Non-goal either).
type Info struct {
	Kind        Kind
	Name        string
	Category    string
	Description string
	Params      []ParamSpec
}

var catalogue = map[Kind]Info{
	Reverb: {
		Kind:        Reverb,
		Name:        "Reverb",
		Category:    "Spatial",
		Description: "Schroeder-style comb/allpass reverberation.",
		Params: []ParamSpec{
			{Name: "room_size", Unit: "ratio", Min: 0, Max: 1, Default: 1.0},
			{Name: "decay_time", Unit: "seconds", Min: 0.1, Max: 10, Default: 0.8},
			{Name: "damping", Unit: "ratio", Min: 0, Max: 1, Default: 0.1},
			{Name: "wet_dry", Unit: "ratio", Min: 0, Max: 1, Default: 0.8},
			{Name: "predelay_ms", Unit: "milliseconds", Min: 0, Max: 100, Default: 50},
			{Name: "output_level", Unit: "ratio", Min: 0, Max: 2, Default: 0.5},
		},
	},
	Overdrive: {
		Kind:        Overdrive,
		Name:        "Overdrive",
		Category:    "Distortion",
		Description: "Asymmetric soft-clip drive with tone shaping.",
		Params: []ParamSpec{
			{Name: "gain", Unit: "ratio", Min: 1, Max: 20, Default: 3},
			{Name: "drive", Unit: "ratio", Min: 0, Max: 1, Default: 0.6},
			{Name: "tone", Unit: "ratio", Min: 0, Max: 1, Default: 0.7},
			{Name: "output_level", Unit: "ratio", Min: 0, Max: 2, Default: 0.8},
			{Name: "asymmetry", Unit: "ratio", Min: 0, Max: 1, Default: 0.3},
		},
	},
	Phaser: {
		Kind:        Phaser,
		Name:        "Phaser",
		Category:    "Modulation",
		Description: "Four-stage allpass cascade swept by a sine LFO.",
		Params: []ParamSpec{
			{Name: "rate_hz", Unit: "hertz", Min: 0.1, Max: 10, Default: 0.5},
			{Name: "depth", Unit: "ratio", Min: 0, Max: 1, Default: 0.8},
			{Name: "feedback", Unit: "ratio", Min: 0, Max: 0.9, Default: 0.6},
			{Name: "wet_dry", Unit: "ratio", Min: 0, Max: 1, Default: 0.5},
			{Name: "center_freq_hz", Unit: "hertz", Min: 100, Max: 2000, Default: 800},
		},
	},
}

// Describe returns the read-only catalogue entry for kind.
func Describe(kind Kind) Info {
	return catalogue[kind]
}

// AllKinds returns every supported pedal kind in a stable order.
func AllKinds() []Kind {
	return []Kind{Reverb, Overdrive, Phaser}
}
