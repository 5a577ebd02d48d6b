package pedal

import "math"

// OverdriveImpl implements the waveshaping drive chain from SPEC_FULL.md
// §4.8: input gain, asymmetric clip, drive scaling, tanh soft clip, tone
// shaping, output level, hard clip.
type OverdriveImpl struct {
	gain        float64
	drive       float64
	toneAmount  float64
	outputLevel float64
	asymmetry   float64

	lpState float64
	hpState float64
}

// NewOverdrive constructs an OverdriveImpl. Sample rate does not affect this
// algorithm's math (its one-pole tone filters are expressed as fixed
// per-sample coefficients, matching the original reference), but it is
// accepted for symmetry with the other effects' constructors.
func NewOverdrive(_ float64) *OverdriveImpl {
	return &OverdriveImpl{}
}

// SetParams applies {gain, drive, tone, output_level, asymmetry}, clamped to
// SPEC_FULL.md §6's ranges.
func (o *OverdriveImpl) SetParams(p [MaxParams]float64) {
	o.gain = clampF(p[0], 1, 20)
	o.drive = clampF(p[1], 0, 1)
	o.toneAmount = clampF(p[2], 0, 1)
	o.outputLevel = clampF(p[3], 0, 2)
	o.asymmetry = clampF(p[4], 0, 1)
}

// Process runs one sample through the drive chain.
func (o *OverdriveImpl) Process(x float64) float64 {
	gained := x * o.gain

	asym := gained
	if gained < 0 {
		asym = gained * (1 - o.asymmetry*0.5)
	}

	driven := asym * (1 + o.drive*4)
	distorted := math.Tanh(driven) * 0.7

	lpCutoff := 0.1 + o.toneAmount*0.4
	o.lpState += lpCutoff * (distorted - o.lpState)

	const hpCutoff = 0.02
	o.hpState += hpCutoff * (distorted - o.hpState)
	hpOut := distorted - o.hpState

	toned := o.lpState*(1-o.toneAmount*0.3) + hpOut*(o.toneAmount*0.3)
	out := toned * o.outputLevel

	if out > 1 {
		out = 1
	} else if out < -1 {
		out = -1
	}
	return out
}

// Reset clears the tone filters' state.
func (o *OverdriveImpl) Reset() {
	o.lpState = 0
	o.hpState = 0
}
