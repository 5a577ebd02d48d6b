package pedal

import "math"

// combDelaySamples44k and allpassDelaySamples44k are the Schroeder network's
// tuned delay lengths at 44100 Hz (SPEC_FULL.md §4.7), scaled by fs/44100
// for other sample rates.
var combDelaySamples44k = [4]int{1116, 1188, 1277, 1356}
var allpassDelaySamples44k = [2]int{556, 441}

type reverbComb struct {
	buf         []float64
	pos         int
	feedback    float64
	damping     float64
	filterState float64
}

func (c *reverbComb) process(in float64) float64 {
	delayed := c.buf[c.pos]
	c.filterState = delayed*(1-c.damping) + c.filterState*c.damping
	c.buf[c.pos] = in + c.filterState*c.feedback
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return delayed
}

func (c *reverbComb) reset() {
	for i := range c.buf {
		c.buf[i] = 0
	}
	c.pos = 0
	c.filterState = 0
}

type reverbAllpass struct {
	buf      []float64
	pos      int
	feedback float64
}

func (a *reverbAllpass) process(in float64) float64 {
	delayed := a.buf[a.pos]
	out := -in + delayed
	a.buf[a.pos] = in + delayed*a.feedback
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return out
}

func (a *reverbAllpass) reset() {
	for i := range a.buf {
		a.buf[i] = 0
	}
	a.pos = 0
}

type reverbPredelay struct {
	buf []float64
	pos int
}

func (d *reverbPredelay) process(in float64, delaySamples int) float64 {
	if delaySamples <= 0 {
		return in
	}
	if delaySamples >= len(d.buf) {
		delaySamples = len(d.buf) - 1
	}
	readIdx := ((d.pos-delaySamples)%len(d.buf) + len(d.buf)) % len(d.buf)
	delayed := d.buf[readIdx]
	d.buf[d.pos] = in
	d.pos++
	if d.pos >= len(d.buf) {
		d.pos = 0
	}
	return delayed
}

func (d *reverbPredelay) reset() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.pos = 0
}

// ReverbImpl is a Schroeder-style reverb: 4 parallel damped combs feeding 2
// series allpass filters, preceded by a pre-delay line. Each Pedal creates
// two fully independent ReverbImpl instances (left, right) so the two
// channels never share comb/allpass state (dual-mono, SPEC_FULL.md §9).
type ReverbImpl struct {
	fs float64

	combs    [4]reverbComb
	allpass  [2]reverbAllpass
	predelay reverbPredelay

	roomSize    float64
	decayTime   float64
	damping     float64
	wetDry      float64
	predelayMs  float64
	outputLevel float64
}

// NewReverb constructs a ReverbImpl sized for sampleRate.
func NewReverb(sampleRate float64) *ReverbImpl {
	scale := sampleRate / 44100.0
	r := &ReverbImpl{fs: sampleRate}
	for i, d := range combDelaySamples44k {
		n := int(float64(d) * scale)
		if n < 1 {
			n = 1
		}
		r.combs[i] = reverbComb{buf: make([]float64, n), feedback: 0.5, damping: 0.5}
	}
	for i, d := range allpassDelaySamples44k {
		n := int(float64(d) * scale)
		if n < 1 {
			n = 1
		}
		r.allpass[i] = reverbAllpass{buf: make([]float64, n), feedback: 0.7}
	}
	maxPredelay := int(sampleRate) // up to 1 second
	if maxPredelay < 1 {
		maxPredelay = 1
	}
	r.predelay = reverbPredelay{buf: make([]float64, maxPredelay)}
	return r
}

// SetParams applies {room_size, decay_time, damping, wet_dry, predelay_ms,
// output_level}, clamped to SPEC_FULL.md §6's ranges, and recomputes the
// comb/allpass feedback coefficients derived from them.
func (r *ReverbImpl) SetParams(p [MaxParams]float64) {
	r.roomSize = clampF(p[0], 0, 1)
	r.decayTime = clampF(p[1], 0.1, 10)
	r.damping = clampF(p[2], 0, 1)
	r.wetDry = clampF(p[3], 0, 1)
	r.predelayMs = clampF(p[4], 0, 100)
	r.outputLevel = clampF(p[5], 0, 2)

	for i := range r.combs {
		delaySeconds := float64(len(r.combs[i].buf)) / r.fs
		r.combs[i].feedback = math.Pow(0.001, delaySeconds/r.decayTime) * r.roomSize
		r.combs[i].damping = r.damping
	}
	for i := range r.allpass {
		r.allpass[i].feedback = 0.7 * r.roomSize
	}
}

// Process runs one sample through the pre-delay, comb bank, and allpass
// chain, then mixes wet/dry and scales by output level.
func (r *ReverbImpl) Process(x float64) float64 {
	predelaySamples := int(r.predelayMs * r.fs / 1000.0)
	delayedInput := r.predelay.process(x, predelaySamples)

	var combOut float64
	for i := range r.combs {
		combOut += r.combs[i].process(delayedInput)
	}
	out := combOut
	for i := range r.allpass {
		out = r.allpass[i].process(out)
	}

	wet := out * r.wetDry
	dry := x * (1 - r.wetDry)
	return r.outputLevel * (wet + dry)
}

// Reset clears every delay line's state.
func (r *ReverbImpl) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}
	for i := range r.allpass {
		r.allpass[i].reset()
	}
	r.predelay.reset()
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
