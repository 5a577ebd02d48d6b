// Package pedal implements the effect-chain stage: a capability set shared
// by every concrete effect (create/destroy/process/set_params, expressed as
// a Go interface) plus the dual-mono Pedal wrapper and ordered PedalChain.
package pedal

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// MaxParams is the largest parameter count any pedal kind uses.
const MaxParams = 12

// Kind names one of the supported effect algorithms.
type Kind int

const (
	Reverb Kind = iota
	Overdrive
	Phaser
)

func (k Kind) String() string {
	switch k {
	case Reverb:
		return "reverb"
	case Overdrive:
		return "overdrive"
	case Phaser:
		return "phaser"
	default:
		return "unknown"
	}
}

// Algorithm is the per-channel processing capability every concrete effect
// implements. A Pedal owns two independent Algorithm instances, one per
// channel (dual-mono, SPEC_FULL.md §9).
type Algorithm interface {
	SetParams(params [MaxParams]float64)
	Process(x float64) float64
	Reset()
}

type newAlgorithmFunc func(sampleRate float64) Algorithm

var registry = map[Kind]newAlgorithmFunc{
	Reverb:    func(fs float64) Algorithm { return NewReverb(fs) },
	Overdrive: func(fs float64) Algorithm { return NewOverdrive(fs) },
	Phaser:    func(fs float64) Algorithm { return NewPhaser(fs) },
}

// Pedal is one effect-chain stage: a kind, a bypass flag, a parameter
// vector, and two independent per-channel Algorithm instances.
type Pedal struct {
	kind   Kind
	bypass atomic.Bool

	mu     sync.Mutex // guards params/left/right against concurrent Process/SetParam
	params [MaxParams]float64
	left   Algorithm
	right  Algorithm
}

// New constructs a Pedal of the given kind with its default parameters
// applied (see Describe).
func New(kind Kind, sampleRate float64) (*Pedal, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("pedal: unsupported kind %v", kind)
	}
	p := &Pedal{
		kind:  kind,
		left:  ctor(sampleRate),
		right: ctor(sampleRate),
	}
	info := Describe(kind)
	for i, spec := range info.Params {
		p.params[i] = spec.Default
	}
	p.left.SetParams(p.params)
	p.right.SetParams(p.params)
	return p, nil
}

// Kind returns the pedal's effect type.
func (p *Pedal) Kind() Kind { return p.kind }

// Bypass reports whether the pedal currently passes audio through
// unmodified.
func (p *Pedal) Bypass() bool { return p.bypass.Load() }

// SetBypass toggles the bypass flag. A single relaxed atomic write is
// tolerable here: the worst case is one stale sample on the transition.
func (p *Pedal) SetBypass(b bool) { p.bypass.Store(b) }

// Param returns the current value of parameter idx.
func (p *Pedal) Param(idx int) (float64, error) {
	if idx < 0 || idx >= MaxParams {
		return 0, fmt.Errorf("pedal: param index %d out of range", idx)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params[idx], nil
}

// SetParam updates parameter idx (clamped by the concrete algorithm's
// SetParams implementation) and recomputes any cached coefficients.
func (p *Pedal) SetParam(idx int, value float64) error {
	if idx < 0 || idx >= MaxParams {
		return fmt.Errorf("pedal: param index %d out of range", idx)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params[idx] = value
	p.left.SetParams(p.params)
	p.right.SetParams(p.params)
	return nil
}

// Process runs one stereo pair through the pedal. A bypassed pedal is the
// identity transform.
func (p *Pedal) Process(l, r float64) (float64, float64) {
	if p.Bypass() {
		return l, r
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.left.Process(l), p.right.Process(r)
}

// Reset clears both channel instances' internal state.
func (p *Pedal) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.left.Reset()
	p.right.Reset()
}
