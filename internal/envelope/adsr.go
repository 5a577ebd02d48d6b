// Package envelope implements the absolute-time ADSR envelope generator
// (SPEC_FULL.md's resolution of spec.md's Open Question: stage durations are
// seconds, not fractions of note duration).
package envelope

import "github.com/cbegin/qsynth-go/internal/tone"

// Stage is one state in the ADSR state machine.
type Stage int

const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)

// ADSR is a single envelope generator. It is not safe for concurrent use;
// each Voice owns exactly one.
type ADSR struct {
	cfg   tone.EnvelopeCfg
	stage Stage
	level float64
	rate  float64
	ended bool // guards NoteOff idempotency
}

// New constructs an ADSR in the Idle stage.
func New(cfg tone.EnvelopeCfg) *ADSR {
	return &ADSR{cfg: cfg, stage: Idle}
}

// Reconfigure swaps the stage timing/levels used by subsequent transitions.
// Safe to call while Idle. Mid-envelope, new stage durations take effect at
// the next stage transition, while a new sustain level is picked up on the
// next Decay or Sustain step.
func (e *ADSR) Reconfigure(cfg tone.EnvelopeCfg) {
	e.cfg = cfg
}

// NoteOn starts (or restarts) the envelope from Attack.
func (e *ADSR) NoteOn() {
	e.ended = false
	e.level = 0
	if e.cfg.AttackSeconds <= 0 {
		e.enterDecay()
		return
	}
	e.stage = Attack
	e.rate = 1.0 / e.cfg.AttackSeconds
}

// NoteOff moves the envelope into Release from whatever level it currently
// holds. Idempotent: a second call while already in Release or Idle is a
// no-op.
func (e *ADSR) NoteOff() {
	if e.ended {
		return
	}
	e.ended = true
	e.stage = Release
	if e.cfg.ReleaseSeconds <= 0 {
		e.level = 0
		e.stage = Idle
		return
	}
	e.rate = (0 - e.level) / e.cfg.ReleaseSeconds
}

func (e *ADSR) enterDecay() {
	e.stage = Decay
	e.level = 1.0
	if e.cfg.DecaySeconds <= 0 {
		e.enterSustain()
		return
	}
	e.rate = (e.cfg.SustainLevel - e.level) / e.cfg.DecaySeconds
}

func (e *ADSR) enterSustain() {
	e.stage = Sustain
	e.level = e.cfg.SustainLevel
	e.rate = 0
}

// Process advances the envelope by dt seconds and returns its current gain.
func (e *ADSR) Process(dt float64) float64 {
	switch e.stage {
	case Idle:
		return 0
	case Attack:
		e.level += e.rate * dt
		if e.level >= 1.0 {
			e.enterDecay()
		}
	case Decay:
		e.level += e.rate * dt
		if (e.rate <= 0 && e.level <= e.cfg.SustainLevel) || (e.rate > 0 && e.level >= e.cfg.SustainLevel) {
			e.enterSustain()
		}
	case Sustain:
		e.level = e.cfg.SustainLevel
	case Release:
		e.level += e.rate * dt
		if e.level <= 0 {
			e.level = 0
			e.stage = Idle
		}
	}
	if e.level < 0 {
		e.level = 0
	} else if e.level > 1 {
		e.level = 1
	}
	return e.level
}

// IsActive reports whether the envelope has any gain left to contribute,
// i.e. whether it has not yet reached Idle.
func (e *ADSR) IsActive() bool {
	return e.stage != Idle
}

// Reset returns the envelope to Idle with zero level, ready for reuse by a
// different voice allocation.
func (e *ADSR) Reset() {
	e.stage = Idle
	e.level = 0
	e.rate = 0
	e.ended = false
}
