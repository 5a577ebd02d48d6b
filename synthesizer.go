// Package qsynth implements a real-time polyphonic software synthesizer:
// the voice allocator and mixer, the per-voice synthesis graph, the
// lock-free staged buffering between worker tiers, and the post-mix effect
// chain. See SPEC_FULL.md for the full design.
package qsynth

import (
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cbegin/qsynth-go/internal/device"
	"github.com/cbegin/qsynth-go/internal/instrument"
	"github.com/cbegin/qsynth-go/internal/pedal"
	"github.com/cbegin/qsynth-go/internal/ring"
	"github.com/cbegin/qsynth-go/internal/tone"
	"github.com/cbegin/qsynth-go/internal/voice"
)

// Synthesizer is the top-level controller (SPEC_FULL.md §4.10). Its public
// methods are safe for concurrent use; the real-time tiers it spawns
// communicate only through the SPSC rings and the atomics below.
type Synthesizer struct {
	cfg    Config
	logger *log.Logger

	mu      sync.Mutex // guards lifecycle transitions and voice allocation
	running bool

	voices    []*voice.Voice
	pedalChain *pedal.Chain

	mixRing   *ring.Ring
	pedalRing *ring.Ring

	masterVolume atomic.Uint64 // float64 bits, 0..1

	recentSamples  [recentSampleCapacity]int16
	recentWritePos atomic.Uint32

	samplesPlayed atomic.Uint64
	stallNs       atomic.Uint64
	activeVoices  atomic.Int32

	voiceDPRunning atomic.Bool
	mixRunning     atomic.Bool
	pedalDPRunning atomic.Bool

	deviceState atomic.Int32
	dev         *device.Adapter

	lastErr atomic.Pointer[Error]

	wg sync.WaitGroup
}

// NewSynthesizer validates cfg and allocates V voices, an empty pedal
// chain, and the mix/pedal-chain rings. It does not start any goroutine or
// touch the audio device; call Start for that.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	if err := cfg.validate(); err != nil {
		return nil, newError(ErrConfig, err.Error())
	}

	s := &Synthesizer{
		cfg:        cfg,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "qsynth"}),
		pedalChain: pedal.NewChain(),
	}
	s.masterVolume.Store(math.Float64bits(0.5))
	s.deviceState.Store(int32(DeviceUninitialized))

	mixRing, err := ring.New(mixRingCapacity)
	if err != nil {
		return nil, newError(ErrMemAlloc, err.Error())
	}
	pedalRing, err := ring.New(pedalRingCapacity)
	if err != nil {
		return nil, newError(ErrMemAlloc, err.Error())
	}
	s.mixRing = mixRing
	s.pedalRing = pedalRing

	n := cfg.voices()
	s.voices = make([]*voice.Voice, n)
	for i := 0; i < n; i++ {
		v, err := voice.New(i, cfg.SampleRate, voiceRingCapacity, int64(i+1))
		if err != nil {
			return nil, newError(ErrMemAlloc, err.Error())
		}
		s.voices[i] = v
	}

	return s, nil
}

// Start spawns the V voice-producer goroutines plus the mix and pedal
// worker goroutines, then starts the device adapter (SPEC_FULL.md §5).
func (s *Synthesizer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	dev, err := device.New(int(s.cfg.SampleRate), s)
	if err != nil {
		e := newError(ErrDevice, err.Error())
		s.setLastError(e)
		return e
	}
	s.dev = dev

	s.voiceDPRunning.Store(true)
	s.mixRunning.Store(true)
	s.pedalDPRunning.Store(true)

	for _, v := range s.voices {
		s.wg.Add(1)
		go s.voiceProducerLoop(v)
	}
	s.wg.Add(1)
	go s.mixWorkerLoop()
	s.wg.Add(1)
	go s.pedalWorkerLoop()

	s.dev.Play()
	s.deviceState.Store(int32(DeviceRunning))
	s.running = true
	s.logger.Info("synthesizer started", "voices", len(s.voices), "sample_rate", s.cfg.SampleRate)
	return nil
}

// Stop clears the three running flags, waits for every internal goroutine
// to exit, then stops the device adapter, in that order (SPEC_FULL.md §5,
// so no goroutine observes a nil ring after shutdown begins).
func (s *Synthesizer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}

	s.voiceDPRunning.Store(false)
	s.mixRunning.Store(false)
	s.pedalDPRunning.Store(false)
	s.wg.Wait()

	if s.dev != nil {
		if err := s.dev.Stop(); err != nil {
			e := newError(ErrDevice, err.Error())
			s.setLastError(e)
			return e
		}
	}
	s.deviceState.Store(int32(DeviceStopped))
	s.running = false
	s.logger.Info("synthesizer stopped")
	return nil
}

// Cleanup stops the synthesizer if still running, then triggers the release
// stage of every voice and clears every pedal's internal state. Voices are
// not returned to Idle here (their producers are stopped, so a released
// voice stays Active), and the pedals remain in the chain.
func (s *Synthesizer) Cleanup() error {
	if err := s.Stop(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.voices {
		v.End()
	}
	s.pedalChain.Reset()
	return nil
}

// PlayNote allocates a free voice to instrumentID and starts it, returning
// the voice ID. Returns a VoiceUnavailable error if every voice is Active
// (S7).
func (s *Synthesizer) PlayNote(instrumentID int, mode tone.ControlMode, note tone.NoteCfg) (int, error) {
	inst, err := instrument.Lookup(instrumentID)
	if err != nil {
		e := newError(ErrNoteCfg, err.Error())
		s.setLastError(e)
		return -1, e
	}
	if note.MidiNote < 0 || note.MidiNote > 127 {
		e := newError(ErrNoteCfg, fmt.Sprintf("midi note %d out of range [0,127]", note.MidiNote))
		s.setLastError(e)
		return -1, e
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.voices {
		if v.Active() {
			continue
		}
		freq := midiToFrequency(note.MidiNote)
		v.Start(inst.Tone, freq, note, mode)
		return v.ID(), nil
	}

	e := newError(ErrVoiceUnavailable, "no free voice")
	s.setLastError(e)
	return -1, e
}

// EndNote triggers the release stage of the voice identified by voiceID.
// Idempotent.
func (s *Synthesizer) EndNote(voiceID int) error {
	if voiceID < 0 || voiceID >= len(s.voices) {
		e := newError(ErrNoteCfg, fmt.Sprintf("voice id %d out of range", voiceID))
		s.setLastError(e)
		return e
	}
	s.voices[voiceID].End()
	return nil
}

// SetMasterVolume applies v if it lies in [0,1], returning the value now in
// effect. An out-of-range v is rejected with an ErrNoteCfg error and leaves
// the prior volume untouched (original reference's synth_set_master_volume).
func (s *Synthesizer) SetMasterVolume(v float64) (float64, error) {
	if v < 0 || v > 1 {
		e := newError(ErrNoteCfg, fmt.Sprintf("master volume %v out of range [0,1]", v))
		s.setLastError(e)
		return s.MasterVolume(), e
	}
	s.masterVolume.Store(math.Float64bits(v))
	return v, nil
}

// MasterVolume returns the current master volume.
func (s *Synthesizer) MasterVolume() float64 {
	return math.Float64frombits(s.masterVolume.Load())
}

// --- pedal-chain surface (SPEC_FULL.md §4.10) ---

func (s *Synthesizer) AppendPedal(kind pedal.Kind) (int, error) {
	return s.pedalChain.Append(kind, s.cfg.SampleRate)
}

func (s *Synthesizer) InsertPedal(at int, kind pedal.Kind) error {
	return s.pedalChain.Insert(at, kind, s.cfg.SampleRate)
}

func (s *Synthesizer) RemovePedal(at int) error {
	return s.pedalChain.Remove(at)
}

func (s *Synthesizer) SwapPedals(i, j int) error {
	return s.pedalChain.Swap(i, j)
}

func (s *Synthesizer) PedalAt(at int) (*pedal.Pedal, error) {
	return s.pedalChain.Get(at)
}

func (s *Synthesizer) PedalChainSize() int {
	return s.pedalChain.Size()
}

func (s *Synthesizer) SetPedalParam(at int, paramIdx int, value float64) error {
	p, err := s.pedalChain.Get(at)
	if err != nil {
		return err
	}
	return p.SetParam(paramIdx, value)
}

func (s *Synthesizer) SetPedalBypass(at int, bypass bool) error {
	p, err := s.pedalChain.Get(at)
	if err != nil {
		return err
	}
	p.SetBypass(bypass)
	return nil
}

// Stat returns a telemetry snapshot (SPEC_FULL.md §4.10).
func (s *Synthesizer) Stat() Stat {
	recent := make([]int16, recentSampleCapacity)
	copy(recent, s.recentSamples[:])
	return Stat{
		SampleRate:     s.cfg.SampleRate,
		VoiceCapacity:  len(s.voices),
		ActiveVoices:   int(s.activeVoices.Load()),
		SamplesPlayed:  s.samplesPlayed.Load(),
		StallLatencyMs: durationToMs(time.Duration(s.stallNs.Load())),
		DeviceState:    DeviceState(s.deviceState.Load()),
		PedalChainSize: s.pedalChain.Size(),
		RecentSamples:  recent,
	}
}

// LastError returns the most recently recorded error, or nil if none.
func (s *Synthesizer) LastError() *Error {
	return s.lastErr.Load()
}

func (s *Synthesizer) setLastError(e *Error) {
	s.lastErr.Store(e)
	s.logger.Error("synthesizer error", "kind", e.Kind, "msg", e.Msg)
}

// midiToFrequency converts a MIDI note number to Hz using standard 12-TET
// tuning (A4 = 69 = 440 Hz). The bit-exact 128-entry lookup table the
// original reference precomputes is an external utility this core consumes
// but does not define (SPEC_FULL.md §1 Non-goals); this formula produces
// the same frequencies without owning that table.
func midiToFrequency(midiNote int) float64 {
	return 440 * math.Pow(2, float64(midiNote-69)/12)
}
