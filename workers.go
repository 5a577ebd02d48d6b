package qsynth

import (
	"time"

	"github.com/cbegin/qsynth-go/internal/voice"
)

// pollInterval is how often an idle worker tier re-checks its fill-ratio
// condition (SPEC_FULL.md §5).
const pollInterval = time.Millisecond

// voiceProducerLoop is one voice's producer tier: while the voice is
// Active and its ring's fill ratio is low, generate samples into it.
func (s *Synthesizer) voiceProducerLoop(v *voice.Voice) {
	defer s.wg.Done()
	dt := 1.0 / s.cfg.SampleRate

	for s.voiceDPRunning.Load() {
		if v.Active() && v.Ring().FillRatio() <= refillThreshold {
			for i := 0; i < voiceRefillChunk && v.Ring().Space() > 0; i++ {
				sample := v.Step(dt)
				v.Ring().WriteF64(sample)
				if !v.Active() {
					break
				}
			}
		}
		time.Sleep(pollInterval)
	}
}

// mixWorkerLoop pulls one sample from every Active voice, pan-mixes them
// into a stereo pair, and writes the pair into the mix ring.
func (s *Synthesizer) mixWorkerLoop() {
	defer s.wg.Done()

	for s.mixRunning.Load() {
		if s.mixRing.FillRatio() <= refillThreshold {
			for i := 0; i < mixRefillChunk && s.mixRing.Space() >= 2; i++ {
				l, r := s.mixOneFrame()
				if !s.mixRing.WriteF64(l) {
					break
				}
				if !s.mixRing.WriteF64(r) {
					break
				}
			}
		}
		time.Sleep(pollInterval)
	}
}

func (s *Synthesizer) mixOneFrame() (float64, float64) {
	var l, r float64
	var active int32

	for _, v := range s.voices {
		if !v.Active() {
			continue
		}
		active++

		var start time.Time
		spun := false
		for v.Ring().Available() == 0 {
			if !spun {
				start = time.Now()
				spun = true
			}
			if !v.Active() {
				break
			}
		}
		if spun {
			s.stallNs.Add(uint64(time.Since(start)))
		}

		sample := v.Ring().ReadF64()
		s.samplesPlayed.Add(1)
		pan := v.Pan()
		l += sample * (1 - pan)
		r += sample * pan
	}

	s.activeVoices.Store(active)
	return l, r
}

// pedalWorkerLoop reads stereo pairs from the mix ring, runs them through
// the pedal chain (identity when the chain is empty), and writes the
// result into the pedal-chain ring.
func (s *Synthesizer) pedalWorkerLoop() {
	defer s.wg.Done()

	for s.pedalDPRunning.Load() {
		if s.pedalRing.FillRatio() <= refillThreshold {
			for i := 0; i < pedalRefillChunk && s.pedalRing.Space() >= 2 && s.mixRing.Available() >= 2; i++ {
				l := s.mixRing.ReadF64()
				r := s.mixRing.ReadF64()
				l, r = s.pedalChain.Process(l, r)
				if !s.pedalRing.WriteF64(l) {
					break
				}
				if !s.pedalRing.WriteF64(r) {
					break
				}
			}
		}
		time.Sleep(pollInterval)
	}
}

// FillFrames implements device.FrameFiller: the device-callback tier
// (SPEC_FULL.md §5 item 4). It reads from the pedal-chain ring, applies
// master volume, clamps, converts to s16, and records telemetry.
func (s *Synthesizer) FillFrames(dst []int16) {
	frames := len(dst) / 2
	vol := s.MasterVolume()

	for i := 0; i < frames; i++ {
		var start time.Time
		spun := false
		for s.pedalRing.Available() == 0 {
			if !spun {
				start = time.Now()
				spun = true
			}
		}
		if spun {
			s.stallNs.Add(uint64(time.Since(start)))
		}

		l := s.pedalRing.ReadF64() * vol
		r := s.pedalRing.ReadF64() * vol
		l = clampSample(l)
		r = clampSample(r)

		ls := int16(l * 32767)
		rs := int16(r * 32767)
		dst[i*2] = ls
		dst[i*2+1] = rs

		s.pushRecent(ls)
		s.pushRecent(rs)
	}
}

func (s *Synthesizer) pushRecent(sample int16) {
	pos := s.recentWritePos.Add(1) - 1
	s.recentSamples[int(pos)%len(s.recentSamples)] = sample
}

func clampSample(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
