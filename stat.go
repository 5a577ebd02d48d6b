package qsynth

import "time"

// DeviceState mirrors the original reference's device-state enum.
type DeviceState int

const (
	DeviceUninitialized DeviceState = iota
	DeviceStopped
	DeviceRunning
)

func (s DeviceState) String() string {
	switch s {
	case DeviceStopped:
		return "stopped"
	case DeviceRunning:
		return "running"
	default:
		return "uninitialized"
	}
}

// Stat is the telemetry snapshot returned by Synthesizer.Stat
// (SPEC_FULL.md §4.10).
type Stat struct {
	SampleRate      float64
	VoiceCapacity   int
	ActiveVoices    int
	SamplesPlayed   uint64
	StallLatencyMs  int64
	DeviceState     DeviceState
	PedalChainSize  int
	RecentSamples   []int16 // a copy of the most recent up-to-1024 s16 samples
}

func durationToMs(d time.Duration) int64 {
	return d.Milliseconds()
}
