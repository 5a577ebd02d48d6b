package qsynth

import (
	"testing"
	"time"

	"github.com/cbegin/qsynth-go/internal/pedal"
	"github.com/cbegin/qsynth-go/internal/tone"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{SampleRate: 44100, Channels: 2, Voices: MinVoices}
}

func TestNewSynthesizerValidatesConfig(t *testing.T) {
	_, err := NewSynthesizer(Config{SampleRate: 44100, Channels: 1})
	require.Error(t, err)

	_, err = NewSynthesizer(Config{SampleRate: 44100, Channels: 2, Voices: 1})
	require.Error(t, err)

	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.Equal(t, MinVoices, len(s.voices))
}

// TestSilenceBeforeAnyNote is S1: a freshly started synthesizer with no
// notes played reports zero active voices and zero samples played.
func TestSilenceBeforeAnyNote(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(20 * time.Millisecond)
	stat := s.Stat()
	require.Equal(t, 0, stat.ActiveVoices)
	require.Equal(t, uint64(0), stat.SamplesPlayed)
}

// TestSingleNotePlaysAndProducesSignal is S2: a played note becomes active
// and the device-callback tier eventually emits non-silent samples. The
// device adapter's own background goroutine drives FillFrames once Start
// has run, so the test observes the result through Stat's recent-sample
// window rather than calling FillFrames itself (that tier has exactly one
// consumer, the real device).
func TestSingleNotePlaysAndProducesSignal(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	voiceID, err := s.PlayNote(0, tone.ControlManual, tone.NoteCfg{MidiNote: 69, Amplitude: 1, Pan: 0.5})
	require.NoError(t, err)
	require.GreaterOrEqual(t, voiceID, 0)

	require.Eventually(t, func() bool {
		for _, v := range s.Stat().RecentSamples {
			if v != 0 {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "expected a non-silent signal from an active note")
}

// TestPolyphonyVoicesAreIndependent is S3: ending one voice does not disturb
// another voice's activity.
func TestPolyphonyVoicesAreIndependent(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	v1, err := s.PlayNote(0, tone.ControlManual, tone.NoteCfg{MidiNote: 60, Amplitude: 1, Pan: 0})
	require.NoError(t, err)
	v2, err := s.PlayNote(1, tone.ControlManual, tone.NoteCfg{MidiNote: 64, Amplitude: 1, Pan: 1})
	require.NoError(t, err)

	require.NoError(t, s.EndNote(v1))

	time.Sleep(50 * time.Millisecond)
	require.True(t, s.voices[v2].Active())
}

// TestDurationModeSelfTerminates is S4.
func TestDurationModeSelfTerminates(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	vid, err := s.PlayNote(0, tone.ControlDuration, tone.NoteCfg{MidiNote: 69, Amplitude: 1, Pan: 0.5, DurationMs: 5})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return !s.voices[vid].Active()
	}, 2*time.Second, 10*time.Millisecond, "duration-mode voice never self-terminated")
}

// TestManualModePersistsUntilEndNote is S5.
func TestManualModePersistsUntilEndNote(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	vid, err := s.PlayNote(0, tone.ControlManual, tone.NoteCfg{MidiNote: 69, Amplitude: 1, Pan: 0.5})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.True(t, s.voices[vid].Active())

	require.NoError(t, s.EndNote(vid))
}

// TestVoiceExhaustionReturnsError is S7: requesting a note when every voice
// is Active returns ErrVoiceUnavailable, never a panic.
func TestVoiceExhaustionReturnsError(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	for i := 0; i < len(s.voices); i++ {
		_, err := s.PlayNote(0, tone.ControlManual, tone.NoteCfg{MidiNote: 60, Amplitude: 1, Pan: 0.5})
		require.NoError(t, err)
	}

	_, err = s.PlayNote(0, tone.ControlManual, tone.NoteCfg{MidiNote: 60, Amplitude: 1, Pan: 0.5})
	require.Error(t, err)
	var qerr *Error
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, ErrVoiceUnavailable, qerr.Kind)
	require.Equal(t, qerr, s.LastError())
}

func TestPlayNoteRejectsInvalidMidiNote(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	_, err = s.PlayNote(0, tone.ControlManual, tone.NoteCfg{MidiNote: 200, Amplitude: 1, Pan: 0.5})
	require.Error(t, err)
}

func TestPlayNoteRejectsUnknownInstrument(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	_, err = s.PlayNote(999, tone.ControlManual, tone.NoteCfg{MidiNote: 60, Amplitude: 1, Pan: 0.5})
	require.Error(t, err)
}

func TestEndNoteRejectsOutOfRangeVoiceID(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.Error(t, s.EndNote(-1))
	require.Error(t, s.EndNote(len(s.voices)))
}

func TestMasterVolumeDefaultIsHalf(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.Equal(t, 0.5, s.MasterVolume())
}

func TestSetMasterVolumeRejectsOutOfRangeAndKeepsPriorValue(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)

	v, err := s.SetMasterVolume(0.8)
	require.NoError(t, err)
	require.Equal(t, 0.8, v)

	v, err = s.SetMasterVolume(5.0)
	require.Error(t, err)
	require.Equal(t, 0.8, v)
	require.Equal(t, 0.8, s.MasterVolume())

	v, err = s.SetMasterVolume(-1.0)
	require.Error(t, err)
	require.Equal(t, 0.8, v)
	require.Equal(t, 0.8, s.MasterVolume())
}

func TestPedalChainSurface(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)

	idx, err := s.AppendPedal(pedal.Reverb)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, 1, s.PedalChainSize())

	require.NoError(t, s.SetPedalBypass(0, true))
	p, err := s.PedalAt(0)
	require.NoError(t, err)
	require.True(t, p.Bypass())
}

func TestMidiToFrequencyA4(t *testing.T) {
	require.InDelta(t, 440.0, midiToFrequency(69), 1e-9)
}

func TestStartIsIdempotent(t *testing.T) {
	s, err := NewSynthesizer(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()
	require.NoError(t, s.Start()) // second call is a no-op, not an error
}
