package qsynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid stereo", Config{SampleRate: 44100, Channels: 2}, false},
		{"mono rejected", Config{SampleRate: 44100, Channels: 1}, true},
		{"sample rate too low", Config{SampleRate: 100, Channels: 2}, true},
		{"sample rate too high", Config{SampleRate: 500000, Channels: 2}, true},
		{"voices below minimum", Config{SampleRate: 44100, Channels: 2, Voices: 1}, true},
		{"voices at minimum", Config{SampleRate: 44100, Channels: 2, Voices: MinVoices}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigVoicesDefault(t *testing.T) {
	c := Config{SampleRate: 44100, Channels: 2}
	require.Equal(t, DefaultVoices, c.voices())

	c.Voices = 20
	require.Equal(t, 20, c.voices())
}
