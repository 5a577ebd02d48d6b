package qsynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "voice_unavailable", ErrVoiceUnavailable.String())
	require.Equal(t, "none", ErrNone.String())
}

func TestErrorMessageFormat(t *testing.T) {
	e := newError(ErrDevice, "boom")
	require.Equal(t, "device: boom", e.Error())
}

func TestNilErrorIsEmptyString(t *testing.T) {
	var e *Error
	require.Equal(t, "", e.Error())
}
