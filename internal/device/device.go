// Package device is the thin boundary adapter between this system's s16
// PCM output and the host audio stack (SPEC_FULL.md §4.10/§9 — "Device
// adapter"). It wraps an io.Reader that pulls native 16-bit PCM from a
// FrameFiller in an ebiten audio Player, matching this system's external
// contract (SPEC_FULL.md §6).
package device

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// FrameFiller fills dst with interleaved int16 stereo samples (L, R, L, R,
// ...). It must not block indefinitely under normal operation; callers are
// expected to keep their upstream rings fed.
type FrameFiller interface {
	FillFrames(dst []int16)
}

type frameReader struct {
	mu     sync.Mutex
	filler FrameFiller
	buf    []int16
}

func newFrameReader(filler FrameFiller) *frameReader {
	return &frameReader{filler: filler}
}

func (r *frameReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	const bytesPerFrame = 4 // 2 channels * 2 bytes
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]int16, need)
	}
	r.buf = r.buf[:need]
	r.filler.FillFrames(r.buf)
	for i, v := range r.buf {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(v))
	}
	return frames * bytesPerFrame, nil
}

func (r *frameReader) Close() error { return nil }

// Adapter wraps an ebiten audio Player pulling s16 PCM from a FrameFiller.
type Adapter struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	contextOnce     sync.Once
	sharedContext   *ebitaudio.Context
	sharedContextFs int
)

func acquireContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		sharedContextFs = sampleRate
		sharedContext = ebitaudio.NewContext(sampleRate)
	})
	if sharedContextFs != sampleRate {
		return nil, fmt.Errorf("device: audio context already initialized at %d Hz (requested %d Hz)", sharedContextFs, sampleRate)
	}
	return sharedContext, nil
}

// New constructs an Adapter pulling s16 stereo PCM at sampleRate from
// filler.
func New(sampleRate int, filler FrameFiller) (*Adapter, error) {
	ctx, err := acquireContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := newFrameReader(filler)
	pl, err := ctx.NewPlayer(reader)
	if err != nil {
		return nil, err
	}
	return &Adapter{player: pl, reader: reader}, nil
}

// Play starts (or resumes) audio output.
func (a *Adapter) Play() { a.player.Play() }

// IsPlaying reports whether the underlying player is currently running.
func (a *Adapter) IsPlaying() bool { return a.player.IsPlaying() }

// Stop pauses and releases the underlying player.
func (a *Adapter) Stop() error {
	a.player.Pause()
	if err := a.player.Close(); err != nil {
		return err
	}
	return a.reader.Close()
}
