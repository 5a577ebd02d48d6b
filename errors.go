package qsynth

// ErrorKind classifies a qsynth Error. Order is carried from the original
// reference's error enum for familiarity, though callers should compare
// against the named constants, never raw integers.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrMemAlloc
	ErrDevice
	ErrNoteCfg
	ErrUninit
	ErrVoiceUnavailable
	ErrConfig
	ErrWorker
	ErrUnsupport
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMemAlloc:
		return "mem_alloc"
	case ErrDevice:
		return "device"
	case ErrNoteCfg:
		return "note_cfg"
	case ErrUninit:
		return "uninit"
	case ErrVoiceUnavailable:
		return "voice_unavailable"
	case ErrConfig:
		return "config"
	case ErrWorker:
		return "worker"
	case ErrUnsupport:
		return "unsupport"
	default:
		return "none"
	}
}

// Error is the error type every fallible public method of Synthesizer
// returns. Each Synthesizer also retains its own last error (SPEC_FULL.md §7
// — per-controller, not a package-level global, so multiple independently
// running synthesizers in one process never clobber each other's state).
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Kind.String() + ": " + e.Msg
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}
