package player

import (
	"errors"

	"github.com/llehouerou/keypoint/internal/errmsg"
)

// ErrorKind classifies media backend failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindSessionConfig
	KindPlayerNotInitialized
	KindResourceLoad
	KindResourceDecode
	KindPlaybackInterrupted
	KindPlaybackStalled
)

// String returns the kind name for logs.
func (k ErrorKind) String() string {
	switch k {
	case KindSessionConfig:
		return "session configuration failed"
	case KindPlayerNotInitialized:
		return "player not initialized"
	case KindResourceLoad:
		return "resource load failed"
	case KindResourceDecode:
		return "resource decode failed"
	case KindPlaybackInterrupted:
		return "playback interrupted"
	case KindPlaybackStalled:
		return "playback stalled"
	case KindUnknown:
		return "unknown error"
	default:
		return "unknown error"
	}
}

// MediaError is a backend failure of a given kind with an optional cause.
type MediaError struct {
	Kind ErrorKind
	Err  error
}

// Sentinels for errors.Is. A MediaError matches the sentinel of its kind
// whatever its cause.
var (
	ErrSessionConfig        = &MediaError{Kind: KindSessionConfig}
	ErrPlayerNotInitialized = &MediaError{Kind: KindPlayerNotInitialized}
	ErrResourceLoad         = &MediaError{Kind: KindResourceLoad}
	ErrResourceDecode       = &MediaError{Kind: KindResourceDecode}
	ErrPlaybackInterrupted  = &MediaError{Kind: KindPlaybackInterrupted}
	ErrPlaybackStalled      = &MediaError{Kind: KindPlaybackStalled}
	ErrUnknown              = &MediaError{Kind: KindUnknown}
)

// NewError wraps cause in a MediaError of the given kind.
func NewError(kind ErrorKind, cause error) *MediaError {
	return &MediaError{Kind: kind, Err: cause}
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *MediaError) Unwrap() error { return e.Err }

// Is matches sentinels by kind.
func (e *MediaError) Is(target error) bool {
	t, ok := target.(*MediaError)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// Describe returns the localized, human-readable description of the error.
func (e *MediaError) Describe(l *errmsg.Localizer) string {
	switch e.Kind {
	case KindSessionConfig:
		return l.Sprintf(errmsg.KeySessionConfig, e.cause())
	case KindPlayerNotInitialized:
		return l.Sprintf(errmsg.KeyPlayerNotReady)
	case KindResourceLoad:
		return l.Sprintf(errmsg.KeyResourceLoad)
	case KindResourceDecode:
		return l.Sprintf(errmsg.KeyResourceDecode, e.cause())
	case KindPlaybackInterrupted:
		return l.Sprintf(errmsg.KeyPlaybackInterrupted, e.cause())
	case KindPlaybackStalled:
		return l.Sprintf(errmsg.KeyPlaybackStalled)
	case KindUnknown:
		return l.Sprintf(errmsg.KeyUnknown)
	default:
		return l.Sprintf(errmsg.KeyUnknown)
	}
}

func (e *MediaError) cause() error {
	if e.Err == nil {
		return errors.New(e.Kind.String())
	}
	return e.Err
}

// AsMediaError returns err as a MediaError, wrapping it with fallback if it
// is not one already.
func AsMediaError(err error, fallback ErrorKind) *MediaError {
	if err == nil {
		return nil
	}
	var me *MediaError
	if errors.As(err, &me) {
		return me
	}
	return NewError(fallback, err)
}
