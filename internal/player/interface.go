// internal/player/interface.go
package player

import (
	"context"
	"time"
)

// Backend is a single-resource media player. One item is loaded at a time;
// Load invalidates the previous item.
//
// Play, Pause, SetRate and SkipRelative are fire-and-forget. Load and SeekTo
// block until the backend has finished and must be called off the caller's
// event loop. Backend-originated lifecycle changes (interruptions, stalls,
// failures while streaming) are reported on Events.
type Backend interface {
	// ConfigureSession prepares the audio output. Safe to call more than once.
	ConfigureSession() error
	// Load replaces the current item with the resource at ref. The new item
	// starts paused.
	Load(ctx context.Context, ref string) error
	Play()
	Pause()
	// SetRate sets the playback rate multiplier; it also applies to items
	// loaded later.
	SetRate(rate float64)
	// SkipRelative moves the position by delta. Negative deltas go back.
	// The result is clamped to the item bounds.
	SkipRelative(delta time.Duration)
	// SeekTo moves to an absolute position and returns once it is applied.
	SeekTo(ctx context.Context, pos time.Duration) error
	Position() time.Duration
	Duration() time.Duration
	// Events returns the backend event stream. It is never closed; use Close
	// on the backend and stop reading.
	Events() <-chan Event
	Close() error
}

// Verify implementations satisfy Backend at compile time.
var (
	_ Backend = (*Speaker)(nil)
	_ Backend = (*Mock)(nil)
)
