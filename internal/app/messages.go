package app

import "github.com/llehouerou/keypoint/internal/playback"

// StateChangedMsg carries a new snapshot from the session.
type StateChangedMsg playback.StateChange

// ChapterChangedMsg reports that playback started on a new chapter.
type ChapterChangedMsg playback.ChapterChange

// ErrorMsg reports that the session entered the error state.
type ErrorMsg playback.ErrorEvent

// SessionClosedMsg is sent once the session stops publishing events.
type SessionClosedMsg struct{}

// ScrubTimeoutMsg ends a scrub if no scrub key arrived since Version.
type ScrubTimeoutMsg struct {
	Version int
}
