package playback

import "github.com/llehouerou/keypoint/internal/catalog"

// StateChange is emitted after every transition that changed the state.
// Changes are delivered in the order the transitions were applied.
type StateChange struct {
	Intent   string // name of the intent that caused the change
	Previous PlayerState
	Current  PlayerState
}

// ChapterChange is emitted when playback starts on a chapter other than
// the last announced one.
//
// Emitted by readyToPlay only: navigating without a completed load does
// not announce, so rapid forward/backward presses announce once.
type ChapterChange struct {
	Chapter catalog.Chapter
	Index   int
	Count   int
}

// ErrorEvent is emitted when the orchestrator enters the error state.
type ErrorEvent struct {
	Alert Alert
	Err   error
}
