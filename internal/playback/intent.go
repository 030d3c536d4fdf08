package playback

import (
	"time"

	"github.com/llehouerou/keypoint/internal/player"
)

// Intent is a request to change playback. The set is closed: only the
// types declared in this package implement it.
type Intent interface {
	intentName() string
}

// Presentation intents.
type (
	// OnAppear starts the session: configures the backend, subscribes to
	// its events and loads the current chapter.
	OnAppear struct{}
	Play     struct{}
	Pause    struct{}
	// Backward moves to the previous chapter, if any.
	Backward struct{}
	// Forward moves to the next chapter, if any.
	Forward struct{}
	// GoBackward skips back within the chapter.
	GoBackward struct{}
	// GoForward skips ahead within the chapter.
	GoForward struct{}
	// CycleSpeed selects the next playback speed.
	CycleSpeed struct{}
	// SeekTo moves the displayed time while scrubbing. The backend is
	// only told on EndEditing.
	SeekTo struct{ Time time.Duration }
	// BeginEditing starts a scrub.
	BeginEditing struct{}
	// EndEditing seeks the backend to the scrubbed time.
	EndEditing struct{}
	// CloseAlert dismisses the pending error.
	CloseAlert struct{}
)

// Internal intents: completions of asynchronous work and backend events.
type (
	fetchResource struct{}
	readyToPlay   struct{ token uint64 }
	loadFailed    struct {
		token uint64
		err   error
	}
	updatedCurrentTime struct {
		time time.Duration
		gen  uint64
	}
	finishedPlaying struct{}
	errorOccurred   struct{ err *player.MediaError }
	seekCompleted   struct {
		token uint64
		err   error
		then  Intent
	}
	runTimer struct{}
)

func (OnAppear) intentName() string     { return "onAppear" }
func (Play) intentName() string         { return "play" }
func (Pause) intentName() string        { return "pause" }
func (Backward) intentName() string     { return "backward" }
func (Forward) intentName() string      { return "forward" }
func (GoBackward) intentName() string   { return "gobackward" }
func (GoForward) intentName() string    { return "goforward" }
func (CycleSpeed) intentName() string   { return "speed" }
func (SeekTo) intentName() string       { return "seekTo" }
func (BeginEditing) intentName() string { return "beginEditing" }
func (EndEditing) intentName() string   { return "endEditing" }
func (CloseAlert) intentName() string   { return "closeAlert" }

func (fetchResource) intentName() string      { return "fetchResource" }
func (readyToPlay) intentName() string        { return "readyToPlay" }
func (loadFailed) intentName() string         { return "loadFailed" }
func (updatedCurrentTime) intentName() string { return "updatedCurrentTime" }
func (finishedPlaying) intentName() string    { return "finishedPlaying" }
func (errorOccurred) intentName() string      { return "errorOccurred" }
func (seekCompleted) intentName() string      { return "seekCompleted" }
func (runTimer) intentName() string           { return "runTimer" }

// IntentName returns the name used in logs and StateChange events.
func IntentName(i Intent) string {
	return i.intentName()
}
