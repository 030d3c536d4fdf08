// internal/playback/state.go
package playback

import (
	"time"

	"github.com/samber/mo"
)

// DurationPlaceholder is the duration reported until the backend knows the
// real one. It is never zero so ratio-based controls stay valid.
const DurationPlaceholder = time.Second

// Alert is the error shown to the user until dismissed.
type Alert struct {
	Title   string
	Message string
}

// PlayerState is a snapshot of the orchestrator state. Snapshots are
// values: mutating one has no effect on the orchestrator.
type PlayerState struct {
	ChapterIndex int
	ChapterCount int
	IsPlaying    bool
	IsLoading    bool
	CurrentTime  time.Duration
	Duration     time.Duration
	Speed        Speed
	HasError     bool
	PendingError mo.Option[Alert]
}

func initialState(chapters int) PlayerState {
	return PlayerState{
		ChapterCount: chapters,
		Duration:     DurationPlaceholder,
		Speed:        DefaultSpeed,
		PendingError: mo.None[Alert](),
	}
}

// HasBackward reports whether there is a chapter before the current one.
func (s PlayerState) HasBackward() bool {
	return s.ChapterIndex > 0
}

// HasForward reports whether there is a chapter after the current one.
func (s PlayerState) HasForward() bool {
	return s.ChapterIndex < s.ChapterCount-1
}

// Progress returns CurrentTime as a fraction of Duration in [0, 1].
func (s PlayerState) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.CurrentTime)/float64(s.Duration), 0), 1)
}

// ChapterNumber returns the 1-based chapter number for display.
func (s PlayerState) ChapterNumber() int {
	return s.ChapterIndex + 1
}
