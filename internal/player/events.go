package player

// EventKind identifies a backend lifecycle event.
type EventKind int

const (
	// EventPlay asks the owner to resume, e.g. when an interruption ends.
	EventPlay EventKind = iota
	// EventPause reports that playback must stop, e.g. an interruption began
	// or the output device went away.
	EventPause
	// EventError reports a failure while playing.
	EventError
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by a Backend on its Events channel.
type Event struct {
	Kind EventKind
	Err  *MediaError // set for EventError
}

// ErrorEvent builds an EventError for err.
func ErrorEvent(err *MediaError) Event {
	return Event{Kind: EventError, Err: err}
}
