// internal/player/state.go
package player

// State is the Speaker's view of its single item slot.
//
//	┌──────────┐      load       ┌──────────┐
//	│  Empty   │ ───────────────▶│  Paused  │◀──┐
//	└──────────┘                 └──────────┘   │
//	     ▲                        play │  ▲      │ load
//	     │ close                       ▼  │ pause│
//	     │                       ┌──────────┐   │
//	     └───────────────────────│ Playing  │───┘
//	                             └──────────┘
//
// Load always lands in Paused: the owner decides when to play.
// Play on Empty and Pause on Paused are ignored.
type State int

const (
	Empty State = iota
	Paused
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// HasItem returns true if an item is loaded.
func (s State) HasItem() bool {
	return s == Paused || s == Playing
}
