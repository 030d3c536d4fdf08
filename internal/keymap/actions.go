package keymap

// Action identifies what a key does in the player.
type Action string

const (
	ActionQuit         Action = "quit"
	ActionHelp         Action = "help"
	ActionPlayPause    Action = "play_pause"
	ActionPrevChapter  Action = "prev_chapter"
	ActionNextChapter  Action = "next_chapter"
	ActionSkipBackward Action = "skip_backward"
	ActionSkipForward  Action = "skip_forward"
	ActionCycleSpeed   Action = "cycle_speed"
	ActionScrubBack    Action = "scrub_back"
	ActionScrubForward Action = "scrub_forward"
	ActionDismiss      Action = "dismiss"
)
