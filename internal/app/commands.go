package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ScrubSettle is how long after the last scrub key the seek is committed.
const ScrubSettle = 600 * time.Millisecond

// ScrubTimeoutCmd returns a command that sends ScrubTimeoutMsg after ScrubSettle.
func ScrubTimeoutCmd(version int) tea.Cmd {
	return tea.Tick(ScrubSettle, func(_ time.Time) tea.Msg {
		return ScrubTimeoutMsg{Version: version}
	})
}

// watchEvents returns a command that waits for the next session event.
func (m Model) watchEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.ChapterChanged:
			return ChapterChangedMsg(e)
		case e := <-sub.Error:
			return ErrorMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}
