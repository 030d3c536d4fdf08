package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/keypoint/internal/keymap"
	"github.com/llehouerou/keypoint/internal/playback"
)

// ScrubStep is how far one scrub key press moves the displayed time.
const ScrubStep = 5 * time.Second

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case StateChangedMsg:
		m.state = msg.Current
		m.chapter = m.ctrl.Chapter()
		return m, m.watchEvents()

	case ChapterChangedMsg:
		m.chapter = msg.Chapter
		m.notifyChapter(playback.ChapterChange(msg))
		return m, m.watchEvents()

	case ErrorMsg:
		m.notifyError(playback.ErrorEvent(msg))
		return m, m.watchEvents()

	case SessionClosedMsg:
		return m, tea.Quit

	case ScrubTimeoutMsg:
		if m.scrubbing && msg.Version == m.scrubVersion {
			m.scrubbing = false
			m.ctrl.Send(playback.EndEditing{})
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	if action == keymap.ActionQuit {
		return m, tea.Quit
	}

	// Only dismissal reaches the session while an alert is shown
	if m.state.HasError {
		if action == keymap.ActionDismiss {
			m.ctrl.Send(playback.CloseAlert{})
		}
		return m, nil
	}

	switch action {
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionPlayPause:
		if m.state.IsPlaying {
			m.ctrl.Send(playback.Pause{})
		} else {
			m.ctrl.Send(playback.Play{})
		}
	case keymap.ActionPrevChapter:
		m.ctrl.Send(playback.Backward{})
	case keymap.ActionNextChapter:
		m.ctrl.Send(playback.Forward{})
	case keymap.ActionSkipBackward:
		m.ctrl.Send(playback.GoBackward{})
	case keymap.ActionSkipForward:
		m.ctrl.Send(playback.GoForward{})
	case keymap.ActionCycleSpeed:
		m.ctrl.Send(playback.CycleSpeed{})
	case keymap.ActionScrubBack:
		return m.scrub(-ScrubStep)
	case keymap.ActionScrubForward:
		return m.scrub(ScrubStep)
	}
	return m, nil
}

// scrub moves the displayed time by delta. The first press of a burst
// begins editing; the backend seeks once the burst settles.
func (m Model) scrub(delta time.Duration) (tea.Model, tea.Cmd) {
	if m.state.IsLoading {
		return m, nil
	}
	if !m.scrubbing {
		m.scrubbing = true
		m.scrubTarget = playback.SeekTo{Time: m.state.CurrentTime}
		m.ctrl.Send(playback.BeginEditing{})
	}

	m.scrubTarget.Time = min(max(m.scrubTarget.Time+delta, 0), m.state.Duration)
	m.ctrl.Send(m.scrubTarget)

	m.scrubVersion++
	return m, ScrubTimeoutCmd(m.scrubVersion)
}
