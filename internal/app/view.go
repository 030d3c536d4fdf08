package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/icons"
	"github.com/llehouerou/keypoint/internal/keymap"
	"github.com/llehouerou/keypoint/internal/ui/alert"
	"github.com/llehouerou/keypoint/internal/ui/progress"
	"github.com/llehouerou/keypoint/internal/ui/render"
	"github.com/llehouerou/keypoint/internal/ui/styles"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	maxContentWidth = 72
	summaryLines    = 3
)

// View renders the player. A pending error replaces it with the alert.
func (m Model) View() string {
	if m.state.HasError {
		if a, ok := m.state.PendingError.Get(); ok {
			d := alert.Dialog{
				Title:   a.Title,
				Message: a.Message,
				Footer:  "enter " + m.loc.Sprintf(errmsg.KeyAlertDismiss),
			}
			return d.Render(m.width, m.height)
		}
	}

	width := min(m.width-4, maxContentWidth)
	if width <= 0 {
		return ""
	}

	t := styles.T()
	book := m.ctrl.Catalog().Book()

	lines := []string{
		render.Center(styles.BoldGradient(render.Truncate(icons.FormatTitle(book.Title), width), t.Primary, t.Secondary), width),
		render.Center(t.S().Muted.Render(render.Truncate(book.Author, width)), width),
		"",
		render.Center(t.S().Label.Render(
			m.loc.Sprintf(errmsg.KeyKeyPoint, m.state.ChapterNumber(), m.state.ChapterCount),
		), width),
		"",
	}

	summary := render.Wrap(m.chapter.Summary, width, summaryLines)
	for i := range summaryLines {
		line := ""
		if i < len(summary) {
			line = t.S().Base.Render(summary[i])
		}
		lines = append(lines, line)
	}

	lines = append(lines,
		"",
		progress.Render(m.state.CurrentTime, m.state.Duration, m.state.Progress(), width),
		"",
		render.Center(m.transport(), width),
		render.Center(t.S().Label.Render(m.loc.Sprintf(errmsg.KeySpeed, m.state.Speed.String())), width),
		"",
	)

	short, full := keymap.Help()
	if m.showHelp {
		lines = append(lines, m.help.FullHelpView(full))
	} else {
		lines = append(lines, m.help.ShortHelpView(short))
	}

	body := lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// transport renders the chapter and play controls. Chapter buttons are
// dimmed at the ends of the catalog; the play button is a spinner while
// loading.
func (m Model) transport() string {
	t := styles.T()
	button := func(glyph string, enabled bool) string {
		if enabled {
			return t.S().Base.Render(glyph)
		}
		return t.S().Subtle.Render(glyph)
	}

	glyphs := icons.Current()

	center := button(glyphs.Play, true)
	switch {
	case m.state.IsLoading:
		center = m.spinner.View() + " " + t.S().Muted.Render(m.loc.Sprintf(errmsg.KeyLoading))
	case m.state.IsPlaying:
		center = button(glyphs.Pause, true)
	}

	return strings.Join([]string{
		button(glyphs.Previous, m.state.HasBackward()),
		button(glyphs.Backward, true),
		center,
		button(glyphs.Forward, true),
		button(glyphs.Next, m.state.HasForward()),
	}, "   ")
}
