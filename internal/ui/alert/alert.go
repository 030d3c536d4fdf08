// Package alert renders the modal error box shown over the player.
package alert

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/keypoint/internal/ui/render"
	"github.com/llehouerou/keypoint/internal/ui/styles"
)

const maxMessageLines = 6

// Dialog is an error popup with a title, a message and a dismiss hint.
type Dialog struct {
	Title   string
	Message string
	Footer  string
}

// Render returns the dialog centered in a termWidth x termHeight area.
func (d Dialog) Render(termWidth, termHeight int) string {
	t := styles.T()
	box := t.S().Alert

	inner := min(max(lipgloss.Width(d.Title), lipgloss.Width(d.Footer), 24), 48)
	inner = min(inner, termWidth-box.GetHorizontalFrameSize())
	if inner <= 0 {
		return ""
	}

	lines := []string{render.Center(t.S().Error.Render(render.Truncate(d.Title, inner)), inner), ""}
	for _, l := range render.Wrap(d.Message, inner, maxMessageLines) {
		lines = append(lines, t.S().Base.Render(l))
	}
	if d.Footer != "" {
		lines = append(lines, "", render.Center(t.S().Subtle.Render(d.Footer), inner))
	}

	content := box.Width(inner + box.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, content)
}
