// Package styles holds the palette and shared lipgloss styles of the player.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette plus styles derived from it.
type Theme struct {
	Primary   lipgloss.Color // accent, title gradient start
	Secondary lipgloss.Color // title gradient end, progress head

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	Track  lipgloss.Color // unfilled progress
	Border lipgloss.Color
	Error  lipgloss.Color

	styles *Styles
}

// Styles are the pre-built styles of a Theme.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style // key point and speed labels
	Track   lipgloss.Style
	Error   lipgloss.Style
	Alert   lipgloss.Style // error popup box
	Spinner lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Track:  lipgloss.Color("#303030"),
	Border: lipgloss.Color("#585858"),
	Error:  lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Label:   lipgloss.NewStyle().Foreground(t.Primary),
		Track:   lipgloss.NewStyle().Foreground(t.Track),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Spinner: lipgloss.NewStyle().Foreground(t.Secondary),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Error).
			Padding(0, 2),
	}
}
