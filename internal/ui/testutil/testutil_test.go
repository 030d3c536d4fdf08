package testutil

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("Key point") + "\x1b[31m1\x1b[0m"
	assert.Equal(t, "Key point1", StripANSI(styled))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestMeasureWidth(t *testing.T) {
	assert.Equal(t, 4, MeasureWidth("\x1b[1mab\x1b[0m\n日本"))
}

func TestFindLine(t *testing.T) {
	out := "title\n\x1b[2m0:30  ──  2:00\x1b[0m\nfooter"
	assert.Equal(t, "0:30  ──  2:00", FindLine(out, "0:30"))
	assert.Empty(t, FindLine(out, "missing"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb\n  \n\n"))
	assert.Empty(t, SplitLines("\n \n"))
}
