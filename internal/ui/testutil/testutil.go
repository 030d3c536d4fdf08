// Package testutil provides helpers for asserting on rendered views.
package testutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so views can be compared as text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// MeasureWidth returns the widest line of s in terminal cells.
func MeasureWidth(s string) int {
	return lipgloss.Width(StripANSI(s))
}

// FindLine returns the first line containing substr, or "".
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// SplitLines splits output into stripped lines without trailing blank lines.
func SplitLines(output string) []string {
	lines := strings.Split(StripANSI(output), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
