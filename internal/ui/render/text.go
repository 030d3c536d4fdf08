// Package render provides text layout helpers for the terminal views.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize drops control characters and invalid UTF-8 so tag metadata
// cannot break the terminal. Non-breaking spaces become spaces.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == '\u00a0':
			b.WriteByte(' ')
		case r != '\t' && unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate shortens s to maxWidth cells, ending with an ellipsis when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, ellipsis)
}

// Center pads s on both sides to width cells.
func Center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Row puts left and right at the two ends of a width-cell line.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Wrap breaks s into at most maxLines lines of width cells at word
// boundaries. Words wider than a line are split. When text remains after
// the last line, that line ends with an ellipsis.
func Wrap(s string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}

	var words []string
	for _, w := range strings.Fields(Sanitize(s)) {
		if runewidth.StringWidth(w) <= width {
			words = append(words, w)
			continue
		}
		words = append(words, strings.Split(runewidth.Wrap(w, width), "\n")...)
	}

	var lines []string
	var cur string
	for _, w := range words {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if runewidth.StringWidth(next) <= width {
			cur = next
			continue
		}
		lines = append(lines, cur)
		if len(lines) == maxLines {
			last := runewidth.Truncate(lines[maxLines-1], width-1, "")
			lines[maxLines-1] = last + ellipsis
			return lines
		}
		cur = w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
