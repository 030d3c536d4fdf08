package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// BoldGradient renders bold text with a horizontal color gradient, one
// color per grapheme cluster.
func BoldGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return paint(clusters, from, to, true)
}

// GradientFill renders n copies of cell blended from one color to the other.
func GradientFill(cell string, n int, from, to lipgloss.Color) string {
	if n <= 0 {
		return ""
	}
	cells := make([]string, n)
	for i := range cells {
		cells[i] = cell
	}
	return paint(cells, from, to, false)
}

func paint(parts []string, from, to lipgloss.Color, bold bool) string {
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range blend(len(parts), from, to) {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(bold)
		b.WriteString(style.Render(parts[i]))
	}
	return b.String()
}

// blend returns size colors from one end to the other, interpolated in HCL
// space.
func blend(size int, from, to lipgloss.Color) []colorful.Color {
	c1 := toColorful(from)
	if size == 1 {
		return []colorful.Color{c1}
	}
	c2 := toColorful(to)

	out := make([]colorful.Color, size)
	for i := range size {
		out[i] = c1.BlendHcl(c2, float64(i)/float64(size-1)).Clamped()
	}
	return out
}

// toColorful parses a #rrggbb color. ANSI colors fall back to gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	gray, _ := colorful.MakeColor(color.Gray{Y: 128})
	return gray
}
