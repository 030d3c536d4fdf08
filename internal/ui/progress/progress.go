// Package progress renders the chapter progress bar.
package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/keypoint/internal/ui/styles"
)

const (
	filledCell = "━"
	emptyCell  = "─"
	headCell   = "●"
	gap        = "  "
)

// Clock formats d as m:ss, or h:mm:ss past an hour. Sub-second parts are
// dropped.
func Clock(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Render draws "1:23  ━━━━●─────  4:56" in width cells. ratio is clamped
// to [0, 1]. Narrow widths fall back to "1:23 / 4:56".
func Render(position, duration time.Duration, ratio float64, width int) string {
	t := styles.T()
	pos, dur := Clock(position), Clock(duration)

	barWidth := width - lipgloss.Width(pos) - lipgloss.Width(dur) - 2*len(gap)
	if barWidth < 3 {
		return t.S().Muted.Render(pos + " / " + dur)
	}

	ratio = min(max(ratio, 0), 1)
	filled := min(int(float64(barWidth-1)*ratio), barWidth-1)

	var b strings.Builder
	b.WriteString(t.S().Base.Render(pos))
	b.WriteString(gap)
	b.WriteString(styles.GradientFill(filledCell, filled, t.Primary, t.Secondary))
	b.WriteString(lipgloss.NewStyle().Foreground(t.Secondary).Render(headCell))
	b.WriteString(t.S().Track.Render(strings.Repeat(emptyCell, barWidth-1-filled)))
	b.WriteString(gap)
	b.WriteString(t.S().Muted.Render(dur))
	return b.String()
}
