package sink

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// DefaultTextWidth is the preview width in terminal columns.
const DefaultTextWidth = 80

var kindColors = map[masonry.Kind]lipgloss.Color{
	masonry.KindImage: lipgloss.Color("39"),
	masonry.KindClip:  lipgloss.Color("214"),
	masonry.KindAd:    lipgloss.Color("203"),
}

// RenderText draws the layout as coloured blocks scaled to cols columns, one
// text line per row. Each block shows as much of the tile ID as fits.
func RenderText(l grid.Layout, cols int) string {
	if cols <= 0 {
		cols = DefaultTextWidth
	}
	if l.Width <= 0 || len(l.Rows) == 0 {
		return ""
	}
	unit := float64(cols) / l.Width

	lines := make([]string, 0, len(l.Rows))
	for _, r := range l.Rows {
		cells := make([]string, 0, len(r.Blocks))
		used := 0
		for i, b := range r.Blocks {
			if used >= cols {
				break
			}
			n := int(math.Round(b.Width * unit))
			if i == len(r.Blocks)-1 {
				n = cols - used
			}
			n = max(1, min(n, cols-used))
			used += n
			cells = append(cells, blockStyle(b.Kind).Width(n).Render(fit(b.ID, n)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

// TextSummary describes the layout in one line per row.
func TextSummary(l grid.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d tiles in %d rows, %.0fx%.0f\n", l.Count(), len(l.Rows), l.Width, l.Height)
	for i, r := range l.Rows {
		fmt.Fprintf(&b, "row %d: %d tiles, height %.2f\n", i, len(r.Blocks), r.Height)
	}
	return b.String()
}

func blockStyle(k masonry.Kind) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
	if c, ok := kindColors[k]; ok {
		s = s.Background(c)
	}
	return s
}

// fit truncates s to n runes, leaving a space separator between blocks.
func fit(s string, n int) string {
	r := []rune(s)
	if n <= 1 {
		return " "
	}
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r)
}
