package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhunton/nsfg"
)

const barRune = "█"

// RenderHistogram draws h as one line per bin: the lower bin edge, the
// count and a bar scaled so the largest bin is width runes long.  Bins
// holding at least one value get at least one rune.
func RenderHistogram(title string, h *nsfg.Histogram, width int, styles Styles, bar lipgloss.Style) string {

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(title))
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("  (n=%.0f, %d bins)", h.Total(), len(h.Counts))))
	sb.WriteString("\n")

	max := 0.0
	for _, c := range h.Counts {
		max = math.Max(max, c)
	}

	for k, c := range h.Counts {
		n := 0
		if max > 0 {
			n = int(math.Round(c / max * float64(width)))
		}
		if c > 0 && n == 0 {
			n = 1
		}
		sb.WriteString(styles.Label.Render(fmt.Sprintf("%8.3f", h.Dividers[k])))
		sb.WriteString(fmt.Sprintf(" %6.0f ", c))
		sb.WriteString(bar.Render(strings.Repeat(barRune, n)))
		sb.WriteString("\n")
	}

	return sb.String()
}
