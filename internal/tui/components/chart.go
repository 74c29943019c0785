package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendplan/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values. limits is optional and
// parallel to values; a value above its limit is drawn in the over-budget color.
func Sparkline(values, limits []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 16)
	for i, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		block := string(sparkBlocks[idx])
		if i < len(limits) && v > limits[i] {
			buf.WriteString(overStyle.Render(block))
		} else {
			buf.WriteString(style.Render(block))
		}
	}

	return buf.String()
}
