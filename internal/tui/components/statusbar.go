package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendplan/internal/tui/theme"
)

// Status is the transient message shown in the status bar.
type Status struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// last status message and plan name on the right.
func RenderStatusBar(width int, plan string, status Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	msgColor := t.Green
	if status.Error {
		msgColor = t.Red
	}
	msgStyle := base.Foreground(msgColor).Bold(true)

	left := base.Render(" [?]help  [w]save  [n]ew ledger  [q]uit")
	right := ""
	if status.Text != "" {
		right = msgStyle.Render(status.Text) + base.Render("  ")
	}
	right += base.Render(plan + " ")

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", padding)) + right
}
