package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/planner"
	"github.com/theirongolddev/spendplan/internal/tui/components"
	"github.com/theirongolddev/spendplan/internal/tui/theme"
)

// ledgerOverhead is the number of content lines around the entry rows:
// metric cards, budget bar, sparkline, card borders and table header.
const ledgerOverhead = 12

type ledgerState struct {
	cursor    int
	offset    int // first visible row
	editing   bool
	input     textinput.Model
	formShown bool // build form already offered for an empty ledger
}

func newAmountInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.CharLimit = 32
	ti.Width = 12
	ti.Prompt = ""
	ti.SetValue(value)
	return ti
}

func (a App) updateLedgerKeys(key string) (App, tea.Cmd, bool) {
	n := len(a.planner.State().Entries)
	switch key {
	case "j", "down":
		a.ledger.cursor = clampCursor(a.ledger.cursor+1, n)
	case "k", "up":
		a.ledger.cursor = clampCursor(a.ledger.cursor-1, n)
	case "g", "home":
		a.ledger.cursor = 0
	case "G", "end":
		a.ledger.cursor = clampCursor(n-1, n)
	case "e", "enter":
		if n == 0 {
			return a, nil, true
		}
		e := a.planner.State().Entries[a.ledger.cursor]
		a.ledger.input = newAmountInput(formatInput(e.Actual))
		a.ledger.input.CursorEnd()
		a.ledger.editing = true
		cmd := a.ledger.input.Focus()
		return a, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateLedgerInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.ledger.editing = false
		err := a.planner.SetActual(a.ledger.cursor, a.ledger.input.Value())
		switch {
		case errors.Is(err, planner.ErrNoEntry), errors.Is(err, planner.ErrNotBuilt):
			a.status = components.Status{Text: err.Error(), Error: true}
		case err == nil:
			a.dirty = true
			a.status = components.Status{}
		}
		return a, nil
	case "esc":
		a.ledger.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.ledger.input, cmd = a.ledger.input.Update(msg)
	return a, cmd
}

// visibleStart scrolls the window of rows entries so the cursor stays inside
// it and returns the first visible index.
func (s *ledgerState) visibleStart(rows, total int) int {
	if rows <= 0 {
		return s.cursor
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}
	s.offset = min(s.offset, max(total-rows, 0))
	return s.offset
}

func (a App) renderLedgerTab(cw, contentH int) string {
	t := theme.Active
	st := a.planner.State()
	sym := a.cfg.Budget.CurrencySymbol

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if !a.planner.Built() {
		body := mutedStyle.Render("No ledger yet. Press n to generate one.")
		return components.ContentCard("Ledger", body, cw)
	}

	totals := a.planner.Totals()
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Budget", Value: cli.FormatMoney(sym, st.TotalBudget)},
		{Label: "Planned", Value: cli.FormatMoney(sym, totals.Planned)},
		{Label: "Actual", Value: cli.FormatMoney(sym, totals.Actual),
			Delta: cli.FormatDelta(sym, totals.Actual, totals.Planned) + " vs plan"},
		{Label: "Remaining", Value: cli.FormatMoney(sym, totals.Remaining), Over: totals.Remaining < 0},
	}, cw)

	innerW := components.CardInnerWidth(cw)
	days := st.Days()
	actual := make([]float64, len(days))
	planned := make([]float64, len(days))
	for i, d := range days {
		actual[i], planned[i] = d.Actual, d.Planned
	}

	var top strings.Builder
	top.WriteString(components.BudgetBar("Budget used", totals.Actual, st.TotalBudget, 12, max(innerW-20, 10)))
	top.WriteString("\n")
	top.WriteString(mutedStyle.Render(fmt.Sprintf("%-12s ", "Daily spend")))
	top.WriteString(components.Sparkline(actual, planned, t.Accent))
	top.WriteString(mutedStyle.Render(fmt.Sprintf("  %d over budget", ledger.OverBudgetDays(st))))

	rows := max(contentH-ledgerOverhead, 3)
	table := a.renderLedgerTable(innerW, rows)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n")
	b.WriteString(components.ContentCard("", top.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Ledger", table, cw))
	return b.String()
}

func (a App) renderLedgerTable(innerW, rows int) string {
	t := theme.Active
	st := a.planner.State()

	// #, date, label, planned, actual, remaining
	const numW, dateW, amtW = 4, 10, 12
	labelW := max(innerW-numW-dateW-3*amtW-5, 8)

	base := lipgloss.NewStyle().Background(t.Surface)
	headerStyle := base.Foreground(t.Accent).Bold(true)
	rowStyle := base.Foreground(t.TextPrimary)
	oblStyle := base.Foreground(t.Obligation)
	overStyle := base.Foreground(t.Red)
	selBase := lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true)

	cols := func(num, date, label, planned, actual, remaining string) string {
		return fmt.Sprintf("%-*s %-*s %-*s %*s %*s %*s",
			numW, num, dateW, date, labelW, truncStr(label, labelW),
			amtW, planned, amtW, actual, amtW, remaining)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(cols("#", "Date", "Label", "Planned", "Actual", "Remaining")))

	start := a.ledger.visibleStart(rows, len(st.Entries))
	end := min(start+rows, len(st.Entries))
	for i := start; i < end; i++ {
		e := st.Entries[i]

		style := rowStyle
		switch {
		case e.OverBudget():
			style = overStyle
		case e.IsObligation():
			style = oblStyle
		}
		if i == a.ledger.cursor {
			style = selBase.Foreground(style.GetForeground())
		}

		actual := cli.FormatAmount(e.Actual)
		if a.ledger.editing && i == a.ledger.cursor {
			actual = a.ledger.input.View()
			actual = strings.Repeat(" ", max(amtW-lipgloss.Width(actual), 0)) + actual
		}

		b.WriteString("\n")
		b.WriteString(style.Render(cols(
			strconv.Itoa(i+1),
			cli.OrDash(e.DateString()),
			e.Label,
			cli.FormatAmount(e.Planned),
			actual,
			cli.FormatRemaining(e.Remaining),
		)))
	}

	if len(st.Entries) > rows {
		b.WriteString("\n")
		b.WriteString(base.Foreground(t.TextDim).Render(
			fmt.Sprintf("%d-%d of %d  [j/k] move  [e] edit actual", start+1, end, len(st.Entries))))
	}
	return b.String()
}
