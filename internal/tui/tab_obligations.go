package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/model"
	"github.com/theirongolddev/spendplan/internal/tui/components"
	"github.com/theirongolddev/spendplan/internal/tui/theme"
)

type obligationsState struct {
	cursor  int
	editing bool
	field   model.ObligationField
	input   textinput.Model
}

func (a App) updateObligationKeys(key string) (App, tea.Cmd, bool) {
	obs := a.planner.State().Obligations
	switch key {
	case "j", "down":
		a.obls.cursor = clampCursor(a.obls.cursor+1, len(obs))
	case "k", "up":
		a.obls.cursor = clampCursor(a.obls.cursor-1, len(obs))
	case "g", "home":
		a.obls.cursor = 0
	case "G", "end":
		a.obls.cursor = clampCursor(len(obs)-1, len(obs))
	case "a":
		a.planner.AddObligation()
		a.dirty = true
		a.obls.cursor = len(a.planner.State().Obligations) - 1
		return a.startObligationEdit(model.FieldDescription)
	case "d", "delete":
		a.planner.RemoveObligation(a.obls.cursor)
		a.dirty = true
		a.obls.cursor = clampCursor(a.obls.cursor, len(a.planner.State().Obligations))
	case "e", "enter":
		return a.startObligationEdit(model.FieldDescription)
	case "m", "$":
		return a.startObligationEdit(model.FieldAmount)
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) startObligationEdit(field model.ObligationField) (App, tea.Cmd, bool) {
	obs := a.planner.State().Obligations
	if a.obls.cursor < 0 || a.obls.cursor >= len(obs) {
		return a, nil, true
	}
	o := obs[a.obls.cursor]

	ti := textinput.New()
	ti.Prompt = ""
	switch field {
	case model.FieldDescription:
		ti.Placeholder = "Description"
		ti.CharLimit = 80
		ti.Width = 30
		ti.SetValue(o.Description)
	case model.FieldAmount:
		ti.Placeholder = "0.00"
		ti.CharLimit = 32
		ti.Width = 12
		ti.SetValue(formatInput(o.Amount))
	}
	ti.CursorEnd()

	a.obls.field = field
	a.obls.editing = true
	a.obls.input = ti
	cmd := a.obls.input.Focus()
	return a, cmd, true
}

func (a App) updateObligationInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.planner.UpdateObligation(a.obls.cursor, a.obls.field, a.obls.input.Value())
		a.dirty = true
		a.obls.editing = false
		return a, nil
	case "tab":
		// Commit and move to the other field of the same obligation.
		a.planner.UpdateObligation(a.obls.cursor, a.obls.field, a.obls.input.Value())
		a.dirty = true
		next := model.FieldAmount
		if a.obls.field == model.FieldAmount {
			next = model.FieldDescription
		}
		var cmd tea.Cmd
		a, cmd, _ = a.startObligationEdit(next)
		return a, cmd
	case "esc":
		a.obls.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.obls.input, cmd = a.obls.input.Update(msg)
	return a, cmd
}

func (a App) renderObligationsTab(cw int) string {
	t := theme.Active
	obs := a.planner.State().Obligations
	sym := a.cfg.Budget.CurrencySymbol
	innerW := components.CardInnerWidth(cw)

	base := lipgloss.NewStyle().Background(t.Surface)
	headerStyle := base.Foreground(t.Accent).Bold(true)
	rowStyle := base.Foreground(t.TextPrimary)
	mutedStyle := base.Foreground(t.TextMuted)
	totalStyle := base.Foreground(t.Obligation).Bold(true)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover).Foreground(t.TextPrimary).Bold(true)

	const numW, amtW = 4, 14
	descW := max(innerW-numW-amtW-2, 10)
	cols := func(num, desc, amount string) string {
		return fmt.Sprintf("%-*s %-*s %*s", numW, num, descW, truncStr(desc, descW), amtW, amount)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(cols("#", "Description", "Amount")))

	if len(obs) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No obligations. Press a to add one."))
	}

	for i, o := range obs {
		desc := cli.OrDash(o.Description)
		amount := cli.FormatMoney(sym, o.Amount)
		if a.obls.editing && i == a.obls.cursor {
			switch a.obls.field {
			case model.FieldDescription:
				desc = a.obls.input.View()
			case model.FieldAmount:
				amount = a.obls.input.View()
			}
		}

		style := rowStyle
		if i == a.obls.cursor {
			style = selStyle
		}
		b.WriteString("\n")
		if a.obls.editing && i == a.obls.cursor {
			// Input views carry their own styling; pad by visual width.
			b.WriteString(style.Render(fmt.Sprintf("%-*s ", numW, strconv.Itoa(i+1))))
			b.WriteString(padVisual(desc, descW, false))
			b.WriteString(style.Render(" "))
			b.WriteString(padVisual(amount, amtW, true))
			continue
		}
		b.WriteString(style.Render(cols(strconv.Itoa(i+1), desc, amount)))
	}

	b.WriteString("\n\n")
	b.WriteString(totalStyle.Render(cols("", "Total", cli.FormatMoney(sym, obs.Total()))))

	var help strings.Builder
	help.WriteString(mutedStyle.Render("[a] add  [d] delete  [e] description  [m] amount  [tab] next field  [esc] cancel"))
	help.WriteString("\n")
	note := "Changes apply to the next generated ledger (press n)."
	if a.planner.Built() {
		note = "Rows already in the ledger keep their amounts until the next build (press n)."
	}
	help.WriteString(mutedStyle.Render(note))

	return components.ContentCard("Obligations", b.String(), cw) + "\n" +
		components.ContentCard("", help.String(), cw)
}

func padVisual(s string, w int, right bool) string {
	gap := max(w-lipgloss.Width(s), 0)
	pad := lipgloss.NewStyle().Background(theme.Active.Surface).Render(strings.Repeat(" ", gap))
	if right {
		return pad + s
	}
	return s + pad
}
