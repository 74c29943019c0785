package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/model"
	"github.com/theirongolddev/spendplan/internal/tui/components"
	"github.com/theirongolddev/spendplan/internal/tui/theme"
)

// buildValues holds the raw text of the ledger generation form.
type buildValues struct {
	total   string
	start   string
	end     string
	weekday string
	weekend string
}

// defaultBuildValues prefills the form from the current ledger if there is
// one, otherwise from the [budget] config section starting today.
func (a App) defaultBuildValues() *buildValues {
	b := a.cfg.Budget
	start := ledger.Day(timeNow())
	end := start.AddDate(0, 0, max(b.Days, 1)-1)
	v := &buildValues{
		total:   formatInput(b.Total),
		start:   start.Format(model.DateLayout),
		end:     end.Format(model.DateLayout),
		weekday: formatInput(b.WeekdayAmount),
		weekend: formatInput(b.WeekendAmount),
	}

	st := a.planner.State()
	if days := st.Days(); len(days) > 0 {
		v.total = formatInput(st.TotalBudget)
		v.start = days[0].DateString()
		v.end = days[len(days)-1].DateString()
	}
	return v
}

func formatInput(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func validateDate(s string) error {
	_, err := ledger.ParseDate(strings.TrimSpace(s))
	return err
}

func newBuildForm(v *buildValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("New ledger").
				Description("Obligations are copied in ahead of the days.\nEsc cancels."),
			huh.NewInput().
				Title("Total budget").
				Value(&v.total),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Validate(validateDate).
				Value(&v.start),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				Validate(validateDate).
				Value(&v.end),
			huh.NewInput().
				Title("Weekday amount").
				Description("Planned spend Monday to Friday").
				Value(&v.weekday),
			huh.NewInput().
				Title("Weekend amount").
				Description("Planned spend on Saturday and Sunday").
				Value(&v.weekend),
		),
	).WithShowHelp(true).WithTheme(huh.ThemeBase16())
}

func (a App) openBuildForm() (tea.Model, tea.Cmd) {
	a.buildVals = a.defaultBuildValues()
	a.buildForm = newBuildForm(a.buildVals)
	if a.width > 0 {
		a.buildForm = a.buildForm.WithWidth(min(a.width, 80)).WithHeight(a.height)
	}
	return a, a.buildForm.Init()
}

func (a App) updateBuildForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.buildForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.buildForm = f
	}

	switch a.buildForm.State {
	case huh.StateCompleted:
		a.buildForm = nil
		a.applyBuild(*a.buildVals)
		return a, nil
	case huh.StateAborted:
		a.buildForm = nil
		a.status = components.Status{Text: "Build cancelled"}
		return a, nil
	}

	return a, cmd
}

// applyBuild generates a ledger from the form values. Amounts are parsed
// leniently; an inverted range leaves everything as it was.
func (a *App) applyBuild(v buildValues) {
	start, errStart := ledger.ParseDate(strings.TrimSpace(v.start))
	end, errEnd := ledger.ParseDate(strings.TrimSpace(v.end))
	for _, err := range []error{errStart, errEnd} {
		if err != nil {
			a.status = components.Status{Text: err.Error(), Error: true}
			return
		}
	}

	err := a.planner.Generate(ledger.Params{
		TotalBudget:   model.ParseAmount(v.total),
		Start:         start,
		End:           end,
		WeekdayAmount: model.ParseAmount(v.weekday),
		WeekendAmount: model.ParseAmount(v.weekend),
	})
	if errors.Is(err, ledger.ErrInvalidRange) {
		a.status = components.Status{Text: "Start date must be on or before end date.", Error: true}
		return
	}
	if err != nil {
		a.status = components.Status{Text: err.Error(), Error: true}
		return
	}

	a.dirty = true
	a.activeTab = tabLedger
	a.ledger.cursor, a.ledger.offset = 0, 0
	a.status = components.Status{Text: fmt.Sprintf("Ledger generated: %d days. Press w to save.",
		len(a.planner.State().Days()))}
}

func (a App) viewBuildForm() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	obs := a.planner.State().Obligations
	header := titleStyle.Render("◈ spendplan") +
		mutedStyle.Render(fmt.Sprintf("  ·  %d obligations totalling %s",
			len(obs), cli.FormatMoney(a.cfg.Budget.CurrencySymbol, obs.Total())))

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", a.buildForm.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}
