package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/config"
	"github.com/theirongolddev/spendplan/internal/model"
	"github.com/theirongolddev/spendplan/internal/tui/components"
	"github.com/theirongolddev/spendplan/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldTotal
	settingsFieldWeekday
	settingsFieldWeekend
	settingsFieldDays
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.settings.cursor = clampCursor(a.settings.cursor+1, settingsFieldCount)
	case "k", "up":
		a.settings.cursor = clampCursor(a.settings.cursor-1, settingsFieldCount)
	case "enter", "e":
		return a.settingsStartEdit()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (App, tea.Cmd, bool) {
	b := a.cfg.Budget
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = "€"
		ti.SetValue(b.CurrencySymbol)
	case settingsFieldTotal:
		ti.Placeholder = "2000"
		ti.SetValue(formatInput(b.Total))
	case settingsFieldWeekday:
		ti.Placeholder = "40"
		ti.SetValue(formatInput(b.WeekdayAmount))
	case settingsFieldWeekend:
		ti.Placeholder = "60"
		ti.SetValue(formatInput(b.WeekendAmount))
	case settingsFieldDays:
		ti.Placeholder = "30"
		ti.SetValue(strconv.Itoa(b.Days))
	}
	ti.CursorEnd()

	a.settings.input = ti
	cmd := a.settings.input.Focus()
	return a, cmd, true
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field to the running app and writes it to
// the config file. The file is reloaded first so environment overrides held
// in a.cfg are not persisted.
func (a *App) settingsSave() {
	fileCfg, err := config.Load()
	if err != nil {
		a.settings.saveErr = err
		return
	}
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		fileCfg.Appearance.Theme = val
		a.cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldCurrency:
		if val == "" {
			return
		}
		fileCfg.Budget.CurrencySymbol = val
		a.cfg.Budget.CurrencySymbol = val
	case settingsFieldTotal:
		fileCfg.Budget.Total = model.ParseAmount(val)
		a.cfg.Budget.Total = fileCfg.Budget.Total
	case settingsFieldWeekday:
		fileCfg.Budget.WeekdayAmount = model.ParseAmount(val)
		a.cfg.Budget.WeekdayAmount = fileCfg.Budget.WeekdayAmount
	case settingsFieldWeekend:
		fileCfg.Budget.WeekendAmount = model.ParseAmount(val)
		a.cfg.Budget.WeekendAmount = fileCfg.Budget.WeekendAmount
	case settingsFieldDays:
		d, err := strconv.Atoi(val)
		if err != nil || d <= 0 {
			a.settings.saveErr = fmt.Errorf("days must be a positive whole number")
			return
		}
		fileCfg.Budget.Days = d
		a.cfg.Budget.Days = d
	}

	a.settings.saveErr = config.Save(fileCfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	b := a.cfg.Budget
	sym := b.CurrencySymbol

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	fields := []struct{ label, value string }{
		{"Theme", a.cfg.Appearance.Theme},
		{"Currency", sym},
		{"Default budget", cli.FormatMoney(sym, b.Total)},
		{"Weekday amount", cli.FormatMoney(sym, b.WeekdayAmount)},
		{"Weekend amount", cli.FormatMoney(sym, b.WeekendAmount)},
		{"Default days", strconv.Itoa(b.Days)},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker+label+value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Plan:        ") + valueStyle.Render(a.planner.Plan()) + "\n")
	infoBody.WriteString(labelStyle.Render("Database:    ") + valueStyle.Render(a.cfg.DBPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file: ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Log file:    ") + valueStyle.Render(a.cfg.LogPath()))

	var out strings.Builder
	out.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	out.WriteString("\n")
	out.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return out.String()
}
