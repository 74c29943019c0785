// Package tui provides the interactive Bubble Tea dashboard for spendplan.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendplan/internal/config"
	"github.com/theirongolddev/spendplan/internal/planner"
	"github.com/theirongolddev/spendplan/internal/tui/components"
	"github.com/theirongolddev/spendplan/internal/tui/theme"
)

const (
	tabLedger = iota
	tabObligations
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// timeNow is swapped out by tests.
var timeNow = time.Now

// App is the root Bubble Tea model. All state changes go through the planner;
// the view is redrawn from it after every message.
type App struct {
	planner *planner.Planner
	cfg     config.Config
	log     logrus.FieldLogger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	dirty     bool // unsaved changes since the last save or restore

	// Per-tab state
	ledger   ledgerState
	obls     obligationsState
	settings settingsState

	// Ledger generation form (huh). buildVals is a pointer because the form
	// binds to its fields and App is copied on every Update.
	buildForm *huh.Form
	buildVals *buildValues

	status components.Status
}

// NewApp creates the TUI model around a restored planner. cfg is the
// effective configuration (file plus environment).
func NewApp(p *planner.Planner, cfg config.Config, log logrus.FieldLogger) App {
	return App{
		planner: p,
		cfg:     cfg,
		log:     log,
	}
}

// Init implements tea.Model. Without a ledger the build form opens on the
// first WindowSizeMsg.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.buildForm != nil {
			a.buildForm = a.buildForm.WithWidth(min(msg.Width, 80)).WithHeight(msg.Height)
		}
		if !a.planner.Built() && a.buildForm == nil && !a.ledger.formShown {
			a.ledger.formShown = true
			return a.openBuildForm()
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.buildForm != nil || a.editing() {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.buildForm != nil {
			if key == "esc" {
				a.buildForm = nil
				a.status = components.Status{Text: "Build cancelled"}
				return a, nil
			}
			return a.updateBuildForm(msg)
		}

		// Text inputs intercept all keys while editing.
		switch {
		case a.ledger.editing:
			return a.updateLedgerInput(msg)
		case a.obls.editing:
			return a.updateObligationInput(msg)
		case a.settings.editing:
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		var handled bool
		var cmd tea.Cmd
		switch a.activeTab {
		case tabLedger:
			a, cmd, handled = a.updateLedgerKeys(key)
		case tabObligations:
			a, cmd, handled = a.updateObligationKeys(key)
		case tabSettings:
			a, cmd, handled = a.updateSettingsKeys(key)
		}
		if handled {
			return a, cmd
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "w":
			a.save()
			return a, nil
		case "n":
			return a.openBuildForm()
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the build form (cursor blinks, etc.)
	if a.buildForm != nil {
		return a.updateBuildForm(msg)
	}
	// And to whichever text input is focused.
	switch {
	case a.ledger.editing:
		var cmd tea.Cmd
		a.ledger.input, cmd = a.ledger.input.Update(msg)
		return a, cmd
	case a.obls.editing:
		var cmd tea.Cmd
		a.obls.input, cmd = a.obls.input.Update(msg)
		return a, cmd
	case a.settings.editing:
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) editing() bool {
	return a.ledger.editing || a.obls.editing || a.settings.editing
}

// save persists the current state synchronously and reports the outcome in
// the status bar. A failure leaves the in-memory state untouched.
func (a *App) save() {
	if err := a.planner.Save(); err != nil {
		a.status = components.Status{Text: fmt.Sprintf("Save failed: %v", err), Error: true}
		return
	}
	a.dirty = false
	a.status = components.Status{Text: "Expenses saved!"}
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a = a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a = a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) moveCursor(delta int) App {
	switch a.activeTab {
	case tabLedger:
		a.ledger.cursor = clampCursor(a.ledger.cursor+delta, len(a.planner.State().Entries))
	case tabObligations:
		a.obls.cursor = clampCursor(a.obls.cursor+delta, len(a.planner.State().Obligations))
	case tabSettings:
		a.settings.cursor = clampCursor(a.settings.cursor+delta, settingsFieldCount)
	}
	return a
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.buildForm != nil {
		return a.viewBuildForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  spendplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"l o x", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k g G", "Move in lists"},
		}},
		{"Ledger", []struct{ key, desc string }{
			{"e Enter", "Edit actual amount"},
			{"n", "Generate a new ledger"},
			{"w", "Save"},
		}},
		{"Obligations", []struct{ key, desc string }{
			{"a", "Add obligation"},
			{"d", "Delete obligation"},
			{"e Enter", "Edit description"},
			{"m", "Edit amount"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel editing"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	plan := a.planner.Plan()
	if a.dirty {
		plan += " ●"
	}
	statusBar := components.RenderStatusBar(w, plan, a.status)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabLedger:
		content = a.renderLedgerTab(cw, contentH)
	case tabObligations:
		content = a.renderObligationsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same width rules as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
