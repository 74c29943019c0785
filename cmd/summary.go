package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget totals, usage bar and spending trend",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	p, st, err := openPlanner()
	if err != nil {
		return err
	}
	defer st.Close()

	if !p.Built() {
		fmt.Println("\n  No ledger yet.")
		fmt.Println("  Run `spendplan build` to generate one.")
		return nil
	}

	state := p.State()
	totals := p.Totals()
	days := state.Days()
	sym := cfg.Budget.CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET SUMMARY  %s", p.Plan())))
	fmt.Println()

	spent := make([]float64, 0, len(days))
	var recorded int
	for _, d := range days {
		spent = append(spent, d.Actual)
		if d.Actual != 0 {
			recorded++
		}
	}

	rows := [][]string{
		{"Total budget", cli.FormatMoney(sym, state.TotalBudget)},
		{"Period", periodLabel(days)},
		{"Obligations", fmt.Sprintf("%s (%d)", cli.FormatMoney(sym, state.Obligations.Total()), len(state.Obligations))},
		{"---"},
		{"Planned", cli.FormatMoney(sym, totals.Planned)},
		{"Actual", fmt.Sprintf("%s  (%s vs plan)", cli.FormatMoney(sym, totals.Actual), cli.FormatDelta(sym, totals.Actual, totals.Planned))},
		{"Remaining", cli.FormatMoney(sym, totals.Remaining)},
		{"---"},
		{"Days recorded", fmt.Sprintf("%d of %d", recorded, len(days))},
		{"Over-budget days", fmt.Sprintf("%d", ledger.OverBudgetDays(state))},
	}
	kinds := make([]cli.RowKind, len(rows))
	kinds[6] = remainingKind(totals.Remaining)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
		Kinds:   kinds,
	}))

	fmt.Println()
	fmt.Printf("  Budget used  %s\n", cli.RenderBudgetBar(totals.Actual, state.TotalBudget, 30))
	if len(spent) > 1 {
		fmt.Printf("  Daily spend  %s\n", cli.RenderSparkline(spent))
	}
	fmt.Println()

	return nil
}

// periodLabel renders the day range as "Sat 2024-01-06 → Sun 2024-01-07 (2 days)".
func periodLabel(days []model.LedgerEntry) string {
	if len(days) == 0 {
		return cli.OrDash("")
	}
	day := func(e model.LedgerEntry) string {
		return cli.FormatDayOfWeek(int(e.Date.Weekday())) + " " + e.DateString()
	}
	return fmt.Sprintf("%s → %s (%d days)", day(days[0]), day(days[len(days)-1]), len(days))
}
