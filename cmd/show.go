package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/model"
	"github.com/theirongolddev/spendplan/internal/planner"
)

var showCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"ledger"},
	Short:   "Print the ledger with running remaining balance",
	RunE:    runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, _ []string) error {
	p, st, err := openPlanner()
	if err != nil {
		return err
	}
	defer st.Close()

	if !p.Built() {
		fmt.Println("\n  No ledger yet.")
		fmt.Println("  Run `spendplan build` or `spendplan tui` to generate one.")
		return nil
	}

	printLedger(p)
	return nil
}

func printLedger(p *planner.Planner) {
	state := p.State()
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LEDGER  %s  budget %s",
		p.Plan(), cli.FormatMoney(cfg.Budget.CurrencySymbol, state.TotalBudget))))
	fmt.Println()

	rows, kinds := ledgerRows(state)
	totals := p.Totals()
	rows = append(rows, []string{"---"}, []string{
		"", "", "Total",
		cli.FormatAmount(totals.Planned),
		cli.FormatAmount(totals.Actual),
		cli.FormatRemaining(totals.Remaining),
	})
	kinds = append(kinds, cli.RowNormal, remainingKind(totals.Remaining))

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Date", "Label", "Planned", "Actual", "Remaining"},
		Rows:     rows,
		Kinds:    kinds,
		LeftCols: 3,
	}))
}

// ledgerRows renders one table row per entry, numbered from 1 as `spend '#n'`
// expects. Obligation rows show a dash in the date column.
func ledgerRows(st *model.BudgetState) ([][]string, []cli.RowKind) {
	rows := make([][]string, 0, len(st.Entries))
	kinds := make([]cli.RowKind, 0, len(st.Entries))
	for i, e := range st.Entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.OrDash(e.DateString()),
			e.Label,
			cli.FormatAmount(e.Planned),
			cli.FormatAmount(e.Actual),
			cli.FormatRemaining(e.Remaining),
		})
		switch {
		case e.OverBudget():
			kinds = append(kinds, cli.RowOver)
		case e.IsObligation():
			kinds = append(kinds, cli.RowObligation)
		default:
			kinds = append(kinds, cli.RowNormal)
		}
	}
	return rows, kinds
}

func remainingKind(v float64) cli.RowKind {
	if v < 0 {
		return cli.RowOver
	}
	return cli.RowNormal
}
