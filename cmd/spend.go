package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/planner"
)

var spendCmd = &cobra.Command{
	Use:   "spend <YYYY-MM-DD|today|#row> <amount>",
	Short: "Record the actual amount spent on a day or ledger row",
	Long: "Record the actual amount for a ledger row, addressed by date or by the\n" +
		"row number shown in `spendplan show`. The amount is parsed leniently:\n" +
		"a leading number is taken and anything unparsable counts as 0.",
	Example: "  spendplan spend 2024-01-06 42.50\n  spendplan spend '#3' 12",
	Args:    cobra.ExactArgs(2),
	RunE:    runSpend,
}

func init() {
	rootCmd.AddCommand(spendCmd)
}

func runSpend(_ *cobra.Command, args []string) error {
	p, st, err := openPlanner()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := applySpend(p, args[0], args[1]); err != nil {
		if errors.Is(err, planner.ErrNotBuilt) {
			fmt.Fprintln(os.Stderr, "\n  No ledger yet. Run `spendplan build` first.")
		}
		return err
	}

	printLedger(p)
	if err := p.Save(); err != nil {
		return err
	}
	info("Expenses saved!")
	return nil
}

// applySpend resolves target as a row number ("#3" or "3") or a date.
func applySpend(p *planner.Planner, target, amount string) error {
	target = strings.TrimSpace(target)

	if strings.EqualFold(target, "today") {
		return p.SetActualOn(ledger.Day(timeNow()), amount)
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(target, "#")); err == nil {
		return p.SetActual(n-1, amount)
	}

	day, err := ledger.ParseDate(target)
	if err != nil {
		return err
	}
	return p.SetActualOn(day, amount)
}
