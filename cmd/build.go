package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/model"
)

var (
	flagTotal   string
	flagStart   string
	flagEnd     string
	flagWeekday string
	flagWeekend string
	flagDryRun  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate a fresh ledger for a date range",
	Long: "Generate a ledger from the total budget, a date range and the weekday and\n" +
		"weekend allowances. Current obligations are copied in ahead of the days.\n" +
		"Unset flags fall back to the [budget] section of the config.",
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagTotal, "total", "", "Total budget (unparsable amounts count as 0)")
	buildCmd.Flags().StringVar(&flagStart, "start", "", "First day, YYYY-MM-DD (default today)")
	buildCmd.Flags().StringVar(&flagEnd, "end", "", "Last day, YYYY-MM-DD (default start + config days - 1)")
	buildCmd.Flags().StringVar(&flagWeekday, "weekday", "", "Planned amount per weekday")
	buildCmd.Flags().StringVar(&flagWeekend, "weekend", "", "Planned amount per Saturday and Sunday")
	buildCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the ledger without saving it")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	params, err := buildParams(cmd)
	if err != nil {
		return err
	}

	p, st, err := openPlanner()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := p.Generate(params); err != nil {
		if errors.Is(err, ledger.ErrInvalidRange) {
			fmt.Fprintln(os.Stderr, "\n  Start date must be on or before end date.")
		}
		return err
	}

	printLedger(p)

	if flagDryRun {
		info("Dry run: plan %q not saved", p.Plan())
		return nil
	}
	if err := p.Save(); err != nil {
		return err
	}
	info("Expenses saved to plan %q", p.Plan())
	return nil
}

// buildParams merges explicit flags over the config defaults.
func buildParams(cmd *cobra.Command) (ledger.Params, error) {
	b := cfg.Budget
	params := ledger.Params{
		TotalBudget:   b.Total,
		WeekdayAmount: b.WeekdayAmount,
		WeekendAmount: b.WeekendAmount,
	}
	if cmd.Flags().Changed("total") {
		params.TotalBudget = model.ParseAmount(flagTotal)
	}
	if cmd.Flags().Changed("weekday") {
		params.WeekdayAmount = model.ParseAmount(flagWeekday)
	}
	if cmd.Flags().Changed("weekend") {
		params.WeekendAmount = model.ParseAmount(flagWeekend)
	}

	params.Start = ledger.Day(timeNow())
	if flagStart != "" {
		d, err := ledger.ParseDate(flagStart)
		if err != nil {
			return params, err
		}
		params.Start = d
	}

	days := max(b.Days, 1)
	params.End = params.Start.AddDate(0, 0, days-1)
	if flagEnd != "" {
		d, err := ledger.ParseDate(flagEnd)
		if err != nil {
			return params, err
		}
		params.End = d
	}

	log.WithFields(logrus.Fields{
		"start": params.Start.Format(model.DateLayout),
		"end":   params.End.Format(model.DateLayout),
	}).Debug("build params resolved")
	return params, nil
}
