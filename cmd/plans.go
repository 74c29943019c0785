package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/store"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List saved plans",
	RunE:  runPlans,
}

var plansRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlansRm,
}

func init() {
	plansCmd.AddCommand(plansRmCmd)
	rootCmd.AddCommand(plansCmd)
}

func runPlans(_ *cobra.Command, _ []string) error {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer st.Close()

	plans, err := st.List()
	if err != nil {
		return fmt.Errorf("listing plans: %w", err)
	}
	if len(plans) == 0 {
		fmt.Println("\n  No saved plans.")
		return nil
	}

	rows := make([][]string, 0, len(plans))
	for _, pl := range plans {
		name := pl.Name
		if name == cfg.Storage.Plan {
			name += " *"
		}
		saved := "unknown"
		if !pl.SavedAt.IsZero() {
			saved = pl.SavedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			name,
			saved,
			strconv.Itoa(pl.Entries),
			cli.FormatMoney(cfg.Budget.CurrencySymbol, pl.TotalBudget),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Saved plans",
		Headers:  []string{"Plan", "Saved", "Entries", "Budget"},
		Rows:     rows,
		LeftCols: 2,
	}))
	return nil
}

func runPlansRm(_ *cobra.Command, args []string) error {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(args[0]); err != nil {
		return fmt.Errorf("deleting plan %q: %w", args[0], err)
	}
	info("Deleted plan %q", args[0])
	return nil
}
