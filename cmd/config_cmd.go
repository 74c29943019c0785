// Package cmd implements the spendplan CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	sym := cfg.Budget.CurrencySymbol
	fmt.Println("  [Budget]")
	fmt.Printf("    Total:          %s\n", cli.FormatMoney(sym, cfg.Budget.Total))
	fmt.Printf("    Weekday amount: %s\n", cli.FormatMoney(sym, cfg.Budget.WeekdayAmount))
	fmt.Printf("    Weekend amount: %s\n", cli.FormatMoney(sym, cfg.Budget.WeekendAmount))
	fmt.Printf("    Default days:   %d\n", cfg.Budget.Days)
	fmt.Printf("    Currency:       %s\n", sym)
	fmt.Println()

	fmt.Println("  [Obligations]")
	if len(cfg.Obligations) == 0 {
		fmt.Println("    none")
	}
	for _, o := range cfg.Obligations {
		fmt.Printf("    %-30s %s\n", cli.OrDash(o.Description), cli.FormatMoney(sym, o.Amount))
	}
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Database: %s\n", cfg.DBPath())
	fmt.Printf("    Plan:     %s\n", cfg.Storage.Plan)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", cfg.LogPath())
	fmt.Println()

	fmt.Println("  Run `spendplan setup` to reconfigure.")
	return nil
}
