package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/config"
	"github.com/theirongolddev/spendplan/internal/model"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Start from the file, not the env-adjusted cfg, so overrides are not persisted.
	fileCfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to spendplan!")
	fmt.Println("  Press enter to keep the value in brackets.")
	fmt.Println()

	b := &fileCfg.Budget

	fmt.Println("  1. Currency symbol")
	b.CurrencySymbol = promptString(reader, b.CurrencySymbol)
	sym := b.CurrencySymbol

	fmt.Println("  2. Default total budget")
	b.Total = promptAmount(reader, b.Total, sym)

	fmt.Println("  3. Planned amount per weekday")
	b.WeekdayAmount = promptAmount(reader, b.WeekdayAmount, sym)

	fmt.Println("  4. Planned amount per weekend day")
	b.WeekendAmount = promptAmount(reader, b.WeekendAmount, sym)

	fmt.Println("  5. Default plan length in days")
	b.Days = promptDays(reader, b.Days)

	fmt.Println("  6. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		fileCfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		fileCfg.Appearance.Theme = "tokyo-night"
	case "4":
		fileCfg.Appearance.Theme = "terminal"
	case "1":
		fileCfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Edit [[obligations]] there to change the starting obligation list.")
	fmt.Println("  Run `spendplan setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func promptString(r *bufio.Reader, current string) string {
	fmt.Printf("     [%s] > ", current)
	line, _ := r.ReadString('\n')
	if line = strings.TrimSpace(line); line != "" {
		return line
	}
	return current
}

func promptAmount(r *bufio.Reader, current float64, sym string) float64 {
	fmt.Printf("     [%s] > ", cli.FormatMoney(sym, current))
	line, _ := r.ReadString('\n')
	if line = strings.TrimSpace(line); line != "" {
		return model.ParseAmount(line)
	}
	return current
}

func promptDays(r *bufio.Reader, current int) int {
	fmt.Printf("     [%d] > ", current)
	line, _ := r.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && n > 0 {
		return n
	}
	return current
}
