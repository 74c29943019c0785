package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/cli"
	"github.com/theirongolddev/spendplan/internal/model"
	"github.com/theirongolddev/spendplan/internal/planner"
)

var obligationCmd = &cobra.Command{
	Use:     "obligation",
	Aliases: []string{"obligations", "ob"},
	Short:   "List and edit fixed obligations",
	Long: "Obligations are fixed commitments copied into the ledger ahead of the\n" +
		"days. Edits apply to the next `spendplan build`; rows already in the\n" +
		"ledger keep the amounts they were built with.",
	RunE: runObligationList,
}

var obligationAddCmd = &cobra.Command{
	Use:   "add [description] [amount]",
	Short: "Append an obligation",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runObligationAdd,
}

var obligationRmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "Remove obligation n (out-of-range numbers are ignored)",
	Args:  cobra.ExactArgs(1),
	RunE:  runObligationRm,
}

var obligationSetCmd = &cobra.Command{
	Use:   "set <n> <description|amount> <value>",
	Short: "Change one field of obligation n",
	Args:  cobra.ExactArgs(3),
	RunE:  runObligationSet,
}

func init() {
	obligationCmd.AddCommand(obligationAddCmd, obligationRmCmd, obligationSetCmd)
	rootCmd.AddCommand(obligationCmd)
}

func runObligationList(_ *cobra.Command, _ []string) error {
	return editObligations(nil)
}

func runObligationAdd(_ *cobra.Command, args []string) error {
	return editObligations(func(p *planner.Planner) error {
		p.AddObligation()
		i := len(p.State().Obligations) - 1
		if len(args) > 0 {
			p.UpdateObligation(i, model.FieldDescription, args[0])
		}
		if len(args) > 1 {
			p.UpdateObligation(i, model.FieldAmount, args[1])
		}
		return nil
	})
}

func runObligationRm(_ *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("obligation number %q: %w", args[0], err)
	}
	return editObligations(func(p *planner.Planner) error {
		p.RemoveObligation(n - 1)
		return nil
	})
}

func runObligationSet(_ *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("obligation number %q: %w", args[0], err)
	}
	field, err := parseField(args[1])
	if err != nil {
		return err
	}
	return editObligations(func(p *planner.Planner) error {
		p.UpdateObligation(n-1, field, args[2])
		return nil
	})
}

func parseField(s string) (model.ObligationField, error) {
	switch strings.ToLower(s) {
	case "description", "desc":
		return model.FieldDescription, nil
	case "amount":
		return model.FieldAmount, nil
	}
	return 0, fmt.Errorf("unknown obligation field %q (want description or amount)", s)
}

// editObligations applies edit, reprints the list and saves. A nil edit only
// prints.
func editObligations(edit func(*planner.Planner) error) error {
	p, st, err := openPlanner()
	if err != nil {
		return err
	}
	defer st.Close()

	if edit != nil {
		if err := edit(p); err != nil {
			return err
		}
	}

	printObligations(p.State().Obligations)

	if edit == nil {
		return nil
	}
	if err := p.Save(); err != nil {
		return err
	}
	if p.Built() {
		info("Saved. Run `spendplan build` to apply obligation changes to the ledger.")
	}
	return nil
}

func printObligations(obs model.Obligations) {
	fmt.Println()
	if len(obs) == 0 {
		fmt.Println("  No obligations.")
		return
	}

	sym := cfg.Budget.CurrencySymbol
	rows := make([][]string, 0, len(obs)+2)
	for i, o := range obs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.OrDash(o.Description),
			cli.FormatMoney(sym, o.Amount),
		})
	}
	rows = append(rows, []string{"---"}, []string{"", "Total", cli.FormatMoney(sym, obs.Total())})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Obligations",
		Headers:  []string{"#", "Description", "Amount"},
		Rows:     rows,
		LeftCols: 2,
	}))
}
