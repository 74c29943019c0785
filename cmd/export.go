package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/planner"
	"github.com/theirongolddev/spendplan/internal/store"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the plan's snapshot JSON to a file or stdout",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the plan with a snapshot JSON file",
	Long: "Replace the selected plan with a snapshot previously written by\n" +
		"`spendplan export`. The snapshot is taken verbatim; running balances\n" +
		"are not recomputed.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "Output file, - for stdout")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	p, st, err := openPlanner()
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := store.Encode(p.State())
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	data = append(data, '\n')

	if flagOutput == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagOutput, data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	info("Exported plan %q to %s", p.Plan(), flagOutput)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := importSnapshot(db, cfg.Storage.Plan, data)
	if err != nil {
		return err
	}
	info("Imported %d entries into plan %q", len(p.State().Entries), p.Plan())
	return nil
}

// importSnapshot decodes data and saves it under plan. The stored plan is
// never restored first, so a corrupt snapshot can be overwritten.
func importSnapshot(gw planner.Gateway, plan string, data []byte) (*planner.Planner, error) {
	state, err := store.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding import: %w", err)
	}

	p := planner.New(gw, plan, nil, log)
	p.Replace(state)
	if err := p.Save(); err != nil {
		return nil, err
	}
	return p, nil
}
