package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/config"
	"github.com/theirongolddev/spendplan/internal/logging"
	"github.com/theirongolddev/spendplan/internal/planner"
	"github.com/theirongolddev/spendplan/internal/store"
)

var (
	flagDBPath  string
	flagPlan    string
	flagQuiet   bool
	flagVerbose bool
)

// Populated by PersistentPreRunE for every command.
var (
	cfg       config.Config
	log       *logrus.Logger
	logCloser io.Closer
)

// timeNow is swapped out by tests.
var timeNow = time.Now

var rootCmd = &cobra.Command{
	Use:   "spendplan",
	Short: "Day-by-day expense planner",
	Long: "Plan a budget over a date range: weekday and weekend allowances, fixed\n" +
		"obligations, and a running remaining balance as you record actual spend.",
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runShow,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Snapshot database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagPlan, "plan", "p", "", "Plan name to load and save (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
}

// setup resolves config, environment, flags and the logger, in that order of
// precedence from lowest to highest.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagPlan != "" {
		cfg.Storage.Plan = flagPlan
	}
	if cfg.Storage.Plan == "" {
		cfg.Storage.Plan = store.DefaultPlan
	}

	log, logCloser, err = logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.LogPath(),
		Verbose: flagVerbose,
	})
	if err != nil {
		// Logging is never fatal.
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
		log, logCloser = logging.Discard(), nil
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		_ = logCloser.Close()
	}
	return nil
}

// openPlanner opens the snapshot store and restores the selected plan. The
// caller closes the returned store.
func openPlanner() (*planner.Planner, *store.Store, error) {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, err
	}

	p := planner.New(st, cfg.Storage.Plan, cfg.SeedObligations(), log)
	if _, err := p.Restore(); err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return p, st, nil
}

// info prints a status line unless --quiet is set.
func info(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
