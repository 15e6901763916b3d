// Package cmd wires the cashplan commands. Each command loads the plan
// snapshot, runs the pure engine over it, and renders the result; no
// command mutates the plan except tx and import.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"cashplan/internal/cli"
	"cashplan/internal/config"
	"cashplan/internal/engine"
	"cashplan/internal/model"
	"cashplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPlanFile string
	flagDBPath   string
	flagPeriod   int
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "cashplan",
	Short: "Personal cashflow planner",
	Long:  "Plan recurring income, outflows, and bills; project balances and spot risk before it lands.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPlanFile, "plan", "f", "", "Load plan from a JSON snapshot instead of the database")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Plan database path (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagPeriod, "period", "p", 0, "Period id (default: the plan's selected period)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadPlan is the shared data loading path used by all commands:
// a --plan snapshot wins, otherwise the SQLite store.
func loadPlan() (*model.Plan, config.Config, error) {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintln(os.Stderr, cli.Warn("  Config unreadable, using defaults: %v", err))
	}

	if flagPlanFile != "" {
		plan, err := store.ReadSnapshot(flagPlanFile)
		if err != nil {
			return nil, cfg, err
		}
		return plan, cfg, nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, cfg, err
	}
	defer func() { _ = st.Close() }()

	plan, err := st.LoadPlan()
	if err != nil {
		return nil, cfg, fmt.Errorf("loading plan: %w", err)
	}
	if len(plan.Periods) == 0 {
		return nil, cfg, errors.New("no plan found — run `cashplan import <snapshot.json>` or `cashplan setup` first")
	}
	return plan, cfg, nil
}

// cfgOrDefault loads config for commands that don't need the plan.
func cfgOrDefault() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintln(os.Stderr, cli.Warn("  Config unreadable, using defaults: %v", err))
	}
	return cfg, err
}

func openStore(cfg config.Config) (*store.Store, error) {
	path := flagDBPath
	if path == "" {
		path = config.DBPath(cfg)
	}
	return store.Open(path)
}

// activePeriod resolves the --period flag against the plan.
func activePeriod(plan *model.Plan) model.Period {
	id := flagPeriod
	if id == 0 {
		id = plan.Setup.SelectedPeriod
	}
	return engine.Resolve(plan, id)
}
