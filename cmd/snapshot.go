package cmd

import (
	"fmt"
	"os"

	"cashplan/internal/store"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Replace the stored plan with a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <snapshot.json>",
	Short: "Write the stored plan to a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, _ := cfgOrDefault()

	plan, err := store.ReadSnapshot(args[0])
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SavePlan(plan); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Imported %d periods, %d rules, %d bills, %d transactions\n",
			len(plan.Periods),
			len(plan.IncomeRules)+len(plan.OutflowRules),
			len(plan.Bills),
			len(plan.Transactions),
		)
	}
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	cfg, _ := cfgOrDefault()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	plan, err := st.LoadPlan()
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	if err := store.WriteSnapshot(args[0], plan); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", args[0])
	}
	return nil
}
