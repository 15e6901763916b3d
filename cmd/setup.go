package cmd

import (
	"fmt"
	"os"

	"cashplan/internal/config"
	"cashplan/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup for balances and preferences",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := cfgOrDefault()
	if !config.Exists() && !flagQuiet {
		fmt.Fprintln(os.Stderr, "  No config found yet, starting from defaults.")
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	plan, err := st.LoadPlan()
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	startStr := plan.Setup.StartingBalance.String()
	minStr := ""
	if plan.Setup.MinBalance != nil {
		minStr = plan.Setup.MinBalance.String()
	}
	capStr := plan.Setup.SpendingCap.String()
	currency := cfg.General.Currency

	validAmount := func(s string) error {
		if s == "" {
			return nil
		}
		if _, err := decimal.NewFromString(s); err != nil {
			return fmt.Errorf("not a number: %s", s)
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Starting balance").
				Description("What the first period opens with.").
				Validate(validAmount).
				Value(&startStr),
			huh.NewInput().
				Title("Expected minimum balance").
				Description("Days projected below this flag as risk. Leave blank to skip risk analysis.").
				Validate(validAmount).
				Value(&minStr),
			huh.NewInput().
				Title("Variable spending cap").
				Validate(validAmount).
				Value(&capStr),
			huh.NewSelect[string]().
				Title("Currency").
				Options(huh.NewOptions("£", "$", "€")...).
				Value(&currency),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	plan.Setup.StartingBalance = parseOrZero(startStr)
	plan.Setup.SpendingCap = parseOrZero(capStr)
	if minStr == "" {
		plan.Setup.MinBalance = nil
	} else {
		m := parseOrZero(minStr)
		plan.Setup.MinBalance = &m
	}
	if plan.Setup.AsOf.IsZero() {
		plan.Setup.AsOf = model.Today()
	}

	if err := st.SavePlan(plan); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	cfg.General.Currency = currency
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("  All set. Try `cashplan import` to load a plan, or `cashplan summary`.")
	return nil
}

func parseOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
