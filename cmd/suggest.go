package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Next-period override suggestions from last period's actuals",
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	period := activePeriod(plan)
	advice, ok := engine.Suggestions(plan, period.ID)
	if !ok {
		fmt.Println()
		fmt.Printf("  %s is the first period — there is no history to suggest from yet.\n", period.Label)
		fmt.Println()
		return nil
	}

	prev := engine.Resolve(plan, advice.PeriodID)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SUGGESTIONS  based on %s", prev.Label)))
	fmt.Println()

	rows := make([][]string, 0, len(advice.Items))
	for _, item := range advice.Items {
		note := ""
		if item.ReadOnly {
			note = "bill, read-only"
		}
		rows = append(rows, []string{
			item.Label,
			string(item.Kind),
			cli.FormatMoney(cur, item.Budget),
			cli.FormatMoney(cur, item.Actual),
			cli.FormatSignedMoney(cur, item.Actual.Sub(item.Budget)),
			note,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Kind", "Budgeted", "Actual", "Drift", ""},
		Rows:    rows,
	}))

	if !advice.Unbudgeted.IsZero() {
		fmt.Printf("\n  Unbudgeted (unlinked) spend last period: %s\n", cli.FormatMoney(cur, advice.Unbudgeted))
	}
	fmt.Printf("\n  Use an actual as a per-period override for %s where it looks right.\n\n", period.Label)

	return nil
}
