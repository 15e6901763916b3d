package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/spf13/cobra"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List all periods with projected balances",
	RunE:  runPeriods,
}

func init() {
	rootCmd.AddCommand(periodsCmd)
}

func runPeriods(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle("PERIODS"))
	fmt.Println()

	// One forward pass carries each ending balance into the next
	// period, mirroring the engine's rollover.
	rows := [][]string{}
	balance := plan.Setup.StartingBalance
	for _, p := range engine.Sorted(plan) {
		timeline := engine.BuildTimeline(plan, p.ID, balance)
		ending := engine.EndingBalance(timeline, balance)

		marker := ""
		if p.ID == plan.Setup.SelectedPeriod {
			marker = "current"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			p.Label,
			cli.FormatDateRange(p.Start, p.End),
			cli.FormatMoney(cur, balance),
			cli.FormatMoney(cur, ending),
			marker,
		})
		balance = ending
	}

	if len(rows) == 0 {
		fmt.Println("  No periods defined.")
		fmt.Println()
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Period", "Dates", "Opens", "Projected Close", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
