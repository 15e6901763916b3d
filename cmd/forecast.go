package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Pace-based end-of-period scenarios",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	period := activePeriod(plan)
	report := engine.Scenarios(plan, period.ID)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  %s", period.Label)))
	fmt.Println()

	pace := report.Pace
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Pace at %s through the period", cli.FormatPercent(pace.TimeProgress)),
		Headers: []string{"", "Actual", "Projected"},
		Rows: [][]string{
			{"Income", cli.FormatMoney(cur, pace.ActualIncome), cli.FormatMoney(cur, pace.ProjectedIncome)},
			{"Spending", cli.FormatMoney(cur, pace.ActualSpending), cli.FormatMoney(cur, pace.ProjectedSpending)},
			{"Savings", cli.FormatMoney(cur, pace.ActualSavings), cli.FormatMoney(cur, pace.ProjectedSavings)},
		},
	}))
	fmt.Println()

	rows := make([][]string, 0, len(report.Scenarios))
	for _, s := range report.Scenarios {
		rows = append(rows, []string{
			s.Name,
			cli.FormatMoney(cur, s.Income),
			cli.FormatMoney(cur, s.Spending),
			cli.FormatMoney(cur, s.Leftover),
			cli.FormatMoney(cur, s.EndBalance),
			cli.FormatSignedMoney(cur, s.BufferDelta),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Scenarios (starting from %s)", cli.FormatMoney(cur, report.StartingBalance)),
		Headers: []string{"Scenario", "Income", "Spending", "Leftover", "End Balance", "Buffer"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
