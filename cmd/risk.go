package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Lowest point and days below the minimum balance",
	RunE:  runRisk,
}

func init() {
	rootCmd.AddCommand(riskCmd)
}

func runRisk(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	period := activePeriod(plan)
	starting := engine.StartingBalance(plan, period.ID)
	timeline := engine.BuildTimeline(plan, period.ID, starting)

	report, ok := engine.Risk(plan, timeline)
	if !ok {
		fmt.Println()
		fmt.Println("  No expected minimum balance is set, so risk analysis is skipped.")
		fmt.Println("  Set one with `cashplan setup`.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RISK  %s", period.Label)))
	fmt.Println()

	rows := [][]string{
		{"Minimum Balance", cli.FormatMoney(cur, *plan.Setup.MinBalance)},
		{"Lowest Point", cli.FormatMoney(cur, report.MinPoint.Balance)},
		{"Lowest Day", cli.FormatDate(report.MinPoint.Date)},
		{"Days Below Min", fmt.Sprintf("%d of %d", report.RiskDays, len(timeline))},
	}
	if report.FirstRiskDay != nil {
		rows = append(rows, []string{"First Risk Day", cli.FormatDate(*report.FirstRiskDay)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if report.RiskDays > 0 {
		ratio := float64(report.RiskDays) / float64(len(timeline))
		fmt.Printf("\n  %s\n", cli.RenderRatioBar(ratio, 30))
	}
	fmt.Println()

	return nil
}
