package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"
	"cashplan/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Period overview: plan, projection, and risk",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	period := activePeriod(plan)
	events := engine.GenerateEvents(plan, period.ID)

	var plannedIncome, plannedOutflow decimal.Decimal
	for _, ev := range events {
		if ev.Kind == model.EventIncome {
			plannedIncome = plannedIncome.Add(ev.Amount)
		} else {
			plannedOutflow = plannedOutflow.Add(ev.Amount)
		}
	}

	starting := engine.StartingBalance(plan, period.ID)
	timeline := engine.BuildTimeline(plan, period.ID, starting)
	ending := engine.EndingBalance(timeline, starting)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASHPLAN  %s", period.Label)))
	fmt.Println()

	rows := [][]string{
		{"Period", cli.FormatDateRange(period.Start, period.End)},
		{"Days", fmt.Sprintf("%d", period.Days())},
		{"---"},
		{"Starting Balance", cli.FormatMoney(cur, starting)},
		{"Planned Income", cli.FormatMoney(cur, plannedIncome)},
		{"Planned Outflow", cli.FormatMoney(cur, plannedOutflow)},
		{"Projected End", cli.FormatMoney(cur, ending)},
	}

	if report, ok := engine.Risk(plan, timeline); ok {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Lowest Point", fmt.Sprintf("%s on %s",
			cli.FormatMoney(cur, report.MinPoint.Balance), cli.FormatDate(report.MinPoint.Date))})
		rows = append(rows, []string{"Days Below Min", fmt.Sprintf("%d", report.RiskDays)})
	}

	pace := engine.Scenarios(plan, period.ID).Pace
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Period Progress", cli.FormatPercent(pace.TimeProgress)})
	rows = append(rows, []string{"Actual Income", cli.FormatMoney(cur, pace.ActualIncome)})
	rows = append(rows, []string{"Actual Spending", cli.FormatMoney(cur, pace.ActualSpending)})
	rows = append(rows, []string{"Actual Savings", cli.FormatMoney(cur, pace.ActualSavings)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
