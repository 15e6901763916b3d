package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagTimelineAll bool

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Day-by-day projected balance for the period",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().BoolVarP(&flagTimelineAll, "all", "a", false, "Show every day, not just days with movement")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	period := activePeriod(plan)
	starting := engine.StartingBalance(plan, period.ID)
	timeline := engine.BuildTimeline(plan, period.ID, starting)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TIMELINE  %s", period.Label)))
	fmt.Println()

	balances := make([]decimal.Decimal, len(timeline))
	belowMin := make([]bool, len(timeline))
	for i, row := range timeline {
		balances[i] = row.Balance
		belowMin[i] = row.BelowMin
	}
	fmt.Printf("  %s\n\n", cli.RenderBalanceSparkline(balances, belowMin))

	rows := [][]string{}
	prev := starting
	for _, row := range timeline {
		delta := row.Balance.Sub(prev)
		prev = row.Balance

		if !flagTimelineAll && delta.IsZero() {
			continue
		}

		flag := ""
		if row.BelowMin {
			flag = "below min"
		}
		rows = append(rows, []string{
			cli.FormatDate(row.Date),
			cli.FormatSignedMoney(cur, delta),
			cli.FormatMoney(cur, row.Balance),
			flag,
		})
	}

	if len(rows) == 0 {
		fmt.Println("  No balance movement this period.")
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Change", "Balance", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
