package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"
	"cashplan/internal/model"

	"github.com/spf13/cobra"
)

var flagEventKind string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Upcoming budgeted events for the period",
	RunE:  runEvents,
}

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Bill templates and their next due dates",
	RunE:  runBills,
}

func init() {
	eventsCmd.Flags().StringVarP(&flagEventKind, "type", "t", "", "Filter by event type: income or outflow")
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(billsCmd)
}

func runEvents(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	period := activePeriod(plan)
	events := engine.UpcomingEvents(plan, period.ID, model.EventKind(flagEventKind))

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("UPCOMING  %s", period.Label)))
	fmt.Println()

	if len(events) == 0 {
		fmt.Println("  Nothing left on the budget for this period.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		amount := cli.FormatMoney(cur, ev.Amount)
		if ev.Kind == model.EventOutflow {
			amount = cli.FormatMoney(cur, ev.Amount.Neg())
		}
		rows = append(rows, []string{
			cli.FormatDate(ev.Date),
			ev.Label,
			ev.Category,
			amount,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Item", "Category", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func runBills(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	asOf := plan.Setup.AsOf
	if asOf.IsZero() {
		asOf = model.Today()
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BILLS"))
	fmt.Println()

	if len(plan.Bills) == 0 {
		fmt.Println("  No bill templates defined.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(plan.Bills))
	for _, bill := range plan.Bills {
		state := ""
		if !bill.Enabled {
			state = "disabled"
		}
		rows = append(rows, []string{
			bill.Label,
			bill.Category,
			cli.FormatMoney(cur, bill.Amount),
			fmt.Sprintf("day %d", bill.DueDay),
			cli.FormatDate(engine.NextDueDate(bill, asOf)),
			state,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bill", "Category", "Amount", "Due", "Next Due", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
