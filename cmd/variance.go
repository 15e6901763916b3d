package cmd

import (
	"fmt"
	"sort"

	"cashplan/internal/cli"
	"cashplan/internal/engine"
	"cashplan/internal/match"
	"cashplan/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagVarianceBills bool
	flagVarianceRules bool
)

var varianceCmd = &cobra.Command{
	Use:   "variance",
	Short: "Budget vs actual, by category and per bill",
	RunE:  runVariance,
}

func init() {
	varianceCmd.Flags().BoolVarP(&flagVarianceBills, "bills", "b", false, "Include the per-bill breakdown")
	varianceCmd.Flags().BoolVarP(&flagVarianceRules, "rules", "r", false, "Include the per-outflow-rule breakdown")
	rootCmd.AddCommand(varianceCmd)
}

func runVariance(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency
	tol := cfg.Variance.Tolerance

	period := activePeriod(plan)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("VARIANCE  %s", period.Label)))
	fmt.Println()

	byCategory := engine.VarianceByCategory(plan, period.ID, tol)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Budget", "Actual", "Variance", "Status"},
		Rows:    varianceRows(cur, byCategory),
	}))
	fmt.Println()

	if flagVarianceBills {
		matcher := match.New(cfg.Variance.MatchConfidence)
		byBill := engine.VarianceByBill(plan, period.ID, tol, matcher)
		if len(byBill) > 0 {
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "By Bill",
				Headers: []string{"Bill", "Budget", "Actual", "Variance", "Status"},
				Rows:    varianceRows(cur, byBill),
			}))
			fmt.Println()
		}
	}

	if flagVarianceRules {
		byRule := engine.VarianceByOutflowRule(plan, period.ID, tol)
		if len(byRule) > 0 {
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "By Outflow Rule",
				Headers: []string{"Rule", "Budget", "Actual", "Variance", "Status"},
				Rows:    varianceRows(cur, byRule),
			}))
			fmt.Println()
		}
	}

	savings := engine.SavingsReconciliation(plan, period.ID, tol)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Savings Transfers",
		Headers: []string{"", "Budget", "Actual", "Variance", "Status"},
		Rows: [][]string{{
			"savings",
			cli.FormatMoney(cur, savings.Budgeted),
			cli.FormatMoney(cur, savings.Actual),
			cli.FormatSignedMoney(cur, savings.Variance),
			cli.StatusLabel(savings.Status),
		}},
	}))
	fmt.Println()

	return nil
}

// varianceRows flattens a variance map into sorted table rows, largest
// budget first.
func varianceRows(cur string, byKey map[string]model.Variance) [][]string {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := byKey[keys[i]], byKey[keys[j]]
		if !a.Budgeted.Equal(b.Budgeted) {
			return a.Budgeted.GreaterThan(b.Budgeted)
		}
		return keys[i] < keys[j]
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v := byKey[k]
		name := v.Label
		if name == "" {
			name = k
		}
		rows = append(rows, []string{
			name,
			cli.FormatMoney(cur, v.Budgeted),
			cli.FormatMoney(cur, v.Actual),
			cli.FormatSignedMoney(cur, v.Variance),
			cli.StatusLabel(v.Status),
		})
	}
	return rows
}
