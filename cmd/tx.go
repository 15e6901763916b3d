package cmd

import (
	"fmt"
	"os"

	"cashplan/internal/cli"
	"cashplan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagTxDate     string
	flagTxLabel    string
	flagTxAmount   string
	flagTxType     string
	flagTxCategory string
	flagTxNotes    string
	flagTxRule     string
	flagTxBill     string
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Record and manage actual transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the period's transactions",
	RunE:  runTxList,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

func init() {
	txAddCmd.Flags().StringVar(&flagTxDate, "date", "", "Date (2006-01-02, default today)")
	txAddCmd.Flags().StringVarP(&flagTxLabel, "label", "l", "", "Description")
	txAddCmd.Flags().StringVarP(&flagTxAmount, "amount", "a", "", "Amount, non-negative")
	txAddCmd.Flags().StringVarP(&flagTxType, "type", "t", "outflow", "income, outflow, or transfer")
	txAddCmd.Flags().StringVarP(&flagTxCategory, "category", "c", "", "Category")
	txAddCmd.Flags().StringVar(&flagTxNotes, "notes", "", "Free-text notes")
	txAddCmd.Flags().StringVar(&flagTxRule, "rule", "", "Linked rule id")
	txAddCmd.Flags().StringVar(&flagTxBill, "bill", "", "Linked bill id")
	_ = txAddCmd.MarkFlagRequired("label")
	_ = txAddCmd.MarkFlagRequired("amount")

	txCmd.AddCommand(txAddCmd, txListCmd, txRmCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxAdd(_ *cobra.Command, _ []string) error {
	cfg, _ := cfgOrDefault()

	if flagTxRule != "" && flagTxBill != "" {
		return fmt.Errorf("a transaction links to a rule or a bill, not both")
	}

	amount, err := decimal.NewFromString(flagTxAmount)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", flagTxAmount, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must be non-negative; the type carries the sign")
	}

	kind := model.TxType(flagTxType)
	switch kind {
	case model.TxIncome, model.TxOutflow, model.TxTransfer:
	default:
		return fmt.Errorf("unknown type %q (want income, outflow, or transfer)", flagTxType)
	}

	date := model.Today()
	if flagTxDate != "" {
		date, err = model.ParseDate(flagTxDate)
		if err != nil {
			return err
		}
	}

	tx := model.Transaction{
		ID:           uuid.NewString(),
		Date:         date,
		Label:        flagTxLabel,
		Amount:       amount,
		Kind:         kind,
		Category:     flagTxCategory,
		Notes:        flagTxNotes,
		LinkedRuleID: flagTxRule,
		LinkedBillID: flagTxBill,
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.AddTransaction(tx); err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Recorded %s %s (%s)\n", tx.Kind, tx.Label, tx.ID)
	}
	return nil
}

func runTxList(_ *cobra.Command, _ []string) error {
	plan, cfg, err := loadPlan()
	if err != nil {
		return err
	}
	cur := cfg.General.Currency

	period := activePeriod(plan)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRANSACTIONS  %s", period.Label)))
	fmt.Println()

	rows := [][]string{}
	for _, tx := range plan.Transactions {
		if !period.Contains(tx.Date) {
			continue
		}
		amount := cli.FormatMoney(cur, tx.Amount)
		if tx.Kind != model.TxIncome {
			amount = cli.FormatMoney(cur, tx.Amount.Neg())
		}
		link := ""
		if tx.LinkedBillID != "" || tx.LinkedRuleID != "" {
			link = "linked"
		}
		rows = append(rows, []string{
			cli.FormatDate(tx.Date),
			tx.Label,
			tx.Category,
			string(tx.Kind),
			amount,
			link,
		})
	}

	if len(rows) == 0 {
		fmt.Println("  No transactions recorded for this period.")
		fmt.Println()
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Label", "Category", "Type", "Amount", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func runTxRm(_ *cobra.Command, args []string) error {
	cfg, _ := cfgOrDefault()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteTransaction(args[0]); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Deleted %s\n", args[0])
	}
	return nil
}
