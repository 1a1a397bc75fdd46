package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/db"
	"github.com/balkashynov/lifeos/internal/models"
	"github.com/balkashynov/lifeos/internal/parser"
	"github.com/balkashynov/lifeos/internal/tui"
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"finance"},
	Short:   "Track income and expenses",
}

var txAddCmd = &cobra.Command{
	Use:   "add <amount> [description] [#category]",
	Short: "Record a transaction (+2 XP)",
	Long: `Record an expense, or income when the amount starts with +.
The first #word is the category.

Examples:
  lifeos tx add 25000 lunch #food
  lifeos tx add +2,500,000 salary #work
  lifeos tx add 12k groceries`,
	Args: cobra.MinimumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		parsed, err := parser.ParseTransaction(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if income, _ := cmd.Flags().GetBool("income"); income {
			parsed.Type = parser.Income
		}

		res, err := s.AddTransaction(cmd.Context(), db.CreateTransactionRequest{
			Type:     parsed.Type,
			Amount:   parsed.Amount,
			Category: parsed.Category,
			Note:     parsed.Note,
		})
		if res.Transaction == nil {
			return err
		}

		t := res.Transaction
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "💸 Recorded %s #%d: %s %s (%s)\n", t.Type, t.ID, signedAmount(t), t.Note, t.Category)
		if err != nil {
			return err
		}
		printXP(out, app.XPTransaction, res.XP)
		return nil
	}),
}

var txListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Show recent transactions and the balance",
	Args:    cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		txs, err := s.Store.ListTransactions(cmd.Context(), s.ProfileID, limit)
		if err != nil {
			return err
		}
		sum, err := s.Store.Balance(cmd.Context(), s.ProfileID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Transactions []models.Transaction `json:"transactions"`
				Summary      db.Summary           `json:"summary"`
			}{txs, sum})
		}

		income := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess))
		expense := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorError))
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))

		if len(txs) == 0 {
			fmt.Fprintln(out, "No transactions yet. Use 'lifeos tx add 25000 lunch #food' to record one.")
		}
		for _, t := range txs {
			style := expense
			if t.Type == models.TxIncome {
				style = income
			}
			fmt.Fprintf(out, "%-4d %s %s %-30s %s\n",
				t.ID,
				muted.Render(t.CreatedAt.Format("Jan 02")),
				style.Render(fmt.Sprintf("%14s", signedAmount(&t))),
				t.Note,
				muted.Render(t.Category))
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Income:  %s\n", income.Render(parser.FormatAmount(sum.Income)))
		fmt.Fprintf(out, "Expense: %s\n", expense.Render(parser.FormatAmount(sum.Expense)))
		fmt.Fprintf(out, "Balance: %s\n", parser.FormatAmount(sum.Balance))
		return nil
	}),
}

func signedAmount(t *models.Transaction) string {
	if t.Type == models.TxIncome {
		return "+" + parser.FormatAmount(t.Amount)
	}
	return parser.FormatAmount(t.Signed())
}

func init() {
	txAddCmd.Flags().Bool("income", false, "Record as income without the + prefix")
	txListCmd.Flags().IntP("limit", "n", 20, "Number of transactions to show")
	txListCmd.Flags().Bool("json", false, "JSON output")

	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
}
