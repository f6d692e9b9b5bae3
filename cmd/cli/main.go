package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/goexpense/internal/adapter/http/dto"
)

var (
	baseURL string
	timeout time.Duration
	token   string
	userID  string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "goexpense-cli",
		Short:         "GoExpense CLI tool",
		Long:          `A command line interface for recording expenses and reading reports from the GoExpense API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoExpense API")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("GOEXPENSE_TOKEN"), "Bearer token (defaults to $GOEXPENSE_TOKEN)")
	root.PersistentFlags().StringVar(&userID, "user", "", "Ledger owner when the server runs without authentication")

	root.AddCommand(
		setupCmd(),
		accountsCmd(),
		expenseCmd("expense"),
		expenseCmd("income"),
		transferCmd(),
		recordsCmd(),
		reportCmd(),
		limitsCmd(),
		remindersCmd(),
		reconcileCmd(),
		tokenCmd(),
		migrateCmd(),
	)

	return root
}

func client() *apiClient {
	return newAPIClient(baseURL, token, userID, timeout)
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Seed default categories and a default account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.SetupResponse
			if err := client().do(http.MethodPost, "/setup", nil, nil, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts and the total balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListAccountsResponse
			if err := client().do(http.MethodGet, "/accounts", nil, nil, &resp); err != nil {
				return err
			}
			printAccounts(&resp)
			return nil
		},
	}

	var opening string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			req := dto.CreateAccountRequest{Name: args[0], OpeningBalance: dto.Amount(opening)}
			if err := client().do(http.MethodPost, "/accounts", nil, req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
	create.Flags().StringVar(&opening, "opening", "", "Opening balance")

	rename := &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			req := dto.RenameAccountRequest{Name: args[1]}
			if err := client().do(http.MethodPatch, "/accounts/"+url.PathEscape(args[0]), nil, req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an account without records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client().do(http.MethodDelete, "/accounts/"+url.PathEscape(args[0]), nil, nil, nil); err != nil {
				return err
			}
			fmt.Printf("Account %s deleted\n", args[0])
			return nil
		},
	}

	var mode string
	adjust := &cobra.Command{
		Use:   "adjust ID BALANCE",
		Short: "Set an account to a target balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.LedgerResponse
			req := dto.AdjustBalanceRequest{Balance: dto.Amount(args[1]), Mode: mode}
			if err := client().do(http.MethodPost, "/accounts/"+url.PathEscape(args[0])+"/adjust", nil, req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
	adjust.Flags().StringVar(&mode, "mode", "personal", "Mode of the adjustment record")

	cmd.AddCommand(list, create, rename, del, adjust)
	return cmd
}

func expenseCmd(kind string) *cobra.Command {
	var mode, detail string
	cmd := &cobra.Command{
		Use:   kind + " ACCOUNT_ID AMOUNT CATEGORY",
		Short: "Record an " + kind,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.TransactionRequest{
				Mode:      mode,
				Kind:      kind,
				AccountID: args[0],
				Amount:    dto.Amount(args[1]),
				Category:  args[2],
				Detail:    detail,
			}
			var resp dto.LedgerResponse
			if err := client().do(http.MethodPost, "/transactions", nil, req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "personal", "personal or business")
	cmd.Flags().StringVar(&detail, "detail", "", "Free-text detail")
	return cmd
}

func transferCmd() *cobra.Command {
	var mode, fee, note string
	cmd := &cobra.Command{
		Use:   "transfer FROM_ID TO_ID AMOUNT",
		Short: "Move money between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.TransactionRequest{
				Mode:          mode,
				Kind:          "transfer",
				FromAccountID: args[0],
				ToAccountID:   args[1],
				Amount:        dto.Amount(args[2]),
				Fee:           dto.Amount(fee),
				Note:          note,
			}
			var resp dto.LedgerResponse
			if err := client().do(http.MethodPost, "/transactions", nil, req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "personal", "personal or business")
	cmd.Flags().StringVar(&fee, "fee", "", "Fee charged to the source account")
	cmd.Flags().StringVar(&note, "note", "", "Transfer note")
	return cmd
}

func recordsCmd() *cobra.Command {
	var mode, rng, category, account string
	var limit int
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List the record history",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			setIf(q, "mode", mode)
			setIf(q, "range", rng)
			setIf(q, "category", category)
			setIf(q, "account_id", account)
			if limit > 0 {
				q.Set("limit", fmt.Sprint(limit))
			}

			var resp dto.ListRecordsResponse
			if err := client().do(http.MethodGet, "/records", q, nil, &resp); err != nil {
				return err
			}
			printRecords(&resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "personal or business")
	cmd.Flags().StringVar(&rng, "range", "", "today, 7d, 30d or all")
	cmd.Flags().StringVar(&category, "category", "", "Category filter")
	cmd.Flags().StringVar(&account, "account", "", "Account filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records")
	return cmd
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report MODE",
		Short: "Show category and monthly totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ReportResponse
			if err := client().do(http.MethodGet, "/reports/"+url.PathEscape(args[0]), nil, nil, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
}

func limitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Spending limit operations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp []dto.LimitResponse
			if err := client().do(http.MethodGet, "/limits", nil, nil, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}

	var start string
	create := &cobra.Command{
		Use:   "create ACCOUNT_ID CEILING",
		Short: "Create a 14-day limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.LimitResponse
			req := dto.CreateLimitRequest{AccountID: args[0], Ceiling: dto.Amount(args[1]), StartDate: start}
			if err := client().do(http.MethodPost, "/limits", nil, req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
	create.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD); empty leaves the limit pending")

	activate := &cobra.Command{
		Use:   "activate ID",
		Short: "Start a new window today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.LimitResponse
			if err := client().do(http.MethodPost, "/limits/"+url.PathEscape(args[0])+"/activate", nil, nil, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}

	cmd.AddCommand(list, create, activate)
	return cmd
}

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Reminder operations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp []dto.ReminderResponse
			if err := client().do(http.MethodGet, "/reminders", nil, nil, &resp); err != nil {
				return err
			}
			for _, r := range resp {
				fmt.Printf("%s  %-12s %s\n", r.DueDate, r.Countdown, r.Text)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add TEXT DUE_DATE",
		Short: "Add a reminder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ReminderResponse
			req := dto.CreateReminderRequest{Text: args[0], DueDate: args[1]}
			if err := client().do(http.MethodPost, "/reminders", nil, req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}

	cmd.AddCommand(list, add)
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Compare account balances with their records",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ReconciliationResponse
			if err := client().do(http.MethodGet, "/reconciliation", nil, nil, &resp); err != nil {
				return err
			}

			if len(resp.Discrepancies) > 0 {
				fmt.Printf("Reconciliation FAILED: %d of %d accounts drifted\n", len(resp.Discrepancies), resp.TotalAccounts)
				for _, d := range resp.Discrepancies {
					fmt.Printf("  %s (%s): recorded %s, calculated %s\n",
						truncate(d.AccountName, 20), d.AccountID, d.RecordedBalance, d.CalculatedBalance)
				}
				return fmt.Errorf("ledger out of balance")
			}

			fmt.Printf("Reconciliation PASSED: %d accounts\n", resp.TotalAccounts)
			return nil
		},
	}
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func printAccounts(resp *dto.ListAccountsResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBALANCE")
	for _, a := range resp.Accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, truncate(a.Name, 24), a.Balance)
	}
	fmt.Fprintf(w, "\tTOTAL\t%s\n", resp.TotalBalance)
	w.Flush()
}

func printRecords(resp *dto.ListRecordsResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, day := range resp.Days {
		fmt.Fprintf(w, "%s\n", day.Date)
		for _, r := range day.Records {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.Type, truncate(r.Category, 16), r.Amount, truncate(r.Detail, 32))
		}
	}
	w.Flush()
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
