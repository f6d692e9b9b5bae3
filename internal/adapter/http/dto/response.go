package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Balance:        a.Balance,
		OpeningBalance: a.OpeningBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse is the account overview.
type ListAccountsResponse struct {
	Accounts     []*AccountResponse `json:"accounts"`
	TotalBalance decimal.Decimal    `json:"total_balance"`
}

// ListAccountsFromUseCase converts an account list to response.
func ListAccountsFromUseCase(list *usecase.AccountList) *ListAccountsResponse {
	return &ListAccountsResponse{
		Accounts:     AccountsFromDomain(list.Accounts),
		TotalBalance: list.Total,
	}
}

// RecordResponse represents a record in API responses.
type RecordResponse struct {
	ID         string          `json:"id"`
	Mode       string          `json:"mode"`
	Kind       string          `json:"kind"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	AccountID  string          `json:"account_id"`
	Detail     string          `json:"detail,omitempty"`
	Date       domain.Date     `json:"date"`
	TransferID *string         `json:"transfer_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RecordFromDomain converts domain record to response.
func RecordFromDomain(r *domain.Record) *RecordResponse {
	return &RecordResponse{
		ID:         r.ID,
		Mode:       string(r.Mode),
		Kind:       string(r.Kind),
		Type:       string(r.Type()),
		Amount:     r.Amount,
		Category:   r.Category,
		AccountID:  r.AccountID,
		Detail:     r.Detail,
		Date:       r.Date,
		TransferID: r.TransferID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// RecordsFromDomain converts domain records to responses.
func RecordsFromDomain(records []*domain.Record) []*RecordResponse {
	result := make([]*RecordResponse, len(records))
	for i, r := range records {
		result[i] = RecordFromDomain(r)
	}
	return result
}

// DayResponse is one date of the record history.
type DayResponse struct {
	Date    domain.Date       `json:"date"`
	Records []*RecordResponse `json:"records"`
}

// ListRecordsResponse is the record history, flat and grouped by date.
type ListRecordsResponse struct {
	Records []*RecordResponse `json:"records"`
	Days    []*DayResponse    `json:"days"`
}

// ListRecordsFromDomain converts a record listing to response.
func ListRecordsFromDomain(records []*domain.Record) *ListRecordsResponse {
	groups := domain.GroupByDate(records)
	days := make([]*DayResponse, len(groups))
	for i, g := range groups {
		days[i] = &DayResponse{Date: g.Date, Records: RecordsFromDomain(g.Records)}
	}

	return &ListRecordsResponse{
		Records: RecordsFromDomain(records),
		Days:    days,
	}
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Note          string          `json:"note,omitempty"`
	Date          domain.Date     `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Fee:           t.Fee,
		Note:          t.Note,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// LimitResponse represents a spending limit and its state today.
type LimitResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	State     string          `json:"state"`
	StartDate *domain.Date    `json:"start_date,omitempty"`
	EndDate   *domain.Date    `json:"end_date,omitempty"`
	Ceiling   decimal.Decimal `json:"ceiling"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	DaysLeft  int             `json:"days_left"`
}

// LimitFromUseCase converts a limit status to response.
func LimitFromUseCase(s *usecase.LimitStatus) *LimitResponse {
	resp := &LimitResponse{
		ID:        s.Limit.ID,
		AccountID: s.Limit.AccountID,
		State:     string(s.State),
		StartDate: s.Limit.StartDate,
		Ceiling:   s.Limit.Ceiling,
		Spent:     s.Limit.Spent,
		Remaining: s.Remaining,
		DaysLeft:  s.DaysLeft,
	}
	if s.Limit.StartDate != nil {
		end := s.EndDate
		resp.EndDate = &end
	}
	return resp
}

// LimitsFromUseCase converts limit statuses to responses.
func LimitsFromUseCase(statuses []*usecase.LimitStatus) []*LimitResponse {
	result := make([]*LimitResponse, len(statuses))
	for i, s := range statuses {
		result[i] = LimitFromUseCase(s)
	}
	return result
}

// LedgerResponse describes everything a ledger write created or changed.
type LedgerResponse struct {
	Records  []*RecordResponse  `json:"records"`
	Transfer *TransferResponse  `json:"transfer,omitempty"`
	Accounts []*AccountResponse `json:"accounts"`
	Limit    *LimitResponse     `json:"limit,omitempty"`
}

// LedgerFromUseCase converts a ledger result to response. today is used to
// report the state of a touched limit.
func LedgerFromUseCase(res *usecase.LedgerResult, today domain.Date) *LedgerResponse {
	resp := &LedgerResponse{
		Records:  RecordsFromDomain(res.Records),
		Accounts: AccountsFromDomain(res.Accounts),
	}
	if res.Transfer != nil {
		resp.Transfer = TransferFromDomain(res.Transfer)
	}
	if res.Limit != nil {
		resp.Limit = LimitFromUseCase(&usecase.LimitStatus{
			Limit:     res.Limit,
			State:     res.Limit.State(today),
			EndDate:   res.Limit.EndDate(),
			Remaining: res.Limit.Remaining(),
			DaysLeft:  res.Limit.DaysLeft(today),
		})
	}
	return resp
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// CategoryFromDomain converts domain category to response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:   c.ID,
		Mode: string(c.Mode),
		Name: c.Name,
		Kind: string(c.Kind),
	}
}

// ReminderResponse represents a reminder with its countdown.
type ReminderResponse struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	DueDate   domain.Date `json:"due_date"`
	DaysLeft  int         `json:"days_left"`
	Countdown string      `json:"countdown"`
}

// ReminderFromUseCase converts a reminder status to response.
func ReminderFromUseCase(s *usecase.ReminderStatus) *ReminderResponse {
	return &ReminderResponse{
		ID:        s.Reminder.ID,
		Text:      s.Reminder.Text,
		DueDate:   s.Reminder.DueDate,
		DaysLeft:  s.DaysLeft,
		Countdown: s.Countdown,
	}
}

// RemindersFromUseCase converts reminder statuses to responses.
func RemindersFromUseCase(statuses []*usecase.ReminderStatus) []*ReminderResponse {
	result := make([]*ReminderResponse, len(statuses))
	for i, s := range statuses {
		result[i] = ReminderFromUseCase(s)
	}
	return result
}

// CategoryTotalResponse is the summed amount of one category.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthTotalResponse is the expense and income of one month.
type MonthTotalResponse struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"`
	Expense decimal.Decimal `json:"expense"`
	Income  decimal.Decimal `json:"income"`
}

// ReportResponse is the aggregate view of one mode.
type ReportResponse struct {
	Mode              string                   `json:"mode"`
	ExpenseByCategory []*CategoryTotalResponse `json:"expense_by_category"`
	IncomeByCategory  []*CategoryTotalResponse `json:"income_by_category"`
	Monthly           []*MonthTotalResponse    `json:"monthly"`
	TotalExpense      decimal.Decimal          `json:"total_expense"`
	TotalIncome       decimal.Decimal          `json:"total_income"`
}

// ReportFromDomain converts a domain report to response.
func ReportFromDomain(r *domain.Report) *ReportResponse {
	monthly := make([]*MonthTotalResponse, len(r.Monthly))
	for i, m := range r.Monthly {
		monthly[i] = &MonthTotalResponse{
			Month:   time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Label:   m.Label,
			Expense: m.Expense,
			Income:  m.Income,
		}
	}

	return &ReportResponse{
		Mode:              string(r.Mode),
		ExpenseByCategory: categoryTotals(r.ExpenseByCategory),
		IncomeByCategory:  categoryTotals(r.IncomeByCategory),
		Monthly:           monthly,
		TotalExpense:      r.TotalExpense,
		TotalIncome:       r.TotalIncome,
	}
}

func categoryTotals(totals []domain.CategoryTotal) []*CategoryTotalResponse {
	result := make([]*CategoryTotalResponse, len(totals))
	for i, t := range totals {
		result[i] = &CategoryTotalResponse{Category: t.Category, Total: t.Total}
	}
	return result
}

// ReconciliationResultResponse is the check of one account.
type ReconciliationResultResponse struct {
	AccountID         string          `json:"account_id"`
	AccountName       string          `json:"account_name"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
}

// ReconciliationResponse is the full reconciliation report.
type ReconciliationResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Results            []*ReconciliationResultResponse `json:"results"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation report to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationReport) *ReconciliationResponse {
	return &ReconciliationResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Results:            reconciliationResults(r.Results),
		Discrepancies:      reconciliationResults(r.Discrepancies),
		CheckedAt:          r.CheckedAt,
	}
}

// ReconciliationResultFromUseCase converts the check of one account.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		AccountID:         r.AccountID,
		AccountName:       r.AccountName,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
	}
}

func reconciliationResults(results []*usecase.ReconciliationResult) []*ReconciliationResultResponse {
	out := make([]*ReconciliationResultResponse, len(results))
	for i, r := range results {
		out[i] = ReconciliationResultFromUseCase(r)
	}
	return out
}

// SetupResponse reports what the first-run setup created.
type SetupResponse struct {
	CategoriesCreated int              `json:"categories_created"`
	Account           *AccountResponse `json:"account,omitempty"`
}

// SetupFromUseCase converts a bootstrap result to response.
func SetupFromUseCase(r *usecase.BootstrapResult) *SetupResponse {
	resp := &SetupResponse{CategoriesCreated: r.CategoriesCreated}
	if r.Account != nil {
		resp.Account = AccountFromDomain(r.Account)
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
