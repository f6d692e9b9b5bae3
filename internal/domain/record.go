package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Mode selects one of the two parallel namespaces for categories and records.
type Mode string

const (
	ModePersonal Mode = "personal"
	ModeBusiness Mode = "business"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePersonal, ModeBusiness:
		return Mode(s), nil
	case "":
		return "", MissingField("mode")
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrValidation, s)
	}
}

// Direction is the effect of a record on its account.
type Direction string

const (
	DirectionExpense Direction = "expense"
	DirectionIncome  Direction = "income"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionExpense, DirectionIncome:
		return Direction(s), nil
	case "":
		return "", MissingField("kind")
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrValidation, s)
	}
}

// RecordKind tags the record variant.
type RecordKind string

const (
	RecordKindExpense         RecordKind = "expense"
	RecordKindIncome          RecordKind = "income"
	RecordKindTransferExpense RecordKind = "transfer_expense"
	RecordKindTransferIncome  RecordKind = "transfer_income"
)

// Direction maps the kind to its balance effect.
func (k RecordKind) Direction() Direction {
	switch k {
	case RecordKindIncome, RecordKindTransferIncome:
		return DirectionIncome
	default:
		return DirectionExpense
	}
}

// Fixed categories of derived records.
const (
	CategoryTransferExpense   = "transfer-expense"
	CategoryTransferIncome    = "transfer-income"
	CategoryBalanceAdjustment = "balance-adjustment"
)

// Record is a single ledger entry against one account and one category.
// Build records with the New*Record constructors so every variant carries its
// required fields.
type Record struct {
	ID         string
	UserID     string
	Mode       Mode
	Kind       RecordKind
	Amount     decimal.Decimal
	Category   string
	AccountID  string
	Detail     string
	Date       Date
	TransferID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecordParams holds the fields shared by every record variant.
type RecordParams struct {
	ID        string
	UserID    string
	Mode      Mode
	AccountID string
	Amount    decimal.Decimal
	Category  string
	Detail    string
	Date      Date
	CreatedAt time.Time
}

// NewExpenseRecord builds a plain expense record.
func NewExpenseRecord(p RecordParams) (*Record, error) {
	return newRecord(RecordKindExpense, p, nil)
}

// NewIncomeRecord builds a plain income record.
func NewIncomeRecord(p RecordParams) (*Record, error) {
	return newRecord(RecordKindIncome, p, nil)
}

// NewTransferExpenseRecord builds the outgoing half of a transfer.
func NewTransferExpenseRecord(p RecordParams, transferID string) (*Record, error) {
	p.Category = CategoryTransferExpense
	return newRecord(RecordKindTransferExpense, p, &transferID)
}

// NewTransferIncomeRecord builds the incoming half of a transfer.
func NewTransferIncomeRecord(p RecordParams, transferID string) (*Record, error) {
	p.Category = CategoryTransferIncome
	return newRecord(RecordKindTransferIncome, p, &transferID)
}

func newRecord(kind RecordKind, p RecordParams, transferID *string) (*Record, error) {
	if strings.TrimSpace(p.AccountID) == "" {
		return nil, MissingField("account")
	}
	if strings.TrimSpace(p.Category) == "" {
		return nil, MissingField("category")
	}
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return nil, err
	}
	if err := ValidateAmount(p.Amount); err != nil {
		return nil, err
	}
	if p.Date.IsZero() {
		return nil, MissingField("date")
	}
	if transferID != nil && *transferID == "" {
		return nil, MissingField("transfer")
	}

	return &Record{
		ID:         p.ID,
		UserID:     p.UserID,
		Mode:       p.Mode,
		Kind:       kind,
		Amount:     p.Amount,
		Category:   strings.TrimSpace(p.Category),
		AccountID:  p.AccountID,
		Detail:     strings.TrimSpace(p.Detail),
		Date:       p.Date,
		TransferID: transferID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.CreatedAt,
	}, nil
}

// Type returns the record's direction (expense or income).
func (r *Record) Type() Direction {
	return r.Kind.Direction()
}

// SignedAmount is the record's effect on its account balance.
func (r *Record) SignedAmount() decimal.Decimal {
	if r.Type() == DirectionIncome {
		return r.Amount
	}
	return r.Amount.Neg()
}

// IsTransfer reports whether the record was derived from a transfer.
func (r *Record) IsTransfer() bool {
	return r.Kind == RecordKindTransferExpense || r.Kind == RecordKindTransferIncome
}

// RecordFilter narrows record listings.
type RecordFilter struct {
	Mode      Mode
	Since     *Date
	Category  string
	AccountID string
}

// RecordRange names the history windows offered by the record history view.
type RecordRange string

const (
	RangeToday  RecordRange = "today"
	Range7Days  RecordRange = "7d"
	Range30Days RecordRange = "30d"
	RangeAll    RecordRange = "all"
)

// Since returns the first date included by the range, or nil for RangeAll.
func (rr RecordRange) Since(today Date) (*Date, error) {
	var d Date
	switch rr {
	case RangeToday:
		d = today
	case Range7Days:
		d = today.AddDays(-7)
	case Range30Days:
		d = today.AddDays(-30)
	case RangeAll, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown range %q", ErrValidation, rr)
	}
	return &d, nil
}
