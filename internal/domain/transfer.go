package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents a money movement between two accounts. It is logged on
// its own and decomposed into a transfer_expense and a transfer_income record.
type Transfer struct {
	ID            string
	UserID        string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Note          string
	Date          Date
	CreatedAt     time.Time
}

// Validate validates transfer request.
func (t *Transfer) Validate() error {
	if strings.TrimSpace(t.FromAccountID) == "" {
		return MissingField("from_account_id")
	}
	if strings.TrimSpace(t.ToAccountID) == "" {
		return MissingField("to_account_id")
	}
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	return ValidateAmount(t.Fee)
}

// Debit is what leaves the source account: the amount plus the fee.
func (t *Transfer) Debit() decimal.Decimal {
	return t.Amount.Add(t.Fee)
}

// ExpenseDetail describes the outgoing record, e.g. "to Bank (fee 10), note: rent".
func (t *Transfer) ExpenseDetail(toName string) string {
	var b strings.Builder
	b.WriteString("to ")
	b.WriteString(toName)
	if t.Fee.IsPositive() {
		b.WriteString(" (fee ")
		b.WriteString(t.Fee.String())
		b.WriteString(")")
	}
	t.writeNote(&b)
	return b.String()
}

// IncomeDetail describes the incoming record, e.g. "from Cash, note: rent".
func (t *Transfer) IncomeDetail(fromName string) string {
	var b strings.Builder
	b.WriteString("from ")
	b.WriteString(fromName)
	t.writeNote(&b)
	return b.String()
}

func (t *Transfer) writeNote(b *strings.Builder) {
	if note := strings.TrimSpace(t.Note); note != "" {
		b.WriteString(", note: ")
		b.WriteString(note)
	}
}
