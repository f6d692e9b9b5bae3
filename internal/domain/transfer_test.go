package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransfer_Validate(t *testing.T) {
	tests := []struct {
		name        string
		fromID      string
		toID        string
		amount      decimal.Decimal
		fee         decimal.Decimal
		expectError error
	}{
		{
			name:   "valid transfer",
			fromID: "account-1",
			toID:   "account-2",
			amount: decimal.NewFromInt(100),
		},
		{
			name:   "zero amount is allowed",
			fromID: "account-1",
			toID:   "account-2",
			amount: decimal.Zero,
		},
		{
			name:        "same account",
			fromID:      "account-1",
			toID:        "account-1",
			amount:      decimal.NewFromInt(100),
			expectError: ErrSameAccount,
		},
		{
			name:        "missing source",
			toID:        "account-2",
			amount:      decimal.NewFromInt(100),
			expectError: ErrValidation,
		},
		{
			name:        "negative amount",
			fromID:      "account-1",
			toID:        "account-2",
			amount:      decimal.NewFromInt(-100),
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative fee",
			fromID:      "account-1",
			toID:        "account-2",
			amount:      decimal.NewFromInt(100),
			fee:         decimal.NewFromInt(-1),
			expectError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer := &Transfer{
				FromAccountID: tt.fromID,
				ToAccountID:   tt.toID,
				Amount:        tt.amount,
				Fee:           tt.fee,
			}

			err := transfer.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestTransfer_Details(t *testing.T) {
	tests := []struct {
		name    string
		fee     decimal.Decimal
		note    string
		expense string
		income  string
	}{
		{
			name:    "plain",
			expense: "to Bank",
			income:  "from Cash",
		},
		{
			name:    "with fee",
			fee:     decimal.NewFromInt(10),
			expense: "to Bank (fee 10)",
			income:  "from Cash",
		},
		{
			name:    "with fee and note",
			fee:     decimal.NewFromInt(10),
			note:    " rent ",
			expense: "to Bank (fee 10), note: rent",
			income:  "from Cash, note: rent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Transfer{Amount: decimal.NewFromInt(500), Fee: tt.fee, Note: tt.note}

			if got := tr.ExpenseDetail("Bank"); got != tt.expense {
				t.Errorf("expense detail: expected %q, got %q", tt.expense, got)
			}
			if got := tr.IncomeDetail("Cash"); got != tt.income {
				t.Errorf("income detail: expected %q, got %q", tt.income, got)
			}
		})
	}
}

func TestTransfer_Debit(t *testing.T) {
	tr := &Transfer{Amount: decimal.NewFromInt(500), Fee: decimal.NewFromInt(10)}
	if !tr.Debit().Equal(decimal.NewFromInt(510)) {
		t.Errorf("expected 510, got %s", tr.Debit())
	}
}
