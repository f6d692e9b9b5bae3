package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validParams() RecordParams {
	return RecordParams{
		ID:        "rec-1",
		UserID:    "user-1",
		Mode:      ModePersonal,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(200),
		Category:  "飲食",
		Detail:    "  lunch ",
		Date:      NewDate(2024, time.January, 5),
	}
}

func TestNewRecord_Variants(t *testing.T) {
	tests := []struct {
		name      string
		build     func(RecordParams) (*Record, error)
		kind      RecordKind
		direction Direction
		category  string
		transfer  bool
	}{
		{
			name:      "expense",
			build:     NewExpenseRecord,
			kind:      RecordKindExpense,
			direction: DirectionExpense,
			category:  "飲食",
		},
		{
			name:      "income",
			build:     NewIncomeRecord,
			kind:      RecordKindIncome,
			direction: DirectionIncome,
			category:  "飲食",
		},
		{
			name: "transfer expense",
			build: func(p RecordParams) (*Record, error) {
				return NewTransferExpenseRecord(p, "tr-1")
			},
			kind:      RecordKindTransferExpense,
			direction: DirectionExpense,
			category:  CategoryTransferExpense,
			transfer:  true,
		},
		{
			name: "transfer income",
			build: func(p RecordParams) (*Record, error) {
				return NewTransferIncomeRecord(p, "tr-1")
			},
			kind:      RecordKindTransferIncome,
			direction: DirectionIncome,
			category:  CategoryTransferIncome,
			transfer:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.build(validParams())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, r.Kind)
			}
			if r.Type() != tt.direction {
				t.Errorf("expected direction %s, got %s", tt.direction, r.Type())
			}
			if r.Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, r.Category)
			}
			if r.Detail != "lunch" {
				t.Errorf("expected trimmed detail, got %q", r.Detail)
			}
			if r.IsTransfer() != tt.transfer {
				t.Errorf("IsTransfer = %v", r.IsTransfer())
			}
			if tt.transfer && (r.TransferID == nil || *r.TransferID != "tr-1") {
				t.Errorf("expected transfer id tr-1, got %v", r.TransferID)
			}
		})
	}
}

func TestNewRecord_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RecordParams)
		err    error
	}{
		{"missing account", func(p *RecordParams) { p.AccountID = "" }, ErrValidation},
		{"missing category", func(p *RecordParams) { p.Category = " " }, ErrValidation},
		{"unknown mode", func(p *RecordParams) { p.Mode = "family" }, ErrValidation},
		{"negative amount", func(p *RecordParams) { p.Amount = decimal.NewFromInt(-1) }, ErrInvalidAmount},
		{"missing date", func(p *RecordParams) { p.Date = Date{} }, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			_, err := NewExpenseRecord(p)
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestRecord_SignedAmount(t *testing.T) {
	expense, _ := NewExpenseRecord(validParams())
	income, _ := NewIncomeRecord(validParams())

	if !expense.SignedAmount().Equal(decimal.NewFromInt(-200)) {
		t.Errorf("expected -200, got %s", expense.SignedAmount())
	}
	if !income.SignedAmount().Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected 200, got %s", income.SignedAmount())
	}
}

func TestRecordRange_Since(t *testing.T) {
	today := NewDate(2024, time.March, 31)

	tests := []struct {
		rng  RecordRange
		want string
	}{
		{RangeToday, "2024-03-31"},
		{Range7Days, "2024-03-24"},
		{Range30Days, "2024-03-01"},
		{RangeAll, ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng), func(t *testing.T) {
			since, err := tt.rng.Since(today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := ""
			if since != nil {
				got = since.String()
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if _, err := RecordRange("year").Since(today); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
