package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a named balance-holding account owned by a user.
type Account struct {
	ID             string
	UserID         string
	Name           string
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// Apply returns the balance after a record of the given direction and amount.
func (a *Account) Apply(direction Direction, amount decimal.Decimal) decimal.Decimal {
	if direction == DirectionIncome {
		return a.ApplyCredit(amount)
	}
	return a.ApplyDebit(amount)
}

// TotalBalance sums the balances of accounts.
func TotalBalance(accounts []*Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}
