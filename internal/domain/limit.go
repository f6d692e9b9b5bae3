package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LimitWindowDays is the length of a spending window, start date included.
const LimitWindowDays = 14

// LimitState is derived from the activation flag and today's date.
type LimitState string

const (
	LimitPending LimitState = "pending"
	LimitActive  LimitState = "active"
	LimitExpired LimitState = "expired"
)

// Limit is a 14-day spending ceiling tracked on one account.
type Limit struct {
	ID        string
	UserID    string
	AccountID string
	StartDate *Date
	Ceiling   decimal.Decimal
	Spent     decimal.Decimal
	Activated bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndDate is the last day of the window, or the zero Date when never started.
func (l *Limit) EndDate() Date {
	if l.StartDate == nil {
		return Date{}
	}
	return l.StartDate.AddDays(LimitWindowDays - 1)
}

// State returns the window state on the given day.
func (l *Limit) State(today Date) LimitState {
	if !l.Activated || l.StartDate == nil || today.Before(*l.StartDate) {
		return LimitPending
	}
	if today.After(l.EndDate()) {
		return LimitExpired
	}
	return LimitActive
}

// IsActiveOn reports whether spending on day counts against this limit.
func (l *Limit) IsActiveOn(day Date) bool {
	return l.State(day) == LimitActive
}

// Activate starts a fresh window today. Valid from any state.
func (l *Limit) Activate(today Date) {
	start := today
	l.StartDate = &start
	l.Spent = decimal.Zero
	l.Activated = true
}

// Remaining is the ceiling minus what was spent; negative when overspent.
func (l *Limit) Remaining() decimal.Decimal {
	return l.Ceiling.Sub(l.Spent)
}

// DaysLeft counts the days of the window left including today. Zero unless active.
func (l *Limit) DaysLeft(today Date) int {
	if !l.IsActiveOn(today) {
		return 0
	}
	return today.DaysUntil(l.EndDate()) + 1
}

// FirstActiveLimit returns the first limit on accountID that is active on day.
func FirstActiveLimit(limits []*Limit, accountID string, day Date) *Limit {
	for _, l := range limits {
		if l.AccountID == accountID && l.IsActiveOn(day) {
			return l
		}
	}
	return nil
}
