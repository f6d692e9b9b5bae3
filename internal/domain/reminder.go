package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Reminder is a dated note, typically a bill to pay.
type Reminder struct {
	ID        string
	UserID    string
	Text      string
	DueDate   Date
	CreatedAt time.Time
}

// Validate validates reminder fields.
func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return MissingField("text")
	}
	if r.DueDate.IsZero() {
		return MissingField("due_date")
	}
	return nil
}

// DaysLeft is negative once the due date has passed.
func (r *Reminder) DaysLeft(today Date) int {
	return today.DaysUntil(r.DueDate)
}

// Countdown renders the due state: "expired", "today" or "N days left".
func (r *Reminder) Countdown(today Date) string {
	switch n := r.DaysLeft(today); {
	case n < 0:
		return "expired"
	case n == 0:
		return "today"
	case n == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", n)
	}
}

// SortRemindersByDueDate orders reminders by due date, earliest first.
func SortRemindersByDueDate(reminders []*Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DueDate.Before(reminders[j].DueDate)
	})
}
