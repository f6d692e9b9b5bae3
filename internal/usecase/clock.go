package usecase

import (
	"time"

	"github.com/iho/goexpense/internal/domain"
)

// SystemClock reads the wall clock and derives calendar dates in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock creates a SystemClock. A nil location means UTC.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

// Now returns the current instant in UTC.
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today returns the current calendar date in the clock's location.
func (c *SystemClock) Today() domain.Date {
	return domain.DateOf(time.Now().In(c.loc))
}
