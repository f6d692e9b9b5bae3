package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != NewDate(2024, time.February, 29) {
		t.Errorf("unexpected date %s", d)
	}

	if _, err := ParseDate("2024-13-01"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestDate_DaysUntil(t *testing.T) {
	start := NewDate(2024, time.March, 1)
	if got := start.DaysUntil(NewDate(2024, time.March, 15)); got != 14 {
		t.Errorf("expected 14, got %d", got)
	}
	if got := start.DaysUntil(NewDate(2024, time.February, 28)); got != -2 {
		t.Errorf("expected -2, got %d", got)
	}
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	taipei := time.FixedZone("CST", 8*60*60)
	ts := time.Date(2024, time.January, 1, 23, 30, 0, 0, taipei)

	if got := DateOf(ts).String(); got != "2024-01-01" {
		t.Errorf("expected 2024-01-01, got %s", got)
	}
	if got := DateOf(ts.UTC()).String(); got != "2024-01-01" {
		t.Errorf("expected 2024-01-01, got %s", got)
	}
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Due Date `json:"due"`
	}

	out, err := json.Marshal(payload{Due: NewDate(2024, time.May, 4)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"due":"2024-05-04"}` {
		t.Errorf("unexpected json %s", out)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"due":null}`), &p); err != nil || !p.Due.IsZero() {
		t.Errorf("expected zero date from null, got %v, %v", p.Due, err)
	}

	if err := json.Unmarshal([]byte(`{"due":"05/04/2024"}`), &p); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
