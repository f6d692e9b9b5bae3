package usecase

import (
	"context"
	"strings"

	"github.com/iho/goexpense/internal/domain"
)

// ReminderUseCase manages dated reminders.
type ReminderUseCase struct {
	reminderRepo ReminderRepository
	idGen        IDGenerator
	clock        Clock
}

// NewReminderUseCase creates a new ReminderUseCase.
func NewReminderUseCase(reminderRepo ReminderRepository, idGen IDGenerator, clock Clock) *ReminderUseCase {
	return &ReminderUseCase{
		reminderRepo: reminderRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// ReminderStatus is a reminder with its countdown on the current day.
type ReminderStatus struct {
	Reminder  *domain.Reminder
	DaysLeft  int
	Countdown string
}

// CreateReminderInput represents input for creating a reminder.
type CreateReminderInput struct {
	UserID  string
	Text    string
	DueDate string
}

// CreateReminder creates a reminder.
func (uc *ReminderUseCase) CreateReminder(ctx context.Context, input CreateReminderInput) (*ReminderStatus, error) {
	if strings.TrimSpace(input.DueDate) == "" {
		return nil, domain.MissingField("due_date")
	}
	due, err := domain.ParseDate(strings.TrimSpace(input.DueDate))
	if err != nil {
		return nil, err
	}

	reminder := &domain.Reminder{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Text:      strings.TrimSpace(input.Text),
		DueDate:   due,
		CreatedAt: uc.clock.Now(),
	}
	if err := reminder.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateText("text", reminder.Text, domain.MaxDetailLength); err != nil {
		return nil, err
	}

	if err := uc.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, storeError("create reminder", err)
	}

	return uc.status(reminder, uc.clock.Today()), nil
}

// ListReminders lists reminders by due date, earliest first.
func (uc *ReminderUseCase) ListReminders(ctx context.Context, userID string) ([]*ReminderStatus, error) {
	reminders, err := uc.reminderRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	domain.SortRemindersByDueDate(reminders)

	today := uc.clock.Today()
	out := make([]*ReminderStatus, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, uc.status(r, today))
	}

	return out, nil
}

// DeleteReminder deletes a reminder.
func (uc *ReminderUseCase) DeleteReminder(ctx context.Context, userID, id string) error {
	if err := uc.reminderRepo.Delete(ctx, userID, id); err != nil {
		return storeError("delete reminder", err)
	}
	return nil
}

func (uc *ReminderUseCase) status(r *domain.Reminder, today domain.Date) *ReminderStatus {
	return &ReminderStatus{
		Reminder:  r,
		DaysLeft:  r.DaysLeft(today),
		Countdown: r.Countdown(today),
	}
}
