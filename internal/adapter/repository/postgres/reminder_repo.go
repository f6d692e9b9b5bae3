package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goexpense/internal/domain"
)

// ReminderRepository implements usecase.ReminderRepository.
type ReminderRepository struct {
	db DBTX
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(db DBTX) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create inserts a reminder.
func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	query := `
		INSERT INTO reminders (id, user_id, text, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.Text,
		dateToPgDate(reminder.DueDate),
		timeToPgTimestamptz(reminder.CreatedAt),
	)

	return err
}

// List lists reminders by due date.
func (r *ReminderRepository) List(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	query := `
		SELECT id, user_id, text, due_date, created_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY due_date, created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []*domain.Reminder{}
	for rows.Next() {
		var (
			reminder  domain.Reminder
			dueDate   pgtype.Date
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.Text, &dueDate, &createdAt); err != nil {
			return nil, err
		}
		reminder.DueDate = pgDateToDate(dueDate)
		reminder.CreatedAt = createdAt.Time
		reminders = append(reminders, &reminder)
	}

	return reminders, rows.Err()
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, domain.ErrReminderNotFound,
		`DELETE FROM reminders WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
}
