package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

const limitColumns = `id, user_id, account_id, start_date, ceiling, spent, activated, created_at, updated_at`

// LimitRepository implements usecase.LimitRepository.
type LimitRepository struct {
	db DBTX
}

// NewLimitRepository creates a new LimitRepository.
func NewLimitRepository(db DBTX) *LimitRepository {
	return &LimitRepository{db: db}
}

// Create inserts a limit.
func (r *LimitRepository) Create(ctx context.Context, limit *domain.Limit) error {
	query := `
		INSERT INTO spending_limits (` + limitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		limit.ID,
		limit.UserID,
		limit.AccountID,
		optionalDate(limit.StartDate),
		decimalToNumeric(limit.Ceiling),
		decimalToNumeric(limit.Spent),
		limit.Activated,
		timeToPgTimestamptz(limit.CreatedAt),
		timeToPgTimestamptz(limit.UpdatedAt),
	)

	return err
}

// GetByID retrieves a limit by ID.
func (r *LimitRepository) GetByID(ctx context.Context, userID, id string) (*domain.Limit, error) {
	query := `SELECT ` + limitColumns + ` FROM spending_limits WHERE user_id = $1 AND id = $2`

	limit, err := scanLimit(r.db.QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrLimitNotFound)
	}

	return limit, nil
}

// ListByUser lists every limit of a user in creation order.
func (r *LimitRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Limit, error) {
	query := `SELECT ` + limitColumns + ` FROM spending_limits WHERE user_id = $1 ORDER BY created_at, id`
	return r.query(ctx, r.db, query, userID)
}

// ListByAccountForUpdate locks the limits of one account in creation order.
func (r *LimitRepository) ListByAccountForUpdate(ctx context.Context, tx usecase.Transaction, userID, accountID string) ([]*domain.Limit, error) {
	query := `
		SELECT ` + limitColumns + `
		FROM spending_limits
		WHERE user_id = $1 AND account_id = $2
		ORDER BY created_at, id
		FOR UPDATE
	`
	return r.query(ctx, txDB(tx), query, userID, accountID)
}

// IncrementSpent adds delta to the spent counter.
func (r *LimitRepository) IncrementSpent(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	return execOne(ctx, txDB(tx), domain.ErrLimitNotFound,
		`UPDATE spending_limits SET spent = spent + $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt),
	)
}

// Update writes the window and counters of a limit.
func (r *LimitRepository) Update(ctx context.Context, tx usecase.Transaction, limit *domain.Limit) error {
	return execOne(ctx, txDB(tx), domain.ErrLimitNotFound,
		`UPDATE spending_limits
		 SET start_date = $3, ceiling = $4, spent = $5, activated = $6, updated_at = $7
		 WHERE user_id = $1 AND id = $2`,
		limit.UserID,
		limit.ID,
		optionalDate(limit.StartDate),
		decimalToNumeric(limit.Ceiling),
		decimalToNumeric(limit.Spent),
		limit.Activated,
		timeToPgTimestamptz(limit.UpdatedAt),
	)
}

// Delete removes a limit.
func (r *LimitRepository) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, domain.ErrLimitNotFound,
		`DELETE FROM spending_limits WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
}

func (r *LimitRepository) query(ctx context.Context, db DBTX, query string, args ...any) ([]*domain.Limit, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	limits := []*domain.Limit{}
	for rows.Next() {
		limit, err := scanLimit(rows)
		if err != nil {
			return nil, err
		}
		limits = append(limits, limit)
	}

	return limits, rows.Err()
}

func scanLimit(row scanner) (*domain.Limit, error) {
	var (
		limit                domain.Limit
		startDate            pgtype.Date
		ceiling, spent       pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(
		&limit.ID,
		&limit.UserID,
		&limit.AccountID,
		&startDate,
		&ceiling,
		&spent,
		&limit.Activated,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	limit.StartDate = pgDateToOptional(startDate)
	limit.Ceiling = numericToDecimal(ceiling)
	limit.Spent = numericToDecimal(spent)
	limit.CreatedAt = createdAt.Time
	limit.UpdatedAt = updatedAt.Time

	return &limit, nil
}
