package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

const recordColumns = `id, user_id, mode, kind, amount, category, account_id, detail, date, transfer_id, created_at, updated_at`

// RecordRepository implements usecase.RecordRepository.
type RecordRepository struct {
	db DBTX
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(db DBTX) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create inserts a record inside tx.
func (r *RecordRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.Record) error {
	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := txDB(tx).Exec(ctx, query,
		record.ID,
		record.UserID,
		string(record.Mode),
		string(record.Kind),
		decimalToNumeric(record.Amount),
		record.Category,
		record.AccountID,
		record.Detail,
		dateToPgDate(record.Date),
		record.TransferID,
		timeToPgTimestamptz(record.CreatedAt),
		timeToPgTimestamptz(record.UpdatedAt),
	)

	return err
}

// GetByID retrieves a record by ID.
func (r *RecordRepository) GetByID(ctx context.Context, userID, id string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE user_id = $1 AND id = $2`

	record, err := scanRecord(r.db.QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrRecordNotFound)
	}

	return record, nil
}

// GetByIDForUpdate retrieves a record by ID with a FOR UPDATE lock.
func (r *RecordRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE user_id = $1 AND id = $2 FOR UPDATE`

	record, err := scanRecord(txDB(tx).QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrRecordNotFound)
	}

	return record, nil
}

// List returns records matching filter, newest first. A zero limit means no limit.
func (r *RecordRepository) List(ctx context.Context, userID string, filter domain.RecordFilter, limit, offset int) ([]*domain.Record, error) {
	query, args := buildRecordListQuery(userID, filter, limit, offset)
	return r.query(ctx, query, args...)
}

func buildRecordListQuery(userID string, filter domain.RecordFilter, limit, offset int) (string, []any) {
	var b strings.Builder
	args := []any{userID}

	b.WriteString(`SELECT ` + recordColumns + ` FROM records WHERE user_id = $1`)

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Mode != "" {
		b.WriteString(` AND mode = ` + arg(string(filter.Mode)))
	}
	if filter.Since != nil {
		b.WriteString(` AND date >= ` + arg(dateToPgDate(*filter.Since)))
	}
	if filter.Category != "" {
		b.WriteString(` AND category = ` + arg(filter.Category))
	}
	if filter.AccountID != "" {
		b.WriteString(` AND account_id = ` + arg(filter.AccountID))
	}

	b.WriteString(` ORDER BY date DESC, created_at DESC, id DESC`)

	if limit > 0 {
		b.WriteString(` LIMIT ` + arg(limit))
	}
	if offset > 0 {
		b.WriteString(` OFFSET ` + arg(offset))
	}

	return b.String(), args
}

// ListByMode returns every record of one mode in the order it was written.
func (r *RecordRepository) ListByMode(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = $1 AND mode = $2
		ORDER BY date, created_at, id
	`
	return r.query(ctx, query, userID, string(mode))
}

// Update writes the editable fields of a record. The balance is not touched.
func (r *RecordRepository) Update(ctx context.Context, record *domain.Record) error {
	return execOne(ctx, r.db, domain.ErrRecordNotFound,
		`UPDATE records SET detail = $3, category = $4, amount = $5, updated_at = $6 WHERE user_id = $1 AND id = $2`,
		record.UserID,
		record.ID,
		record.Detail,
		record.Category,
		decimalToNumeric(record.Amount),
		timeToPgTimestamptz(record.UpdatedAt),
	)
}

// Delete removes a record inside tx.
func (r *RecordRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	return execOne(ctx, txDB(tx), domain.ErrRecordNotFound,
		`DELETE FROM records WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
}

// CountByAccount counts records booked on an account.
func (r *RecordRepository) CountByAccount(ctx context.Context, userID, accountID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM records WHERE user_id = $1 AND account_id = $2`,
		userID, accountID,
	).Scan(&n)

	return n, err
}

// CountByCategory counts records filed under a category name in one mode.
func (r *RecordRepository) CountByCategory(ctx context.Context, userID string, mode domain.Mode, category string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM records WHERE user_id = $1 AND mode = $2 AND category = $3`,
		userID, string(mode), category,
	).Scan(&n)

	return n, err
}

// SumByAccount returns the signed sum of all records per account.
func (r *RecordRepository) SumByAccount(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT account_id,
		       COALESCE(SUM(CASE WHEN kind IN ('income', 'transfer_income') THEN amount ELSE -amount END), 0)
		FROM records
		WHERE user_id = $1
		GROUP BY account_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			accountID string
			sum       pgtype.Numeric
		)
		if err := rows.Scan(&accountID, &sum); err != nil {
			return nil, err
		}
		sums[accountID] = numericToDecimal(sum)
	}

	return sums, rows.Err()
}

func (r *RecordRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Record, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanRecord(row scanner) (*domain.Record, error) {
	var (
		record               domain.Record
		mode, kind           string
		amount               pgtype.Numeric
		date                 pgtype.Date
		createdAt, updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&mode,
		&kind,
		&amount,
		&record.Category,
		&record.AccountID,
		&record.Detail,
		&date,
		&record.TransferID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	record.Mode = domain.Mode(mode)
	record.Kind = domain.RecordKind(kind)
	record.Amount = numericToDecimal(amount)
	record.Date = pgDateToDate(date)
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}
