package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

const transferColumns = `id, user_id, from_account_id, to_account_id, amount, fee, note, date, created_at`

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	db DBTX
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(db DBTX) *TransferRepository {
	return &TransferRepository{db: db}
}

// Create creates a new transfer within a transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := txDB(tx).Exec(ctx, query,
		transfer.ID,
		transfer.UserID,
		transfer.FromAccountID,
		transfer.ToAccountID,
		decimalToNumeric(transfer.Amount),
		decimalToNumeric(transfer.Fee),
		transfer.Note,
		dateToPgDate(transfer.Date),
		timeToPgTimestamptz(transfer.CreatedAt),
	)

	return err
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE user_id = $1 AND id = $2`

	transfer, err := scanTransfer(r.db.QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrTransferNotFound)
	}

	return transfer, nil
}

// List lists transfers newest first.
func (r *TransferRepository) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := []*domain.Transfer{}
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

// Delete removes a transfer. Its two records stay.
func (r *TransferRepository) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, domain.ErrTransferNotFound,
		`DELETE FROM transfers WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
}

// CountByAccount counts transfers touching an account on either side.
func (r *TransferRepository) CountByAccount(ctx context.Context, userID, accountID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM transfers WHERE user_id = $1 AND (from_account_id = $2 OR to_account_id = $2)`,
		userID, accountID,
	).Scan(&n)

	return n, err
}

func scanTransfer(row scanner) (*domain.Transfer, error) {
	var (
		transfer    domain.Transfer
		amount, fee pgtype.Numeric
		date        pgtype.Date
		createdAt   pgtype.Timestamptz
	)

	if err := row.Scan(
		&transfer.ID,
		&transfer.UserID,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&amount,
		&fee,
		&transfer.Note,
		&date,
		&createdAt,
	); err != nil {
		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.Fee = numericToDecimal(fee)
	transfer.Date = pgDateToDate(date)
	transfer.CreatedAt = createdAt.Time

	return &transfer, nil
}
