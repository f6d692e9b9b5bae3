package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

const accountColumns = `id, user_id, name, balance, opening_balance, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return insertAccount(ctx, r.db, account)
}

// CreateTx creates a new account inside tx.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	return insertAccount(ctx, txDB(tx), account)
}

func insertAccount(ctx context.Context, db DBTX, account *domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := db.Exec(ctx, query,
		account.ID,
		account.UserID,
		account.Name,
		decimalToNumeric(account.Balance),
		decimalToNumeric(account.OpeningBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, userID, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND id = $2`

	account, err := scanAccount(r.db.QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}

	return account, nil
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND id = $2 FOR UPDATE`

	account, err := scanAccount(txDB(tx).QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}

	return account, nil
}

// GetByIDsForUpdate locks several accounts in id order. Missing ids are
// simply absent from the result.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, userID string, ids []string) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := txDB(tx).Query(ctx, query, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, len(ids))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	return execOne(ctx, txDB(tx), domain.ErrAccountNotFound,
		`UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt),
	)
}

// Rename changes the display name of an account.
func (r *AccountRepository) Rename(ctx context.Context, userID, id, name string, updatedAt time.Time) error {
	err := execOne(ctx, r.db, domain.ErrAccountNotFound,
		`UPDATE accounts SET name = $3, updated_at = $4 WHERE user_id = $1 AND id = $2`,
		userID, id, name, timeToPgTimestamptz(updatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return err
}

// List lists all accounts of a user in creation order.
func (r *AccountRepository) List(ctx context.Context, userID string) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Delete removes an account. Limits on it go with it.
func (r *AccountRepository) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, domain.ErrAccountNotFound,
		`DELETE FROM accounts WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		account              domain.Account
		balance, opening     pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&balance,
		&opening,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.OpeningBalance = numericToDecimal(opening)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
