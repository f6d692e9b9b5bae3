package usecase

//go:generate mockgen -destination=mocks/mock_cache.go -package=mocks -mock_names=Cache=GoMockCache github.com/iho/goexpense/internal/usecase Cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, userID, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, userID, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, userID string, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	Rename(ctx context.Context, userID, id, name string, updatedAt time.Time) error
	List(ctx context.Context, userID string) ([]*domain.Account, error)
	Delete(ctx context.Context, userID, id string) error
}

// RecordRepository defines data access for ledger records.
type RecordRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.Record) error
	GetByID(ctx context.Context, userID, id string) (*domain.Record, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, userID, id string) (*domain.Record, error)
	List(ctx context.Context, userID string, filter domain.RecordFilter, limit, offset int) ([]*domain.Record, error)
	ListByMode(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Record, error)
	Update(ctx context.Context, record *domain.Record) error
	Delete(ctx context.Context, tx Transaction, userID, id string) error
	CountByAccount(ctx context.Context, userID, accountID string) (int, error)
	CountByCategory(ctx context.Context, userID string, mode domain.Mode, category string) (int, error)
	SumByAccount(ctx context.Context, userID string) (map[string]decimal.Decimal, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, userID, id string) (*domain.Transfer, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.Transfer, error)
	Delete(ctx context.Context, userID, id string) error
	CountByAccount(ctx context.Context, userID, accountID string) (int, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	// CreateIfMissing inserts the category unless (user, mode, name) exists.
	// Returns whether a row was inserted.
	CreateIfMissing(ctx context.Context, category *domain.Category) (bool, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Category, error)
	List(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

// LimitRepository defines data access for spending limits.
type LimitRepository interface {
	Create(ctx context.Context, limit *domain.Limit) error
	GetByID(ctx context.Context, userID, id string) (*domain.Limit, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Limit, error)
	// ListByAccountForUpdate locks the account's limits in creation order.
	ListByAccountForUpdate(ctx context.Context, tx Transaction, userID, accountID string) ([]*domain.Limit, error)
	IncrementSpent(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
	Update(ctx context.Context, tx Transaction, limit *domain.Limit) error
	Delete(ctx context.Context, userID, id string) error
}

// ReminderRepository defines data access for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	List(ctx context.Context, userID string) ([]*domain.Reminder, error)
	Delete(ctx context.Context, userID, id string) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) (int64, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time and the calendar date in the user's time zone.
type Clock interface {
	Now() time.Time
	Today() domain.Date
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// LedgerMetrics receives ledger engine observations.
type LedgerMetrics interface {
	RecordCreated(mode, kind string)
	TransferCreated()
	LimitSpent()
	LedgerError(operation, kind string)
	ObserveLedger(operation string, d time.Duration)
}
