package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultReportTTL is how long a computed report stays cached
	DefaultReportTTL = 10 * time.Minute

	// DefaultAccountName is the account created by Bootstrap for a new user
	DefaultAccountName = "Cash"
)
