package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap one of these so callers can match with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFound      = errors.New("not found")
	ErrStoreWrite    = errors.New("store write failed")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
)

var (
	// Account errors
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrAccountInUse    = fmt.Errorf("%w: account is referenced by records", ErrConflict)
	ErrDuplicateName   = fmt.Errorf("%w: name already exists", ErrConflict)

	// Ledger errors
	ErrSameAccount      = fmt.Errorf("%w: cannot transfer to same account", ErrValidation)
	ErrRecordNotFound   = fmt.Errorf("record %w", ErrNotFound)
	ErrTransferNotFound = fmt.Errorf("transfer %w", ErrNotFound)

	// Registry errors
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrCategoryInUse    = fmt.Errorf("%w: category is referenced by records", ErrConflict)
	ErrLimitNotFound    = fmt.Errorf("limit %w", ErrNotFound)
	ErrReminderNotFound = fmt.Errorf("reminder %w", ErrNotFound)

	// Auth errors
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrUnauthorized)
)

// MissingField reports a required input that was left empty.
func MissingField(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}

// StoreWriteError wraps a persistence failure that happened while performing op.
func StoreWriteError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreWrite, op, err)
}
