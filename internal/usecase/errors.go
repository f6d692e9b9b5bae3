package usecase

import (
	"errors"

	"github.com/iho/goexpense/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// storeError leaves domain errors alone and wraps everything else as a store failure.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrStoreWrite) {
		return err
	}
	return domain.StoreWriteError(op, err)
}
