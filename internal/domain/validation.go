package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation errors
var (
	ErrInvalidAccountName = fmt.Errorf("%w: invalid account name", ErrValidation)
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrInvalidIDFormat    = fmt.Errorf("%w: invalid ID format", ErrValidation)
	ErrTextTooLong        = fmt.Errorf("%w: text too long", ErrValidation)
)

// Validation constants
const (
	MaxAccountNameLength  = 100
	MaxCategoryNameLength = 50
	MaxDetailLength       = 500
	DefaultPageSize       = 50
	MaxPageSize           = 1000
)

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if utf8.RuneCountInString(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateText checks free text such as record details and notes.
func ValidateText(field, text string, max int) error {
	if utf8.RuneCountInString(text) > max {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrTextTooLong, field, max)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
