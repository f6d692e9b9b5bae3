package domain

import (
	"regexp"
	"strings"
)

// LocalUserID owns all data when authentication is disabled.
const LocalUserID = "local"

// User is the authenticated owner of ledger data. Identity comes from the
// bearer token; the ledger keeps no user table.
type User struct {
	ID    string
	Email string
}

var userIDRegex = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,128}$`)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateUserID validates an opaque user identifier.
func ValidateUserID(id string) error {
	if id == "" {
		return MissingField("user_id")
	}
	if !userIDRegex.MatchString(id) {
		return ErrInvalidIDFormat
	}
	return nil
}

// ValidateEmail validates email format. Empty is allowed.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
