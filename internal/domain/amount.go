package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places the ledger stores.
const AmountScale = 4

// maxIntegerDigits bounds the integer part before the text reaches the decimal
// parser; MaxAmount has 13 digits.
const maxIntegerDigits = 13

// MaxAmount caps a single amount so a typo cannot wreck a balance.
var MaxAmount = decimal.NewFromInt(1_000_000_000_000)

// Plain digits with an optional single "." or "," fraction. Exponents, grouping
// and NaN/Inf spellings never match.
var amountRegex = regexp.MustCompile(`^([+-]?)(\d+)(?:[.,](\d+))?$`)

// ParseAmount parses user supplied amount text into a non-negative decimal.
// Empty input is a missing field; anything that is not a plain, non-negative
// number with at most AmountScale decimal places is ErrInvalidAmount.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := parseDecimal(field, raw)
	if err != nil {
		return decimal.Zero, err
	}

	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}

	return amount, nil
}

// ParseOptionalAmount is ParseAmount with empty input meaning zero.
func ParseOptionalAmount(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(field, raw)
}

// ValidateAmount checks a parsed amount.
func ValidateAmount(amount decimal.Decimal) error {
	if err := validateMagnitude(amount); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	return nil
}

// ParseBalance parses a signed balance such as the target of a balance adjustment.
func ParseBalance(field, raw string) (decimal.Decimal, error) {
	balance, err := parseDecimal(field, raw)
	if err != nil {
		return decimal.Zero, err
	}

	if err := validateMagnitude(balance); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}

	return balance, nil
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, MissingField(field)
	}

	m := amountRegex.FindStringSubmatch(raw)
	if m == nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", ErrInvalidAmount, field, raw)
	}

	sign, whole, frac := m[1], strings.TrimLeft(m[2], "0"), m[3]
	if len(whole) > maxIntegerDigits {
		return decimal.Zero, fmt.Errorf("%w: %s exceeds maximum of %s", ErrInvalidAmount, field, MaxAmount)
	}
	if len(frac) > AmountScale {
		return decimal.Zero, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, field, AmountScale)
	}

	if whole == "" {
		whole = "0"
	}
	text := sign + whole
	if frac != "" {
		text += "." + frac
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", ErrInvalidAmount, field, raw)
	}
	return amount, nil
}

// validateMagnitude rejects values the NUMERIC(20, 4) columns cannot hold. The
// exponent is checked first so the comparison never rescales by a huge factor.
func validateMagnitude(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	if d.Exponent() < -AmountScale {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, AmountScale)
	}
	if d.Exponent() > maxIntegerDigits || d.Abs().GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: exceeds maximum of %s", ErrInvalidAmount, MaxAmount)
	}
	return nil
}
