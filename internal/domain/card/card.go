// Package card holds the pure checks applied to card tokens, amounts and
// expiration dates, plus the digest and display helpers used before anything
// derived from a token is persisted.
package card

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	MinTokenLength   = 10
	DefaultMaxAmount = int64(1_000_000)

	blockedSuffix  = "999"
	invalidPattern = "0000"
	maskPrefix     = "****"
)

var (
	tokenPattern      = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	expirationPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	separators        = regexp.MustCompile(`[\s-]`)
)

var (
	ErrTokenEmpty        = errors.New("Card token cannot be null or empty")
	ErrTokenTooShort     = fmt.Errorf("Card token must be at least %d characters long", MinTokenLength)
	ErrTokenCharset      = errors.New("Card token can only contain letters, numbers, and underscores")
	ErrTokenBlocked      = errors.New("Card is blocked - token ends with blocked pattern")
	ErrTokenInvalid      = errors.New("Invalid card token - contains invalid pattern")
	ErrAmountNotPositive = errors.New("Transaction amount must be greater than zero")
	ErrExpirationFormat  = errors.New("Expiration date must be in MM/YY format")
	ErrExpired           = errors.New("Card has expired")
	ErrEmptyInput        = errors.New("empty input")
)

// ValidateToken applies the token rules in order and returns the first one
// that fails.
func ValidateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrTokenEmpty
	}
	if len(token) < MinTokenLength {
		return ErrTokenTooShort
	}
	if !tokenPattern.MatchString(token) {
		return ErrTokenCharset
	}
	if strings.HasSuffix(token, blockedSuffix) {
		return ErrTokenBlocked
	}
	if strings.Contains(token, invalidPattern) {
		return ErrTokenInvalid
	}
	return nil
}

// AmountLimitError reports an amount above the ceiling it was checked against.
type AmountLimitError struct {
	Limit int64
}

func (e *AmountLimitError) Error() string {
	return fmt.Sprintf("Transaction amount exceeds maximum limit of %d", e.Limit)
}

// ValidateAmount checks amount > 0 and amount <= maxLimit. A non-positive
// maxLimit means DefaultMaxAmount.
func ValidateAmount(amount, maxLimit int64) error {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxAmount
	}
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	if amount > maxLimit {
		return &AmountLimitError{Limit: maxLimit}
	}
	return nil
}

// ValidateExpiration checks an MM/YY date against now using two-digit years.
// The current month is still valid.
func ValidateExpiration(date string, now time.Time) error {
	m := expirationPattern.FindStringSubmatch(date)
	if m == nil {
		return ErrExpirationFormat
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if year < currentYear || (year == currentYear && month < currentMonth) {
		return ErrExpired
	}
	return nil
}

// Hash returns the hex SHA-256 of the token with whitespace and hyphens removed.
func Hash(token string) (string, error) {
	if token == "" {
		return "", ErrEmptyInput
	}
	sum := sha256.Sum256([]byte(separators.ReplaceAllString(token, "")))
	return hex.EncodeToString(sum[:]), nil
}

// Mask keeps the last four characters visible.
func Mask(token string) string {
	if len(token) < 4 {
		return maskPrefix
	}
	clean := separators.ReplaceAllString(token, "")
	if len(clean) > 4 {
		clean = clean[len(clean)-4:]
	}
	return maskPrefix + clean
}
