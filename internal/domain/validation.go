package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validation errors
var (
	ErrInvalidTitle        = errors.New("invalid title")
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooWeak     = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxTitleLength    = 255
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinCodeLength     = 2
	MaxCodeLength     = 10
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	codeRegex  = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// ValidateTitle validates entity titles (assets, categories, portfolios).
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTitle)
	}

	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidTitle, MaxTitleLength)
	}

	return nil
}

// ValidateCurrencyCode validates a currency code: upper-case alphanumeric,
// 2 to 10 characters. Custom codes are allowed beyond ISO 4217.
func ValidateCurrencyCode(code string) error {
	if len(code) < MinCodeLength || len(code) > MaxCodeLength {
		return fmt.Errorf("%w: code must be %d-%d characters", ErrInvalidCurrencyCode, MinCodeLength, MaxCodeLength)
	}

	if !codeRegex.MatchString(code) {
		return fmt.Errorf("%w: code must be upper-case alphanumeric", ErrInvalidCurrencyCode)
	}

	return nil
}

// ValidatePeriod validates an inclusive date range.
func ValidatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidPeriod)
	}

	if end.Before(start) {
		return ErrInvalidPeriod
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const (
		maxPageSize     = 1000
		defaultPageSize = 50
	)

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
