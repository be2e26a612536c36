package domain

import (
	"errors"
	"time"
)

// User represents a registered user of the finance tracker.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	BaseCurrencyID *string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasBaseCurrency reports whether the user has chosen a base currency
// for cross-currency aggregation.
func (u *User) HasBaseCurrency() bool {
	return u.BaseCurrencyID != nil && *u.BaseCurrencyID != ""
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
