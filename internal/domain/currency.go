package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a fiat currency. Default currencies are visible to
// everyone; custom currencies belong to a single user.
//
// Rate is expressed relative to a single common base unit shared by all
// currencies, so any pair can be converted by routing through that unit.
type Currency struct {
	ID         string
	Code       string
	Name       string
	Rate       decimal.Decimal
	IsCustom   bool
	RateStable bool
	UserID     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VisibleTo reports whether the currency is visible to the given user:
// default currencies and the user's own custom currencies.
func (c *Currency) VisibleTo(userID string) bool {
	if !c.IsCustom {
		return true
	}

	return c.UserID != nil && *c.UserID == userID
}

// EligibleAsBase reports whether the currency may become a user's base
// currency. Custom currencies qualify only when their rate lineage is
// stable, otherwise the base rate would depend on itself.
func (c *Currency) EligibleAsBase() bool {
	if !c.IsCustom {
		return true
	}

	return c.RateStable
}

// CurrencyFilter restricts currency listings.
type CurrencyFilter struct {
	// Code filters by exact currency code when non-empty.
	Code string
	// UserID includes custom currencies of this user when set.
	UserID *string
	// IncludeDefaults includes system default currencies.
	IncludeDefaults bool
}
