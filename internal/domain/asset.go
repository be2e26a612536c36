package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset represents a holding of one user denominated in one currency.
// Its balance is always the signed sum of the transactions applied to it;
// the transaction service is the only writer.
type Asset struct {
	ID         string
	UserID     string
	CurrencyID string
	Title      string
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ApplyAmount returns the balance after applying a signed amount.
func (a *Asset) ApplyAmount(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
