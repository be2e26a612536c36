package usecase

import (
	"context"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
)

// Converter converts amounts between currencies. Every rate is expressed
// against a single common base unit, so conversion is always routed
// through that unit instead of keeping O(n^2) pairwise rates.
//
// Arithmetic is decimal end to end; rounding to the target currency's
// display precision happens only at the output boundary, never during
// intermediate aggregation.
type Converter struct {
	rates RateSource
}

// NewConverter creates a new Converter.
func NewConverter(rates RateSource) *Converter {
	return &Converter{rates: rates}
}

// Convert converts amount from one currency to another. Same currency is
// an identity. Rates are looked up on every call so concurrent rate
// changes are visible immediately.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to *domain.Currency) (decimal.Decimal, error) {
	if from.ID == to.ID {
		return amount, nil
	}

	fromRate, err := c.rates.RateToBase(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}

	toRate, err := c.rates.RateToBase(ctx, to)
	if err != nil {
		return decimal.Zero, err
	}

	if fromRate.IsZero() || toRate.IsZero() {
		return decimal.Zero, domain.ErrRateUnavailable
	}

	return amount.Mul(fromRate).Div(toRate), nil
}

// RoundForDisplay rounds an amount to the currency's display precision.
// Codes unknown to the ISO registry (custom currencies) fall back to two
// fractional digits.
func RoundForDisplay(amount decimal.Decimal, currencyCode string) decimal.Decimal {
	return amount.Round(displayPrecision(currencyCode))
}

func displayPrecision(code string) int32 {
	if cur := money.GetCurrency(code); cur != nil {
		return int32(cur.Fraction)
	}

	return 2
}

// StoredRateSource resolves rates from the currency's stored rate field.
// It performs no I/O and no caching: callers load currencies fresh from
// the store before converting.
type StoredRateSource struct{}

// NewStoredRateSource creates a new StoredRateSource.
func NewStoredRateSource() *StoredRateSource {
	return &StoredRateSource{}
}

// RateToBase returns the currency's stored rate to the common base unit.
func (s *StoredRateSource) RateToBase(_ context.Context, currency *domain.Currency) (decimal.Decimal, error) {
	if currency.Rate.IsZero() {
		return decimal.Zero, domain.ErrRateUnavailable
	}

	return currency.Rate, nil
}
