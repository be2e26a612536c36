package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CryptoPortfolio groups a user's crypto assets.
type CryptoPortfolio struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CryptoCurrency is a tradable crypto currency. Price is the last known
// quote against USD and is refreshed from the market data source.
type CryptoCurrency struct {
	ID        string
	Code      string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CryptoAsset is a holding of one crypto currency inside a portfolio.
type CryptoAsset struct {
	ID               string
	PortfolioID      string
	UserID           string
	CryptoCurrencyID string
	Amount           decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CryptoTransactionType classifies a crypto transaction.
type CryptoTransactionType string

const (
	CryptoTransactionTypeBuy  CryptoTransactionType = "buy"
	CryptoTransactionTypeSell CryptoTransactionType = "sell"
)

// IsValid checks that the type is buy or sell.
func (t CryptoTransactionType) IsValid() bool {
	return t == CryptoTransactionTypeBuy || t == CryptoTransactionTypeSell
}

// CryptoTransaction records a buy or sell that mutates a crypto asset's
// amount. Price is the unit price at execution time.
type CryptoTransaction struct {
	ID            string
	UserID        string
	PortfolioID   string
	CryptoAssetID string
	Type          CryptoTransactionType
	Amount        decimal.Decimal
	Price         decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
}

// AmountEffect returns the signed effect on the crypto asset's amount.
func (t *CryptoTransaction) AmountEffect() decimal.Decimal {
	if t.Type == CryptoTransactionTypeSell {
		return t.Amount.Neg()
	}

	return t.Amount
}
