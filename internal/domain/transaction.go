package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

var validTransactionTypes = map[TransactionType]bool{
	TransactionTypeIncome:   true,
	TransactionTypeExpense:  true,
	TransactionTypeTransfer: true,
}

// IsValid checks that the type is one of income, expense, transfer.
func (t TransactionType) IsValid() bool {
	return validTransactionTypes[t]
}

// Transaction represents a single income, expense or transfer event that
// mutates its asset's balance. Amount is always positive; the sign of the
// balance effect follows from the type. Transfers carry a counter asset
// owned by the same user that receives the amount.
type Transaction struct {
	ID             string
	UserID         string
	AssetID        string
	CounterAssetID *string
	// CounterAmount is the amount credited to the counter asset of a
	// transfer, converted into the counter asset's currency at execution
	// time. Stored so that later reverts are exact even after rates move.
	CounterAmount *decimal.Decimal
	CategoryID    *string
	Type          TransactionType
	Amount        decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BalanceEffect returns the signed effect on the owning asset's balance.
// Transfers debit the owning asset; the counter asset is credited
// separately by the service.
func (t *Transaction) BalanceEffect() decimal.Decimal {
	switch t.Type {
	case TransactionTypeIncome:
		return t.Amount
	case TransactionTypeExpense, TransactionTypeTransfer:
		return t.Amount.Neg()
	}

	return decimal.Zero
}

// SignedAmount returns the transaction's contribution to aggregate totals:
// income positive, expense negative, transfers between the user's own
// assets net to zero.
func (t *Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionTypeIncome:
		return t.Amount
	case TransactionTypeExpense:
		return t.Amount.Neg()
	}

	return decimal.Zero
}

// Validate checks structural transaction invariants.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Type == TransactionTypeTransfer {
		if t.CounterAssetID == nil || *t.CounterAssetID == "" {
			return ErrCounterAssetRequired
		}

		if *t.CounterAssetID == t.AssetID {
			return ErrSameAsset
		}
	}

	return nil
}
