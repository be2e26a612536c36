package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetBaseCurrency(ctx context.Context, userID, currencyID string) error
	GetBaseCurrency(ctx context.Context, userID string) (*domain.Currency, error)
}

// CurrencyRepository defines data access for currencies.
type CurrencyRepository interface {
	Create(ctx context.Context, currency *domain.Currency) error
	GetByID(ctx context.Context, id string) (*domain.Currency, error)
	List(ctx context.Context, filter domain.CurrencyFilter) ([]*domain.Currency, error)
	Update(ctx context.Context, currency *domain.Currency) error
	DeleteByID(ctx context.Context, id, userID string) (string, error)
}

// AssetRepository defines data access for assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Asset, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Asset, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	Update(ctx context.Context, asset *domain.Asset) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error)
	DeleteByID(ctx context.Context, id, userID string) (string, error)
}

// TransactionFilter restricts transaction listings.
type TransactionFilter struct {
	// Start and End bound the transaction date, inclusive on both sides.
	Start time.Time
	End   time.Time
	// Type keeps only transactions of this type when set.
	Type *domain.TransactionType
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	// ListByPeriod returns the user's transactions in the period ordered
	// by date then id, so grouping order is deterministic.
	ListByPeriod(ctx context.Context, userID string, filter TransactionFilter) ([]*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	DeleteByID(ctx context.Context, tx Transaction, id, userID string) (string, error)
	ExistsByAsset(ctx context.Context, assetID string) (bool, error)
	// SumEffectsByAsset returns the signed sum of all balance effects on
	// the asset: its own transactions plus transfer credits it received.
	SumEffectsByAsset(ctx context.Context, assetID string) (decimal.Decimal, error)
}

// CategoryRepository defines data access for transaction categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.TransactionCategory) error
	// GetByID treats soft-deleted categories as not found.
	GetByID(ctx context.Context, id string) (*domain.TransactionCategory, error)
	// ListByIDs returns categories by id including soft-deleted ones,
	// for resolving historical references.
	ListByIDs(ctx context.Context, ids []string) ([]*domain.TransactionCategory, error)
	List(ctx context.Context, userID string, kind *domain.TransactionType) ([]*domain.TransactionCategory, error)
	Update(ctx context.Context, category *domain.TransactionCategory) error
	SoftDeleteByID(ctx context.Context, id, userID string) (string, error)
}

// CryptoPortfolioRepository defines data access for crypto portfolios.
type CryptoPortfolioRepository interface {
	Create(ctx context.Context, portfolio *domain.CryptoPortfolio) error
	GetByID(ctx context.Context, id string) (*domain.CryptoPortfolio, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.CryptoPortfolio, error)
	Update(ctx context.Context, portfolio *domain.CryptoPortfolio) error
	DeleteByID(ctx context.Context, id, userID string) (string, error)
}

// CryptoCurrencyRepository defines data access for crypto currencies.
type CryptoCurrencyRepository interface {
	Create(ctx context.Context, currency *domain.CryptoCurrency) error
	GetByID(ctx context.Context, id string) (*domain.CryptoCurrency, error)
	GetByCode(ctx context.Context, code string) (*domain.CryptoCurrency, error)
	List(ctx context.Context) ([]*domain.CryptoCurrency, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal, updatedAt time.Time) error
}

// CryptoAssetRepository defines data access for crypto assets.
type CryptoAssetRepository interface {
	Create(ctx context.Context, asset *domain.CryptoAsset) error
	GetByID(ctx context.Context, id string) (*domain.CryptoAsset, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.CryptoAsset, error)
	UpdateAmount(ctx context.Context, tx Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error
	ListByPortfolio(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoAsset, error)
	DeleteByID(ctx context.Context, id, userID string) (string, error)
}

// CryptoTransactionRepository defines data access for crypto transactions.
type CryptoTransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.CryptoTransaction) error
	GetByID(ctx context.Context, id string) (*domain.CryptoTransaction, error)
	ListByPortfolio(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoTransaction, error)
	DeleteByID(ctx context.Context, tx Transaction, id, userID string) (string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation after transient storage failures such as
// deadlocks or serialization conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// RateSource provides the rate of a currency relative to the common base
// unit. The conversion core depends on this capability only, never on a
// concrete provider.
type RateSource interface {
	RateToBase(ctx context.Context, currency *domain.Currency) (decimal.Decimal, error)
}

// CryptoQuoteSource provides live market quotes for crypto currencies.
type CryptoQuoteSource interface {
	Quote(ctx context.Context, code string) (decimal.Decimal, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
