package domain

import "errors"

var (
	// Not found errors
	ErrUserNotFound              = errors.New("user not found")
	ErrCurrencyNotFound          = errors.New("currency not found")
	ErrAssetNotFound             = errors.New("asset not found")
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrCategoryNotFound          = errors.New("transaction category not found")
	ErrPortfolioNotFound         = errors.New("crypto portfolio not found")
	ErrCryptoCurrencyNotFound    = errors.New("crypto currency not found")
	ErrCryptoAssetNotFound       = errors.New("crypto asset not found")
	ErrCryptoTransactionNotFound = errors.New("crypto transaction not found")

	// Conflict errors
	ErrUserExists           = errors.New("user with this email already exists")
	ErrCurrencyExists       = errors.New("currency with this code already exists")
	ErrCategoryExists       = errors.New("transaction category already exists")
	ErrPortfolioExists      = errors.New("crypto portfolio already exists")
	ErrCryptoCurrencyExists = errors.New("crypto currency with this code already exists")
	ErrCryptoAssetExists    = errors.New("crypto asset for this currency already exists in portfolio")

	// Invalid operation errors
	ErrCurrencyCantBeBase       = errors.New("currency cannot be used as base currency")
	ErrTransactionCantBeChanged = errors.New("transaction type and asset cannot be changed")
	ErrAssetCantBeDeleted       = errors.New("asset with transactions cannot be deleted")
	ErrCurrencyInUse            = errors.New("currency is referenced by assets")
	ErrInsufficientCryptoAsset  = errors.New("crypto asset amount is insufficient")

	// Precondition errors
	ErrBaseCurrencyNotSet = errors.New("base currency is not set")

	// Validation errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidPeriod          = errors.New("end date must not be before start date")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrSameAsset              = errors.New("cannot transfer to same asset")
	ErrCounterAssetRequired   = errors.New("transfer requires a counter asset")
	ErrRateUnavailable        = errors.New("currency rate unavailable")
)
