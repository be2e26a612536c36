package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

var validate = validator.New()

// Validate validates a request struct against its tags.
func Validate(req any) error {
	return validate.Struct(req)
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// AddCurrencyRequest represents a request to create a custom currency.
type AddCurrencyRequest struct {
	Code       string          `json:"code" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Rate       decimal.Decimal `json:"rate"`
	RateStable bool            `json:"rate_stable"`
}

// ToUseCaseInput converts to use case input.
func (r *AddCurrencyRequest) ToUseCaseInput() usecase.AddCurrencyInput {
	return usecase.AddCurrencyInput{
		Code:       r.Code,
		Name:       r.Name,
		Rate:       r.Rate,
		RateStable: r.RateStable,
	}
}

// ChangeCurrencyRequest represents a partial currency update.
type ChangeCurrencyRequest struct {
	Name *string          `json:"name,omitempty"`
	Rate *decimal.Decimal `json:"rate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ChangeCurrencyRequest) ToUseCaseInput(id string) usecase.ChangeCurrencyInput {
	return usecase.ChangeCurrencyInput{
		ID:   id,
		Name: r.Name,
		Rate: r.Rate,
	}
}

// SetBaseCurrencyRequest represents a request to set the user's base
// currency.
type SetBaseCurrencyRequest struct {
	CurrencyID string `json:"currency_id" validate:"required"`
}

// AddAssetRequest represents a request to create an asset. Assets start
// at zero balance; opening balances are recorded as income transactions.
type AddAssetRequest struct {
	Title      string `json:"title" validate:"required"`
	CurrencyID string `json:"currency_id" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *AddAssetRequest) ToUseCaseInput() usecase.AddAssetInput {
	return usecase.AddAssetInput{
		Title:      r.Title,
		CurrencyID: r.CurrencyID,
	}
}

// ChangeAssetRequest represents a partial asset update.
type ChangeAssetRequest struct {
	Title      *string `json:"title,omitempty"`
	CurrencyID *string `json:"currency_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ChangeAssetRequest) ToUseCaseInput(id string) usecase.ChangeAssetInput {
	return usecase.ChangeAssetInput{
		ID:         id,
		Title:      r.Title,
		CurrencyID: r.CurrencyID,
	}
}

// AddTransactionRequest represents a request to record a transaction.
type AddTransactionRequest struct {
	AssetID        string          `json:"asset_id" validate:"required"`
	CounterAssetID *string         `json:"counter_asset_id,omitempty"`
	CategoryID     *string         `json:"category_id,omitempty"`
	Type           string          `json:"type" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Date           time.Time       `json:"date" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *AddTransactionRequest) ToUseCaseInput() usecase.AddTransactionInput {
	return usecase.AddTransactionInput{
		AssetID:        r.AssetID,
		CounterAssetID: r.CounterAssetID,
		CategoryID:     r.CategoryID,
		Type:           domain.TransactionType(r.Type),
		Amount:         r.Amount,
		Date:           r.Date,
	}
}

// ChangeTransactionRequest represents a partial transaction update. Type
// and asset are immutable; sending a different value is rejected rather
// than silently dropped.
type ChangeTransactionRequest struct {
	Type          *string          `json:"type,omitempty"`
	AssetID       *string          `json:"asset_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	ClearCategory bool             `json:"clear_category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ChangeTransactionRequest) ToUseCaseInput(id string) usecase.ChangeTransactionInput {
	input := usecase.ChangeTransactionInput{
		ID:            id,
		AssetID:       r.AssetID,
		Amount:        r.Amount,
		Date:          r.Date,
		CategoryID:    r.CategoryID,
		ClearCategory: r.ClearCategory,
	}
	if r.Type != nil {
		t := domain.TransactionType(*r.Type)
		input.Type = &t
	}

	return input
}

// AddCategoryRequest represents a request to create a category.
type AddCategoryRequest struct {
	Title string `json:"title" validate:"required"`
	Kind  string `json:"kind,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddCategoryRequest) ToUseCaseInput() usecase.AddCategoryInput {
	return usecase.AddCategoryInput{
		Title: r.Title,
		Kind:  domain.TransactionType(r.Kind),
	}
}

// ChangeCategoryRequest represents a partial category update.
type ChangeCategoryRequest struct {
	Title *string `json:"title,omitempty"`
	Kind  *string `json:"kind,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ChangeCategoryRequest) ToUseCaseInput(id string) usecase.ChangeCategoryInput {
	input := usecase.ChangeCategoryInput{
		ID:    id,
		Title: r.Title,
	}
	if r.Kind != nil {
		kind := domain.TransactionType(*r.Kind)
		input.Kind = &kind
	}

	return input
}

// AddPortfolioRequest represents a request to create a crypto portfolio.
type AddPortfolioRequest struct {
	Title string `json:"title" validate:"required"`
}

// AddCryptoCurrencyRequest represents a request to register a crypto
// currency.
type AddCryptoCurrencyRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *AddCryptoCurrencyRequest) ToUseCaseInput() usecase.AddCryptoCurrencyInput {
	return usecase.AddCryptoCurrencyInput{
		Code: r.Code,
		Name: r.Name,
	}
}

// AddCryptoAssetRequest represents a request to create a crypto asset.
type AddCryptoAssetRequest struct {
	PortfolioID      string          `json:"portfolio_id" validate:"required"`
	CryptoCurrencyID string          `json:"crypto_currency_id" validate:"required"`
	Amount           decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *AddCryptoAssetRequest) ToUseCaseInput() usecase.AddCryptoAssetInput {
	return usecase.AddCryptoAssetInput{
		PortfolioID:      r.PortfolioID,
		CryptoCurrencyID: r.CryptoCurrencyID,
		Amount:           r.Amount,
	}
}

// AddCryptoTransactionRequest represents a request to record a crypto
// buy or sell.
type AddCryptoTransactionRequest struct {
	CryptoAssetID string          `json:"crypto_asset_id" validate:"required"`
	Type          string          `json:"type" validate:"required,oneof=buy sell"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	Date          time.Time       `json:"date" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *AddCryptoTransactionRequest) ToUseCaseInput() usecase.AddCryptoTransactionInput {
	return usecase.AddCryptoTransactionInput{
		CryptoAssetID: r.CryptoAssetID,
		Type:          domain.CryptoTransactionType(r.Type),
		Amount:        r.Amount,
		Price:         r.Price,
		Date:          r.Date,
	}
}
