package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/metrics"
)

// CurrencyUseCase handles currency business logic.
type CurrencyUseCase struct {
	currencyRepo CurrencyRepository
	userRepo     UserRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewCurrencyUseCase creates a new CurrencyUseCase.
func NewCurrencyUseCase(currencyRepo CurrencyRepository, userRepo UserRepository, idGen IDGenerator) *CurrencyUseCase {
	return &CurrencyUseCase{
		currencyRepo: currencyRepo,
		userRepo:     userRepo,
		idGen:        idGen,
	}
}

// WithMetrics instruments currency operations.
func (uc *CurrencyUseCase) WithMetrics(m *metrics.Metrics) *CurrencyUseCase {
	uc.metrics = m
	return uc
}

// AddCurrencyInput represents input for creating a custom currency.
type AddCurrencyInput struct {
	Code string
	Name string
	Rate decimal.Decimal
	// RateStable marks the custom rate as independent of any user base
	// currency, which makes the currency eligible as a base itself.
	RateStable bool
}

// AddCurrency creates a custom currency owned by the user.
func (uc *CurrencyUseCase) AddCurrency(ctx context.Context, user *domain.User, input AddCurrencyInput) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}

	if input.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrRateUnavailable
	}

	now := time.Now().UTC()
	currency := &domain.Currency{
		ID:         uc.idGen.Generate(),
		Code:       code,
		Name:       input.Name,
		Rate:       input.Rate,
		IsCustom:   true,
		RateStable: input.RateStable,
		UserID:     &user.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CurrenciesCreated.Inc()
	}

	return currency, nil
}

// ChangeCurrencyInput is a partial patch for a custom currency.
type ChangeCurrencyInput struct {
	ID   string
	Name *string
	Rate *decimal.Decimal
}

// ChangeCurrency applies a validated patch to the user's own custom
// currency: load current state, patch, write back.
func (uc *CurrencyUseCase) ChangeCurrency(ctx context.Context, user *domain.User, input ChangeCurrencyInput) (*domain.Currency, error) {
	currency, err := uc.currencyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !currency.IsCustom || currency.UserID == nil || *currency.UserID != user.ID {
		return nil, domain.ErrCurrencyNotFound
	}

	if input.Name != nil {
		currency.Name = *input.Name
	}

	if input.Rate != nil {
		if input.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrRateUnavailable
		}

		currency.Rate = *input.Rate
	}

	currency.UpdatedAt = time.Now().UTC()

	if err := uc.currencyRepo.Update(ctx, currency); err != nil {
		return nil, err
	}

	return currency, nil
}

// GetCurrency retrieves a currency visible to the user.
func (uc *CurrencyUseCase) GetCurrency(ctx context.Context, user *domain.User, id string) (*domain.Currency, error) {
	currency, err := uc.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !currency.VisibleTo(user.ID) {
		return nil, domain.ErrCurrencyNotFound
	}

	return currency, nil
}

// CurrencyScope selects which currencies a listing covers.
type CurrencyScope string

const (
	CurrencyScopeAll     CurrencyScope = "all"
	CurrencyScopeDefault CurrencyScope = "default"
	CurrencyScopeCustom  CurrencyScope = "custom"
)

// ListCurrenciesInput represents input for listing currencies.
type ListCurrenciesInput struct {
	Scope CurrencyScope
	Code  string
}

// ListCurrencies lists currencies visible to the user within a scope.
func (uc *CurrencyUseCase) ListCurrencies(ctx context.Context, user *domain.User, input ListCurrenciesInput) ([]*domain.Currency, error) {
	filter := domain.CurrencyFilter{Code: strings.ToUpper(strings.TrimSpace(input.Code))}

	switch input.Scope {
	case CurrencyScopeDefault:
		filter.IncludeDefaults = true
	case CurrencyScopeCustom:
		filter.UserID = &user.ID
	default:
		filter.UserID = &user.ID
		filter.IncludeDefaults = true
	}

	return uc.currencyRepo.List(ctx, filter)
}

// DeleteCurrency deletes the user's own custom currency.
func (uc *CurrencyUseCase) DeleteCurrency(ctx context.Context, user *domain.User, id string) error {
	deleted, err := uc.currencyRepo.DeleteByID(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if deleted == "" {
		return domain.ErrCurrencyNotFound
	}

	return nil
}

// SetBaseCurrency assigns the user's base currency. The currency must be
// visible to the user and must have a stable rate lineage: defaults
// always qualify, custom currencies only when flagged rate-stable,
// otherwise the base rate would be derived from a previous base and the
// dependency would be circular.
func (uc *CurrencyUseCase) SetBaseCurrency(ctx context.Context, user *domain.User, currencyID string) error {
	currency, err := uc.currencyRepo.GetByID(ctx, currencyID)
	if err != nil {
		return err
	}

	if !currency.VisibleTo(user.ID) {
		return domain.ErrCurrencyNotFound
	}

	if !currency.EligibleAsBase() {
		return domain.ErrCurrencyCantBeBase
	}

	// All aggregation happens on read; no stored amounts are re-converted.
	if err := uc.userRepo.SetBaseCurrency(ctx, user.ID, currency.ID); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.BaseCurrencyChanges.Inc()
	}

	return nil
}

// GetBaseCurrency returns the user's base currency.
func (uc *CurrencyUseCase) GetBaseCurrency(ctx context.Context, user *domain.User) (*domain.Currency, error) {
	currency, err := uc.userRepo.GetBaseCurrency(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if currency == nil {
		return nil, domain.ErrBaseCurrencyNotSet
	}

	return currency, nil
}
