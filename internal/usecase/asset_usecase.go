package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/metrics"
)

// AssetUseCase handles asset business logic.
type AssetUseCase struct {
	assetRepo       AssetRepository
	currencyRepo    CurrencyRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewAssetUseCase creates a new AssetUseCase.
func NewAssetUseCase(
	assetRepo AssetRepository,
	currencyRepo CurrencyRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
) *AssetUseCase {
	return &AssetUseCase{
		assetRepo:       assetRepo,
		currencyRepo:    currencyRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
	}
}

// WithMetrics instruments asset operations.
func (uc *AssetUseCase) WithMetrics(m *metrics.Metrics) *AssetUseCase {
	uc.metrics = m
	return uc
}

// AddAssetInput represents input for creating an asset.
type AddAssetInput struct {
	Title      string
	CurrencyID string
}

// AddAsset creates an asset for the user. The currency must be visible to
// the user. New assets start at zero: balances move only through the
// transaction service, so an opening balance is recorded as an income
// transaction.
func (uc *AssetUseCase) AddAsset(ctx context.Context, user *domain.User, input AddAssetInput) (*domain.Asset, error) {
	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, err
	}

	currency, err := uc.currencyRepo.GetByID(ctx, input.CurrencyID)
	if err != nil {
		return nil, err
	}

	if !currency.VisibleTo(user.ID) {
		return nil, domain.ErrCurrencyNotFound
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		ID:         uc.idGen.Generate(),
		UserID:     user.ID,
		CurrencyID: currency.ID,
		Title:      input.Title,
		Balance:    decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AssetsCreated.Inc()
	}

	return asset, nil
}

// ChangeAssetInput is a partial patch for an asset. Balance is absent on
// purpose: balances move only through the transaction service.
type ChangeAssetInput struct {
	ID         string
	Title      *string
	CurrencyID *string
}

// ChangeAsset applies a validated patch to the user's asset.
func (uc *AssetUseCase) ChangeAsset(ctx context.Context, user *domain.User, input ChangeAssetInput) (*domain.Asset, error) {
	asset, err := uc.assetRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if asset.UserID != user.ID {
		return nil, domain.ErrAssetNotFound
	}

	if input.Title != nil {
		if err := domain.ValidateTitle(*input.Title); err != nil {
			return nil, err
		}

		asset.Title = *input.Title
	}

	if input.CurrencyID != nil {
		currency, err := uc.currencyRepo.GetByID(ctx, *input.CurrencyID)
		if err != nil {
			return nil, err
		}

		if !currency.VisibleTo(user.ID) {
			return nil, domain.ErrCurrencyNotFound
		}

		asset.CurrencyID = currency.ID
	}

	asset.UpdatedAt = time.Now().UTC()

	if err := uc.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AssetOperations.WithLabelValues("change").Inc()
	}

	return asset, nil
}

// GetAsset retrieves the user's asset by ID.
func (uc *AssetUseCase) GetAsset(ctx context.Context, user *domain.User, id string) (*domain.Asset, error) {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if asset.UserID != user.ID {
		return nil, domain.ErrAssetNotFound
	}

	return asset, nil
}

// ListAssets lists the user's assets.
func (uc *AssetUseCase) ListAssets(ctx context.Context, user *domain.User) ([]*domain.Asset, error) {
	return uc.assetRepo.ListByUser(ctx, user.ID)
}

// DeleteAsset deletes the user's asset. Assets referenced by transactions
// cannot be deleted.
func (uc *AssetUseCase) DeleteAsset(ctx context.Context, user *domain.User, id string) error {
	exists, err := uc.transactionRepo.ExistsByAsset(ctx, id)
	if err != nil {
		return err
	}

	if exists {
		return domain.ErrAssetCantBeDeleted
	}

	deleted, err := uc.assetRepo.DeleteByID(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if deleted == "" {
		return domain.ErrAssetNotFound
	}

	if uc.metrics != nil {
		uc.metrics.AssetOperations.WithLabelValues("delete").Inc()
	}

	return nil
}
