package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
)

// ReconciliationUseCase verifies the asset balance invariant: every
// asset's stored balance must equal the signed sum of the transactions
// that touched it.
type ReconciliationUseCase struct {
	assetRepo       AssetRepository
	transactionRepo TransactionRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(assetRepo AssetRepository, transactionRepo TransactionRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
	}
}

// ReconciliationResult represents the outcome for a single asset.
type ReconciliationResult struct {
	AssetID           string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	CheckedAt         time.Time
}

// ReconcileAsset recomputes the user's asset balance from its
// transaction history and compares it to the stored balance.
func (uc *ReconciliationUseCase) ReconcileAsset(ctx context.Context, user *domain.User, assetID string) (*ReconciliationResult, error) {
	asset, err := uc.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if asset.UserID != user.ID {
		return nil, domain.ErrAssetNotFound
	}

	calculated, err := uc.transactionRepo.SumEffectsByAsset(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	difference := asset.Balance.Sub(calculated)

	return &ReconciliationResult{
		AssetID:           asset.ID,
		RecordedBalance:   asset.Balance,
		CalculatedBalance: calculated,
		Difference:        difference,
		IsReconciled:      difference.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}, nil
}

// ReconciliationReport aggregates results across a user's assets.
type ReconciliationReport struct {
	TotalAssets      int
	ReconciledAssets int
	Discrepancies    []*ReconciliationResult
	CheckedAt        time.Time
}

// ReconcileUser reconciles every asset of the user and reports any
// discrepancies.
func (uc *ReconciliationUseCase) ReconcileUser(ctx context.Context, user *domain.User) (*ReconciliationReport, error) {
	assets, err := uc.assetRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalAssets:   len(assets),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, asset := range assets {
		result, err := uc.ReconcileAsset(ctx, user, asset.ID)
		if err != nil {
			return nil, err
		}

		if result.IsReconciled {
			report.ReconciledAssets++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}
