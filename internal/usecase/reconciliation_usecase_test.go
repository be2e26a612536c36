package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
	"github.com/iho/finances/internal/usecase/mocks"
)

func TestReconciliationUseCase_ReconcileAsset(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}

	assetRepo := mocks.NewMockAssetRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(assetRepo, transactionRepo)

	require.NoError(t, assetRepo.Create(ctx, &domain.Asset{
		ID: "asset-1", UserID: "user-1", CurrencyID: "cur-usd", Balance: dec("70"),
	}))
	require.NoError(t, transactionRepo.Create(ctx, nil, &domain.Transaction{
		ID: "t1", UserID: "user-1", AssetID: "asset-1",
		Type: domain.TransactionTypeIncome, Amount: dec("100"), Date: time.Now(),
	}))
	require.NoError(t, transactionRepo.Create(ctx, nil, &domain.Transaction{
		ID: "t2", UserID: "user-1", AssetID: "asset-1",
		Type: domain.TransactionTypeExpense, Amount: dec("30"), Date: time.Now(),
	}))

	result, err := uc.ReconcileAsset(ctx, user, "asset-1")
	require.NoError(t, err)
	assert.True(t, result.IsReconciled)
	assert.True(t, result.Difference.IsZero())
}

func TestReconciliationUseCase_ReconcileAsset_CountsTransferCredits(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}

	assetRepo := mocks.NewMockAssetRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(assetRepo, transactionRepo)

	require.NoError(t, assetRepo.Create(ctx, &domain.Asset{
		ID: "asset-eur", UserID: "user-1", CurrencyID: "cur-eur", Balance: dec("90"),
	}))

	counter := "asset-eur"
	credit := dec("90")
	require.NoError(t, transactionRepo.Create(ctx, nil, &domain.Transaction{
		ID: "t1", UserID: "user-1", AssetID: "asset-usd",
		CounterAssetID: &counter, CounterAmount: &credit,
		Type: domain.TransactionTypeTransfer, Amount: dec("100"), Date: time.Now(),
	}))

	result, err := uc.ReconcileAsset(ctx, user, "asset-eur")
	require.NoError(t, err)
	assert.True(t, result.IsReconciled, "difference %s", result.Difference)
}

func TestReconciliationUseCase_ReconcileUser_ReportsDrift(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}

	assetRepo := mocks.NewMockAssetRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(assetRepo, transactionRepo)

	require.NoError(t, assetRepo.Create(ctx, &domain.Asset{
		ID: "asset-ok", UserID: "user-1", Balance: dec("0"),
	}))
	require.NoError(t, assetRepo.Create(ctx, &domain.Asset{
		ID: "asset-drift", UserID: "user-1", Balance: dec("5"),
	}))

	report, err := uc.ReconcileUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalAssets)
	assert.Equal(t, 1, report.ReconciledAssets)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, "asset-drift", report.Discrepancies[0].AssetID)
	assert.True(t, dec("5").Equal(report.Discrepancies[0].Difference))
}

func TestReconciliationUseCase_ReconcileAsset_ForeignAsset(t *testing.T) {
	ctx := context.Background()

	assetRepo := mocks.NewMockAssetRepository()
	uc := usecase.NewReconciliationUseCase(assetRepo, mocks.NewMockTransactionRepository())

	require.NoError(t, assetRepo.Create(ctx, &domain.Asset{
		ID: "asset-1", UserID: "user-2", Balance: dec("0"),
	}))

	_, err := uc.ReconcileAsset(ctx, &domain.User{ID: "user-1"}, "asset-1")
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}
