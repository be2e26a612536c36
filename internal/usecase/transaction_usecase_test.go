package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/metrics"
	"github.com/iho/finances/internal/usecase"
	"github.com/iho/finances/internal/usecase/mocks"
)

type transactionFixture struct {
	transactionRepo *mocks.MockTransactionRepository
	assetRepo       *mocks.MockAssetRepository
	categoryRepo    *mocks.MockCategoryRepository
	currencyRepo    *mocks.MockCurrencyRepository
	uc              *usecase.TransactionUseCase

	user *domain.User
}

func newTransactionFixture(t *testing.T) *transactionFixture {
	t.Helper()

	f := &transactionFixture{
		transactionRepo: mocks.NewMockTransactionRepository(),
		assetRepo:       mocks.NewMockAssetRepository(),
		categoryRepo:    mocks.NewMockCategoryRepository(),
		currencyRepo:    mocks.NewMockCurrencyRepository(),
	}

	converter := usecase.NewConverter(usecase.NewStoredRateSource())
	f.uc = usecase.NewTransactionUseCase(
		mocks.NewMockTransactionManager(),
		f.transactionRepo,
		f.assetRepo,
		f.categoryRepo,
		f.currencyRepo,
		converter,
		mocks.NewMockIDGenerator(),
	)

	ctx := context.Background()
	require.NoError(t, f.currencyRepo.Create(ctx, &domain.Currency{ID: "cur-usd", Code: "USD", Rate: dec("1.0")}))
	require.NoError(t, f.currencyRepo.Create(ctx, &domain.Currency{ID: "cur-eur", Code: "EUR", Rate: dec("0.9")}))

	f.user = &domain.User{ID: "user-1"}

	require.NoError(t, f.assetRepo.Create(ctx, &domain.Asset{
		ID: "asset-usd", UserID: "user-1", CurrencyID: "cur-usd", Balance: dec("1000"),
	}))
	require.NoError(t, f.assetRepo.Create(ctx, &domain.Asset{
		ID: "asset-eur", UserID: "user-1", CurrencyID: "cur-eur", Balance: dec("500"),
	}))

	return f
}

func (f *transactionFixture) balance(t *testing.T, assetID string) string {
	t.Helper()
	asset, err := f.assetRepo.GetByID(context.Background(), assetID)
	require.NoError(t, err)
	return asset.Balance.String()
}

func TestTransactionUseCase_AddTransaction(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.AddTransactionInput
		wantBalance string
		wantErr     error
	}{
		{
			name: "income credits the asset",
			input: usecase.AddTransactionInput{
				AssetID: "asset-usd",
				Type:    domain.TransactionTypeIncome,
				Amount:  dec("250"),
				Date:    time.Now(),
			},
			wantBalance: "1250",
		},
		{
			name: "expense debits the asset",
			input: usecase.AddTransactionInput{
				AssetID: "asset-usd",
				Type:    domain.TransactionTypeExpense,
				Amount:  dec("250"),
				Date:    time.Now(),
			},
			wantBalance: "750",
		},
		{
			name: "zero amount is rejected",
			input: usecase.AddTransactionInput{
				AssetID: "asset-usd",
				Type:    domain.TransactionTypeIncome,
				Amount:  dec("0"),
				Date:    time.Now(),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "unknown type is rejected",
			input: usecase.AddTransactionInput{
				AssetID: "asset-usd",
				Type:    domain.TransactionType("refund"),
				Amount:  dec("10"),
				Date:    time.Now(),
			},
			wantErr: domain.ErrInvalidTransactionType,
		},
		{
			name: "transfer without counter asset is rejected",
			input: usecase.AddTransactionInput{
				AssetID: "asset-usd",
				Type:    domain.TransactionTypeTransfer,
				Amount:  dec("10"),
				Date:    time.Now(),
			},
			wantErr: domain.ErrCounterAssetRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransactionFixture(t)

			transaction, err := f.uc.AddTransaction(context.Background(), f.user, tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "1000", f.balance(t, "asset-usd"))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, transaction)
			assert.Equal(t, tt.wantBalance, f.balance(t, "asset-usd"))
		})
	}
}

func TestTransactionUseCase_AddTransaction_Transfer(t *testing.T) {
	f := newTransactionFixture(t)

	counter := "asset-eur"
	transaction, err := f.uc.AddTransaction(context.Background(), f.user, usecase.AddTransactionInput{
		AssetID:        "asset-usd",
		CounterAssetID: &counter,
		Type:           domain.TransactionTypeTransfer,
		Amount:         dec("100"),
		Date:           time.Now(),
	})
	require.NoError(t, err)

	// 100 USD leaves, 90 EUR arrives.
	assert.Equal(t, "900", f.balance(t, "asset-usd"))
	assert.Equal(t, "590", f.balance(t, "asset-eur"))

	require.NotNil(t, transaction.CounterAmount)
	assert.True(t, dec("90").Equal(*transaction.CounterAmount), "got %s", transaction.CounterAmount)
}

func TestTransactionUseCase_AddTransaction_TransferToSelf(t *testing.T) {
	f := newTransactionFixture(t)

	counter := "asset-usd"
	_, err := f.uc.AddTransaction(context.Background(), f.user, usecase.AddTransactionInput{
		AssetID:        "asset-usd",
		CounterAssetID: &counter,
		Type:           domain.TransactionTypeTransfer,
		Amount:         dec("100"),
		Date:           time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrSameAsset)
}

func TestTransactionUseCase_AddTransaction_ForeignAsset(t *testing.T) {
	f := newTransactionFixture(t)

	require.NoError(t, f.assetRepo.Create(context.Background(), &domain.Asset{
		ID: "asset-other", UserID: "user-2", CurrencyID: "cur-usd",
	}))

	_, err := f.uc.AddTransaction(context.Background(), f.user, usecase.AddTransactionInput{
		AssetID: "asset-other",
		Type:    domain.TransactionTypeIncome,
		Amount:  dec("10"),
		Date:    time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestTransactionUseCase_AddTransaction_DeletedCategory(t *testing.T) {
	f := newTransactionFixture(t)

	ctx := context.Background()
	require.NoError(t, f.categoryRepo.Create(ctx, &domain.TransactionCategory{
		ID: "cat-1", UserID: "user-1", Title: "food",
	}))
	_, err := f.categoryRepo.SoftDeleteByID(ctx, "cat-1", "user-1")
	require.NoError(t, err)

	category := "cat-1"
	_, err = f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID:    "asset-usd",
		CategoryID: &category,
		Type:       domain.TransactionTypeExpense,
		Amount:     dec("10"),
		Date:       time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestTransactionUseCase_ChangeTransaction(t *testing.T) {
	f := newTransactionFixture(t)

	ctx := context.Background()
	transaction, err := f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID: "asset-usd",
		Type:    domain.TransactionTypeExpense,
		Amount:  dec("100"),
		Date:    time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, "900", f.balance(t, "asset-usd"))

	newAmount := dec("40")
	changed, err := f.uc.ChangeTransaction(ctx, f.user, usecase.ChangeTransactionInput{
		ID:     transaction.ID,
		Amount: &newAmount,
	})
	require.NoError(t, err)

	// Old effect reverted, new one applied.
	assert.Equal(t, "960", f.balance(t, "asset-usd"))
	assert.True(t, dec("40").Equal(changed.Amount))
}

func TestTransactionUseCase_ChangeTransaction_TransferReconverts(t *testing.T) {
	f := newTransactionFixture(t)

	ctx := context.Background()
	counter := "asset-eur"
	transaction, err := f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID:        "asset-usd",
		CounterAssetID: &counter,
		Type:           domain.TransactionTypeTransfer,
		Amount:         dec("100"),
		Date:           time.Now(),
	})
	require.NoError(t, err)

	newAmount := dec("200")
	_, err = f.uc.ChangeTransaction(ctx, f.user, usecase.ChangeTransactionInput{
		ID:     transaction.ID,
		Amount: &newAmount,
	})
	require.NoError(t, err)

	assert.Equal(t, "800", f.balance(t, "asset-usd"))
	assert.Equal(t, "680", f.balance(t, "asset-eur"))
}

func TestTransactionUseCase_ChangeTransaction_TypeAndAssetImmutable(t *testing.T) {
	f := newTransactionFixture(t)

	ctx := context.Background()
	transaction, err := f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID: "asset-usd",
		Type:    domain.TransactionTypeExpense,
		Amount:  dec("100"),
		Date:    time.Now(),
	})
	require.NoError(t, err)

	income := domain.TransactionTypeIncome
	_, err = f.uc.ChangeTransaction(ctx, f.user, usecase.ChangeTransactionInput{
		ID:   transaction.ID,
		Type: &income,
	})
	require.ErrorIs(t, err, domain.ErrTransactionCantBeChanged)

	otherAsset := "asset-eur"
	_, err = f.uc.ChangeTransaction(ctx, f.user, usecase.ChangeTransactionInput{
		ID:      transaction.ID,
		AssetID: &otherAsset,
	})
	require.ErrorIs(t, err, domain.ErrTransactionCantBeChanged)

	// Rejected patches leave the balance untouched.
	assert.Equal(t, "900", f.balance(t, "asset-usd"))

	// Restating the current values is not a change.
	expense := domain.TransactionTypeExpense
	sameAsset := "asset-usd"
	_, err = f.uc.ChangeTransaction(ctx, f.user, usecase.ChangeTransactionInput{
		ID:      transaction.ID,
		Type:    &expense,
		AssetID: &sameAsset,
	})
	require.NoError(t, err)
}

func TestTransactionUseCase_ChangeTransaction_NotOwner(t *testing.T) {
	f := newTransactionFixture(t)

	ctx := context.Background()
	transaction, err := f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID: "asset-usd",
		Type:    domain.TransactionTypeIncome,
		Amount:  dec("10"),
		Date:    time.Now(),
	})
	require.NoError(t, err)

	amount := dec("20")
	_, err = f.uc.ChangeTransaction(ctx, &domain.User{ID: "user-2"}, usecase.ChangeTransactionInput{
		ID:     transaction.ID,
		Amount: &amount,
	})
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

// newTestMetrics registers against a throwaway registry so tests never
// collide on the process-wide default.
func newTestMetrics() *metrics.Metrics {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
	return metrics.New()
}

func TestTransactionUseCase_RecordsMetrics(t *testing.T) {
	f := newTransactionFixture(t)
	m := newTestMetrics()
	f.uc.WithMetrics(m)

	ctx := context.Background()
	transaction, err := f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID: "asset-usd",
		Type:    domain.TransactionTypeIncome,
		Amount:  dec("250"),
		Date:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionsCreated.WithLabelValues("income")))

	require.NoError(t, f.uc.DeleteTransaction(ctx, f.user, transaction.ID))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionsDeleted))

	_, err = f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID: "asset-missing",
		Type:    domain.TransactionTypeIncome,
		Amount:  dec("10"),
		Date:    time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionErrors.WithLabelValues("add")))
}

func TestTransactionUseCase_DeleteTransaction(t *testing.T) {
	f := newTransactionFixture(t)

	ctx := context.Background()
	counter := "asset-eur"
	transaction, err := f.uc.AddTransaction(ctx, f.user, usecase.AddTransactionInput{
		AssetID:        "asset-usd",
		CounterAssetID: &counter,
		Type:           domain.TransactionTypeTransfer,
		Amount:         dec("100"),
		Date:           time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteTransaction(ctx, f.user, transaction.ID))

	// Both sides restored, even after the rate would have moved.
	assert.Equal(t, "1000", f.balance(t, "asset-usd"))
	assert.Equal(t, "500", f.balance(t, "asset-eur"))

	err = f.uc.DeleteTransaction(ctx, f.user, transaction.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionUseCase_ListTransactions_InvalidPeriod(t *testing.T) {
	f := newTransactionFixture(t)

	_, err := f.uc.ListTransactions(context.Background(), f.user, usecase.TransactionFilter{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
