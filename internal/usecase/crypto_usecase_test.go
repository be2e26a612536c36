package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
	"github.com/iho/finances/internal/usecase/mocks"
)

type cryptoFixture struct {
	portfolioRepo *mocks.MockCryptoPortfolioRepository
	currencyRepo  *mocks.MockCryptoCurrencyRepository
	assetRepo     *mocks.MockCryptoAssetRepository
	txRepo        *mocks.MockCryptoTransactionRepository
	quotes        *mocks.MockCryptoQuoteSource
	uc            *usecase.CryptoUseCase

	user *domain.User
}

func newCryptoFixture(t *testing.T) *cryptoFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &cryptoFixture{
		portfolioRepo: mocks.NewMockCryptoPortfolioRepository(),
		currencyRepo:  mocks.NewMockCryptoCurrencyRepository(),
		assetRepo:     mocks.NewMockCryptoAssetRepository(),
		txRepo:        mocks.NewMockCryptoTransactionRepository(),
		quotes:        mocks.NewMockCryptoQuoteSource(ctrl),
	}

	f.uc = usecase.NewCryptoUseCase(
		mocks.NewMockTransactionManager(),
		f.portfolioRepo,
		f.currencyRepo,
		f.assetRepo,
		f.txRepo,
		f.quotes,
		mocks.NewMockIDGenerator(),
	)
	f.user = &domain.User{ID: "user-1"}

	return f
}

func (f *cryptoFixture) seedHolding(t *testing.T, amount string) *domain.CryptoAsset {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.portfolioRepo.Create(ctx, &domain.CryptoPortfolio{
		ID: "pf-1", UserID: "user-1", Title: "main",
	}))
	require.NoError(t, f.currencyRepo.Create(ctx, &domain.CryptoCurrency{
		ID: "cc-btc", Code: "BTC", Name: "Bitcoin", Price: dec("60000"),
	}))

	asset := &domain.CryptoAsset{
		ID: "ca-1", PortfolioID: "pf-1", UserID: "user-1",
		CryptoCurrencyID: "cc-btc", Amount: dec(amount),
	}
	require.NoError(t, f.assetRepo.Create(ctx, asset))

	return asset
}

func TestCryptoUseCase_AddCryptoCurrency(t *testing.T) {
	f := newCryptoFixture(t)

	f.quotes.EXPECT().Quote(gomock.Any(), "ETH").Return(dec("2500.50"), nil)

	currency, err := f.uc.AddCryptoCurrency(context.Background(), usecase.AddCryptoCurrencyInput{
		Code: "eth", Name: "Ethereum",
	})
	require.NoError(t, err)
	assert.Equal(t, "ETH", currency.Code)
	assert.True(t, dec("2500.50").Equal(currency.Price), "got %s", currency.Price)
}

func TestCryptoUseCase_AddCryptoCurrency_UnknownToProvider(t *testing.T) {
	f := newCryptoFixture(t)

	f.quotes.EXPECT().Quote(gomock.Any(), "NEWCOIN").Return(dec("0"), domain.ErrRateUnavailable)

	currency, err := f.uc.AddCryptoCurrency(context.Background(), usecase.AddCryptoCurrencyInput{
		Code: "NEWCOIN", Name: "New Coin",
	})
	require.NoError(t, err)
	assert.True(t, currency.Price.IsZero())
}

func TestCryptoUseCase_RefreshPrices(t *testing.T) {
	f := newCryptoFixture(t)
	f.seedHolding(t, "1")

	f.quotes.EXPECT().Quote(gomock.Any(), "BTC").Return(dec("65000"), nil)

	require.NoError(t, f.uc.RefreshPrices(context.Background()))

	currency, err := f.currencyRepo.GetByID(context.Background(), "cc-btc")
	require.NoError(t, err)
	assert.True(t, dec("65000").Equal(currency.Price), "got %s", currency.Price)
}

func TestCryptoUseCase_AddCryptoTransaction_Buy(t *testing.T) {
	f := newCryptoFixture(t)
	asset := f.seedHolding(t, "0.5")

	transaction, err := f.uc.AddCryptoTransaction(context.Background(), f.user, usecase.AddCryptoTransactionInput{
		CryptoAssetID: asset.ID,
		Type:          domain.CryptoTransactionTypeBuy,
		Amount:        dec("0.25"),
		Price:         dec("60000"),
		Date:          time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, transaction)

	stored, err := f.assetRepo.GetByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.True(t, dec("0.75").Equal(stored.Amount), "got %s", stored.Amount)
}

func TestCryptoUseCase_AddCryptoTransaction_SellTooMuch(t *testing.T) {
	f := newCryptoFixture(t)
	asset := f.seedHolding(t, "0.5")

	_, err := f.uc.AddCryptoTransaction(context.Background(), f.user, usecase.AddCryptoTransactionInput{
		CryptoAssetID: asset.ID,
		Type:          domain.CryptoTransactionTypeSell,
		Amount:        dec("0.6"),
		Price:         dec("60000"),
		Date:          time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientCryptoAsset)

	stored, err := f.assetRepo.GetByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.True(t, dec("0.5").Equal(stored.Amount), "holding must be untouched, got %s", stored.Amount)
}

func TestCryptoUseCase_AddCryptoTransaction_ForeignAsset(t *testing.T) {
	f := newCryptoFixture(t)
	asset := f.seedHolding(t, "1")

	_, err := f.uc.AddCryptoTransaction(context.Background(), &domain.User{ID: "user-2"}, usecase.AddCryptoTransactionInput{
		CryptoAssetID: asset.ID,
		Type:          domain.CryptoTransactionTypeBuy,
		Amount:        dec("1"),
		Price:         dec("60000"),
		Date:          time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrCryptoAssetNotFound)
}

func TestCryptoUseCase_DeleteCryptoTransaction(t *testing.T) {
	f := newCryptoFixture(t)
	asset := f.seedHolding(t, "0.5")

	ctx := context.Background()
	transaction, err := f.uc.AddCryptoTransaction(ctx, f.user, usecase.AddCryptoTransactionInput{
		CryptoAssetID: asset.ID,
		Type:          domain.CryptoTransactionTypeBuy,
		Amount:        dec("0.25"),
		Price:         dec("60000"),
		Date:          time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteCryptoTransaction(ctx, f.user, transaction.ID))

	stored, err := f.assetRepo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.True(t, dec("0.5").Equal(stored.Amount), "got %s", stored.Amount)
}

func TestCryptoUseCase_PortfolioValue(t *testing.T) {
	f := newCryptoFixture(t)
	f.seedHolding(t, "0.5")

	ctx := context.Background()
	require.NoError(t, f.currencyRepo.Create(ctx, &domain.CryptoCurrency{
		ID: "cc-eth", Code: "ETH", Price: dec("2500"),
	}))
	require.NoError(t, f.assetRepo.Create(ctx, &domain.CryptoAsset{
		ID: "ca-2", PortfolioID: "pf-1", UserID: "user-1",
		CryptoCurrencyID: "cc-eth", Amount: dec("2"),
	}))

	value, err := f.uc.PortfolioValue(ctx, f.user, "pf-1")
	require.NoError(t, err)

	// 0.5 * 60000 + 2 * 2500
	assert.True(t, dec("35000").Equal(value), "got %s", value)
}

func TestCryptoUseCase_Portfolios(t *testing.T) {
	f := newCryptoFixture(t)

	ctx := context.Background()
	portfolio, err := f.uc.AddPortfolio(ctx, f.user, "main")
	require.NoError(t, err)

	_, err = f.uc.GetPortfolio(ctx, &domain.User{ID: "user-2"}, portfolio.ID)
	require.ErrorIs(t, err, domain.ErrPortfolioNotFound)

	renamed, err := f.uc.ChangePortfolio(ctx, f.user, portfolio.ID, "long term")
	require.NoError(t, err)
	assert.Equal(t, "long term", renamed.Title)

	require.NoError(t, f.uc.DeletePortfolio(ctx, f.user, portfolio.ID))
	err = f.uc.DeletePortfolio(ctx, f.user, portfolio.ID)
	require.ErrorIs(t, err, domain.ErrPortfolioNotFound)
}
