package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/metrics"
)

// CryptoUseCase handles the crypto subsystem: portfolios, crypto
// currencies, crypto assets and crypto transactions. It mirrors the fiat
// side with portfolio-scoped ownership.
type CryptoUseCase struct {
	txManager     TransactionManager
	portfolioRepo CryptoPortfolioRepository
	currencyRepo  CryptoCurrencyRepository
	assetRepo     CryptoAssetRepository
	txRepo        CryptoTransactionRepository
	quotes        CryptoQuoteSource
	idGen         IDGenerator
	metrics       *metrics.Metrics
}

// NewCryptoUseCase creates a new CryptoUseCase.
func NewCryptoUseCase(
	txManager TransactionManager,
	portfolioRepo CryptoPortfolioRepository,
	currencyRepo CryptoCurrencyRepository,
	assetRepo CryptoAssetRepository,
	txRepo CryptoTransactionRepository,
	quotes CryptoQuoteSource,
	idGen IDGenerator,
) *CryptoUseCase {
	return &CryptoUseCase{
		txManager:     txManager,
		portfolioRepo: portfolioRepo,
		currencyRepo:  currencyRepo,
		assetRepo:     assetRepo,
		txRepo:        txRepo,
		quotes:        quotes,
		idGen:         idGen,
	}
}

// WithMetrics instruments crypto operations.
func (uc *CryptoUseCase) WithMetrics(m *metrics.Metrics) *CryptoUseCase {
	uc.metrics = m
	return uc
}

// AddPortfolio creates a crypto portfolio for the user.
func (uc *CryptoUseCase) AddPortfolio(ctx context.Context, user *domain.User, title string) (*domain.CryptoPortfolio, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	portfolio := &domain.CryptoPortfolio{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}

	return portfolio, nil
}

// ChangePortfolio renames the user's portfolio.
func (uc *CryptoUseCase) ChangePortfolio(ctx context.Context, user *domain.User, id, title string) (*domain.CryptoPortfolio, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	portfolio, err := uc.getOwnedPortfolio(ctx, user, id)
	if err != nil {
		return nil, err
	}

	portfolio.Title = title
	portfolio.UpdatedAt = time.Now().UTC()

	if err := uc.portfolioRepo.Update(ctx, portfolio); err != nil {
		return nil, err
	}

	return portfolio, nil
}

// GetPortfolio retrieves the user's portfolio by ID.
func (uc *CryptoUseCase) GetPortfolio(ctx context.Context, user *domain.User, id string) (*domain.CryptoPortfolio, error) {
	return uc.getOwnedPortfolio(ctx, user, id)
}

// ListPortfolios lists the user's portfolios.
func (uc *CryptoUseCase) ListPortfolios(ctx context.Context, user *domain.User) ([]*domain.CryptoPortfolio, error) {
	return uc.portfolioRepo.ListByUser(ctx, user.ID)
}

// DeletePortfolio deletes the user's portfolio.
func (uc *CryptoUseCase) DeletePortfolio(ctx context.Context, user *domain.User, id string) error {
	deleted, err := uc.portfolioRepo.DeleteByID(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if deleted == "" {
		return domain.ErrPortfolioNotFound
	}

	return nil
}

// AddCryptoCurrencyInput represents input for registering a crypto
// currency.
type AddCryptoCurrencyInput struct {
	Code string
	Name string
}

// AddCryptoCurrency registers a crypto currency and pulls its initial
// quote from the market data source.
func (uc *CryptoUseCase) AddCryptoCurrency(ctx context.Context, input AddCryptoCurrencyInput) (*domain.CryptoCurrency, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if err := domain.ValidateCurrencyCode(code); err != nil {
		return nil, err
	}

	price, err := uc.quotes.Quote(ctx, code)
	if err != nil {
		// A currency may be registered before the provider knows it.
		if uc.metrics != nil {
			uc.metrics.CryptoQuoteErrors.Inc()
		}
		price = decimal.Zero
	}

	now := time.Now().UTC()
	currency := &domain.CryptoCurrency{
		ID:        uc.idGen.Generate(),
		Code:      code,
		Name:      input.Name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}

	return currency, nil
}

// ListCryptoCurrencies lists all registered crypto currencies.
func (uc *CryptoUseCase) ListCryptoCurrencies(ctx context.Context) ([]*domain.CryptoCurrency, error) {
	return uc.currencyRepo.List(ctx)
}

// GetCryptoCurrency retrieves a crypto currency by ID.
func (uc *CryptoUseCase) GetCryptoCurrency(ctx context.Context, id string) (*domain.CryptoCurrency, error) {
	return uc.currencyRepo.GetByID(ctx, id)
}

// RefreshPrices refreshes every registered crypto currency's stored price
// from the market data source. Currencies the provider does not know keep
// their last price.
func (uc *CryptoUseCase) RefreshPrices(ctx context.Context) error {
	currencies, err := uc.currencyRepo.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, currency := range currencies {
		price, err := uc.quotes.Quote(ctx, currency.Code)
		if err != nil {
			if uc.metrics != nil {
				uc.metrics.CryptoQuoteErrors.Inc()
			}
			continue
		}

		if err := uc.currencyRepo.UpdatePrice(ctx, currency.ID, price, now); err != nil {
			return err
		}
	}

	if uc.metrics != nil {
		uc.metrics.CryptoPriceRefreshes.Inc()
	}

	return nil
}

// AddCryptoAssetInput represents input for creating a crypto asset.
type AddCryptoAssetInput struct {
	PortfolioID      string
	CryptoCurrencyID string
	Amount           decimal.Decimal
}

// AddCryptoAsset creates a crypto asset inside the user's portfolio.
func (uc *CryptoUseCase) AddCryptoAsset(ctx context.Context, user *domain.User, input AddCryptoAssetInput) (*domain.CryptoAsset, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := uc.getOwnedPortfolio(ctx, user, input.PortfolioID); err != nil {
		return nil, err
	}

	if _, err := uc.currencyRepo.GetByID(ctx, input.CryptoCurrencyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	asset := &domain.CryptoAsset{
		ID:               uc.idGen.Generate(),
		PortfolioID:      input.PortfolioID,
		UserID:           user.ID,
		CryptoCurrencyID: input.CryptoCurrencyID,
		Amount:           input.Amount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// ListCryptoAssets lists the crypto assets of the user's portfolio.
func (uc *CryptoUseCase) ListCryptoAssets(ctx context.Context, user *domain.User, portfolioID string) ([]*domain.CryptoAsset, error) {
	if _, err := uc.getOwnedPortfolio(ctx, user, portfolioID); err != nil {
		return nil, err
	}

	return uc.assetRepo.ListByPortfolio(ctx, portfolioID, user.ID)
}

// DeleteCryptoAsset deletes the user's crypto asset.
func (uc *CryptoUseCase) DeleteCryptoAsset(ctx context.Context, user *domain.User, id string) error {
	deleted, err := uc.assetRepo.DeleteByID(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if deleted == "" {
		return domain.ErrCryptoAssetNotFound
	}

	return nil
}

// AddCryptoTransactionInput represents input for a buy or sell.
type AddCryptoTransactionInput struct {
	CryptoAssetID string
	Type          domain.CryptoTransactionType
	Amount        decimal.Decimal
	Price         decimal.Decimal
	Date          time.Time
}

// AddCryptoTransaction records a buy or sell and adjusts the crypto
// asset's amount atomically. Selling more than the holding fails.
func (uc *CryptoUseCase) AddCryptoTransaction(ctx context.Context, user *domain.User, input AddCryptoTransactionInput) (*domain.CryptoTransaction, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, input.CryptoAssetID)
	if err != nil {
		return nil, err
	}

	if asset.UserID != user.ID {
		return nil, domain.ErrCryptoAssetNotFound
	}

	transaction := &domain.CryptoTransaction{
		ID:            uc.idGen.Generate(),
		UserID:        user.ID,
		PortfolioID:   asset.PortfolioID,
		CryptoAssetID: asset.ID,
		Type:          input.Type,
		Amount:        input.Amount,
		Price:         input.Price,
		Date:          input.Date,
		CreatedAt:     time.Now().UTC(),
	}

	newAmount := asset.Amount.Add(transaction.AmountEffect())
	if newAmount.IsNegative() {
		return nil, domain.ErrInsufficientCryptoAsset
	}

	if err := uc.txRepo.Create(ctx, tx, transaction); err != nil {
		return nil, err
	}

	if err := uc.assetRepo.UpdateAmount(ctx, tx, asset.ID, newAmount, transaction.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CryptoTransactionsCreated.WithLabelValues(string(transaction.Type)).Inc()
	}

	return transaction, nil
}

// ListCryptoTransactions lists the crypto transactions of the user's
// portfolio.
func (uc *CryptoUseCase) ListCryptoTransactions(ctx context.Context, user *domain.User, portfolioID string) ([]*domain.CryptoTransaction, error) {
	if _, err := uc.getOwnedPortfolio(ctx, user, portfolioID); err != nil {
		return nil, err
	}

	return uc.txRepo.ListByPortfolio(ctx, portfolioID, user.ID)
}

// DeleteCryptoTransaction deletes a crypto transaction and reverts its
// effect on the asset amount atomically.
func (uc *CryptoUseCase) DeleteCryptoTransaction(ctx context.Context, user *domain.User, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	transaction, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if transaction.UserID != user.ID {
		return domain.ErrCryptoTransactionNotFound
	}

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, transaction.CryptoAssetID)
	if err != nil {
		return err
	}

	newAmount := asset.Amount.Sub(transaction.AmountEffect())
	if newAmount.IsNegative() {
		return domain.ErrInsufficientCryptoAsset
	}

	deleted, err := uc.txRepo.DeleteByID(ctx, tx, transaction.ID, user.ID)
	if err != nil {
		return err
	}

	if deleted == "" {
		return domain.ErrCryptoTransactionNotFound
	}

	if err := uc.assetRepo.UpdateAmount(ctx, tx, asset.ID, newAmount, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PortfolioValue values the portfolio in USD using each crypto currency's
// stored price.
func (uc *CryptoUseCase) PortfolioValue(ctx context.Context, user *domain.User, portfolioID string) (decimal.Decimal, error) {
	assets, err := uc.ListCryptoAssets(ctx, user, portfolioID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, asset := range assets {
		currency, err := uc.currencyRepo.GetByID(ctx, asset.CryptoCurrencyID)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(asset.Amount.Mul(currency.Price))
	}

	return RoundForDisplay(total, "USD"), nil
}

func (uc *CryptoUseCase) getOwnedPortfolio(ctx context.Context, user *domain.User, id string) (*domain.CryptoPortfolio, error) {
	portfolio, err := uc.portfolioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if portfolio.UserID != user.ID {
		return nil, domain.ErrPortfolioNotFound
	}

	return portfolio, nil
}
