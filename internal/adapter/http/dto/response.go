package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse represents a user in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	BaseCurrencyID *string   `json:"base_currency_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		BaseCurrencyID: u.BaseCurrencyID,
		CreatedAt:      u.CreatedAt,
	}
}

// AuthResponse carries a freshly issued token with its user.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// CurrencyResponse represents a currency in API responses.
type CurrencyResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"`
	IsCustom   bool            `json:"is_custom"`
	RateStable bool            `json:"rate_stable"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CurrencyFromDomain converts a domain currency to a response.
func CurrencyFromDomain(c *domain.Currency) *CurrencyResponse {
	return &CurrencyResponse{
		ID:         c.ID,
		Code:       c.Code,
		Name:       c.Name,
		Rate:       c.Rate,
		IsCustom:   c.IsCustom,
		RateStable: c.RateStable,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// CurrenciesFromDomain converts domain currencies to responses.
func CurrenciesFromDomain(currencies []*domain.Currency) []*CurrencyResponse {
	result := make([]*CurrencyResponse, len(currencies))
	for i, c := range currencies {
		result[i] = CurrencyFromDomain(c)
	}
	return result
}

// AssetResponse represents an asset in API responses.
type AssetResponse struct {
	ID         string          `json:"id"`
	CurrencyID string          `json:"currency_id"`
	Title      string          `json:"title"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AssetFromDomain converts a domain asset to a response.
func AssetFromDomain(a *domain.Asset) *AssetResponse {
	return &AssetResponse{
		ID:         a.ID,
		CurrencyID: a.CurrencyID,
		Title:      a.Title,
		Balance:    a.Balance,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AssetsFromDomain converts domain assets to responses.
func AssetsFromDomain(assets []*domain.Asset) []*AssetResponse {
	result := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID             string           `json:"id"`
	AssetID        string           `json:"asset_id"`
	CounterAssetID *string          `json:"counter_asset_id,omitempty"`
	CounterAmount  *decimal.Decimal `json:"counter_amount,omitempty"`
	CategoryID     *string          `json:"category_id,omitempty"`
	Type           string           `json:"type"`
	Amount         decimal.Decimal  `json:"amount"`
	Date           time.Time        `json:"date"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:             t.ID,
		AssetID:        t.AssetID,
		CounterAssetID: t.CounterAssetID,
		CounterAmount:  t.CounterAmount,
		CategoryID:     t.CategoryID,
		Type:           string(t.Type),
		Amount:         t.Amount,
		Date:           t.Date,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// CategoryResponse represents a transaction category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.TransactionCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Title:     c.Title,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.TransactionCategory) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// TotalResponse carries an aggregate total in the user's base currency.
type TotalResponse struct {
	Total decimal.Decimal `json:"total"`
}

// CategoryTotalResponse is one group of the category aggregation.
type CategoryTotalResponse struct {
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// CategoryTotalsFromUseCase converts aggregation groups to responses,
// keeping their order.
func CategoryTotalsFromUseCase(totals []usecase.TotalByCategory) []*CategoryTotalResponse {
	result := make([]*CategoryTotalResponse, len(totals))
	for i, t := range totals {
		result[i] = &CategoryTotalResponse{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Total:        t.Total,
		}
	}
	return result
}

// PortfolioResponse represents a crypto portfolio in API responses.
type PortfolioResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PortfolioFromDomain converts a domain portfolio to a response.
func PortfolioFromDomain(p *domain.CryptoPortfolio) *PortfolioResponse {
	return &PortfolioResponse{
		ID:        p.ID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PortfoliosFromDomain converts domain portfolios to responses.
func PortfoliosFromDomain(portfolios []*domain.CryptoPortfolio) []*PortfolioResponse {
	result := make([]*PortfolioResponse, len(portfolios))
	for i, p := range portfolios {
		result[i] = PortfolioFromDomain(p)
	}
	return result
}

// CryptoCurrencyResponse represents a crypto currency in API responses.
type CryptoCurrencyResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CryptoCurrencyFromDomain converts a domain crypto currency to a
// response.
func CryptoCurrencyFromDomain(c *domain.CryptoCurrency) *CryptoCurrencyResponse {
	return &CryptoCurrencyResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		Price:     c.Price,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CryptoCurrenciesFromDomain converts domain crypto currencies to
// responses.
func CryptoCurrenciesFromDomain(currencies []*domain.CryptoCurrency) []*CryptoCurrencyResponse {
	result := make([]*CryptoCurrencyResponse, len(currencies))
	for i, c := range currencies {
		result[i] = CryptoCurrencyFromDomain(c)
	}
	return result
}

// CryptoAssetResponse represents a crypto asset in API responses.
type CryptoAssetResponse struct {
	ID               string          `json:"id"`
	PortfolioID      string          `json:"portfolio_id"`
	CryptoCurrencyID string          `json:"crypto_currency_id"`
	Amount           decimal.Decimal `json:"amount"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CryptoAssetFromDomain converts a domain crypto asset to a response.
func CryptoAssetFromDomain(a *domain.CryptoAsset) *CryptoAssetResponse {
	return &CryptoAssetResponse{
		ID:               a.ID,
		PortfolioID:      a.PortfolioID,
		CryptoCurrencyID: a.CryptoCurrencyID,
		Amount:           a.Amount,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// CryptoAssetsFromDomain converts domain crypto assets to responses.
func CryptoAssetsFromDomain(assets []*domain.CryptoAsset) []*CryptoAssetResponse {
	result := make([]*CryptoAssetResponse, len(assets))
	for i, a := range assets {
		result[i] = CryptoAssetFromDomain(a)
	}
	return result
}

// CryptoTransactionResponse represents a crypto transaction in API
// responses.
type CryptoTransactionResponse struct {
	ID            string          `json:"id"`
	PortfolioID   string          `json:"portfolio_id"`
	CryptoAssetID string          `json:"crypto_asset_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Price         decimal.Decimal `json:"price"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CryptoTransactionFromDomain converts a domain crypto transaction to a
// response.
func CryptoTransactionFromDomain(t *domain.CryptoTransaction) *CryptoTransactionResponse {
	return &CryptoTransactionResponse{
		ID:            t.ID,
		PortfolioID:   t.PortfolioID,
		CryptoAssetID: t.CryptoAssetID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Price:         t.Price,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
	}
}

// CryptoTransactionsFromDomain converts domain crypto transactions to
// responses.
func CryptoTransactionsFromDomain(transactions []*domain.CryptoTransaction) []*CryptoTransactionResponse {
	result := make([]*CryptoTransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = CryptoTransactionFromDomain(t)
	}
	return result
}

// ReconciliationResponse reports one asset's recorded balance against
// the balance recomputed from its transaction history.
type ReconciliationResponse struct {
	AssetID           string          `json:"asset_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to a
// response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AssetID:           r.AssetID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// ReconciliationReportResponse summarizes reconciliation across all of
// the user's assets.
type ReconciliationReportResponse struct {
	TotalAssets      int                       `json:"total_assets"`
	ReconciledAssets int                       `json:"reconciled_assets"`
	Discrepancies    []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt        time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report to a
// response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromUseCase(d)
	}

	return &ReconciliationReportResponse{
		TotalAssets:      r.TotalAssets,
		ReconciledAssets: r.ReconciledAssets,
		Discrepancies:    discrepancies,
		CheckedAt:        r.CheckedAt,
	}
}
