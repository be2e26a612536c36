package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/adapter/http/dto"
	"github.com/iho/finances/internal/adapter/http/middleware"
	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

// CryptoService defines the behavior needed by CryptoHandler.
type CryptoService interface {
	AddPortfolio(ctx context.Context, user *domain.User, title string) (*domain.CryptoPortfolio, error)
	ChangePortfolio(ctx context.Context, user *domain.User, id, title string) (*domain.CryptoPortfolio, error)
	GetPortfolio(ctx context.Context, user *domain.User, id string) (*domain.CryptoPortfolio, error)
	ListPortfolios(ctx context.Context, user *domain.User) ([]*domain.CryptoPortfolio, error)
	DeletePortfolio(ctx context.Context, user *domain.User, id string) error
	PortfolioValue(ctx context.Context, user *domain.User, portfolioID string) (decimal.Decimal, error)

	AddCryptoCurrency(ctx context.Context, input usecase.AddCryptoCurrencyInput) (*domain.CryptoCurrency, error)
	ListCryptoCurrencies(ctx context.Context) ([]*domain.CryptoCurrency, error)
	GetCryptoCurrency(ctx context.Context, id string) (*domain.CryptoCurrency, error)
	RefreshPrices(ctx context.Context) error

	AddCryptoAsset(ctx context.Context, user *domain.User, input usecase.AddCryptoAssetInput) (*domain.CryptoAsset, error)
	ListCryptoAssets(ctx context.Context, user *domain.User, portfolioID string) ([]*domain.CryptoAsset, error)
	DeleteCryptoAsset(ctx context.Context, user *domain.User, id string) error

	AddCryptoTransaction(ctx context.Context, user *domain.User, input usecase.AddCryptoTransactionInput) (*domain.CryptoTransaction, error)
	ListCryptoTransactions(ctx context.Context, user *domain.User, portfolioID string) ([]*domain.CryptoTransaction, error)
	DeleteCryptoTransaction(ctx context.Context, user *domain.User, id string) error
}

// CryptoHandler handles the crypto subsystem's HTTP requests.
type CryptoHandler struct {
	cryptoUC CryptoService
}

// NewCryptoHandler creates a new CryptoHandler.
func NewCryptoHandler(cryptoUC CryptoService) *CryptoHandler {
	return &CryptoHandler{cryptoUC: cryptoUC}
}

// CreatePortfolio creates a crypto portfolio.
func (h *CryptoHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.cryptoUC.AddPortfolio(r.Context(), user, req.Title)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create portfolio", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PortfolioFromDomain(portfolio))
}

// UpdatePortfolio renames a portfolio.
func (h *CryptoHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.AddPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	portfolio, err := h.cryptoUC.ChangePortfolio(r.Context(), user, id, req.Title)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update portfolio", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioFromDomain(portfolio))
}

// GetPortfolio retrieves a portfolio by ID.
func (h *CryptoHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	portfolio, err := h.cryptoUC.GetPortfolio(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get portfolio", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioFromDomain(portfolio))
}

// ListPortfolios lists the user's portfolios.
func (h *CryptoHandler) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	portfolios, err := h.cryptoUC.ListPortfolios(r.Context(), user)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list portfolios", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfoliosFromDomain(portfolios))
}

// DeletePortfolio deletes an empty portfolio.
func (h *CryptoHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.cryptoUC.DeletePortfolio(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete portfolio", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PortfolioValue returns the portfolio's USD value at last known prices.
func (h *CryptoHandler) PortfolioValue(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	value, err := h.cryptoUC.PortfolioValue(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to value portfolio", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalResponse{Total: value})
}

// CreateCurrency registers a crypto currency.
func (h *CryptoHandler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCryptoCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	currency, err := h.cryptoUC.AddCryptoCurrency(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create crypto currency", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CryptoCurrencyFromDomain(currency))
}

// ListCurrencies lists all registered crypto currencies.
func (h *CryptoHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.cryptoUC.ListCryptoCurrencies(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list crypto currencies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CryptoCurrenciesFromDomain(currencies))
}

// GetCurrency retrieves a crypto currency by ID.
func (h *CryptoHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	currency, err := h.cryptoUC.GetCryptoCurrency(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get crypto currency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CryptoCurrencyFromDomain(currency))
}

// RefreshPrices refreshes all crypto currency prices from the market
// data source.
func (h *CryptoHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if err := h.cryptoUC.RefreshPrices(r.Context()); err != nil {
		writeError(w, mapDomainError(err), "failed to refresh prices", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateAsset creates a crypto asset inside a portfolio.
func (h *CryptoHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddCryptoAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.cryptoUC.AddCryptoAsset(r.Context(), user, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create crypto asset", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CryptoAssetFromDomain(asset))
}

// ListAssets lists the crypto assets of a portfolio.
func (h *CryptoHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	assets, err := h.cryptoUC.ListCryptoAssets(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list crypto assets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CryptoAssetsFromDomain(assets))
}

// DeleteAsset deletes a crypto asset.
func (h *CryptoHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.cryptoUC.DeleteCryptoAsset(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete crypto asset", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateTransaction records a crypto buy or sell.
func (h *CryptoHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddCryptoTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.cryptoUC.AddCryptoTransaction(r.Context(), user, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create crypto transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CryptoTransactionFromDomain(transaction))
}

// ListTransactions lists the crypto transactions of a portfolio.
func (h *CryptoHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	transactions, err := h.cryptoUC.ListCryptoTransactions(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list crypto transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CryptoTransactionsFromDomain(transactions))
}

// DeleteTransaction deletes a crypto transaction and reverts its effect.
func (h *CryptoHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.cryptoUC.DeleteCryptoTransaction(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete crypto transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
