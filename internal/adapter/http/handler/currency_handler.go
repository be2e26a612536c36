package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finances/internal/adapter/http/dto"
	"github.com/iho/finances/internal/adapter/http/middleware"
	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

// CurrencyService defines the behavior needed by CurrencyHandler.
type CurrencyService interface {
	AddCurrency(ctx context.Context, user *domain.User, input usecase.AddCurrencyInput) (*domain.Currency, error)
	ChangeCurrency(ctx context.Context, user *domain.User, input usecase.ChangeCurrencyInput) (*domain.Currency, error)
	GetCurrency(ctx context.Context, user *domain.User, id string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context, user *domain.User, input usecase.ListCurrenciesInput) ([]*domain.Currency, error)
	DeleteCurrency(ctx context.Context, user *domain.User, id string) error
	SetBaseCurrency(ctx context.Context, user *domain.User, currencyID string) error
	GetBaseCurrency(ctx context.Context, user *domain.User) (*domain.Currency, error)
}

// CurrencyHandler handles currency-related HTTP requests.
type CurrencyHandler struct {
	currencyUC CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyUC CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyUC: currencyUC}
}

// Create creates a custom currency.
func (h *CurrencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	currency, err := h.currencyUC.AddCurrency(r.Context(), user, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create currency", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CurrencyFromDomain(currency))
}

// Update updates the user's custom currency.
func (h *CurrencyHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.ChangeCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	currency, err := h.currencyUC.ChangeCurrency(r.Context(), user, req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update currency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrencyFromDomain(currency))
}

// Get retrieves a currency by ID.
func (h *CurrencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	currency, err := h.currencyUC.GetCurrency(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get currency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrencyFromDomain(currency))
}

// List lists currencies visible to the user. The scope query parameter
// selects all, default or custom currencies.
func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	currencies, err := h.currencyUC.ListCurrencies(r.Context(), user, usecase.ListCurrenciesInput{
		Scope: usecase.CurrencyScope(r.URL.Query().Get("scope")),
		Code:  r.URL.Query().Get("code"),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list currencies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrenciesFromDomain(currencies))
}

// Delete deletes the user's custom currency.
func (h *CurrencyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.currencyUC.DeleteCurrency(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete currency", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetBase sets the user's base currency.
func (h *CurrencyHandler) SetBase(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SetBaseCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.currencyUC.SetBaseCurrency(r.Context(), user, req.CurrencyID); err != nil {
		writeError(w, mapDomainError(err), "failed to set base currency", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBase returns the user's base currency.
func (h *CurrencyHandler) GetBase(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	currency, err := h.currencyUC.GetBaseCurrency(r.Context(), user)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get base currency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrencyFromDomain(currency))
}
