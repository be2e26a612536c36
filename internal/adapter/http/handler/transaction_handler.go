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

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	AddTransaction(ctx context.Context, user *domain.User, input usecase.AddTransactionInput) (*domain.Transaction, error)
	ChangeTransaction(ctx context.Context, user *domain.User, input usecase.ChangeTransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, user *domain.User, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, user *domain.User, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, user *domain.User, id string) error
}

// ReportService defines the aggregation behavior needed by
// TransactionHandler.
type ReportService interface {
	TotalByPeriod(ctx context.Context, user *domain.User, input usecase.PeriodInput) (decimal.Decimal, error)
	TotalCategoriesByPeriod(ctx context.Context, user *domain.User, input usecase.PeriodInput) ([]usecase.TotalByCategory, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
	reportUC      ReportService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, reportUC ReportService) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		reportUC:      reportUC,
	}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionUC.AddTransaction(r.Context(), user, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// Update updates a transaction's amount, date or category.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.ChangeTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.transactionUC.ChangeTransaction(r.Context(), user, req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	transaction, err := h.transactionUC.GetTransaction(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// List lists the user's transactions within a period.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	filter, ok := periodFilter(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid period", "start and end query parameters are required")
		return
	}

	transactions, err := h.transactionUC.ListTransactions(r.Context(), user, filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}

// Delete deletes a transaction and reverts its balance effects.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.transactionUC.DeleteTransaction(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TotalByPeriod sums the period's transactions in the user's base
// currency.
func (h *TransactionHandler) TotalByPeriod(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	input, ok := periodInput(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid period", "start and end query parameters are required")
		return
	}

	total, err := h.reportUC.TotalByPeriod(r.Context(), user, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute total", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalResponse{Total: total})
}

// TotalCategoriesByPeriod groups the period's totals by category.
func (h *TransactionHandler) TotalCategoriesByPeriod(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	input, ok := periodInput(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid period", "start and end query parameters are required")
		return
	}

	totals, err := h.reportUC.TotalCategoriesByPeriod(r.Context(), user, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute category totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryTotalsFromUseCase(totals))
}

func periodFilter(r *http.Request) (usecase.TransactionFilter, bool) {
	start, ok := parseTimeQuery(r, "start")
	if !ok {
		return usecase.TransactionFilter{}, false
	}

	end, ok := parseEndQuery(r, "end")
	if !ok {
		return usecase.TransactionFilter{}, false
	}

	return usecase.TransactionFilter{
		Start: start,
		End:   end,
		Type:  parseTypeQuery(r),
	}, true
}

func periodInput(r *http.Request) (usecase.PeriodInput, bool) {
	filter, ok := periodFilter(r)
	if !ok {
		return usecase.PeriodInput{}, false
	}

	return usecase.PeriodInput{
		Start: filter.Start,
		End:   filter.End,
		Type:  filter.Type,
	}, true
}
