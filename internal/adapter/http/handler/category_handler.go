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

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	AddCategory(ctx context.Context, user *domain.User, input usecase.AddCategoryInput) (*domain.TransactionCategory, error)
	ChangeCategory(ctx context.Context, user *domain.User, input usecase.ChangeCategoryInput) (*domain.TransactionCategory, error)
	GetCategory(ctx context.Context, user *domain.User, id string) (*domain.TransactionCategory, error)
	ListCategories(ctx context.Context, user *domain.User, kind *domain.TransactionType) ([]*domain.TransactionCategory, error)
	DeleteCategory(ctx context.Context, user *domain.User, id string) error
}

// CategoryHandler handles transaction category HTTP requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	category, err := h.categoryUC.AddCategory(r.Context(), user, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create category", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// Update updates a category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.ChangeCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.ChangeCategory(r.Context(), user, req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update category", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Get retrieves a live category by ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	category, err := h.categoryUC.GetCategory(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get category", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// List lists the user's live categories, optionally filtered by kind.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	categories, err := h.categoryUC.ListCategories(r.Context(), user, parseTypeQuery(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Delete soft-deletes a category. Its id stays valid for history.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.categoryUC.DeleteCategory(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete category", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
