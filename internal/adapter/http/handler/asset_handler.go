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

// AssetService defines the behavior needed by AssetHandler.
type AssetService interface {
	AddAsset(ctx context.Context, user *domain.User, input usecase.AddAssetInput) (*domain.Asset, error)
	ChangeAsset(ctx context.Context, user *domain.User, input usecase.ChangeAssetInput) (*domain.Asset, error)
	GetAsset(ctx context.Context, user *domain.User, id string) (*domain.Asset, error)
	ListAssets(ctx context.Context, user *domain.User) ([]*domain.Asset, error)
	DeleteAsset(ctx context.Context, user *domain.User, id string) error
}

// ReconciliationService defines the behavior needed for balance checks.
type ReconciliationService interface {
	ReconcileAsset(ctx context.Context, user *domain.User, assetID string) (*usecase.ReconciliationResult, error)
	ReconcileUser(ctx context.Context, user *domain.User) (*usecase.ReconciliationReport, error)
}

// AssetHandler handles asset-related HTTP requests.
type AssetHandler struct {
	assetUC          AssetService
	reconciliationUC ReconciliationService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetUC AssetService, reconciliationUC ReconciliationService) *AssetHandler {
	return &AssetHandler{
		assetUC:          assetUC,
		reconciliationUC: reconciliationUC,
	}
}

// Create creates a new asset.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetUC.AddAsset(r.Context(), user, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create asset", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AssetFromDomain(asset))
}

// Update updates an asset.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.ChangeAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.assetUC.ChangeAsset(r.Context(), user, req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update asset", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// Get retrieves an asset by ID.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	asset, err := h.assetUC.GetAsset(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get asset", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// List lists the user's assets.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	assets, err := h.assetUC.ListAssets(r.Context(), user)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list assets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetsFromDomain(assets))
}

// Delete deletes an asset without transactions.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.assetUC.DeleteAsset(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete asset", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reconcile checks one asset's recorded balance against its transaction
// history.
func (h *AssetHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	result, err := h.reconciliationUC.ReconcileAsset(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile asset", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}

// ReconcileAll checks all of the user's assets.
func (h *AssetHandler) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	report, err := h.reconciliationUC.ReconcileUser(r.Context(), user)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile assets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}
