package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/usecase"
)

// LimitService defines the behavior needed by LimitHandler.
type LimitService interface {
	CreateLimit(ctx context.Context, input usecase.CreateLimitInput) (*usecase.LimitStatus, error)
	ListLimits(ctx context.Context, userID string) ([]*usecase.LimitStatus, error)
	ActivateLimit(ctx context.Context, userID, id string) (*usecase.LimitStatus, error)
	DeleteLimit(ctx context.Context, userID, id string) error
}

// LimitHandler handles spending limit requests.
type LimitHandler struct {
	limitUC LimitService
}

// NewLimitHandler creates a new LimitHandler.
func NewLimitHandler(limitUC LimitService) *LimitHandler {
	return &LimitHandler{limitUC: limitUC}
}

// Create creates a limit on an account.
func (h *LimitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLimitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status, err := h.limitUC.CreateLimit(r.Context(), req.ToUseCaseInput(userID(r)))
	if err != nil {
		writeDomainError(w, "failed to create limit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LimitFromUseCase(status))
}

// List lists limits with their state on the current day.
func (h *LimitHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.limitUC.ListLimits(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, "failed to list limits", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LimitsFromUseCase(statuses))
}

// Activate starts a new limit window today.
func (h *LimitHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing limit ID", "")
		return
	}

	status, err := h.limitUC.ActivateLimit(r.Context(), userID(r), id)
	if err != nil {
		writeDomainError(w, "failed to activate limit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LimitFromUseCase(status))
}

// Delete removes a limit.
func (h *LimitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.limitUC.DeleteLimit(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete limit", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
