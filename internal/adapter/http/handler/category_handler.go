package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	EnsureDefaultCategories(ctx context.Context, userID, mode string) (int, error)
	ListCategories(ctx context.Context, userID, mode, kind string) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, id string) error
}

// CategoryHandler handles the per-mode category registries.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// List lists the categories of a mode, optionally filtered by ?kind=.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUC.ListCategories(r.Context(), userID(r), chi.URLParam(r, "mode"), r.URL.Query().Get("kind"))
	if err != nil {
		writeDomainError(w, "failed to list categories", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Create adds a category to a mode.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput(userID(r), chi.URLParam(r, "mode")))
	if err != nil {
		writeDomainError(w, "failed to create category", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// Defaults seeds the default categories of a mode.
func (h *CategoryHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	created, err := h.categoryUC.EnsureDefaultCategories(r.Context(), userID(r), chi.URLParam(r, "mode"))
	if err != nil {
		writeDomainError(w, "failed to seed categories", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

// Delete removes a category no record uses.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryUC.DeleteCategory(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete category", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
