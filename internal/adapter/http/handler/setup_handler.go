package handler

import (
	"context"
	"net/http"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/usecase"
)

// SetupService defines the behavior needed by SetupHandler.
type SetupService interface {
	Bootstrap(ctx context.Context, userID string) (*usecase.BootstrapResult, error)
}

// SetupHandler handles first-run setup.
type SetupHandler struct {
	setupUC SetupService
}

// NewSetupHandler creates a new SetupHandler.
func NewSetupHandler(setupUC SetupService) *SetupHandler {
	return &SetupHandler{setupUC: setupUC}
}

// Setup seeds default categories and a default account. Repeated calls
// create nothing new.
func (h *SetupHandler) Setup(w http.ResponseWriter, r *http.Request) {
	res, err := h.setupUC.Bootstrap(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, "failed to set up ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SetupFromUseCase(res))
}
