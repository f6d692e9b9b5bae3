package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	ListTransfers(ctx context.Context, input usecase.ListTransfersInput) ([]*domain.Transfer, error)
	GetTransfer(ctx context.Context, userID, id string) (*domain.Transfer, error)
	DeleteTransfer(ctx context.Context, userID, id string) error
}

// TransferHandler handles transfer history requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// List lists transfers, newest first.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transferUC.ListTransfers(r.Context(), usecase.ListTransfersInput{
		UserID: userID(r),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list transfers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), userID(r), id)
	if err != nil {
		writeDomainError(w, "failed to get transfer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// Delete removes a transfer from the history. Balances are left as they are.
func (h *TransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transferUC.DeleteTransfer(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete transfer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
