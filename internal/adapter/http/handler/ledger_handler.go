package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

// LedgerService defines the balance-changing operations needed by LedgerHandler.
type LedgerService interface {
	RecordTransaction(ctx context.Context, input usecase.RecordTransactionInput) (*usecase.LedgerResult, error)
	AdjustBalance(ctx context.Context, input usecase.AdjustBalanceInput) (*usecase.LedgerResult, error)
	DeleteRecord(ctx context.Context, userID, id string) (*domain.Account, error)
}

// LedgerHandler handles every request that moves money.
type LedgerHandler struct {
	ledgerUC LedgerService
	clock    usecase.Clock
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, clock usecase.Clock) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, clock: clock}
}

// RecordTransaction records an expense, an income or a transfer.
func (h *LedgerHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.ledgerUC.RecordTransaction(r.Context(), req.ToUseCaseInput(userID(r)))
	if err != nil {
		writeDomainError(w, "failed to record transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerFromUseCase(res, h.clock.Today()))
}

// AdjustBalance sets an account to a target balance.
func (h *LedgerHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustBalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.ledgerUC.AdjustBalance(r.Context(), req.ToUseCaseInput(userID(r), chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to adjust balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromUseCase(res, h.clock.Today()))
}

// DeleteRecord removes a record and reverses its effect on the account.
func (h *LedgerHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	account, err := h.ledgerUC.DeleteRecord(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to delete record", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
