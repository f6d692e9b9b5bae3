package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GetReport(ctx context.Context, userID, mode string) (*domain.Report, error)
}

// ReconciliationService defines the behavior needed by ReportHandler.
type ReconciliationService interface {
	Reconcile(ctx context.Context, userID string) (*usecase.ReconciliationReport, error)
	ReconcileAccount(ctx context.Context, userID, accountID string) (*usecase.ReconciliationResult, error)
}

// ReportHandler serves read-only views computed over the whole ledger.
type ReportHandler struct {
	reportUC    ReportService
	reconcileUC ReconciliationService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService, reconcileUC ReconciliationService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, reconcileUC: reconcileUC}
}

// Report returns the category and monthly totals of a mode.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.GetReport(r.Context(), userID(r), chi.URLParam(r, "mode"))
	if err != nil {
		writeDomainError(w, "failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// Reconcile compares every account balance with the sum of its records.
func (h *ReportHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconcileUC.Reconcile(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, "failed to reconcile ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(report))
}

// ReconcileAccount checks a single account.
func (h *ReportHandler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconcileUC.ReconcileAccount(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to reconcile account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationResultFromUseCase(result))
}
