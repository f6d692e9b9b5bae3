package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

// RecordService defines the behavior needed by RecordHandler.
type RecordService interface {
	ListRecords(ctx context.Context, input usecase.ListRecordsInput) ([]*domain.Record, error)
	GetRecord(ctx context.Context, userID, id string) (*domain.Record, error)
	UpdateRecord(ctx context.Context, input usecase.UpdateRecordInput) (*domain.Record, error)
}

// RecordHandler handles record history requests.
type RecordHandler struct {
	recordUC RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordUC RecordService) *RecordHandler {
	return &RecordHandler{recordUC: recordUC}
}

// List lists records newest first, grouped by day.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	records, err := h.recordUC.ListRecords(r.Context(), usecase.ListRecordsInput{
		UserID:    userID(r),
		Mode:      q.Get("mode"),
		Range:     q.Get("range"),
		Category:  q.Get("category"),
		AccountID: q.Get("account_id"),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list records", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRecordsFromDomain(records))
}

// Get retrieves a record by ID.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	record, err := h.recordUC.GetRecord(r.Context(), userID(r), id)
	if err != nil {
		writeDomainError(w, "failed to get record", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

// Update edits the detail, category or amount of a record.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	record, err := h.recordUC.UpdateRecord(r.Context(), req.ToUseCaseInput(userID(r), chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to update record", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}
