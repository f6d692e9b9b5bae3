package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/goexpense/internal/domain"
)

// RecordUseCase reads and edits ledger records. Creating and deleting records
// goes through LedgerUseCase because those move balances.
type RecordUseCase struct {
	recordRepo RecordRepository
	cache      Cache
	clock      Clock
	logger     zerolog.Logger
}

// NewRecordUseCase creates a new RecordUseCase.
func NewRecordUseCase(recordRepo RecordRepository, cache Cache, clock Clock, logger zerolog.Logger) *RecordUseCase {
	return &RecordUseCase{
		recordRepo: recordRepo,
		cache:      cache,
		clock:      clock,
		logger:     logger,
	}
}

// ListRecordsInput filters the record history.
type ListRecordsInput struct {
	UserID    string
	Mode      string
	Range     string
	Category  string
	AccountID string
	Limit     int
	Offset    int
}

// ListRecords lists records newest first.
func (uc *RecordUseCase) ListRecords(ctx context.Context, input ListRecordsInput) ([]*domain.Record, error) {
	filter := domain.RecordFilter{
		Category:  strings.TrimSpace(input.Category),
		AccountID: strings.TrimSpace(input.AccountID),
	}

	if input.Mode != "" {
		mode, err := domain.ParseMode(input.Mode)
		if err != nil {
			return nil, err
		}
		filter.Mode = mode
	}

	since, err := domain.RecordRange(input.Range).Since(uc.clock.Today())
	if err != nil {
		return nil, err
	}
	filter.Since = since

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.recordRepo.List(ctx, input.UserID, filter, limit, offset)
}

// GetRecord retrieves a record by ID.
func (uc *RecordUseCase) GetRecord(ctx context.Context, userID, id string) (*domain.Record, error) {
	return uc.recordRepo.GetByID(ctx, userID, id)
}

// UpdateRecordInput carries the editable fields; nil means unchanged.
type UpdateRecordInput struct {
	UserID   string
	ID       string
	Detail   *string
	Category *string
	Amount   *string
}

// UpdateRecord edits detail, category or amount. Account balances and limit
// counters are not reconciled; reconciliation reports the resulting drift.
func (uc *RecordUseCase) UpdateRecord(ctx context.Context, input UpdateRecordInput) (*domain.Record, error) {
	record, err := uc.recordRepo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Detail != nil {
		detail := strings.TrimSpace(*input.Detail)
		if err := domain.ValidateText("detail", detail, domain.MaxDetailLength); err != nil {
			return nil, err
		}
		record.Detail = detail
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, domain.MissingField("category")
		}
		record.Category = category
	}

	if input.Amount != nil {
		amount, err := domain.ParseAmount("amount", *input.Amount)
		if err != nil {
			return nil, err
		}
		record.Amount = amount
	}

	record.UpdatedAt = uc.clock.Now()

	if err := uc.recordRepo.Update(ctx, record); err != nil {
		return nil, storeError("update record", err)
	}

	invalidateReports(ctx, uc.cache, uc.logger, input.UserID)

	return record, nil
}
