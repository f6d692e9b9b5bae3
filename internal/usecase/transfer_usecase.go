package usecase

import (
	"context"

	"github.com/iho/goexpense/internal/domain"
)

// TransferUseCase reads the transfer log. Transfers are created by LedgerUseCase.
type TransferUseCase struct {
	transferRepo TransferRepository
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(transferRepo TransferRepository) *TransferUseCase {
	return &TransferUseCase{
		transferRepo: transferRepo,
	}
}

// ListTransfersInput represents input for listing transfers.
type ListTransfersInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListTransfers lists transfers, newest date first.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, input ListTransfersInput) ([]*domain.Transfer, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.transferRepo.List(ctx, input.UserID, limit, offset)
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, userID, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, userID, id)
}

// DeleteTransfer removes the transfer log entry only. The two records it
// produced and their balance effects stay.
func (uc *TransferUseCase) DeleteTransfer(ctx context.Context, userID, id string) error {
	if err := uc.transferRepo.Delete(ctx, userID, id); err != nil {
		return storeError("delete transfer", err)
	}
	return nil
}
