package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
)

// ReconciliationUseCase handles balance reconciliation operations
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	recordRepo  RecordRepository
	clock       Clock
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(accountRepo AccountRepository, recordRepo RecordRepository, clock Clock) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		recordRepo:  recordRepo,
		clock:       clock,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	AccountName       string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Results            []*ReconciliationResult
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// Reconcile recomputes every account balance as opening balance plus the signed
// sum of its records and compares it with the stored balance.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, userID string) (*ReconciliationReport, error) {
	accounts, err := uc.accountRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	sums, err := uc.recordRepo.SumByAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalAccounts: len(accounts),
		Results:       make([]*ReconciliationResult, 0, len(accounts)),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     uc.clock.Now(),
	}

	for _, account := range accounts {
		calculated := account.OpeningBalance.Add(sums[account.ID])
		result := &ReconciliationResult{
			AccountID:         account.ID,
			AccountName:       account.Name,
			RecordedBalance:   account.Balance,
			CalculatedBalance: calculated,
			Difference:        account.Balance.Sub(calculated),
			IsReconciled:      account.Balance.Equal(calculated),
		}

		report.Results = append(report.Results, result)
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}

// ReconcileAccount checks a single account.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, userID, accountID string) (*ReconciliationResult, error) {
	if _, err := uc.accountRepo.GetByID(ctx, userID, accountID); err != nil {
		return nil, err
	}

	report, err := uc.Reconcile(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, r := range report.Results {
		if r.AccountID == accountID {
			return r, nil
		}
	}

	return nil, domain.ErrAccountNotFound
}
