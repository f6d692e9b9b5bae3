package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
)

// LimitUseCase manages 14-day spending limits.
type LimitUseCase struct {
	txManager   TransactionManager
	limitRepo   LimitRepository
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	clock       Clock
	logger      zerolog.Logger
}

// NewLimitUseCase creates a new LimitUseCase.
func NewLimitUseCase(
	txManager TransactionManager,
	limitRepo LimitRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *LimitUseCase {
	return &LimitUseCase{
		txManager:   txManager,
		limitRepo:   limitRepo,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		clock:       clock,
		logger:      logger,
	}
}

// LimitStatus is a limit together with its state on the current day.
type LimitStatus struct {
	Limit     *domain.Limit
	State     domain.LimitState
	EndDate   domain.Date
	Remaining decimal.Decimal
	DaysLeft  int
}

func (uc *LimitUseCase) status(l *domain.Limit, today domain.Date) *LimitStatus {
	return &LimitStatus{
		Limit:     l,
		State:     l.State(today),
		EndDate:   l.EndDate(),
		Remaining: l.Remaining(),
		DaysLeft:  l.DaysLeft(today),
	}
}

// CreateLimitInput represents input for creating a limit. An empty StartDate
// creates a pending limit; a given one creates an activated limit starting then.
type CreateLimitInput struct {
	UserID    string
	AccountID string
	Ceiling   string
	StartDate string
}

// CreateLimit creates a limit on an existing account.
func (uc *LimitUseCase) CreateLimit(ctx context.Context, input CreateLimitInput) (*LimitStatus, error) {
	if strings.TrimSpace(input.AccountID) == "" {
		return nil, domain.MissingField("account_id")
	}

	ceiling, err := domain.ParseAmount("limit", input.Ceiling)
	if err != nil {
		return nil, err
	}

	var start *domain.Date
	if s := strings.TrimSpace(input.StartDate); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, err
		}
		start = &d
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.UserID, input.AccountID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	limit := &domain.Limit{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		AccountID: input.AccountID,
		StartDate: start,
		Ceiling:   ceiling,
		Spent:     decimal.Zero,
		Activated: start != nil,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.limitRepo.Create(ctx, limit); err != nil {
		return nil, storeError("create limit", err)
	}

	return uc.status(limit, uc.clock.Today()), nil
}

// ListLimits lists the user's limits with their current state.
func (uc *LimitUseCase) ListLimits(ctx context.Context, userID string) ([]*LimitStatus, error) {
	limits, err := uc.limitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	out := make([]*LimitStatus, 0, len(limits))
	for _, l := range limits {
		out = append(out, uc.status(l, today))
	}

	return out, nil
}

// ActivateLimit starts a fresh window today and resets the spent counter.
func (uc *LimitUseCase) ActivateLimit(ctx context.Context, userID, id string) (*LimitStatus, error) {
	limit, err := uc.limitRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	now := uc.clock.Now()
	limit.Activate(today)
	limit.UpdatedAt = now

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := uc.limitRepo.Update(ctx, tx, limit); err != nil {
		return nil, storeError("activate limit", err)
	}

	if uc.outboxRepo != nil {
		event := domain.NewLimitEvent(uc.idGen.Generate(), domain.EventTypeLimitActivated, limit, now)
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, storeError("append limit.activated", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeError("commit", err)
	}

	uc.logger.Info().Str("user_id", userID).Str("limit_id", id).Str("start_date", today.String()).Msg("limit activated")

	return uc.status(limit, today), nil
}

// DeleteLimit deletes a limit.
func (uc *LimitUseCase) DeleteLimit(ctx context.Context, userID, id string) error {
	if err := uc.limitRepo.Delete(ctx, userID, id); err != nil {
		return storeError("delete limit", err)
	}
	return nil
}
