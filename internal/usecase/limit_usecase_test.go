package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
	"github.com/iho/goexpense/internal/usecase/mocks"
)

func newLimitUseCase(t *testing.T, today domain.Date) (*usecase.LimitUseCase, *mocks.MockLimitRepository, *mocks.MockOutboxRepository) {
	t.Helper()

	accounts := mocks.NewMockAccountRepository()
	require.NoError(t, accounts.Create(context.Background(), &domain.Account{ID: "a", UserID: testUser, Name: "Cash"}))

	limits := mocks.NewMockLimitRepository()
	outbox := mocks.NewMockOutboxRepository()
	uc := usecase.NewLimitUseCase(
		mocks.NewMockTransactionManager(),
		limits,
		accounts,
		outbox,
		mocks.NewMockIDGenerator(),
		mocks.NewMockClock(today),
		zerolog.Nop(),
	)
	return uc, limits, outbox
}

func TestLimitUseCase_CreateLimit(t *testing.T) {
	today := domain.NewDate(2024, time.January, 5)

	tests := []struct {
		name      string
		input     usecase.CreateLimitInput
		wantErr   error
		wantState domain.LimitState
		wantDays  int
	}{
		{
			name:      "without start date is pending",
			input:     usecase.CreateLimitInput{AccountID: "a", Ceiling: "3000"},
			wantState: domain.LimitPending,
		},
		{
			name:      "with start date is active",
			input:     usecase.CreateLimitInput{AccountID: "a", Ceiling: "3000", StartDate: "2024-01-01"},
			wantState: domain.LimitActive,
			wantDays:  10,
		},
		{
			name:      "window already over",
			input:     usecase.CreateLimitInput{AccountID: "a", Ceiling: "3000", StartDate: "2023-12-01"},
			wantState: domain.LimitExpired,
		},
		{
			name:    "missing account",
			input:   usecase.CreateLimitInput{Ceiling: "3000"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown account",
			input:   usecase.CreateLimitInput{AccountID: "ghost", Ceiling: "3000"},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:    "bad ceiling",
			input:   usecase.CreateLimitInput{AccountID: "a", Ceiling: "lots"},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "bad start date",
			input:   usecase.CreateLimitInput{AccountID: "a", Ceiling: "3000", StartDate: "05/01/2024"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newLimitUseCase(t, today)

			tt.input.UserID = testUser
			status, err := uc.CreateLimit(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, status.State)
			assert.Equal(t, tt.wantDays, status.DaysLeft)
			assert.True(t, decimal.NewFromInt(3000).Equal(status.Remaining))
		})
	}
}

func TestLimitUseCase_ActivateLimit(t *testing.T) {
	uc, limits, outbox := newLimitUseCase(t, domain.NewDate(2024, time.February, 1))
	ctx := context.Background()

	start := domain.NewDate(2024, time.January, 1)
	require.NoError(t, limits.Create(ctx, &domain.Limit{
		ID:        "lim",
		UserID:    testUser,
		AccountID: "a",
		StartDate: &start,
		Ceiling:   decimal.NewFromInt(3000),
		Spent:     decimal.NewFromInt(2500),
		Activated: true,
	}))

	status, err := uc.ActivateLimit(ctx, testUser, "lim")
	require.NoError(t, err)

	assert.Equal(t, domain.LimitActive, status.State)
	assert.Equal(t, "2024-02-01", status.Limit.StartDate.String())
	assert.Equal(t, "2024-02-14", status.EndDate.String())
	assert.True(t, status.Limit.Spent.IsZero())
	assert.Equal(t, 14, status.DaysLeft)

	stored, err := limits.GetByID(ctx, testUser, "lim")
	require.NoError(t, err)
	assert.True(t, stored.Spent.IsZero())
	assert.Equal(t, []string{domain.EventTypeLimitActivated}, outbox.EventTypes())

	_, err = uc.ActivateLimit(ctx, testUser, "missing")
	assert.ErrorIs(t, err, domain.ErrLimitNotFound)
}

func TestLimitUseCase_ListAndDelete(t *testing.T) {
	uc, _, _ := newLimitUseCase(t, domain.NewDate(2024, time.January, 5))
	ctx := context.Background()

	created, err := uc.CreateLimit(ctx, usecase.CreateLimitInput{UserID: testUser, AccountID: "a", Ceiling: "100"})
	require.NoError(t, err)

	list, err := uc.ListLimits(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.LimitPending, list[0].State)

	require.NoError(t, uc.DeleteLimit(ctx, testUser, created.Limit.ID))
	assert.ErrorIs(t, uc.DeleteLimit(ctx, testUser, created.Limit.ID), domain.ErrLimitNotFound)
}
