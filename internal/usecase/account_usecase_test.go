package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
	"github.com/iho/goexpense/internal/usecase/mocks"
)

type accountFixture struct {
	uc        *usecase.AccountUseCase
	accounts  *mocks.MockAccountRepository
	records   *mocks.MockRecordRepository
	transfers *mocks.MockTransferRepository
	outbox    *mocks.MockOutboxRepository
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		accounts:  mocks.NewMockAccountRepository(),
		records:   mocks.NewMockRecordRepository(),
		transfers: mocks.NewMockTransferRepository(),
		outbox:    mocks.NewMockOutboxRepository(),
	}
	f.uc = usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		f.accounts,
		f.records,
		f.transfers,
		f.outbox,
		mocks.NewMockIDGenerator(),
		mocks.NewMockClock(domain.NewDate(2024, time.March, 1)),
		zerolog.Nop(),
	)
	return f
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		setupMocks  func(*mocks.MockAccountRepository)
		wantErr     error
		wantBalance string
	}{
		{
			name:        "successful account creation",
			input:       usecase.CreateAccountInput{UserID: testUser, Name: "  Wallet  "},
			wantBalance: "0",
		},
		{
			name:        "opening balance",
			input:       usecase.CreateAccountInput{UserID: testUser, Name: "Bank", OpeningBalance: "1500.25"},
			wantBalance: "1500.25",
		},
		{
			name:        "negative opening balance",
			input:       usecase.CreateAccountInput{UserID: testUser, Name: "Card", OpeningBalance: "-300"},
			wantBalance: "-300",
		},
		{
			name:    "empty name",
			input:   usecase.CreateAccountInput{UserID: testUser, Name: "   "},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "invalid opening balance",
			input:   usecase.CreateAccountInput{UserID: testUser, Name: "Bank", OpeningBalance: "many"},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:  "repository error",
			input: usecase.CreateAccountInput{UserID: testUser, Name: "Bank"},
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
					return errors.New("connection reset")
				}
			},
			wantErr: domain.ErrStoreWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccountFixture()
			if tt.setupMocks != nil {
				tt.setupMocks(f.accounts)
			}

			account, err := f.uc.CreateAccount(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Balance.String() != tt.wantBalance {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, account.Balance)
			}
			if !account.OpeningBalance.Equal(account.Balance) {
				t.Errorf("opening balance %s differs from balance %s", account.OpeningBalance, account.Balance)
			}
			if got := f.outbox.EventTypes(); len(got) != 1 || got[0] != domain.EventTypeAccountCreated {
				t.Errorf("expected one account.created event, got %v", got)
			}
		})
	}
}

func TestAccountUseCase_CreateAccount_TrimsName(t *testing.T) {
	f := newAccountFixture()

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{UserID: testUser, Name: "  Wallet  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Name != "Wallet" {
		t.Errorf("expected name %q, got %q", "Wallet", account.Name)
	}
}

func TestAccountUseCase_CreateAccount_DuplicateName(t *testing.T) {
	f := newAccountFixture()

	input := usecase.CreateAccountInput{UserID: testUser, Name: "Cash"}
	if _, err := f.uc.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := f.uc.CreateAccount(context.Background(), input)
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	for _, a := range []*domain.Account{
		{ID: "a", UserID: testUser, Name: "Cash", Balance: decimal.NewFromInt(100)},
		{ID: "b", UserID: testUser, Name: "Card", Balance: decimal.NewFromInt(-40)},
		{ID: "c", UserID: "someone-else", Name: "Cash", Balance: decimal.NewFromInt(999)},
	} {
		if err := f.accounts.Create(ctx, a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	list, err := f.uc.ListAccounts(ctx, testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(list.Accounts))
	}
	if !list.Total.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected total 60, got %s", list.Total)
	}
}

func TestAccountUseCase_GetAccount_OtherUser(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	if err := f.accounts.Create(ctx, &domain.Account{ID: "a", UserID: "owner", Name: "Cash"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := f.uc.GetAccount(ctx, testUser, "a"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_RenameAccount(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_ = f.accounts.Create(ctx, &domain.Account{ID: "a", UserID: testUser, Name: "Cash"})
	_ = f.accounts.Create(ctx, &domain.Account{ID: "b", UserID: testUser, Name: "Bank"})

	account, err := f.uc.RenameAccount(ctx, testUser, "a", " Wallet ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Name != "Wallet" {
		t.Errorf("expected Wallet, got %q", account.Name)
	}

	if _, err := f.uc.RenameAccount(ctx, testUser, "a", "Bank"); !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := f.uc.RenameAccount(ctx, testUser, "missing", "Other"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *accountFixture)
		wantErr error
	}{
		{
			name: "unused account",
		},
		{
			name: "referenced by a record",
			setup: func(f *accountFixture) {
				_ = f.records.Create(context.Background(), nil, &domain.Record{ID: "r", UserID: testUser, AccountID: "a"})
			},
			wantErr: domain.ErrAccountInUse,
		},
		{
			name: "referenced by a transfer",
			setup: func(f *accountFixture) {
				_ = f.transfers.Create(context.Background(), nil, &domain.Transfer{ID: "t", UserID: testUser, FromAccountID: "z", ToAccountID: "a"})
			},
			wantErr: domain.ErrAccountInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccountFixture()
			_ = f.accounts.Create(context.Background(), &domain.Account{ID: "a", UserID: testUser, Name: "Cash"})
			if tt.setup != nil {
				tt.setup(f)
			}

			err := f.uc.DeleteAccount(context.Background(), testUser, "a")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			_, getErr := f.accounts.GetByID(context.Background(), testUser, "a")
			if tt.wantErr == nil && !errors.Is(getErr, domain.ErrAccountNotFound) {
				t.Error("account should be gone")
			}
			if tt.wantErr != nil && getErr != nil {
				t.Error("account should still exist")
			}
		})
	}
}
