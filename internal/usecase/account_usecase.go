package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	recordRepo   RecordRepository
	transferRepo TransferRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	clock        Clock
	logger       zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	recordRepo RecordRepository,
	transferRepo TransferRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		recordRepo:   recordRepo,
		transferRepo: transferRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		clock:        clock,
		logger:       logger,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID         string
	Name           string
	OpeningBalance string
}

// CreateAccount creates a new account whose balance starts at the opening balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}

	opening := decimal.Zero
	if strings.TrimSpace(input.OpeningBalance) != "" {
		var err error
		if opening, err = domain.ParseBalance("opening_balance", input.OpeningBalance); err != nil {
			return nil, err
		}
	}

	now := uc.clock.Now()
	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		UserID:         input.UserID,
		Name:           name,
		Balance:        opening,
		OpeningBalance: opening,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, storeError("create account", err)
	}

	if uc.outboxRepo != nil {
		event := domain.NewAccountCreatedEvent(uc.idGen.Generate(), account, now)
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, storeError("append account.created", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeError("commit", err)
	}

	uc.logger.Info().Str("user_id", account.UserID).Str("account_id", account.ID).Msg("account created")

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, userID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, userID, id)
}

// AccountList is the overview of a user's accounts.
type AccountList struct {
	Accounts []*domain.Account
	Total    decimal.Decimal
}

// ListAccounts lists the user's accounts with their total balance.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID string) (*AccountList, error) {
	accounts, err := uc.accountRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AccountList{
		Accounts: accounts,
		Total:    domain.TotalBalance(accounts),
	}, nil
}

// RenameAccount changes the display name. Records reference accounts by ID so
// nothing else needs to change.
func (uc *AccountUseCase) RenameAccount(ctx context.Context, userID, id, name string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Rename(ctx, userID, id, name, uc.clock.Now()); err != nil {
		return nil, storeError("rename account", err)
	}

	return uc.accountRepo.GetByID(ctx, userID, id)
}

// DeleteAccount deletes an account no record or transfer refers to.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, userID, id string) error {
	if _, err := uc.accountRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	records, err := uc.recordRepo.CountByAccount(ctx, userID, id)
	if err != nil {
		return err
	}
	transfers, err := uc.transferRepo.CountByAccount(ctx, userID, id)
	if err != nil {
		return err
	}
	if records > 0 || transfers > 0 {
		return domain.ErrAccountInUse
	}

	if err := uc.accountRepo.Delete(ctx, userID, id); err != nil {
		return storeError("delete account", err)
	}

	uc.logger.Info().Str("user_id", userID).Str("account_id", id).Msg("account deleted")

	return nil
}
