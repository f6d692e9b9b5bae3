package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
)

// Transaction kinds accepted by RecordTransaction.
const (
	KindExpense  = "expense"
	KindIncome   = "income"
	KindTransfer = "transfer"
)

// LedgerUseCase is the only writer of account balances and limit counters.
type LedgerUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	accountRepo  AccountRepository
	recordRepo   RecordRepository
	transferRepo TransferRepository
	limitRepo    LimitRepository
	outboxRepo   OutboxRepository
	cache        Cache
	idGen        IDGenerator
	clock        Clock
	metrics      LedgerMetrics
	logger       zerolog.Logger
}

// LedgerConfig wires a LedgerUseCase. Cache, Retrier and Metrics are optional.
type LedgerConfig struct {
	TxManager    TransactionManager
	Retrier      Retrier
	AccountRepo  AccountRepository
	RecordRepo   RecordRepository
	TransferRepo TransferRepository
	LimitRepo    LimitRepository
	OutboxRepo   OutboxRepository
	Cache        Cache
	IDGen        IDGenerator
	Clock        Clock
	Metrics      LedgerMetrics
	Logger       zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(cfg LedgerConfig) *LedgerUseCase {
	if cfg.Retrier == nil {
		cfg.Retrier = noRetry{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}
	if cfg.Clock == nil {
		cfg.Clock = NewSystemClock(time.UTC)
	}

	return &LedgerUseCase{
		txManager:    cfg.TxManager,
		retrier:      cfg.Retrier,
		accountRepo:  cfg.AccountRepo,
		recordRepo:   cfg.RecordRepo,
		transferRepo: cfg.TransferRepo,
		limitRepo:    cfg.LimitRepo,
		outboxRepo:   cfg.OutboxRepo,
		cache:        cfg.Cache,
		idGen:        cfg.IDGen,
		clock:        cfg.Clock,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
	}
}

// RecordTransactionInput is a raw transaction intent as typed by the user.
type RecordTransactionInput struct {
	UserID string
	Mode   string
	Kind   string
	Amount string

	// expense / income
	AccountID string
	Category  string
	Detail    string

	// transfer
	FromAccountID string
	ToAccountID   string
	Fee           string
	Note          string
}

// LedgerResult describes everything a ledger write created or changed.
type LedgerResult struct {
	Records  []*domain.Record
	Transfer *domain.Transfer
	Accounts []*domain.Account
	Limit    *domain.Limit
}

type ledgerIntent struct {
	userID    string
	mode      domain.Mode
	kind      string
	amount    decimal.Decimal
	fee       decimal.Decimal
	accountID string
	category  string
	detail    string
	fromID    string
	toID      string
	note      string
}

// RecordTransaction validates the intent and applies it in one database transaction.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*LedgerResult, error) {
	intent, err := parseIntent(input)
	if err != nil {
		uc.metrics.LedgerError(input.Kind, errorKind(err))
		return nil, err
	}

	var result *LedgerResult
	err = uc.run(ctx, intent.kind, intent.userID, func(ctx context.Context) error {
		var err error
		if intent.kind == KindTransfer {
			result, err = uc.recordTransfer(ctx, intent)
		} else {
			result, err = uc.recordSingle(ctx, intent)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, r := range result.Records {
		uc.metrics.RecordCreated(string(r.Mode), string(r.Kind))
	}
	if result.Transfer != nil {
		uc.metrics.TransferCreated()
	}
	if result.Limit != nil {
		uc.metrics.LimitSpent()
	}

	uc.logger.Info().
		Str("user_id", intent.userID).
		Str("kind", intent.kind).
		Str("mode", string(intent.mode)).
		Str("amount", intent.amount.String()).
		Int("records", len(result.Records)).
		Msg("transaction recorded")

	return result, nil
}

func parseIntent(input RecordTransactionInput) (*ledgerIntent, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, domain.MissingField("user_id")
	}

	mode, err := domain.ParseMode(input.Mode)
	if err != nil {
		return nil, err
	}

	kind := strings.TrimSpace(input.Kind)
	switch kind {
	case KindExpense, KindIncome, KindTransfer:
	case "":
		return nil, domain.MissingField("kind")
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrValidation, kind)
	}

	amount, err := domain.ParseAmount("amount", input.Amount)
	if err != nil {
		return nil, err
	}

	intent := &ledgerIntent{
		userID: input.UserID,
		mode:   mode,
		kind:   kind,
		amount: amount,
	}

	if kind == KindTransfer {
		intent.fromID = strings.TrimSpace(input.FromAccountID)
		intent.toID = strings.TrimSpace(input.ToAccountID)
		intent.note = strings.TrimSpace(input.Note)
		if intent.fromID == "" {
			return nil, domain.MissingField("from_account_id")
		}
		if intent.toID == "" {
			return nil, domain.MissingField("to_account_id")
		}
		if intent.fromID == intent.toID {
			return nil, domain.ErrSameAccount
		}
		if intent.fee, err = domain.ParseOptionalAmount("fee", input.Fee); err != nil {
			return nil, err
		}
		if err := domain.ValidateText("note", intent.note, domain.MaxDetailLength); err != nil {
			return nil, err
		}
		return intent, nil
	}

	intent.accountID = strings.TrimSpace(input.AccountID)
	intent.category = strings.TrimSpace(input.Category)
	intent.detail = strings.TrimSpace(input.Detail)
	if intent.accountID == "" {
		return nil, domain.MissingField("account_id")
	}
	if intent.category == "" {
		return nil, domain.MissingField("category")
	}
	if err := domain.ValidateText("detail", intent.detail, domain.MaxDetailLength); err != nil {
		return nil, err
	}

	return intent, nil
}

func (uc *LedgerUseCase) recordSingle(ctx context.Context, in *ledgerIntent) (*LedgerResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, in.userID, in.accountID)
	if err != nil {
		return nil, storeError("lock account", err)
	}

	now := uc.clock.Now()
	params := domain.RecordParams{
		ID:        uc.idGen.Generate(),
		UserID:    in.userID,
		Mode:      in.mode,
		AccountID: account.ID,
		Amount:    in.amount,
		Category:  in.category,
		Detail:    in.detail,
		Date:      uc.clock.Today(),
		CreatedAt: now,
	}

	var record *domain.Record
	if in.kind == KindIncome {
		record, err = domain.NewIncomeRecord(params)
	} else {
		record, err = domain.NewExpenseRecord(params)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.applyRecord(ctx, tx, account, record, now); err != nil {
		return nil, err
	}
	if err := uc.appendEvent(ctx, tx, domain.NewRecordCreatedEvent(uc.idGen.Generate(), record, now)); err != nil {
		return nil, err
	}

	result := &LedgerResult{
		Records:  []*domain.Record{record},
		Accounts: []*domain.Account{account},
	}

	if record.Kind == domain.RecordKindExpense && record.Mode == domain.ModePersonal {
		limit, err := uc.spendAgainstLimit(ctx, tx, record, now)
		if err != nil {
			return nil, err
		}
		result.Limit = limit
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeError("commit", err)
	}

	return result, nil
}

// spendAgainstLimit adds the record to the first limit on its account that is
// active on the record's date.
func (uc *LedgerUseCase) spendAgainstLimit(ctx context.Context, tx Transaction, record *domain.Record, now time.Time) (*domain.Limit, error) {
	limits, err := uc.limitRepo.ListByAccountForUpdate(ctx, tx, record.UserID, record.AccountID)
	if err != nil {
		return nil, storeError("lock limits", err)
	}

	limit := domain.FirstActiveLimit(limits, record.AccountID, record.Date)
	if limit == nil {
		return nil, nil
	}

	if err := uc.limitRepo.IncrementSpent(ctx, tx, limit.ID, record.Amount, now); err != nil {
		return nil, storeError("increment limit spent", err)
	}
	limit.Spent = limit.Spent.Add(record.Amount)
	limit.UpdatedAt = now

	event := domain.NewLimitEvent(uc.idGen.Generate(), domain.EventTypeLimitSpent, limit, now)
	if err := uc.appendEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	return limit, nil
}

func (uc *LedgerUseCase) recordTransfer(ctx context.Context, in *ledgerIntent) (*LedgerResult, error) {
	// Lock in sorted order so concurrent transfers between the same pair cannot deadlock.
	accountIDs := []string{in.fromID, in.toID}
	sort.Strings(accountIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, in.userID, accountIDs)
	if err != nil {
		return nil, storeError("lock accounts", err)
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	from, to := accountMap[in.fromID], accountMap[in.toID]
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	now := uc.clock.Now()
	today := uc.clock.Today()

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		UserID:        in.userID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        in.amount,
		Fee:           in.fee,
		Note:          in.note,
		Date:          today,
		CreatedAt:     now,
	}
	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, storeError("create transfer", err)
	}

	outgoing, err := domain.NewTransferExpenseRecord(domain.RecordParams{
		ID:        uc.idGen.Generate(),
		UserID:    in.userID,
		Mode:      in.mode,
		AccountID: from.ID,
		Amount:    transfer.Debit(),
		Detail:    transfer.ExpenseDetail(to.Name),
		Date:      today,
		CreatedAt: now,
	}, transfer.ID)
	if err != nil {
		return nil, err
	}

	incoming, err := domain.NewTransferIncomeRecord(domain.RecordParams{
		ID:        uc.idGen.Generate(),
		UserID:    in.userID,
		Mode:      in.mode,
		AccountID: to.ID,
		Amount:    transfer.Amount,
		Detail:    transfer.IncomeDetail(from.Name),
		Date:      today,
		CreatedAt: now,
	}, transfer.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.applyRecord(ctx, tx, from, outgoing, now); err != nil {
		return nil, err
	}
	if err := uc.applyRecord(ctx, tx, to, incoming, now); err != nil {
		return nil, err
	}

	if err := uc.appendEvent(ctx, tx, domain.NewTransferCreatedEvent(uc.idGen.Generate(), transfer, now)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeError("commit", err)
	}

	return &LedgerResult{
		Records:  []*domain.Record{outgoing, incoming},
		Transfer: transfer,
		Accounts: []*domain.Account{from, to},
	}, nil
}

// AdjustBalanceInput sets an account to a target balance.
type AdjustBalanceInput struct {
	UserID    string
	AccountID string
	Balance   string
	Mode      string
}

// AdjustBalance moves an account to the requested balance by recording the
// difference as a balance-adjustment record. No record is written when the
// balance already matches.
func (uc *LedgerUseCase) AdjustBalance(ctx context.Context, input AdjustBalanceInput) (*LedgerResult, error) {
	if strings.TrimSpace(input.AccountID) == "" {
		return nil, domain.MissingField("account_id")
	}
	target, err := domain.ParseBalance("balance", input.Balance)
	if err != nil {
		return nil, err
	}
	if input.Mode == "" {
		input.Mode = string(domain.ModePersonal)
	}
	mode, err := domain.ParseMode(input.Mode)
	if err != nil {
		return nil, err
	}

	var result *LedgerResult
	err = uc.run(ctx, "adjust", input.UserID, func(ctx context.Context) error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return storeError("begin transaction", err)
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.UserID, input.AccountID)
		if err != nil {
			return storeError("lock account", err)
		}

		delta := target.Sub(account.Balance)
		result = &LedgerResult{Accounts: []*domain.Account{account}}
		if delta.IsZero() {
			return nil
		}

		now := uc.clock.Now()
		params := domain.RecordParams{
			ID:        uc.idGen.Generate(),
			UserID:    input.UserID,
			Mode:      mode,
			AccountID: account.ID,
			Amount:    delta.Abs(),
			Category:  domain.CategoryBalanceAdjustment,
			Detail:    fmt.Sprintf("balance adjusted from %s to %s", account.Balance, target),
			Date:      uc.clock.Today(),
			CreatedAt: now,
		}

		var record *domain.Record
		if delta.IsPositive() {
			record, err = domain.NewIncomeRecord(params)
		} else {
			record, err = domain.NewExpenseRecord(params)
		}
		if err != nil {
			return err
		}

		if err := uc.applyRecord(ctx, tx, account, record, now); err != nil {
			return err
		}
		if err := uc.appendEvent(ctx, tx, domain.NewRecordCreatedEvent(uc.idGen.Generate(), record, now)); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return storeError("commit", err)
		}

		result.Records = []*domain.Record{record}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("user_id", input.UserID).
		Str("account_id", input.AccountID).
		Str("balance", target.String()).
		Msg("account balance adjusted")

	return result, nil
}

// DeleteRecord removes a record and reverses its effect on the account balance.
// Limit counters are left untouched.
func (uc *LedgerUseCase) DeleteRecord(ctx context.Context, userID, id string) (*domain.Account, error) {
	var account *domain.Account
	err := uc.run(ctx, "delete_record", userID, func(ctx context.Context) error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return storeError("begin transaction", err)
		}
		defer tx.Rollback(ctx)

		record, err := uc.recordRepo.GetByIDForUpdate(ctx, tx, userID, id)
		if err != nil {
			return storeError("lock record", err)
		}

		account, err = uc.accountRepo.GetByIDForUpdate(ctx, tx, userID, record.AccountID)
		if err != nil {
			return storeError("lock account", err)
		}

		now := uc.clock.Now()
		balance := account.Balance.Sub(record.SignedAmount())
		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, balance, now); err != nil {
			return storeError("update balance", err)
		}
		if err := uc.recordRepo.Delete(ctx, tx, userID, record.ID); err != nil {
			return storeError("delete record", err)
		}
		if err := uc.appendEvent(ctx, tx, domain.NewRecordDeletedEvent(uc.idGen.Generate(), record, now)); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return storeError("commit", err)
		}

		account.Balance = balance
		account.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().Str("user_id", userID).Str("record_id", id).Msg("record deleted")

	return account, nil
}

// applyRecord persists record and moves the account balance by its signed amount.
func (uc *LedgerUseCase) applyRecord(ctx context.Context, tx Transaction, account *domain.Account, record *domain.Record, now time.Time) error {
	if err := uc.recordRepo.Create(ctx, tx, record); err != nil {
		return storeError("create record", err)
	}

	balance := account.Apply(record.Type(), record.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, balance, now); err != nil {
		return storeError("update balance", err)
	}
	account.Balance = balance
	account.UpdatedAt = now

	return nil
}

func (uc *LedgerUseCase) appendEvent(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error {
	if uc.outboxRepo == nil {
		return nil
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return storeError("append "+event.EventType, err)
	}
	return nil
}

// run executes fn under the transaction timeout with retries, then drops the
// user's cached reports.
func (uc *LedgerUseCase) run(ctx context.Context, operation, userID string, fn func(ctx context.Context) error) error {
	start := time.Now()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err := uc.retrier.Retry(txCtx, func() error {
		return fn(txCtx)
	})
	uc.metrics.ObserveLedger(operation, time.Since(start))

	if err != nil {
		uc.metrics.LedgerError(operation, errorKind(err))
		event := uc.logger.Warn()
		if errors.Is(err, domain.ErrStoreWrite) {
			event = uc.logger.Error()
		}
		event.Err(err).Str("user_id", userID).Str("operation", operation).Msg("ledger write failed")
		return err
	}

	invalidateReports(ctx, uc.cache, uc.logger, userID)
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrStoreWrite):
		return "store_write"
	default:
		return "internal"
	}
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}

type noopMetrics struct{}

func (noopMetrics) RecordCreated(string, string)        {}
func (noopMetrics) TransferCreated()                    {}
func (noopMetrics) LimitSpent()                         {}
func (noopMetrics) LedgerError(string, string)          {}
func (noopMetrics) ObserveLedger(string, time.Duration) {}
