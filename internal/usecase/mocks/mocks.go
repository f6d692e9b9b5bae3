package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository. Reads return
// copies, so balances only change through UpdateBalance.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, userID, id string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, userID string) ([]*domain.Account, error)
	DeleteFunc            func(ctx context.Context, userID, id string) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == account.UserID && a.Name == account.Name {
			return domain.ErrDuplicateName
		}
	}
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, _ usecase.Transaction, account *domain.Account) error {
	return m.Create(ctx, account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, userID, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok && acc.UserID == userID {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, userID, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, userID, id)
	}
	return m.GetByID(ctx, userID, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, userID string, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, userID, ids)
	}
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, err := m.GetByID(ctx, userID, id); err == nil {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) Rename(_ context.Context, userID, id, name string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok || acc.UserID != userID {
		return domain.ErrAccountNotFound
	}
	for _, a := range m.accounts {
		if a.ID != id && a.UserID == userID && a.Name == name {
			return domain.ErrDuplicateName
		}
	}
	acc.Name = name
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, userID string) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := []*domain.Account{}
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			cp := *acc
			accounts = append(accounts, &cp)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; !ok || acc.UserID != userID {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// Balance returns the stored balance of id, for assertions.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance
	}
	return decimal.Zero
}

// MockRecordRepository is an in-memory RecordRepository.
type MockRecordRepository struct {
	mu      sync.RWMutex
	records []*domain.Record

	CreateFunc func(ctx context.Context, tx usecase.Transaction, record *domain.Record) error
	UpdateFunc func(ctx context.Context, record *domain.Record) error
	DeleteFunc func(ctx context.Context, tx usecase.Transaction, userID, id string) error
	ListFunc   func(ctx context.Context, userID string, filter domain.RecordFilter, limit, offset int) ([]*domain.Record, error)
}

func NewMockRecordRepository() *MockRecordRepository {
	return &MockRecordRepository{}
}

func (m *MockRecordRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.Record) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records = append(m.records, &cp)
	return nil
}

func (m *MockRecordRepository) GetByID(_ context.Context, userID, id string) (*domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ID == id && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (m *MockRecordRepository) GetByIDForUpdate(ctx context.Context, _ usecase.Transaction, userID, id string) (*domain.Record, error) {
	return m.GetByID(ctx, userID, id)
}

func (m *MockRecordRepository) List(ctx context.Context, userID string, filter domain.RecordFilter, limit, offset int) ([]*domain.Record, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Record{}
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if filter.Mode != "" && r.Mode != filter.Mode {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.AccountID != "" && r.AccountID != filter.AccountID {
			continue
		}
		if filter.Since != nil && r.Date.Before(*filter.Since) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if offset >= len(out) {
		return []*domain.Record{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockRecordRepository) ListByMode(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Record, error) {
	return m.List(ctx, userID, domain.RecordFilter{Mode: mode}, 0, 0)
}

func (m *MockRecordRepository) Update(ctx context.Context, record *domain.Record) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == record.ID && r.UserID == record.UserID {
			r.Detail = record.Detail
			r.Category = record.Category
			r.Amount = record.Amount
			r.UpdatedAt = record.UpdatedAt
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (m *MockRecordRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id && r.UserID == userID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (m *MockRecordRepository) CountByAccount(_ context.Context, userID, accountID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.records {
		if r.UserID == userID && r.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (m *MockRecordRepository) CountByCategory(_ context.Context, userID string, mode domain.Mode, category string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.records {
		if r.UserID == userID && r.Mode == mode && r.Category == category {
			n++
		}
	}
	return n, nil
}

func (m *MockRecordRepository) SumByAccount(_ context.Context, userID string) (map[string]decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sums := make(map[string]decimal.Decimal)
	for _, r := range m.records {
		if r.UserID == userID {
			sums[r.AccountID] = sums[r.AccountID].Add(r.SignedAmount())
		}
	}
	return sums, nil
}

// All returns every stored record in insertion order.
func (m *MockRecordRepository) All() []*domain.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Record, len(m.records))
	copy(out, m.records)
	return out
}

// MockTransferRepository is an in-memory TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *transfer
	m.transfers[transfer.ID] = &cp
	return nil
}

func (m *MockTransferRepository) GetByID(_ context.Context, userID, id string) (*domain.Transfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok && t.UserID == userID {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) List(_ context.Context, userID string, limit, offset int) ([]*domain.Transfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Transfer{}
	for _, t := range m.transfers {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	if offset >= len(out) {
		return []*domain.Transfer{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockTransferRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.transfers[id]; !ok || t.UserID != userID {
		return domain.ErrTransferNotFound
	}
	delete(m.transfers, id)
	return nil
}

func (m *MockTransferRepository) CountByAccount(_ context.Context, userID, accountID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, t := range m.transfers {
		if t.UserID == userID && (t.FromAccountID == accountID || t.ToAccountID == accountID) {
			n++
		}
	}
	return n, nil
}

// MockCategoryRepository is an in-memory CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories []*domain.Category

	CreateIfMissingFunc func(ctx context.Context, category *domain.Category) (bool, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

func (m *MockCategoryRepository) find(userID string, mode domain.Mode, name string) *domain.Category {
	for _, c := range m.categories {
		if c.UserID == userID && c.Mode == mode && c.Name == name {
			return c
		}
	}
	return nil
}

func (m *MockCategoryRepository) Create(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(category.UserID, category.Mode, category.Name) != nil {
		return domain.ErrDuplicateName
	}
	cp := *category
	m.categories = append(m.categories, &cp)
	return nil
}

func (m *MockCategoryRepository) CreateIfMissing(ctx context.Context, category *domain.Category) (bool, error) {
	if m.CreateIfMissingFunc != nil {
		return m.CreateIfMissingFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(category.UserID, category.Mode, category.Name) != nil {
		return false, nil
	}
	cp := *category
	m.categories = append(m.categories, &cp)
	return true, nil
}

func (m *MockCategoryRepository) GetByID(_ context.Context, userID, id string) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.ID == id && c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(_ context.Context, userID string, mode domain.Mode) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Category{}
	for _, c := range m.categories {
		if c.UserID == userID && c.Mode == mode {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockCategoryRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.categories {
		if c.ID == id && c.UserID == userID {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

// MockLimitRepository is an in-memory LimitRepository keeping creation order.
type MockLimitRepository struct {
	mu     sync.RWMutex
	limits []*domain.Limit

	IncrementSpentFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockLimitRepository() *MockLimitRepository {
	return &MockLimitRepository{}
}

func copyLimit(l *domain.Limit) *domain.Limit {
	cp := *l
	if l.StartDate != nil {
		d := *l.StartDate
		cp.StartDate = &d
	}
	return &cp
}

func (m *MockLimitRepository) Create(_ context.Context, limit *domain.Limit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limits = append(m.limits, copyLimit(limit))
	return nil
}

func (m *MockLimitRepository) GetByID(_ context.Context, userID, id string) (*domain.Limit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.limits {
		if l.ID == id && l.UserID == userID {
			return copyLimit(l), nil
		}
	}
	return nil, domain.ErrLimitNotFound
}

func (m *MockLimitRepository) ListByUser(_ context.Context, userID string) ([]*domain.Limit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Limit{}
	for _, l := range m.limits {
		if l.UserID == userID {
			out = append(out, copyLimit(l))
		}
	}
	return out, nil
}

func (m *MockLimitRepository) ListByAccountForUpdate(_ context.Context, _ usecase.Transaction, userID, accountID string) ([]*domain.Limit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Limit{}
	for _, l := range m.limits {
		if l.UserID == userID && l.AccountID == accountID {
			out = append(out, copyLimit(l))
		}
	}
	return out, nil
}

func (m *MockLimitRepository) IncrementSpent(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.IncrementSpentFunc != nil {
		return m.IncrementSpentFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.limits {
		if l.ID == id {
			l.Spent = l.Spent.Add(delta)
			l.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrLimitNotFound
}

func (m *MockLimitRepository) Update(_ context.Context, _ usecase.Transaction, limit *domain.Limit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.limits {
		if l.ID == limit.ID && l.UserID == limit.UserID {
			m.limits[i] = copyLimit(limit)
			return nil
		}
	}
	return domain.ErrLimitNotFound
}

func (m *MockLimitRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.limits {
		if l.ID == id && l.UserID == userID {
			m.limits = append(m.limits[:i], m.limits[i+1:]...)
			return nil
		}
	}
	return domain.ErrLimitNotFound
}

// MockReminderRepository is an in-memory ReminderRepository.
type MockReminderRepository struct {
	mu        sync.RWMutex
	reminders []*domain.Reminder
}

func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{}
}

func (m *MockReminderRepository) Create(_ context.Context, reminder *domain.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *reminder
	m.reminders = append(m.reminders, &cp)
	return nil
}

func (m *MockReminderRepository) List(_ context.Context, userID string) ([]*domain.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Reminder{}
	for _, r := range m.reminders {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockReminderRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reminders {
		if r.ID == id && r.UserID == userID {
			m.reminders = append(m.reminders[:i], m.reminders[i+1:]...)
			return nil
		}
	}
	return domain.ErrReminderNotFound
}

// MockOutboxRepository is an in-memory OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.OutboxEvent{}
	for _, e := range m.events {
		if e.PublishedAt == nil && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			at := publishedAt
			e.PublishedAt = &at
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	var deleted int64
	for _, e := range m.events {
		if e.PublishedAt != nil && e.PublishedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return deleted, nil
}

// EventTypes lists the types of all appended events in order.
func (m *MockOutboxRepository) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.EventType)
	}
	return out
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu        sync.Mutex
	Begun     int
	Committed int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	m.Begun++
	m.mu.Unlock()
	return &MockTransaction{
		CommitFunc: func(context.Context) error {
			m.mu.Lock()
			m.Committed++
			m.mu.Unlock()
			return nil
		},
	}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockClock is a fixed Clock.
type MockClock struct {
	mu    sync.RWMutex
	today domain.Date
}

func NewMockClock(today domain.Date) *MockClock {
	return &MockClock{today: today}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.today.Time.Add(12 * time.Hour)
}

func (c *MockClock) Today() domain.Date {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.today
}

// Set moves the clock to another day.
func (c *MockClock) Set(today domain.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = today
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Get returns the stored value of key.
func (m *MockIdempotencyStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
