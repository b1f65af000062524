package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc    func(ctx context.Context, account *domain.Account) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Account, error)
	GetByCodeFunc func(ctx context.Context, code string) (*domain.Account, error)
	ListFunc      func(ctx context.Context, kind domain.AccountKind, limit, offset int) ([]*domain.Account, error)
	ArchiveFunc   func(ctx context.Context, id string, at time.Time) error
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
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Code == code {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, kind domain.AccountKind, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if kind == "" || acc.Kind == kind {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Archive(ctx context.Context, id string, at time.Time) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.ArchivedAt = &at
		return nil
	}
	return domain.ErrAccountNotFound
}

// MockLedgerService is a mock implementation of LedgerService. By
// default it behaves as an in-memory append-only ledger keyed by
// account, maintaining BalanceAfter per the sign convention.
type MockLedgerService struct {
	mu           sync.RWMutex
	transactions map[string][]*domain.Transaction
	nextID       int

	CreatePaymentFunc          func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Transaction, error)
	CreateChargeFunc           func(ctx context.Context, input usecase.CreateChargeInput) (*domain.Transaction, error)
	TransactionsForAccountFunc func(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	ListTransactionsFunc       func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockLedgerService() *MockLedgerService {
	return &MockLedgerService{
		transactions: make(map[string][]*domain.Transaction),
	}
}

func (m *MockLedgerService) CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Transaction, error) {
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, input)
	}
	return m.append(&domain.Transaction{
		AccountID: input.AccountID,
		Type:      domain.TransactionTypePayment,
		Amount:    input.Amount,
		Date:      input.Date,
		Method:    input.Method,
		Note:      input.Note,
		Reference: input.Reference,
	}), nil
}

func (m *MockLedgerService) CreateCharge(ctx context.Context, input usecase.CreateChargeInput) (*domain.Transaction, error) {
	if m.CreateChargeFunc != nil {
		return m.CreateChargeFunc(ctx, input)
	}
	return m.append(&domain.Transaction{
		AccountID: input.AccountID,
		Type:      domain.TransactionTypeInvoice,
		Amount:    input.Amount,
		Date:      input.Date,
		Note:      input.Note,
		Reference: input.Reference,
	}), nil
}

func (m *MockLedgerService) TransactionsForAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if m.TransactionsForAccountFunc != nil {
		return m.TransactionsForAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transaction(nil), m.transactions[accountID]...), nil
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, accountID, limit, offset)
	}
	all, _ := m.TransactionsForAccount(ctx, accountID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Seed appends a pre-built transaction, carrying its BalanceAfter as
// given.
func (m *MockLedgerService) Seed(tx *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.AccountID] = append(m.transactions[tx.AccountID], tx)
}

func (m *MockLedgerService) append(tx *domain.Transaction) *domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	tx.ID = "tx-" + itoa(m.nextID)
	tx.CreatedAt = time.Now().UTC()

	prev := decimal.Zero
	if existing := m.transactions[tx.AccountID]; len(existing) > 0 {
		prev = existing[len(existing)-1].BalanceAfter
	}
	tx.BalanceAfter = prev.Add(tx.SignedDelta())

	m.transactions[tx.AccountID] = append(m.transactions[tx.AccountID], tx)
	return tx
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	mu sync.Mutex

	AccountChanged  []domain.AccountChangedEvent
	PaymentRecorded []domain.PaymentRecordedEvent

	PublishAccountChangedFunc  func(ctx context.Context, event domain.AccountChangedEvent) error
	PublishPaymentRecordedFunc func(ctx context.Context, event domain.PaymentRecordedEvent) error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishAccountChanged(ctx context.Context, event domain.AccountChangedEvent) error {
	if m.PublishAccountChangedFunc != nil {
		return m.PublishAccountChangedFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccountChanged = append(m.AccountChanged, event)
	return nil
}

func (m *MockEventPublisher) PublishPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	if m.PublishPaymentRecordedFunc != nil {
		return m.PublishPaymentRecordedFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentRecorded = append(m.PaymentRecorded, event)
	return nil
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, usecase.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// MockIDGenerator returns sequential ids.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
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
	m.next++
	return "id-" + itoa(m.next)
}

// FixedDateFormatter renders dd/mm/yyyy with an English weekday, enough
// for asserting formatted output in tests.
type FixedDateFormatter struct{}

func (FixedDateFormatter) LongDate(t time.Time) string {
	return t.UTC().Format("Monday, 02/01/2006")
}
