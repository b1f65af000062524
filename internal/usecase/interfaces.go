package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	List(ctx context.Context, kind domain.AccountKind, limit, offset int) ([]*domain.Account, error)
	Archive(ctx context.Context, id string, at time.Time) error
}

// CreatePaymentInput is the write contract of the ledger collaborator.
type CreatePaymentInput struct {
	Date      time.Time
	AccountID string
	Note      string
	Reference string
	Method    domain.PaymentMethod
	Amount    decimal.Decimal
}

// CreateChargeInput records an invoice/charge against an account.
type CreateChargeInput struct {
	Date      time.Time
	AccountID string
	Note      string
	Reference string
	Amount    decimal.Decimal
}

// LedgerService is the transaction-persistence collaborator: an
// append-only store of signed monetary events, the sole writer of
// BalanceAfter. CreatePayment returns the persisted transaction,
// including its id and balance snapshot.
type LedgerService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Transaction, error)
	CreateCharge(ctx context.Context, input CreateChargeInput) (*domain.Transaction, error)
	TransactionsForAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	ListTransactions(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// EventPublisher broadcasts typed events to dependent views. Publishing
// is fire-and-forget: callers log failures and move on.
type EventPublisher interface {
	PublishAccountChanged(ctx context.Context, event domain.AccountChangedEvent) error
	PublishPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error
}

// Cache defines caching operations for account snapshots.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// DateFormatter renders calendar dates for the active locale.
type DateFormatter interface {
	LongDate(t time.Time) string
}
