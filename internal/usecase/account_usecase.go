package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/metrics"
)

// AccountUseCase handles the client/supplier registry around the ledger.
type AccountUseCase struct {
	accounts AccountRepository
	ledger   LedgerService
	cache    Cache
	idGen    IDGenerator
	logger   zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(accounts AccountRepository, ledger LedgerService, cache Cache, idGen IDGenerator, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accounts: accounts,
		ledger:   ledger,
		cache:    cache,
		idGen:    idGen,
		logger:   logger,
	}
}

// CreateAccountInput represents input for registering an account.
type CreateAccountInput struct {
	FirstName string
	LastName  string
	Phone     string
	Kind      domain.AccountKind
}

// CreateAccount registers a new client or supplier. Balances start at
// zero, classified credit per the settled-zero rule.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.FirstName, input.LastName); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountKind(input.Kind); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := uc.idGen.Generate()

	account := &domain.Account{
		ID:               id,
		Code:             accountCode(input.Kind, id),
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Phone:            strings.TrimSpace(input.Phone),
		Kind:             input.Kind,
		BalanceMagnitude: decimal.Zero,
		BalanceSign:      domain.BalanceSignCredit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	metrics.AccountsCreated.Inc()

	return account, nil
}

// GetAccount retrieves an account by id, serving from the snapshot cache
// when fresh.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if cached := uc.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	account, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.toCache(ctx, account)

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Kind   domain.AccountKind
	Limit  int
	Offset int
}

// ListAccounts lists accounts of a kind with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accounts.List(ctx, input.Kind, limit, offset)
}

// ArchiveAccount soft-deletes an account. Transactions keep referencing
// it; the row is never removed.
func (uc *AccountUseCase) ArchiveAccount(ctx context.Context, id string) error {
	if err := uc.accounts.Archive(ctx, id, time.Now().UTC()); err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, accountCachePrefix+id); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", id).Msg("account cache invalidation failed")
		}
	}

	return nil
}

// ListTransactionsInput represents input for the account history screen.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions lists an account's ledger history, newest page first.
func (uc *AccountUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.ledger.ListTransactions(ctx, input.AccountID, limit, offset)
}

func (uc *AccountUseCase) fromCache(ctx context.Context, id string) *domain.Account {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, accountCachePrefix+id)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("account_id", id).Msg("account cache read failed")
		}
		return nil
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil
	}

	return &account
}

func (uc *AccountUseCase) toCache(ctx context.Context, account *domain.Account) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(account)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, accountCachePrefix+account.ID, raw, AccountCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", account.ID).Msg("account cache write failed")
	}
}

// accountCode derives the human-facing reference printed on receipts:
// kind prefix plus the tail of the ULID.
func accountCode(kind domain.AccountKind, id string) string {
	prefix := "C"
	if kind == domain.AccountKindSupplier {
		prefix = "S"
	}

	tail := id
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}

	return prefix + "-" + tail
}
