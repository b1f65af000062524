package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

// LedgerStore implements usecase.LedgerService: an append-only store of
// signed monetary events. It is the sole writer of balance_after; each
// write locks the account row, chains the new snapshot onto the current
// signed balance and updates the account inside one transaction, so the
// balance_after sequence can never fork.
type LedgerStore struct {
	pool    *pgxpool.Pool
	idGen   usecase.IDGenerator
	retrier *Retrier
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(pool *pgxpool.Pool, idGen usecase.IDGenerator, retrier *Retrier) *LedgerStore {
	return &LedgerStore{
		pool:    pool,
		idGen:   idGen,
		retrier: retrier,
	}
}

const transactionColumns = `id, account_id, type, amount::text, date, method,
	note, reference, balance_after::text, created_at`

// CreatePayment appends a payment to the account's ledger.
func (s *LedgerStore) CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		AccountID: input.AccountID,
		Type:      domain.TransactionTypePayment,
		Amount:    input.Amount,
		Date:      input.Date,
		Method:    input.Method,
		Note:      input.Note,
		Reference: input.Reference,
	}

	return s.appendTransaction(ctx, tx)
}

// CreateCharge appends an invoice charge to the account's ledger.
func (s *LedgerStore) CreateCharge(ctx context.Context, input usecase.CreateChargeInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		AccountID: input.AccountID,
		Type:      domain.TransactionTypeInvoice,
		Amount:    input.Amount,
		Date:      input.Date,
		Note:      input.Note,
		Reference: input.Reference,
	}

	return s.appendTransaction(ctx, tx)
}

func (s *LedgerStore) appendTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	tx.ID = s.idGen.Generate()
	tx.CreatedAt = time.Now().UTC()

	operation := func() error {
		return s.appendOnce(ctx, tx)
	}

	if s.retrier != nil {
		if err := s.retrier.Retry(ctx, operation); err != nil {
			return nil, err
		}
	} else if err := operation(); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *LedgerStore) appendOnce(ctx context.Context, tx *domain.Transaction) error {
	dbTx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer dbTx.Rollback(ctx)

	// Lock the account row: the signed balance read here is the chain
	// predecessor of the snapshot being written.
	var (
		magnitude string
		sign      string
	)
	err = dbTx.QueryRow(ctx,
		`SELECT balance_magnitude::text, balance_sign FROM accounts WHERE id = $1 FOR UPDATE`,
		tx.AccountID,
	).Scan(&magnitude, &sign)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAccountNotFound
		}
		return err
	}

	current, err := decimal.NewFromString(magnitude)
	if err != nil {
		return err
	}
	if domain.BalanceSign(sign) == domain.BalanceSignDebit {
		current = current.Neg()
	}

	newSigned := current.Add(tx.SignedDelta())
	tx.BalanceAfter = newSigned

	_, err = dbTx.Exec(ctx, `
		INSERT INTO transactions (id, account_id, type, amount, date, method,
			note, reference, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tx.ID,
		tx.AccountID,
		string(tx.Type),
		tx.Amount.String(),
		tx.Date,
		string(tx.Method),
		tx.Note,
		tx.Reference,
		tx.BalanceAfter.String(),
		tx.CreatedAt,
	)
	if err != nil {
		return err
	}

	newMagnitude, newSign := domain.SplitSigned(newSigned)
	_, err = dbTx.Exec(ctx,
		`UPDATE accounts SET balance_magnitude = $1, balance_sign = $2, updated_at = $3 WHERE id = $4`,
		newMagnitude.String(), string(newSign), tx.CreatedAt, tx.AccountID)
	if err != nil {
		return err
	}

	return dbTx.Commit(ctx)
}

// TransactionsForAccount returns the account's full ledger in persisted
// order, oldest first, as reconciliation expects.
func (s *LedgerStore) TransactionsForAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE account_id = $1 ORDER BY created_at, id`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListTransactions returns a page of the account's ledger, newest
// first, for history screens.
func (s *LedgerStore) ListTransactions(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx           domain.Transaction
		txType       string
		method       string
		amount       string
		balanceAfter string
	)

	err := row.Scan(
		&tx.ID,
		&tx.AccountID,
		&txType,
		&amount,
		&tx.Date,
		&method,
		&tx.Note,
		&tx.Reference,
		&balanceAfter,
		&tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	tx.Type = domain.TransactionType(txType)
	tx.Method = domain.PaymentMethod(method)

	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	if tx.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
		return nil, err
	}

	return &tx, nil
}
