package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
)

// AccountRepository implements usecase.AccountRepository on pgx.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, code, first_name, last_name, phone, kind,
	balance_magnitude::text, balance_sign, created_at, updated_at, archived_at`

// Create inserts a new account row.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, code, first_name, last_name, phone, kind,
			balance_magnitude, balance_sign, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID,
		account.Code,
		account.FirstName,
		account.LastName,
		account.Phone,
		string(account.Kind),
		account.BalanceMagnitude.String(),
		string(account.BalanceSign),
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account by id.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByCode retrieves an account by its human-facing code.
func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code)

	return scanAccount(row)
}

// List retrieves accounts of a kind, unarchived first, paginated.
func (r *AccountRepository) List(ctx context.Context, kind domain.AccountKind, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE ($1 = '' OR kind = $1)
		ORDER BY archived_at NULLS FIRST, last_name, first_name
		LIMIT $2 OFFSET $3`,
		string(kind), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Archive soft-deletes an account. The row stays for the transactions
// that reference it.
func (r *AccountRepository) Archive(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET archived_at = $1, updated_at = $1 WHERE id = $2 AND archived_at IS NULL`,
		at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		kind      string
		sign      string
		magnitude string
	)

	err := row.Scan(
		&account.ID,
		&account.Code,
		&account.FirstName,
		&account.LastName,
		&account.Phone,
		&kind,
		&magnitude,
		&sign,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	account.Kind = domain.AccountKind(kind)
	account.BalanceSign = domain.BalanceSign(sign)
	account.BalanceMagnitude, err = decimal.NewFromString(magnitude)
	if err != nil {
		return nil, err
	}

	return &account, nil
}
