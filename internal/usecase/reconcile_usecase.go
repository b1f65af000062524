package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/metrics"
)

// ReconcileUseCase recovers the previous/new balance around a specific
// payment from the account's ledger history, for receipt purposes. The
// ledger does not expose a "balance before this transaction" field, so
// the pre-payment balance is recovered by reversing the payment's effect
// on its BalanceAfter snapshot.
type ReconcileUseCase struct {
	ledger   LedgerService
	accounts AccountRepository
	logger   zerolog.Logger
	epsilon  decimal.Decimal
}

// NewReconcileUseCase creates a new ReconcileUseCase.
func NewReconcileUseCase(ledger LedgerService, accounts AccountRepository, logger zerolog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{
		ledger:   ledger,
		accounts: accounts,
		logger:   logger,
		epsilon:  decimal.RequireFromString(PaymentMatchEpsilon),
	}
}

// PaymentRef identifies the payment being reconciled. TransactionID is
// optional: when present an exact join is used, otherwise the amount+date
// heuristic applies.
type PaymentRef struct {
	Date          time.Time
	TransactionID string
	Amount        decimal.Decimal
}

// BalancePair holds the receipt-facing magnitudes around a payment.
type BalancePair struct {
	NewSign  domain.BalanceSign
	Previous decimal.Decimal
	New      decimal.Decimal
}

// ReconcileFromLedger locates the ledger entry matching target and
// derives the balance pair around it. A lookup miss is not an error:
// printing must remain possible even when the ledger search is
// ambiguous, so the caller-supplied fallback (the values cached at
// submission time) is returned instead.
func (uc *ReconcileUseCase) ReconcileFromLedger(ctx context.Context, accountID string, target PaymentRef, fallback BalancePair) BalancePair {
	transactions, err := uc.ledger.TransactionsForAccount(ctx, accountID)
	if err != nil {
		uc.logger.Debug().
			Err(err).
			Str("account_id", accountID).
			Msg("ledger read failed, falling back to cached balances")
		metrics.ReconciliationMisses.Inc()

		return fallback
	}

	match := uc.findPayment(transactions, target)
	if match == nil {
		uc.logger.Debug().
			Str("account_id", accountID).
			Str("amount", target.Amount.String()).
			Time("date", target.Date).
			Msg("no matching ledger payment, falling back to cached balances")
		metrics.ReconciliationMisses.Inc()

		return fallback
	}

	newMagnitude, newSign := domain.SplitSigned(match.BalanceAfter)
	previousMagnitude := match.BalanceAfter.Sub(match.Amount).Abs()

	return BalancePair{
		Previous: previousMagnitude,
		New:      newMagnitude,
		NewSign:  newSign,
	}
}

// findPayment prefers an exact id join and falls back to matching a
// payment by amount (within epsilon) on the same calendar date. Two
// same-day, same-amount payments are indistinguishable to the heuristic;
// the first in persisted order wins.
func (uc *ReconcileUseCase) findPayment(transactions []*domain.Transaction, target PaymentRef) *domain.Transaction {
	if target.TransactionID != "" {
		for _, tx := range transactions {
			if tx.ID == target.TransactionID && tx.Type == domain.TransactionTypePayment {
				return tx
			}
		}
	}

	for _, tx := range transactions {
		if tx.Type != domain.TransactionTypePayment {
			continue
		}
		if tx.Amount.Sub(target.Amount).Abs().GreaterThanOrEqual(uc.epsilon) {
			continue
		}
		if !domain.SameCalendarDay(tx.Date, target.Date) {
			continue
		}

		return tx
	}

	return nil
}

// VerifyProjection compares the account record's signed balance against
// the latest authoritative ledger snapshot and returns the drift. The
// locally projected balance computed at submission time must converge
// with the ledger on the next read; non-zero drift is logged and counted
// but left to the operator.
func (uc *ReconcileUseCase) VerifyProjection(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	transactions, err := uc.ledger.TransactionsForAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if len(transactions) == 0 {
		return account.SignedBalance(), nil
	}

	latest := transactions[len(transactions)-1]
	drift := account.SignedBalance().Sub(latest.BalanceAfter)

	if !drift.IsZero() {
		uc.logger.Warn().
			Str("account_id", accountID).
			Str("recorded", account.SignedBalance().String()).
			Str("ledger", latest.BalanceAfter.String()).
			Str("drift", drift.String()).
			Msg("projected balance diverges from ledger")
		metrics.ProjectionDriftDetected.Inc()
	}

	return drift, nil
}
