package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase/mocks"
)

var feb25 = time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)

func fallbackPair() usecase.BalancePair {
	return usecase.BalancePair{
		Previous: decimal.NewFromInt(10000),
		New:      decimal.NewFromInt(9000),
		NewSign:  domain.BalanceSignDebit,
	}
}

func TestReconcileUseCase_ReconcileFromLedger_Match(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewGomockLedgerService(ctrl)
	ledger.EXPECT().TransactionsForAccount(gomock.Any(), "acc-1").Return([]*domain.Transaction{
		{
			ID:           "tx-1",
			AccountID:    "acc-1",
			Type:         domain.TransactionTypeInvoice,
			Amount:       decimal.NewFromInt(10000),
			Date:         feb25.AddDate(0, -1, 0),
			BalanceAfter: decimal.NewFromInt(-10000),
		},
		{
			ID:           "tx-2",
			AccountID:    "acc-1",
			Type:         domain.TransactionTypePayment,
			Amount:       decimal.NewFromInt(1000),
			Date:         feb25,
			BalanceAfter: decimal.NewFromInt(-9000),
		},
	}, nil)

	uc := usecase.NewReconcileUseCase(ledger, mocks.NewMockAccountRepository(), zerolog.Nop())

	pair := uc.ReconcileFromLedger(context.Background(), "acc-1", usecase.PaymentRef{
		Amount: decimal.NewFromInt(1000),
		Date:   feb25,
	}, usecase.BalancePair{})

	if !pair.Previous.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Previous = %s, want 10000", pair.Previous)
	}
	if !pair.New.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("New = %s, want 9000", pair.New)
	}
	if pair.NewSign != domain.BalanceSignDebit {
		t.Errorf("NewSign = %s, want debit", pair.NewSign)
	}
}

func TestReconcileUseCase_ReconcileFromLedger_MissFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewGomockLedgerService(ctrl)
	ledger.EXPECT().TransactionsForAccount(gomock.Any(), "acc-1").Return([]*domain.Transaction{
		{
			ID:           "tx-1",
			Type:         domain.TransactionTypePayment,
			Amount:       decimal.NewFromInt(777),
			Date:         feb25.AddDate(0, 0, -3),
			BalanceAfter: decimal.NewFromInt(-123),
		},
	}, nil)

	uc := usecase.NewReconcileUseCase(ledger, mocks.NewMockAccountRepository(), zerolog.Nop())

	fallback := fallbackPair()
	pair := uc.ReconcileFromLedger(context.Background(), "acc-1", usecase.PaymentRef{
		Amount: decimal.NewFromInt(1000),
		Date:   feb25,
	}, fallback)

	if !pair.Previous.Equal(fallback.Previous) || !pair.New.Equal(fallback.New) || pair.NewSign != fallback.NewSign {
		t.Errorf("miss must return the caller-supplied fallback, got %+v", pair)
	}
}

func TestReconcileUseCase_ReconcileFromLedger_LedgerErrorFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewGomockLedgerService(ctrl)
	ledger.EXPECT().TransactionsForAccount(gomock.Any(), "acc-1").Return(nil, errors.New("ledger unavailable"))

	uc := usecase.NewReconcileUseCase(ledger, mocks.NewMockAccountRepository(), zerolog.Nop())

	fallback := fallbackPair()
	pair := uc.ReconcileFromLedger(context.Background(), "acc-1", usecase.PaymentRef{
		Amount: decimal.NewFromInt(1000),
		Date:   feb25,
	}, fallback)

	if !pair.New.Equal(fallback.New) {
		t.Error("a ledger read failure must degrade to the fallback, never error")
	}
}

func TestReconcileUseCase_ReconcileFromLedger_EpsilonAndDate(t *testing.T) {
	entry := func(amount string, date time.Time) []*domain.Transaction {
		return []*domain.Transaction{{
			ID:           "tx-1",
			Type:         domain.TransactionTypePayment,
			Amount:       decimal.RequireFromString(amount),
			Date:         date,
			BalanceAfter: decimal.RequireFromString("-9000"),
		}}
	}

	tests := []struct {
		name         string
		transactions []*domain.Transaction
		wantMatch    bool
	}{
		{"sub-epsilon amount difference matches", entry("1000.005", feb25), true},
		{"amount off by a cent misses", entry("1000.01", feb25), false},
		{"same day different time matches", entry("1000", feb25.Add(14*time.Hour)), true},
		{"previous day misses", entry("1000", feb25.AddDate(0, 0, -1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mocks.NewMockLedgerService()
			ledger.TransactionsForAccountFunc = func(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
				return tt.transactions, nil
			}

			uc := usecase.NewReconcileUseCase(ledger, mocks.NewMockAccountRepository(), zerolog.Nop())

			fallback := usecase.BalancePair{Previous: decimal.NewFromInt(1), New: decimal.NewFromInt(2)}
			pair := uc.ReconcileFromLedger(context.Background(), "acc-1", usecase.PaymentRef{
				Amount: decimal.NewFromInt(1000),
				Date:   feb25,
			}, fallback)

			matched := !pair.New.Equal(fallback.New)
			if matched != tt.wantMatch {
				t.Errorf("matched = %v, want %v", matched, tt.wantMatch)
			}
		})
	}
}

func TestReconcileUseCase_ReconcileFromLedger_ExactIDMatch(t *testing.T) {
	// With a transaction id the exact join wins even when another
	// same-day same-amount payment exists earlier in the list.
	ledger := mocks.NewMockLedgerService()
	ledger.TransactionsForAccountFunc = func(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
		return []*domain.Transaction{
			{
				ID:           "tx-1",
				Type:         domain.TransactionTypePayment,
				Amount:       decimal.NewFromInt(1000),
				Date:         feb25,
				BalanceAfter: decimal.NewFromInt(-9000),
			},
			{
				ID:           "tx-2",
				Type:         domain.TransactionTypePayment,
				Amount:       decimal.NewFromInt(1000),
				Date:         feb25,
				BalanceAfter: decimal.NewFromInt(-8000),
			},
		}, nil
	}

	uc := usecase.NewReconcileUseCase(ledger, mocks.NewMockAccountRepository(), zerolog.Nop())

	pair := uc.ReconcileFromLedger(context.Background(), "acc-1", usecase.PaymentRef{
		TransactionID: "tx-2",
		Amount:        decimal.NewFromInt(1000),
		Date:          feb25,
	}, usecase.BalancePair{})

	if !pair.New.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("New = %s, want 8000 (from tx-2)", pair.New)
	}
	if !pair.Previous.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("Previous = %s, want 9000", pair.Previous)
	}
}

func TestReconcileUseCase_VerifyProjection(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	accounts.Create(context.Background(), debtorAccount("acc-1", 9000))

	t.Run("converged", func(t *testing.T) {
		ledger := mocks.NewMockLedgerService()
		ledger.Seed(&domain.Transaction{
			ID:           "tx-1",
			AccountID:    "acc-1",
			Type:         domain.TransactionTypePayment,
			Amount:       decimal.NewFromInt(1000),
			BalanceAfter: decimal.NewFromInt(-9000),
		})

		uc := usecase.NewReconcileUseCase(ledger, accounts, zerolog.Nop())

		drift, err := uc.VerifyProjection(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !drift.IsZero() {
			t.Errorf("drift = %s, want 0", drift)
		}
	})

	t.Run("drift detected", func(t *testing.T) {
		ledger := mocks.NewMockLedgerService()
		ledger.Seed(&domain.Transaction{
			ID:           "tx-1",
			AccountID:    "acc-1",
			Type:         domain.TransactionTypePayment,
			Amount:       decimal.NewFromInt(1000),
			BalanceAfter: decimal.NewFromInt(-8500),
		})

		uc := usecase.NewReconcileUseCase(ledger, accounts, zerolog.Nop())

		drift, err := uc.VerifyProjection(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !drift.Equal(decimal.NewFromInt(-500)) {
			t.Errorf("drift = %s, want -500", drift)
		}
	})
}

func TestReconcileUseCase_ProjectionConvergesAfterPayment(t *testing.T) {
	// The optimistic projection computed at submission time must agree
	// with the next authoritative ledger read.
	accounts := mocks.NewMockAccountRepository()
	account := debtorAccount("acc-1", 10000)
	accounts.Create(context.Background(), account)

	ledger := mocks.NewMockLedgerService()
	ledger.Seed(&domain.Transaction{
		ID:           "tx-0",
		AccountID:    "acc-1",
		Type:         domain.TransactionTypeInvoice,
		Amount:       decimal.NewFromInt(10000),
		BalanceAfter: decimal.NewFromInt(-10000),
	})

	payUC := newPaymentUseCase(ledger, accounts, nil, nil)

	result, err := payUC.SubmitPayment(context.Background(), validInput("acc-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The repository snapshot catches up with the ledger, as the store
	// does transactionally in production.
	account.BalanceMagnitude = result.NewBalance
	account.BalanceSign = result.NewBalanceSign

	reconUC := usecase.NewReconcileUseCase(ledger, accounts, zerolog.Nop())

	drift, err := reconUC.VerifyProjection(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !drift.IsZero() {
		t.Errorf("projected balance drifted from ledger by %s", drift)
	}
	if !result.LedgerBalance.Equal(decimal.NewFromInt(-9000)) {
		t.Errorf("ledger balance after payment = %s, want -9000", result.LedgerBalance)
	}
}
