package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase/mocks"
)

func debtorAccount(id string, magnitude int64) *domain.Account {
	return &domain.Account{
		ID:               id,
		Code:             "C-TEST0001",
		FirstName:        "Karim",
		LastName:         "Bennani",
		Kind:             domain.AccountKindClient,
		BalanceMagnitude: decimal.NewFromInt(magnitude),
		BalanceSign:      domain.BalanceSignDebit,
	}
}

func newPaymentUseCase(ledger usecase.LedgerService, accounts usecase.AccountRepository, events usecase.EventPublisher, cache usecase.Cache) *usecase.PaymentUseCase {
	return usecase.NewPaymentUseCase(ledger, accounts, events, cache, mocks.FixedDateFormatter{}, zerolog.Nop())
}

func validInput(accountID string) usecase.SubmitPaymentInput {
	return usecase.SubmitPaymentInput{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(1000),
		Date:      time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC),
		Method:    domain.PaymentMethodCash,
	}
}

func TestPaymentUseCase_SubmitPayment_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*usecase.SubmitPaymentInput)
		wantField string
	}{
		{"zero amount", func(in *usecase.SubmitPaymentInput) { in.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(in *usecase.SubmitPaymentInput) { in.Amount = decimal.NewFromInt(-5) }, "amount"},
		{"missing date", func(in *usecase.SubmitPaymentInput) { in.Date = time.Time{} }, "date"},
		{"missing method", func(in *usecase.SubmitPaymentInput) { in.Method = "" }, "method"},
		{"unknown method", func(in *usecase.SubmitPaymentInput) { in.Method = "barter" }, "method"},
		{"missing account", func(in *usecase.SubmitPaymentInput) { in.AccountID = "" }, "account_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mocks.NewMockLedgerService()
			ledger.CreatePaymentFunc = func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Transaction, error) {
				t.Fatal("ledger must not be called for invalid input")
				return nil, nil
			}

			accounts := mocks.NewMockAccountRepository()
			accounts.Create(context.Background(), debtorAccount("acc-1", 10000))

			uc := newPaymentUseCase(ledger, accounts, nil, nil)

			input := validInput("acc-1")
			tt.mutate(&input)

			_, err := uc.SubmitPayment(context.Background(), input)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tt.wantField]; !ok {
				t.Errorf("expected failure tagged %q, got fields %v", tt.wantField, ve.Fields)
			}
		})
	}
}

func TestPaymentUseCase_SubmitPayment_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		magnitude     int64
		sign          domain.BalanceSign
		paid          int64
		wantMagnitude int64
		wantSign      domain.BalanceSign
	}{
		{"partial payment keeps debtor", 10000, domain.BalanceSignDebit, 1000, 9000, domain.BalanceSignDebit},
		{"exact payment settles as credit", 500, domain.BalanceSignDebit, 500, 0, domain.BalanceSignCredit},
		{"payment on credit grows credit", 200, domain.BalanceSignCredit, 300, 500, domain.BalanceSignCredit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := debtorAccount("acc-1", tt.magnitude)
			account.BalanceSign = tt.sign

			accounts := mocks.NewMockAccountRepository()
			accounts.Create(context.Background(), account)

			ledger := mocks.NewMockLedgerService()
			events := mocks.NewMockEventPublisher()

			uc := newPaymentUseCase(ledger, accounts, events, nil)

			input := validInput("acc-1")
			input.Amount = decimal.NewFromInt(tt.paid)

			result, err := uc.SubmitPayment(context.Background(), input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !result.PreviousBalance.Equal(decimal.NewFromInt(tt.magnitude)) {
				t.Errorf("PreviousBalance = %s, want %d", result.PreviousBalance, tt.magnitude)
			}
			if !result.NewBalance.Equal(decimal.NewFromInt(tt.wantMagnitude)) {
				t.Errorf("NewBalance = %s, want %d", result.NewBalance, tt.wantMagnitude)
			}
			if result.NewBalanceSign != tt.wantSign {
				t.Errorf("NewBalanceSign = %s, want %s", result.NewBalanceSign, tt.wantSign)
			}
			if result.TransactionID == "" {
				t.Error("expected persisted transaction id")
			}
			if result.FormattedDate != "Wednesday, 25/02/2026" {
				t.Errorf("FormattedDate = %q", result.FormattedDate)
			}
			if len(events.AccountChanged) != 1 {
				t.Errorf("expected one account-changed broadcast, got %d", len(events.AccountChanged))
			}
		})
	}
}

func TestPaymentUseCase_SubmitPayment_PersistenceError(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	accounts.Create(context.Background(), debtorAccount("acc-1", 10000))

	ledger := mocks.NewMockLedgerService()
	ledger.CreatePaymentFunc = func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Transaction, error) {
		return nil, errors.New("connection refused")
	}

	events := mocks.NewMockEventPublisher()
	cache := mocks.NewMockCache()
	cache.Set(context.Background(), "account:acc-1", []byte("cached"), time.Minute)

	uc := newPaymentUseCase(ledger, accounts, events, cache)

	_, err := uc.SubmitPayment(context.Background(), validInput("acc-1"))

	if !domain.IsPersistence(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if len(events.AccountChanged) != 0 {
		t.Error("no broadcast may be emitted on a failed persist")
	}
	if _, cacheErr := cache.Get(context.Background(), "account:acc-1"); cacheErr != nil {
		t.Error("cached balance must not be invalidated on a failed persist")
	}
}

func TestPaymentUseCase_SubmitPayment_NoDeduplication(t *testing.T) {
	// Two identical submissions must create two distinct ledger entries:
	// the workflow performs no silent merge.
	accounts := mocks.NewMockAccountRepository()
	accounts.Create(context.Background(), debtorAccount("acc-1", 10000))

	ledger := mocks.NewMockLedgerService()
	uc := newPaymentUseCase(ledger, accounts, nil, nil)

	first, err := uc.SubmitPayment(context.Background(), validInput("acc-1"))
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := uc.SubmitPayment(context.Background(), validInput("acc-1"))
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if first.TransactionID == second.TransactionID {
		t.Error("identical submissions must produce distinct transactions")
	}

	entries, _ := ledger.TransactionsForAccount(context.Background(), "acc-1")
	if len(entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(entries))
	}
	if !entries[1].BalanceAfter.Equal(entries[0].BalanceAfter.Add(entries[1].SignedDelta())) {
		t.Error("balance_after chain broken across duplicate payments")
	}
}

func TestPaymentUseCase_SubmitPayment_ReentrancyGuard(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	accounts.Create(context.Background(), debtorAccount("acc-1", 10000))

	started := make(chan struct{})
	release := make(chan struct{})
	var startedOnce sync.Once

	ledger := mocks.NewMockLedgerService()
	ledger.CreatePaymentFunc = func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Transaction, error) {
		startedOnce.Do(func() { close(started) })
		<-release
		return &domain.Transaction{ID: "tx-1", BalanceAfter: decimal.NewFromInt(-9000)}, nil
	}

	uc := newPaymentUseCase(ledger, accounts, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := uc.SubmitPayment(context.Background(), validInput("acc-1")); err != nil {
			t.Errorf("in-flight submit failed: %v", err)
		}
	}()

	<-started
	_, err := uc.SubmitPayment(context.Background(), validInput("acc-1"))
	if !errors.Is(err, domain.ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	wg.Wait()

	// The guard releases once the first submission resolves.
	if _, err := uc.SubmitPayment(context.Background(), validInput("acc-1")); err != nil {
		t.Errorf("submit after resolution failed: %v", err)
	}
}

func TestPaymentUseCase_SubmitPayment_ArchivedAccount(t *testing.T) {
	account := debtorAccount("acc-1", 100)
	archived := time.Now().UTC()
	account.ArchivedAt = &archived

	accounts := mocks.NewMockAccountRepository()
	accounts.Create(context.Background(), account)

	uc := newPaymentUseCase(mocks.NewMockLedgerService(), accounts, nil, nil)

	_, err := uc.SubmitPayment(context.Background(), validInput("acc-1"))
	if !errors.Is(err, domain.ErrAccountArchived) {
		t.Errorf("expected ErrAccountArchived, got %v", err)
	}
}

func TestPaymentUseCase_SubmitPayment_InvalidatesCache(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	accounts.Create(context.Background(), debtorAccount("acc-1", 10000))

	cache := mocks.NewMockCache()
	cache.Set(context.Background(), "account:acc-1", []byte("stale"), time.Minute)

	uc := newPaymentUseCase(mocks.NewMockLedgerService(), accounts, nil, cache)

	if _, err := uc.SubmitPayment(context.Background(), validInput("acc-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := cache.Get(context.Background(), "account:acc-1"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Error("stale account snapshot must be evicted after a payment")
	}
}
