package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/metrics"
)

// PaymentUseCase validates and submits payments against the ledger
// collaborator and projects the resulting balance for immediate display,
// without waiting for a confirming ledger read.
type PaymentUseCase struct {
	ledger   LedgerService
	accounts AccountRepository
	events   EventPublisher
	cache    Cache
	dates    DateFormatter
	validate *validator.Validate
	logger   zerolog.Logger
	inflight inflightGuard
}

// NewPaymentUseCase creates a new PaymentUseCase. events and cache may
// be nil when no broadcast or cache is wired.
func NewPaymentUseCase(
	ledger LedgerService,
	accounts AccountRepository,
	events EventPublisher,
	cache Cache,
	dates DateFormatter,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		ledger:   ledger,
		accounts: accounts,
		events:   events,
		cache:    cache,
		dates:    dates,
		validate: newValidator(),
		logger:   logger,
		inflight: inflightGuard{active: make(map[string]struct{})},
	}
}

// SubmitPaymentInput carries a payment request from the presentation
// layer. Validation is field-tagged and runs before any collaborator
// call.
type SubmitPaymentInput struct {
	Date      time.Time            `json:"date"      validate:"required"`
	AccountID string               `json:"account_id" validate:"required"`
	Note      string               `json:"note"      validate:"omitempty,max=1024"`
	Reference string               `json:"reference" validate:"omitempty,max=64"`
	Method    domain.PaymentMethod `json:"method"    validate:"required,payment_method"`
	Amount    decimal.Decimal      `json:"amount"    validate:"required,gt=0"`
}

// PaymentResult is the outcome handed back to the presentation layer:
// the persisted transaction id, the pre-submission balance snapshot, the
// projected new balance and an echo of the request formatted for
// display.
type PaymentResult struct {
	SubmittedAt     time.Time
	Date            time.Time
	TransactionID   string
	AccountID       string
	AccountCode     string
	AccountName     string
	FormattedDate   string
	Note            string
	Reference       string
	Method          domain.PaymentMethod
	NewBalanceSign  domain.BalanceSign
	PaidAmount      decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	LedgerBalance   decimal.Decimal
}

// SubmitPayment validates the request, persists it through the ledger
// collaborator and derives the new balance client-side. Two identical
// submissions create two distinct ledger entries: the workflow performs
// no deduplication, duplicate detection belongs to the ledger if
// anywhere. Only one submission per account may be in flight at a time.
func (uc *PaymentUseCase) SubmitPayment(ctx context.Context, input SubmitPaymentInput) (*PaymentResult, error) {
	if err := asValidationError(uc.validate.Struct(input)); err != nil {
		metrics.PaymentFailures.WithLabelValues(metrics.ReasonValidation).Inc()
		return nil, err
	}

	if !uc.inflight.acquire(input.AccountID) {
		metrics.PaymentFailures.WithLabelValues(metrics.ReasonInFlight).Inc()
		return nil, domain.ErrSubmitInFlight
	}
	defer uc.inflight.release(input.AccountID)

	account, err := uc.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Archived() {
		return nil, domain.ErrAccountArchived
	}

	// Snapshot before the write: PreviousBalance on the receipt is the
	// pre-submission magnitude, and a failed persist must leave the
	// cached balance untouched.
	previousMagnitude := account.BalanceMagnitude
	currentSigned := account.SignedBalance()

	tx, err := uc.ledger.CreatePayment(ctx, CreatePaymentInput{
		AccountID: input.AccountID,
		Amount:    input.Amount,
		Date:      domain.CalendarDay(input.Date),
		Method:    input.Method,
		Note:      input.Note,
		Reference: input.Reference,
	})
	if err != nil {
		metrics.PaymentFailures.WithLabelValues(metrics.ReasonPersistence).Inc()
		return nil, &domain.PersistenceError{Op: "create payment", Err: err}
	}

	newSigned, err := domain.ApplyPayment(currentSigned, input.Amount)
	if err != nil {
		// Unreachable after validation, but never leave it unchecked.
		return nil, err
	}

	newMagnitude, newSign := domain.SplitSigned(newSigned)

	result := &PaymentResult{
		TransactionID:   tx.ID,
		AccountID:       account.ID,
		AccountCode:     account.Code,
		AccountName:     account.DisplayName(),
		PaidAmount:      input.Amount,
		PreviousBalance: previousMagnitude,
		NewBalance:      newMagnitude,
		NewBalanceSign:  newSign,
		LedgerBalance:   tx.BalanceAfter,
		Date:            domain.CalendarDay(input.Date),
		FormattedDate:   uc.dates.LongDate(input.Date),
		Method:          input.Method,
		Note:            input.Note,
		Reference:       input.Reference,
		SubmittedAt:     time.Now().UTC(),
	}

	metrics.PaymentsRecorded.Inc()
	amount, _ := input.Amount.Float64()
	metrics.PaymentAmount.Observe(amount)

	uc.invalidateCache(ctx, account.ID)
	uc.broadcast(ctx, result)

	return result, nil
}

// broadcast emits the account-changed and payment-recorded events.
// Failures are logged and never propagated: the broadcast is a
// fire-and-forget refresh hint, not a dependency of the submission.
func (uc *PaymentUseCase) broadcast(ctx context.Context, result *PaymentResult) {
	if uc.events == nil {
		return
	}

	changed := domain.AccountChangedEvent{
		AccountID:  result.AccountID,
		OccurredAt: result.SubmittedAt,
	}
	if err := uc.events.PublishAccountChanged(ctx, changed); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", result.AccountID).Msg("account-changed broadcast failed")
	}

	recorded := domain.PaymentRecordedEvent{
		TransactionID: result.TransactionID,
		AccountID:     result.AccountID,
		Amount:        result.PaidAmount.String(),
		Method:        string(result.Method),
		EventAt:       result.SubmittedAt.Format(time.RFC3339),
	}
	if err := uc.events.PublishPaymentRecorded(ctx, recorded); err != nil {
		uc.logger.Warn().Err(err).Str("transaction_id", result.TransactionID).Msg("payment-recorded broadcast failed")
	}
}

func (uc *PaymentUseCase) invalidateCache(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, accountCachePrefix+accountID); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("account cache invalidation failed")
	}
}

// inflightGuard disallows a second concurrent submit for the same
// account while one is pending. This is the workflow's only concurrency
// control; an issued submit has no cancellation path and must resolve.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func (g *inflightGuard) acquire(accountID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[accountID]; busy {
		return false
	}
	g.active[accountID] = struct{}{}

	return true
}

func (g *inflightGuard) release(accountID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, accountID)
}
