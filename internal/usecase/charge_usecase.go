package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/metrics"
)

// ChargeUseCase records invoice charges on the ledger. Invoice amount
// computation happens upstream; this only appends the signed event so
// the running balance stays consistent end to end.
type ChargeUseCase struct {
	ledger   LedgerService
	accounts AccountRepository
	events   EventPublisher
	cache    Cache
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewChargeUseCase creates a new ChargeUseCase.
func NewChargeUseCase(ledger LedgerService, accounts AccountRepository, events EventPublisher, cache Cache, logger zerolog.Logger) *ChargeUseCase {
	return &ChargeUseCase{
		ledger:   ledger,
		accounts: accounts,
		events:   events,
		cache:    cache,
		validate: newValidator(),
		logger:   logger,
	}
}

// RecordChargeInput carries an invoice charge request.
type RecordChargeInput struct {
	Date      time.Time       `json:"date"       validate:"required"`
	AccountID string          `json:"account_id" validate:"required"`
	Note      string          `json:"note"       validate:"omitempty,max=1024"`
	Reference string          `json:"reference"  validate:"omitempty,max=64"`
	Amount    decimal.Decimal `json:"amount"     validate:"required,gt=0"`
}

// RecordCharge appends an invoice charge to the account's ledger.
func (uc *ChargeUseCase) RecordCharge(ctx context.Context, input RecordChargeInput) (*domain.Transaction, error) {
	if err := asValidationError(uc.validate.Struct(input)); err != nil {
		return nil, err
	}

	account, err := uc.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Archived() {
		return nil, domain.ErrAccountArchived
	}

	tx, err := uc.ledger.CreateCharge(ctx, CreateChargeInput{
		AccountID: input.AccountID,
		Amount:    input.Amount,
		Date:      domain.CalendarDay(input.Date),
		Note:      input.Note,
		Reference: input.Reference,
	})
	if err != nil {
		return nil, &domain.PersistenceError{Op: "create charge", Err: err}
	}

	metrics.ChargesRecorded.Inc()

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, accountCachePrefix+account.ID); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", account.ID).Msg("account cache invalidation failed")
		}
	}

	if uc.events != nil {
		event := domain.AccountChangedEvent{AccountID: account.ID, OccurredAt: time.Now().UTC()}
		if err := uc.events.PublishAccountChanged(ctx, event); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", account.ID).Msg("account-changed broadcast failed")
		}
	}

	return tx, nil
}
