package usecase

import (
	"time"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/metrics"
)

// ReceiptBuilder assembles the immutable print snapshot, in one uniform
// shape whether the source is a fresh payment or a historical
// reconciliation. It is pure apart from stamping the print time: it
// never touches the ledger or mutates account state.
type ReceiptBuilder struct {
	dates DateFormatter
	now   func() time.Time
}

// NewReceiptBuilder creates a new ReceiptBuilder.
func NewReceiptBuilder(dates DateFormatter) *ReceiptBuilder {
	return &ReceiptBuilder{
		dates: dates,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// FromPayment builds a receipt for a payment that was just submitted.
func (b *ReceiptBuilder) FromPayment(result *PaymentResult) *domain.Receipt {
	metrics.ReceiptsBuilt.Inc()

	return &domain.Receipt{
		AccountCode:     result.AccountCode,
		AccountName:     result.AccountName,
		PaidAmount:      result.PaidAmount,
		PreviousBalance: result.PreviousBalance,
		NewBalance:      result.NewBalance,
		NewBalanceSign:  result.NewBalanceSign,
		SequenceNumber:  result.TransactionID,
		FormattedDate:   result.FormattedDate,
		PrintedAt:       b.now(),
	}
}

// FromReconciliation builds a receipt for a historical payment lookup.
// SequenceNumber stays empty when the target carries no transaction id:
// a receipt may print before an id is known.
func (b *ReceiptBuilder) FromReconciliation(account *domain.Account, target PaymentRef, balances BalancePair) *domain.Receipt {
	metrics.ReceiptsBuilt.Inc()

	return &domain.Receipt{
		AccountCode:     account.Code,
		AccountName:     account.DisplayName(),
		PaidAmount:      target.Amount,
		PreviousBalance: balances.Previous,
		NewBalance:      balances.New,
		NewBalanceSign:  balances.NewSign,
		SequenceNumber:  target.TransactionID,
		FormattedDate:   b.dates.LongDate(target.Date),
		PrintedAt:       b.now(),
	}
}
