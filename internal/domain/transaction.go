package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the ledger event kind.
type TransactionType string

const (
	TransactionTypeInvoice    TransactionType = "invoice"
	TransactionTypePayment    TransactionType = "payment"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// PaymentMethod enumerates the recognized payment methods. Required for
// payment transactions, empty otherwise.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCheque   PaymentMethod = "cheque"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// ValidPaymentMethod reports whether m is in the recognized enum.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodCheque, PaymentMethodTransfer:
		return true
	}
	return false
}

// Transaction is a single immutable entry in an account's append-only
// ledger. Amount is a positive magnitude; the direction comes from Type.
// BalanceAfter snapshots the account's signed balance immediately after
// this transaction was applied, so for any account ordered by persisted
// sequence: BalanceAfter[n] = BalanceAfter[n-1] + SignedDelta[n].
type Transaction struct {
	CreatedAt    time.Time
	Date         time.Time
	ID           string
	AccountID    string
	Note         string
	Reference    string
	Type         TransactionType
	Method       PaymentMethod
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
}

// SignedDelta returns the transaction's effect on the signed balance:
// +Amount for a payment (reduces debt), -Amount for an invoice or charge
// (increases debt), under the "negative = debtor" convention.
func (t *Transaction) SignedDelta() decimal.Decimal {
	if t.Type == TransactionTypePayment {
		return t.Amount
	}
	return t.Amount.Neg()
}

// CalendarDay truncates a timestamp to its calendar date in UTC.
// Transaction dates carry no time-of-day component.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameCalendarDay reports whether a and b fall on the same calendar date.
func SameCalendarDay(a, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}
