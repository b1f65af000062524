package domain

import "time"

// Event types
const (
	EventTypeAccountChanged  = "account.changed"
	EventTypePaymentRecorded = "payment.recorded"
)

// AccountChangedEvent is the fire-and-forget broadcast emitted after a
// payment mutates an account, so dependent views refresh. Carries no
// payload contract beyond "something about this account changed".
type AccountChangedEvent struct {
	OccurredAt time.Time `json:"occurred_at"`
	AccountID  string    `json:"account_id"`
}

// PaymentRecordedEvent payload
type PaymentRecordedEvent struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Amount        string `json:"amount"`
	Method        string `json:"method"`
	EventAt       string `json:"event_at"`
}
