package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

// CreateAccountRequest represents a request to register a client or
// supplier account.
type CreateAccountRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Kind      string `json:"kind"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Kind:      domain.AccountKind(r.Kind),
	}
}

// SubmitPaymentRequest represents a request to record a payment against
// an account.
type SubmitPaymentRequest struct {
	Date      time.Time       `json:"date"`
	Note      string          `json:"note,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *SubmitPaymentRequest) ToUseCaseInput(accountID string) usecase.SubmitPaymentInput {
	return usecase.SubmitPaymentInput{
		AccountID: accountID,
		Amount:    r.Amount,
		Date:      r.Date,
		Method:    domain.PaymentMethod(r.Method),
		Note:      r.Note,
		Reference: r.Reference,
	}
}

// RecordChargeRequest represents a request to record an invoice charge
// against an account.
type RecordChargeRequest struct {
	Date      time.Time       `json:"date"`
	Note      string          `json:"note,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *RecordChargeRequest) ToUseCaseInput(accountID string) usecase.RecordChargeInput {
	return usecase.RecordChargeInput{
		AccountID: accountID,
		Amount:    r.Amount,
		Date:      r.Date,
		Note:      r.Note,
		Reference: r.Reference,
	}
}

// BuildReceiptRequest represents a request to rebuild a receipt for a
// historical payment. TransactionID is optional; without it the payment
// is located by amount and calendar date.
type BuildReceiptRequest struct {
	Date          time.Time       `json:"date"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToPaymentRef converts to the reconciliation target.
func (r *BuildReceiptRequest) ToPaymentRef() usecase.PaymentRef {
	return usecase.PaymentRef{
		Amount:        r.Amount,
		Date:          r.Date,
		TransactionID: r.TransactionID,
	}
}
