package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	DisplayName      string          `json:"display_name"`
	Phone            string          `json:"phone,omitempty"`
	Kind             string          `json:"kind"`
	BalanceMagnitude decimal.Decimal `json:"balance_magnitude"`
	BalanceSign      string          `json:"balance_sign"`
	SignedBalance    decimal.Decimal `json:"signed_balance"`
	Archived         bool            `json:"archived"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		Code:             a.Code,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		DisplayName:      a.DisplayName(),
		Phone:            a.Phone,
		Kind:             string(a.Kind),
		BalanceMagnitude: a.BalanceMagnitude,
		BalanceSign:      string(a.BalanceSign),
		SignedBalance:    a.SignedBalance(),
		Archived:         a.Archived(),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Type         string          `json:"type"`
	Method       string          `json:"method,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Date         time.Time       `json:"date"`
	Note         string          `json:"note,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Type:         string(t.Type),
		Method:       string(t.Method),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Date:         t.Date,
		Note:         t.Note,
		Reference:    t.Reference,
		CreatedAt:    t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// PaymentResponse represents the outcome of a payment submission: the
// persisted transaction id plus the projected balance snapshot.
type PaymentResponse struct {
	TransactionID   string          `json:"transaction_id"`
	AccountID       string          `json:"account_id"`
	AccountCode     string          `json:"account_code"`
	AccountName     string          `json:"account_name"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	NewBalanceSign  string          `json:"new_balance_sign"`
	LedgerBalance   decimal.Decimal `json:"ledger_balance"`
	Method          string          `json:"method"`
	Date            time.Time       `json:"date"`
	FormattedDate   string          `json:"formatted_date"`
	Note            string          `json:"note,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	SubmittedAt     time.Time       `json:"submitted_at"`
}

// PaymentFromResult converts a use case payment result to a response.
func PaymentFromResult(r *usecase.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		TransactionID:   r.TransactionID,
		AccountID:       r.AccountID,
		AccountCode:     r.AccountCode,
		AccountName:     r.AccountName,
		PaidAmount:      r.PaidAmount,
		PreviousBalance: r.PreviousBalance,
		NewBalance:      r.NewBalance,
		NewBalanceSign:  string(r.NewBalanceSign),
		LedgerBalance:   r.LedgerBalance,
		Method:          string(r.Method),
		Date:            r.Date,
		FormattedDate:   r.FormattedDate,
		Note:            r.Note,
		Reference:       r.Reference,
		SubmittedAt:     r.SubmittedAt,
	}
}

// ReceiptResponse represents a print-ready receipt snapshot.
type ReceiptResponse struct {
	AccountCode     string          `json:"account_code"`
	AccountName     string          `json:"account_name"`
	SequenceNumber  string          `json:"sequence_number,omitempty"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	NewBalanceSign  string          `json:"new_balance_sign"`
	FormattedDate   string          `json:"formatted_date"`
	PrintedAt       time.Time       `json:"printed_at"`
}

// ReceiptFromDomain converts a domain receipt to a response.
func ReceiptFromDomain(r *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		AccountCode:     r.AccountCode,
		AccountName:     r.AccountName,
		SequenceNumber:  r.SequenceNumber,
		PaidAmount:      r.PaidAmount,
		PreviousBalance: r.PreviousBalance,
		NewBalance:      r.NewBalance,
		NewBalanceSign:  string(r.NewBalanceSign),
		FormattedDate:   r.FormattedDate,
		PrintedAt:       r.PrintedAt,
	}
}

// DriftResponse reports the divergence between the account record and
// the ledger's latest snapshot.
type DriftResponse struct {
	AccountID string          `json:"account_id"`
	Drift     decimal.Decimal `json:"drift"`
	Converged bool            `json:"converged"`
}

// ErrorResponse represents an error in API responses. Fields carries
// per-field messages for validation failures.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
