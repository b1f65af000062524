package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes the two parties the ledger tracks.
type AccountKind string

const (
	AccountKindClient   AccountKind = "client"
	AccountKindSupplier AccountKind = "supplier"
)

// BalanceSign classifies an account's net position. A debit account owes
// money; a credit account is owed money or has overpaid.
type BalanceSign string

const (
	BalanceSignCredit BalanceSign = "credit"
	BalanceSignDebit  BalanceSign = "debit"
)

// Account represents a client or supplier with a signed running balance.
// The balance is stored as a non-negative magnitude plus a sign so the
// two can never disagree.
type Account struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ArchivedAt       *time.Time
	ID               string
	Code             string
	FirstName        string
	LastName         string
	Phone            string
	Kind             AccountKind
	BalanceSign      BalanceSign
	BalanceMagnitude decimal.Decimal
}

// DisplayName composes the full name shown on receipts and screens.
func (a *Account) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// SignedBalance returns the account's net position: negative when the
// account is a debtor, positive when it holds credit.
func (a *Account) SignedBalance() decimal.Decimal {
	if a.BalanceSign == BalanceSignDebit {
		return a.BalanceMagnitude.Neg()
	}
	return a.BalanceMagnitude
}

// Archived reports whether the account has been soft-deleted.
func (a *Account) Archived() bool {
	return a.ArchivedAt != nil
}
