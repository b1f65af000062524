package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the transient display snapshot handed to the print/export
// collaborator. It is assembled per request, consumed once and discarded;
// it is never a source of truth for any balance.
type Receipt struct {
	PrintedAt       time.Time
	AccountCode     string
	AccountName     string
	SequenceNumber  string
	FormattedDate   string
	NewBalanceSign  BalanceSign
	PaidAmount      decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
}
