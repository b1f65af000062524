package domain

import "github.com/shopspring/decimal"

// ApplyPayment returns the signed balance after a payment of paid is
// applied to currentSigned. A payment always reduces debt / increases
// credit, so the delta is strictly positive.
func ApplyPayment(currentSigned, paid decimal.Decimal) (decimal.Decimal, error) {
	if paid.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	return currentSigned.Add(paid), nil
}

// SplitSigned decomposes a signed balance into its display magnitude and
// sign. An exactly-zero balance is classified credit: a fully settled
// account carries no residual debt (SignOf is the single place this rule
// lives, downstream debtor/creditor labels depend on it).
func SplitSigned(signed decimal.Decimal) (decimal.Decimal, BalanceSign) {
	return signed.Abs(), SignOf(signed)
}

// SignOf returns the BalanceSign for a signed balance, zero included.
func SignOf(signed decimal.Decimal) BalanceSign {
	if signed.IsNegative() {
		return BalanceSignDebit
	}
	return BalanceSignCredit
}
