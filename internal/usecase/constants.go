package usecase

import "time"

const (
	// AccountCacheTTL bounds how long a cached account snapshot may serve
	// reads before the repository is consulted again.
	AccountCacheTTL = 30 * time.Second

	// accountCachePrefix namespaces account snapshot keys.
	accountCachePrefix = "account:"
)

// PaymentMatchEpsilon is the amount tolerance used when locating a
// historical payment by amount+date instead of by transaction id.
const PaymentMatchEpsilon = "0.01"
