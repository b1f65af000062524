package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ledger metrics
var (
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moussir_payments_recorded_total",
		Help: "Total number of payments recorded against the ledger",
	})

	PaymentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moussir_payment_failures_total",
			Help: "Total number of failed payment submissions",
		},
		[]string{"reason"},
	)

	PaymentAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "moussir_payment_amount",
		Help:    "Recorded payment amounts",
		Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 50000, 100000},
	})

	ChargesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moussir_charges_recorded_total",
		Help: "Total number of invoice charges recorded against the ledger",
	})

	ReconciliationMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moussir_reconciliation_misses_total",
		Help: "Historical payment lookups that fell back to cached balances",
	})

	ProjectionDriftDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moussir_projection_drift_total",
		Help: "Times the projected balance diverged from the ledger snapshot",
	})

	ReceiptsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moussir_receipts_built_total",
		Help: "Total number of receipt snapshots assembled",
	})

	AccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moussir_accounts_created_total",
		Help: "Total number of accounts registered",
	})
)

// Failure reasons for PaymentFailures.
const (
	ReasonValidation  = "validation"
	ReasonPersistence = "persistence"
	ReasonInFlight    = "in_flight"
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
