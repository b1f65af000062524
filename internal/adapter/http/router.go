package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/http/handler"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/http/middleware"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	PaymentHandler     *handler.PaymentHandler
	ChargeHandler      *handler.ChargeHandler
	TransactionHandler *handler.TransactionHandler
	ReceiptHandler     *handler.ReceiptHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	logging := middleware.NewLoggingMiddleware(cfg.Logger)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Archive)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Post("/{id}/payments", cfg.PaymentHandler.Submit)
			r.Post("/{id}/charges", cfg.ChargeHandler.Record)
			r.Post("/{id}/receipts", cfg.ReceiptHandler.Build)
			r.Get("/{id}/balance/drift", cfg.ReceiptHandler.Drift)
		})
	})

	return r
}
