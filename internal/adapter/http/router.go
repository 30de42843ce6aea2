package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gobooks/internal/adapter/http/handler"
	"github.com/iho/gobooks/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler    *handler.LedgerHandler
	CommitHandler    *handler.CommitHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore middleware.IdempotencyStore
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Ledgers
		r.Route("/ledgers", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.Create)
			r.Get("/", cfg.LedgerHandler.List)
			r.Get("/{id}", cfg.LedgerHandler.Get)
			r.Post("/{id}/lock", cfg.LedgerHandler.Lock)
			r.Post("/{id}/unlock", cfg.LedgerHandler.Unlock)
		})

		// Chart of accounts
		r.Get("/accounts", cfg.ReportHandler.Accounts)

		// Journal entry batches
		r.Post("/commit", cfg.CommitHandler.Commit)

		// Financial statements
		r.Route("/reports", func(r chi.Router) {
			r.Get("/balance-sheet", cfg.ReportHandler.BalanceSheet)
			r.Get("/income-statement", cfg.ReportHandler.IncomeStatement)
			r.Get("/cash-flow", cfg.ReportHandler.CashFlow)
			r.Get("/ratios", cfg.ReportHandler.Ratios)
			r.Get("/financial-statements", cfg.ReportHandler.FinancialStatements)
		})
	})

	return r
}
