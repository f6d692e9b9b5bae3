package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/goexpense/internal/adapter/http/handler"
	"github.com/iho/goexpense/internal/adapter/http/middleware"
	"github.com/iho/goexpense/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler  *handler.AccountHandler
	LedgerHandler   *handler.LedgerHandler
	RecordHandler   *handler.RecordHandler
	TransferHandler *handler.TransferHandler
	CategoryHandler *handler.CategoryHandler
	LimitHandler    *handler.LimitHandler
	ReminderHandler *handler.ReminderHandler
	ReportHandler   *handler.ReportHandler
	SetupHandler    *handler.SetupHandler
	AuthHandler     *handler.AuthHandler
	HealthHandler   *handler.HealthHandler

	Logger zerolog.Logger

	// Optional. A nil TokenVerifier serves every request as the local user.
	TokenVerifier    middleware.TokenVerifier
	AuthFailures     middleware.AuthFailureCounter
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	HTTPObserver     middleware.HTTPObserver
	MetricsHandler   http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.HTTPObserver != nil {
		r.Use(middleware.Metrics(cfg.HTTPObserver))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier, cfg.AuthFailures))
		} else {
			r.Use(middleware.LocalUser)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		r.Get("/me", cfg.AuthHandler.GetCurrentUser)
		r.Post("/setup", cfg.SetupHandler.Setup)
		r.Post("/transactions", cfg.LedgerHandler.RecordTransaction)

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Patch("/{id}", cfg.AccountHandler.Rename)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Post("/{id}/adjust", cfg.LedgerHandler.AdjustBalance)
		})

		// Records
		r.Route("/records", func(r chi.Router) {
			r.Get("/", cfg.RecordHandler.List)
			r.Get("/{id}", cfg.RecordHandler.Get)
			r.Patch("/{id}", cfg.RecordHandler.Update)
			r.Delete("/{id}", cfg.LedgerHandler.DeleteRecord)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Get("/", cfg.TransferHandler.List)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Delete("/{id}", cfg.TransferHandler.Delete)
		})

		// Categories
		r.Route("/categories/{mode}", func(r chi.Router) {
			r.Get("/", cfg.CategoryHandler.List)
			r.Post("/", cfg.CategoryHandler.Create)
			r.Post("/defaults", cfg.CategoryHandler.Defaults)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})

		// Limits
		r.Route("/limits", func(r chi.Router) {
			r.Get("/", cfg.LimitHandler.List)
			r.Post("/", cfg.LimitHandler.Create)
			r.Post("/{id}/activate", cfg.LimitHandler.Activate)
			r.Delete("/{id}", cfg.LimitHandler.Delete)
		})

		// Reminders
		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", cfg.ReminderHandler.List)
			r.Post("/", cfg.ReminderHandler.Create)
			r.Delete("/{id}", cfg.ReminderHandler.Delete)
		})

		r.Get("/reports/{mode}", cfg.ReportHandler.Report)
		r.Get("/reconciliation", cfg.ReportHandler.Reconcile)
		r.Get("/reconciliation/{id}", cfg.ReportHandler.ReconcileAccount)
	})

	return r
}
