package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finances/internal/adapter/http/handler"
	"github.com/iho/finances/internal/adapter/http/middleware"
	"github.com/iho/finances/internal/infrastructure/auth"
	"github.com/iho/finances/internal/infrastructure/metrics"
	"github.com/iho/finances/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	CurrencyHandler    *handler.CurrencyHandler
	AssetHandler       *handler.AssetHandler
	TransactionHandler *handler.TransactionHandler
	CategoryHandler    *handler.CategoryHandler
	CryptoHandler      *handler.CryptoHandler
	HealthHandler      *handler.HealthHandler

	JWTManager       *auth.JWTManager
	UserRepo         usecase.UserRepository
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public auth endpoints
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.UserRepo))

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Route("/currencies", func(r chi.Router) {
				r.Post("/", cfg.CurrencyHandler.Create)
				r.Get("/", cfg.CurrencyHandler.List)
				r.Get("/base", cfg.CurrencyHandler.GetBase)
				r.Put("/base", cfg.CurrencyHandler.SetBase)
				r.Get("/{id}", cfg.CurrencyHandler.Get)
				r.Put("/{id}", cfg.CurrencyHandler.Update)
				r.Delete("/{id}", cfg.CurrencyHandler.Delete)
			})

			r.Route("/assets", func(r chi.Router) {
				r.Post("/", cfg.AssetHandler.Create)
				r.Get("/", cfg.AssetHandler.List)
				r.Get("/reconciliation", cfg.AssetHandler.ReconcileAll)
				r.Get("/{id}", cfg.AssetHandler.Get)
				r.Put("/{id}", cfg.AssetHandler.Update)
				r.Delete("/{id}", cfg.AssetHandler.Delete)
				r.Get("/{id}/reconciliation", cfg.AssetHandler.Reconcile)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", cfg.TransactionHandler.Create)
				r.Get("/", cfg.TransactionHandler.List)
				r.Get("/total", cfg.TransactionHandler.TotalByPeriod)
				r.Get("/total/categories", cfg.TransactionHandler.TotalCategoriesByPeriod)
				r.Get("/{id}", cfg.TransactionHandler.Get)
				r.Put("/{id}", cfg.TransactionHandler.Update)
				r.Delete("/{id}", cfg.TransactionHandler.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", cfg.CategoryHandler.Create)
				r.Get("/", cfg.CategoryHandler.List)
				r.Get("/{id}", cfg.CategoryHandler.Get)
				r.Put("/{id}", cfg.CategoryHandler.Update)
				r.Delete("/{id}", cfg.CategoryHandler.Delete)
			})

			r.Route("/crypto", func(r chi.Router) {
				r.Route("/portfolios", func(r chi.Router) {
					r.Post("/", cfg.CryptoHandler.CreatePortfolio)
					r.Get("/", cfg.CryptoHandler.ListPortfolios)
					r.Get("/{id}", cfg.CryptoHandler.GetPortfolio)
					r.Put("/{id}", cfg.CryptoHandler.UpdatePortfolio)
					r.Delete("/{id}", cfg.CryptoHandler.DeletePortfolio)
					r.Get("/{id}/value", cfg.CryptoHandler.PortfolioValue)
					r.Get("/{id}/assets", cfg.CryptoHandler.ListAssets)
					r.Get("/{id}/transactions", cfg.CryptoHandler.ListTransactions)
				})

				r.Route("/currencies", func(r chi.Router) {
					r.Post("/", cfg.CryptoHandler.CreateCurrency)
					r.Get("/", cfg.CryptoHandler.ListCurrencies)
					r.Post("/refresh", cfg.CryptoHandler.RefreshPrices)
					r.Get("/{id}", cfg.CryptoHandler.GetCurrency)
				})

				r.Route("/assets", func(r chi.Router) {
					r.Post("/", cfg.CryptoHandler.CreateAsset)
					r.Delete("/{id}", cfg.CryptoHandler.DeleteAsset)
				})

				r.Route("/transactions", func(r chi.Router) {
					r.Post("/", cfg.CryptoHandler.CreateTransaction)
					r.Delete("/{id}", cfg.CryptoHandler.DeleteTransaction)
				})
			})
		})
	})

	return r
}
