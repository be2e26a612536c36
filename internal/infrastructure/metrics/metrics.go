package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionsDeleted prometheus.Counter
	TransactionAmount   *prometheus.HistogramVec
	TransactionErrors   *prometheus.CounterVec

	// Asset metrics
	AssetsCreated   prometheus.Counter
	AssetOperations *prometheus.CounterVec

	// Currency metrics
	CurrenciesCreated   prometheus.Counter
	BaseCurrencyChanges prometheus.Counter
	ConversionErrors    prometheus.Counter

	// Report metrics
	ReportRequests *prometheus.CounterVec
	ReportDuration *prometheus.HistogramVec

	// Crypto metrics
	CryptoTransactionsCreated *prometheus.CounterVec
	CryptoPriceRefreshes      prometheus.Counter
	CryptoQuoteErrors         prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_transactions_created_total",
				Help: "Total number of transactions created by type",
			},
			[]string{"type"},
		),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finances_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finances_transaction_amount",
				Help:    "Transaction amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"type"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_transaction_errors_total",
				Help: "Total number of failed transaction mutations by operation",
			},
			[]string{"operation"},
		),

		AssetsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finances_assets_created_total",
			Help: "Total number of assets created",
		}),
		AssetOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_asset_operations_total",
				Help: "Total asset operations by type",
			},
			[]string{"operation"},
		),

		CurrenciesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finances_currencies_created_total",
			Help: "Total number of custom currencies created",
		}),
		BaseCurrencyChanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finances_base_currency_changes_total",
			Help: "Total number of base currency assignments",
		}),
		ConversionErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finances_conversion_errors_total",
			Help: "Total number of currency conversion failures",
		}),

		ReportRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_report_requests_total",
				Help: "Total report requests by kind",
			},
			[]string{"kind"},
		),
		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finances_report_duration_seconds",
				Help:    "Report computation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),

		CryptoTransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_crypto_transactions_created_total",
				Help: "Total number of crypto transactions created by type",
			},
			[]string{"type"},
		),
		CryptoPriceRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finances_crypto_price_refreshes_total",
			Help: "Total number of crypto price refresh runs",
		}),
		CryptoQuoteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finances_crypto_quote_errors_total",
			Help: "Total number of crypto quote failures",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finances_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finances_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
