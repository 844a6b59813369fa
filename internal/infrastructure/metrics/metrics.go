package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionAmount   *prometheus.HistogramVec
	TransactionErrors   *prometheus.CounterVec

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Summary metrics
	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Idempotency metrics
	IdempotencyReplays prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_transactions_created_total",
				Help: "Total number of transactions created by kind",
			},
			[]string{"kind"},
		),
		TransactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybook_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybook_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "daybook_transaction_amount",
				Help:    "Transaction amounts by kind",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"kind"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"type"},
		),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybook_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_account_operations_total",
				Help: "Total number of account operations by type",
			},
			[]string{"operation"},
		),
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybook_summary_cache_hits_total",
			Help: "Total number of summary cache hits",
		}),
		SummaryCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybook_summary_cache_misses_total",
			Help: "Total number of summary cache misses",
		}),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "daybook_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "daybook_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_db_errors_total",
				Help: "Total number of database errors by type",
			},
			[]string{"type"},
		),
		IdempotencyReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybook_idempotency_replays_total",
			Help: "Total number of idempotent request replays",
		}),
	}
}
