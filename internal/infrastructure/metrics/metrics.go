package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Commit metrics
	CommitsAccepted  prometheus.Counter
	CommitsRejected  *prometheus.CounterVec
	CommitDuration   prometheus.Histogram
	EntriesCommitted prometheus.Counter
	LinesCommitted   prometheus.Counter
	LedgersCreated   prometheus.Counter

	// Report metrics
	ReportsBuilt    *prometheus.CounterVec
	ReportDuration  *prometheus.HistogramVec
	DigestCacheHits *prometheus.CounterVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Commit metrics
		CommitsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_commits_accepted_total",
			Help: "Total number of batch commits accepted",
		}),
		CommitsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_commits_rejected_total",
				Help: "Total number of batch commits rejected by reason",
			},
			[]string{"reason"},
		),
		CommitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobooks_commit_duration_seconds",
			Help:    "Duration of batch commits",
			Buckets: prometheus.DefBuckets,
		}),
		EntriesCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_journal_entries_committed_total",
			Help: "Total number of journal entries committed",
		}),
		LinesCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_transaction_lines_committed_total",
			Help: "Total number of transaction lines committed",
		}),
		LedgersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobooks_ledgers_created_total",
			Help: "Total number of ledgers created",
		}),

		// Report metrics
		ReportsBuilt: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_reports_built_total",
				Help: "Total number of statements built by kind",
			},
			[]string{"kind"},
		),
		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobooks_report_duration_seconds",
				Help:    "Statement build duration by kind",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		DigestCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_digest_cache_total",
				Help: "Digest cache lookups by outcome",
			},
			[]string{"outcome"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobooks_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gobooks_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobooks_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
