package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts records credential checks by result (success|failure|invalid).
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intranet_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// TicketsCreated counts persisted tickets.
	TicketsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intranet_tickets_created_total",
			Help: "Total number of tickets stored",
		},
	)

	// MailsSent counts relay deliveries by form (formulario|contacto) and result (sent|failed).
	MailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intranet_mails_total",
			Help: "Total number of relayed form emails",
		},
		[]string{"form", "result"},
	)

	// CatalogCache counts download catalog cache lookups by result (hit|miss|error).
	CatalogCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intranet_downloads_cache_total",
			Help: "Download catalog cache lookups",
		},
		[]string{"result"},
	)

	// DBReconnects counts reconnects of the single store session.
	DBReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intranet_db_reconnects_total",
			Help: "Number of single-session reconnects",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intranet_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
