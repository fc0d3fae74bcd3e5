package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RestrictedScans   prometheus.Counter
	PromptsShown      prometheus.Counter
	Verifications     *prometheus.CounterVec // labels: outcome, method
	ParseFailures     *prometheus.CounterVec // label: reason
	TransactionResets prometheus.Counter
	ScannerPayloads   *prometheus.CounterVec // label: kind (credential/product)
	EvaluateLatency   prometheus.Histogram
	EndpointLatency   *prometheus.HistogramVec
	PosLookupFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RestrictedScans: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agegate_restricted_scans_total",
			Help: "Total number of age-restricted line items observed",
		}),
		PromptsShown: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agegate_prompts_shown_total",
			Help: "Total number of ID-check prompts surfaced to the operator",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agegate_verifications_total",
			Help: "Total number of age verifications, labeled by outcome and method",
		}, []string{"outcome", "method"}),
		ParseFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agegate_credential_parse_failures_total",
			Help: "Total number of credential payloads that failed to parse, labeled by reason",
		}, []string{"reason"}),
		TransactionResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agegate_transaction_resets_total",
			Help: "Total number of transaction boundary resets",
		}),
		ScannerPayloads: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agegate_scanner_payloads_total",
			Help: "Total number of scanner payloads routed, labeled by detected kind",
		}, []string{"kind"}),
		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "agegate_credential_evaluate_latency_seconds",
			Help:    "Latency of credential parse plus age evaluation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agegate_endpoint_latency_seconds",
			Help:    "Latency of local API endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		PosLookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agegate_pos_lookup_failures_total",
			Help: "Total number of failed product lookups against the POS API",
		}),
	}
}
