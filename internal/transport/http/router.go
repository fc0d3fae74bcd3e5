// Package httptransport exposes the sidecar's localhost API: event ingestion
// for the register integration, state introspection, and the session audit
// log. It is a thin layer over the verification service.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agegate/internal/platform/health"
	"agegate/internal/platform/metrics"
	"agegate/internal/platform/middleware"
)

// NewRouter wires all endpoints with the middleware stack.
func NewRouter(h *Handler, healthHandler *health.Handler, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.RegisterClient)
	if m != nil {
		r.Use(endpointLatency(m))
	}

	// Event ingestion for the register integration.
	r.Post("/events/product", h.handleProductEvent)
	r.Post("/events/credential", h.handleCredentialEvent)
	r.Post("/events/manual-entry", h.handleManualEntry)
	r.Post("/events/override", h.handleOverride)
	r.Post("/events/transaction", h.handleTransactionEvent)

	// Introspection.
	r.Get("/state", h.handleState)
	r.Get("/audit/events", h.handleAuditEvents)

	if healthHandler != nil {
		healthHandler.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// endpointLatency records per-route request latency using the chi route
// pattern, so path parameters never explode label cardinality.
func endpointLatency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.EndpointLatency.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
		})
	}
}
