package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a metrics handler around the given scrape
// handler, normally the one produced by the OTel prometheus exporter.
// A nil handler falls back to the default registry.
func NewMetricsHandler(scrape http.Handler) *MetricsHandler {
	if scrape == nil {
		scrape = promhttp.Handler()
	}
	return &MetricsHandler{handler: scrape}
}

// Metrics handles GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
