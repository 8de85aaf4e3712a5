package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// MetricsMiddleware counts requests per method and status class and records
// their latency.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrap(w)

		next.ServeHTTP(rw, r)

		metrics.GetOrCreateCounter(fmt.Sprintf(`http_requests_total{method=%q,code="%dxx"}`,
			r.Method, rw.statusCode/100)).Inc()
		metrics.GetOrCreateSummary(fmt.Sprintf(`http_request_duration_seconds{method=%q}`,
			r.Method)).UpdateDuration(start)
	})
}

// MetricsHandler exposes every registered metric in Prometheus text format.
func MetricsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	metrics.WritePrometheus(w, true)
}
