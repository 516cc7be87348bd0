package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	priceCalculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "art_customizer",
			Subsystem: "pricing",
			Name:      "calculations_total",
			Help:      "Total number of price calculations.",
		},
		[]string{"mode"},
	)

	unresolvedKeys = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "art_customizer",
			Subsystem: "catalog",
			Name:      "unresolved_keys_total",
			Help:      "Lookups that fell back to a default because the key had no catalog entry.",
		},
		[]string{"component", "dimension"},
	)

	sessionOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "art_customizer",
			Subsystem: "session",
			Name:      "operations_total",
			Help:      "Session operations by result.",
		},
		[]string{"op", "result"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "art_customizer",
			Subsystem: "session",
			Name:      "active",
			Help:      "Sessions currently held in memory.",
		},
	)

	commits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "art_customizer",
			Subsystem: "commit",
			Name:      "attempts_total",
			Help:      "Save and add-to-cart attempts by stage and result.",
		},
		[]string{"stage", "result"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "art_customizer",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	Registry.MustRegister(
		priceCalculations,
		unresolvedKeys,
		sessionOps,
		activeSessions,
		commits,
		httpDuration,
	)
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordPriceCalculation counts one calculation; mode is "display" or "strict"
func RecordPriceCalculation(mode string) {
	priceCalculations.WithLabelValues(mode).Inc()
}

// RecordUnresolvedKey counts a fallback lookup
func RecordUnresolvedKey(component, dimension string) {
	unresolvedKeys.WithLabelValues(component, dimension).Inc()
}

// RecordSessionOp counts a session operation
func RecordSessionOp(op string, err error) {
	sessionOps.WithLabelValues(op, result(err)).Inc()
}

// SetActiveSessions updates the in-memory session gauge
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// RecordCommit counts a commit attempt at one stage
func RecordCommit(stage string, err error) {
	commits.WithLabelValues(stage, result(err)).Inc()
}

// ObserveHTTPRequest records the duration of a handled request
func ObserveHTTPRequest(method, path, status string, d time.Duration) {
	httpDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
