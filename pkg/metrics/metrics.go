package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// SubmissionsTotal counts contact submissions by outcome:
	// rejected, persist_failed, completed, email_failed.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Total number of contact submissions by outcome",
		},
		[]string{"outcome"},
	)

	// NotificationsTotal counts notification attempts by kind (operator, confirmation, alert)
	// and outcome (sent, failed, timeout).
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total number of notification attempts",
		},
		[]string{"kind", "outcome"},
	)

	notificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_wait_seconds",
			Help:      "Time spent waiting on a notification attempt",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"kind"},
	)

	// AuthFailuresTotal counts rejected admin-gate requests by reason.
	AuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Total number of rejected authentication or authorization checks",
		},
		[]string{"reason"},
	)

	dependencyHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dependency_enabled",
			Help:      "Whether an optional dependency is configured (1) or disabled (0)",
		},
		[]string{"dependency"},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordNotification records the outcome of one bounded notification wait.
func RecordNotification(kind, outcome string, waited time.Duration) {
	NotificationsTotal.WithLabelValues(kind, outcome).Inc()
	notificationDuration.WithLabelValues(kind).Observe(waited.Seconds())
}

func RecordSubmission(outcome string) {
	SubmissionsTotal.WithLabelValues(outcome).Inc()
}

func RecordAuthFailure(reason string) {
	AuthFailuresTotal.WithLabelValues(reason).Inc()
}

func SetDependencyEnabled(dependency string, enabled bool) {
	v := 0.0
	if enabled {
		v = 1
	}
	dependencyHealth.WithLabelValues(dependency).Set(v)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
