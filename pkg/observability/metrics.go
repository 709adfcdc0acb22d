package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session token exchange metrics
	sessionTokenRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amwal_session_token_requests_total",
			Help: "Total number of session token requests",
		},
		[]string{"environment", "outcome"},
	)

	sessionTokenRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "amwal_session_token_request_duration_seconds",
			Help: "Duration of session token requests in seconds",
			// 50ms to 30s (the test hosts are notably slower than production)
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"environment"},
	)

	// Payment attempt metrics
	paymentAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amwal_payment_attempts_total",
			Help: "Total number of finished payment attempts by terminal status",
		},
		[]string{"transaction_type", "status"},
	)

	paymentAttemptsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "amwal_payment_attempts_in_flight",
			Help: "Number of payment attempts waiting for a native response",
		},
	)
)

// RecordSessionTokenRequest records one token exchange and how it ended
func RecordSessionTokenRequest(environment, outcome string, elapsed time.Duration) {
	sessionTokenRequestsTotal.WithLabelValues(environment, outcome).Inc()
	sessionTokenRequestDuration.WithLabelValues(environment).Observe(elapsed.Seconds())
}

// PaymentAttemptStarted marks an attempt as waiting for its native response
func PaymentAttemptStarted() {
	paymentAttemptsInFlight.Inc()
}

// PaymentAttemptFinished records the terminal status of an attempt started with PaymentAttemptStarted
func PaymentAttemptFinished(transactionType, status string) {
	paymentAttemptsInFlight.Dec()
	paymentAttemptsTotal.WithLabelValues(transactionType, status).Inc()
}
