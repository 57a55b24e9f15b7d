// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "seed_marketplace"

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being served",
		},
	)
)

// Business Metrics
var (
	CartItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_added_total",
			Help:      "Total quantity of seeds added to carts",
		},
	)

	CheckoutsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_completed_total",
			Help:      "Total number of completed checkouts",
		},
	)

	CheckoutRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_revenue_minor_units_total",
			Help:      "Sum of checkout totals in minor currency units",
		},
	)

	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Seed quality verifications by outcome",
		},
		[]string{"outcome"},
	)

	VoiceCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_commands_total",
			Help:      "Voice commands by routed target",
		},
		[]string{"target"},
	)
)

// Recorder feeds domain events into the business metrics
type Recorder struct{}

// NewRecorder creates a metrics recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// CheckoutCompleted records a successful payment
func (Recorder) CheckoutCompleted(total int64, _ int) {
	CheckoutsCompleted.Inc()
	CheckoutRevenue.Add(float64(total))
}

// ItemsAdded records quantity added to a cart
func (Recorder) ItemsAdded(quantity int) {
	if quantity > 0 {
		CartItemsAdded.Add(float64(quantity))
	}
}

// Verification records a verification outcome (a verdict or "error")
func (Recorder) Verification(outcome string) {
	VerificationsTotal.WithLabelValues(outcome).Inc()
}

// VoiceCommand records where a voice command was routed ("" when unrecognized)
func (Recorder) VoiceCommand(target string) {
	if target == "" {
		target = "unrecognized"
	}
	VoiceCommandsTotal.WithLabelValues(target).Inc()
}

// RegisterSessionGauge exposes the live session count
func RegisterSessionGauge(reg prometheus.Registerer, count func() int) error {
	return reg.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of live browsing sessions",
		},
		func() float64 { return float64(count()) },
	))
}
