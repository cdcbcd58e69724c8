// Package metrics exposes Prometheus instruments for predictions and the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	Predictions        *prometheus.CounterVec // by category
	ValidationFailures *prometheus.CounterVec // by validation kind
	PredictionDuration prometheus.Histogram   // validate + classify, excluding simulated delay

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics on a custom registry (useful for testing).
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of classified histories",
		}, []string{"category"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of rejected inputs",
		}, []string{"kind"}),
		PredictionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Time spent validating and classifying one input",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "method"}),
	}
}

// ObservePrediction counts a classified history.
func (m *Metrics) ObservePrediction(category string, seconds float64) {
	m.Predictions.WithLabelValues(category).Inc()
	m.PredictionDuration.Observe(seconds)
}

// ObserveRejection counts an input refused by validation or length checks.
func (m *Metrics) ObserveRejection(kind string) {
	m.ValidationFailures.WithLabelValues(kind).Inc()
}
