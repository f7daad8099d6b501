// Package metrics exports service counters to Prometheus.
package metrics

import (
	"antifraud/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// ResultRejected labels transactions refused before classification.
const ResultRejected = "REJECTED"

// PrometheusCollector implements the antifraud and account MetricsCollector
// interfaces.
type PrometheusCollector struct {
	namespace string

	verdicts          *prometheus.CounterVec
	accountOperations *prometheus.CounterVec
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transaction_verdicts_total",
				Help:      "Total number of evaluated transactions per verdict",
			},
			[]string{"result"},
		),
		accountOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "account_operations_total",
				Help:      "Total number of account directory operations per outcome",
			},
			[]string{"operation", "result"},
		),
	}
}

// Register registers all metrics with the given Prometheus registerer.
func (pc *PrometheusCollector) Register(registerer prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{pc.verdicts, pc.accountOperations} {
		if err := registerer.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RegisterBreaker exposes a circuit breaker state as a gauge
// (0=closed, 1=half-open, 2=open).
func (pc *PrometheusCollector) RegisterBreaker(registerer prometheus.Registerer, name string, state func() gobreaker.State) error {
	return registerer.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace:   pc.namespace,
			Name:        "circuit_state",
			Help:        "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
			ConstLabels: prometheus.Labels{"breaker": name},
		},
		func() float64 { return float64(state()) },
	))
}

func (pc *PrometheusCollector) RecordVerdict(verdict models.Verdict) {
	pc.verdicts.WithLabelValues(string(verdict)).Inc()
}

func (pc *PrometheusCollector) RecordRejected() {
	pc.verdicts.WithLabelValues(ResultRejected).Inc()
}

func (pc *PrometheusCollector) RecordAccountOperation(operation, result string) {
	pc.accountOperations.WithLabelValues(operation, result).Inc()
}
