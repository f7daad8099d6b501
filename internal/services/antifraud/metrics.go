package antifraud

import "antifraud/internal/models"

// MetricsCollector receives one event per evaluated request.
type MetricsCollector interface {
	RecordVerdict(verdict models.Verdict)
	RecordRejected()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordVerdict(models.Verdict) {}
func (NoopMetricsCollector) RecordRejected()              {}
