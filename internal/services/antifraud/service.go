// Package antifraud classifies proposed transactions into risk tiers by amount.
package antifraud

import (
	"context"
	"fmt"

	apperrors "antifraud/internal/errors"
	"antifraud/internal/models"
	"antifraud/internal/validation"
)

type Service interface {
	// Evaluate validates req and classifies its amount. Requests without a
	// positive finite amount fail with ErrInvalidAmount and are never
	// classified.
	Evaluate(ctx context.Context, req *models.TransactionRequest) (models.Verdict, error)
}

type service struct {
	metrics MetricsCollector
}

func NewService(metrics MetricsCollector) Service {
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &service{metrics: metrics}
}

func (s *service) Evaluate(_ context.Context, req *models.TransactionRequest) (models.Verdict, error) {
	if req == nil {
		s.metrics.RecordRejected()
		return "", fmt.Errorf("%w: empty request", apperrors.ErrInvalidAmount)
	}

	v := validation.New()
	v.Transaction(req)
	if !v.Valid() {
		s.metrics.RecordRejected()
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, v.FirstError())
	}

	verdict := Classify(*req.Amount)
	s.metrics.RecordVerdict(verdict)
	return verdict, nil
}
