package antifraud

import (
	"context"
	"math"
	"testing"

	apperrors "antifraud/internal/errors"
	"antifraud/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordVerdict(verdict models.Verdict) {
	m.Called(verdict)
}

func (m *MockMetrics) RecordRejected() {
	m.Called()
}

func amount(v float64) *float64 { return &v }

func TestService_Evaluate(t *testing.T) {
	tests := []struct {
		name      string
		req       *models.TransactionRequest
		setupMock func(*MockMetrics)
		want      models.Verdict
		wantErr   bool
	}{
		{
			name: "allowed",
			req:  &models.TransactionRequest{Amount: amount(150)},
			setupMock: func(m *MockMetrics) {
				m.On("RecordVerdict", models.VerdictAllowed).Return()
			},
			want: models.VerdictAllowed,
		},
		{
			name: "manual processing",
			req:  &models.TransactionRequest{Amount: amount(870)},
			setupMock: func(m *MockMetrics) {
				m.On("RecordVerdict", models.VerdictManualProcessing).Return()
			},
			want: models.VerdictManualProcessing,
		},
		{
			name: "prohibited",
			req:  &models.TransactionRequest{Amount: amount(1500.01)},
			setupMock: func(m *MockMetrics) {
				m.On("RecordVerdict", models.VerdictProhibited).Return()
			},
			want: models.VerdictProhibited,
		},
		{
			name:      "missing amount",
			req:       &models.TransactionRequest{},
			setupMock: func(m *MockMetrics) { m.On("RecordRejected").Return() },
			wantErr:   true,
		},
		{
			name:      "zero amount",
			req:       &models.TransactionRequest{Amount: amount(0)},
			setupMock: func(m *MockMetrics) { m.On("RecordRejected").Return() },
			wantErr:   true,
		},
		{
			name:      "negative amount",
			req:       &models.TransactionRequest{Amount: amount(-1)},
			setupMock: func(m *MockMetrics) { m.On("RecordRejected").Return() },
			wantErr:   true,
		},
		{
			name:      "nan amount",
			req:       &models.TransactionRequest{Amount: amount(math.NaN())},
			setupMock: func(m *MockMetrics) { m.On("RecordRejected").Return() },
			wantErr:   true,
		},
		{
			name:      "nil request",
			req:       nil,
			setupMock: func(m *MockMetrics) { m.On("RecordRejected").Return() },
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := new(MockMetrics)
			tt.setupMock(metrics)

			got, err := NewService(metrics).Evaluate(context.Background(), tt.req)

			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
				assert.Empty(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			metrics.AssertExpectations(t)
		})
	}
}

func TestNewServiceDefaultsToNoopMetrics(t *testing.T) {
	got, err := NewService(nil).Evaluate(context.Background(), &models.TransactionRequest{Amount: amount(1)})
	assert.NoError(t, err)
	assert.Equal(t, models.VerdictAllowed, got)
}
