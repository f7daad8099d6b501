package validation

import (
	"math"
	"strings"
	"testing"

	"antifraud/internal/models"

	"github.com/stretchr/testify/assert"
)

func amount(v float64) *float64 { return &v }

func TestTransaction(t *testing.T) {
	tests := []struct {
		name    string
		amount  *float64
		wantErr string
	}{
		{name: "positive", amount: amount(0.01)},
		{name: "missing", amount: nil, wantErr: "amount: is required"},
		{name: "zero", amount: amount(0), wantErr: "amount: must be greater than zero"},
		{name: "negative", amount: amount(-5), wantErr: "amount: must be greater than zero"},
		{name: "nan", amount: amount(math.NaN()), wantErr: "amount: must be a finite number"},
		{name: "infinite", amount: amount(math.Inf(1)), wantErr: "amount: must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Transaction(&models.TransactionRequest{Amount: tt.amount})

			if tt.wantErr == "" {
				assert.True(t, v.Valid())
				assert.Empty(t, v.FirstError())
				return
			}
			assert.False(t, v.Valid())
			assert.Equal(t, tt.wantErr, v.FirstError())
		})
	}
}

func TestAccountRegistration(t *testing.T) {
	tests := []struct {
		name       string
		input      models.CreateAccountInput
		wantFields []string
	}{
		{
			name:  "complete",
			input: models.CreateAccountInput{Name: "John", Username: "john", Password: "secret"},
		},
		{
			name:       "all missing",
			input:      models.CreateAccountInput{},
			wantFields: []string{"name", "password", "username"},
		},
		{
			name:       "blank username",
			input:      models.CreateAccountInput{Name: "John", Username: "   ", Password: "secret"},
			wantFields: []string{"username"},
		},
		{
			name:       "password too long",
			input:      models.CreateAccountInput{Name: "John", Username: "john", Password: strings.Repeat("x", MaxPasswordLength+1)},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.AccountRegistration(&tt.input)

			assert.Len(t, v.Errors, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, v.Errors, field)
			}
		})
	}
}

func TestFirstErrorIsDeterministic(t *testing.T) {
	v := New()
	v.AddError("username", "must not be empty")
	v.AddError("name", "must not be empty")
	v.AddError("name", "ignored second message")

	assert.Equal(t, "name: must not be empty", v.FirstError())
}
