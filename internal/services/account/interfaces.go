package account

import (
	"context"

	"antifraud/internal/models"
)

// Service defines the account directory operations
type Service interface {
	Register(ctx context.Context, input *models.CreateAccountInput) (*models.AccountResponse, error)
	List(ctx context.Context) ([]models.AccountResponse, error)
	Remove(ctx context.Context, username string) (*models.DeleteAccountResponse, error)
	Verify(ctx context.Context, username, password string) bool
}

// PasswordHasher is a one-way salted hash. Verify must compare in constant time.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// MetricsCollector receives the outcome of each directory operation.
type MetricsCollector interface {
	RecordAccountOperation(operation, result string)
}
