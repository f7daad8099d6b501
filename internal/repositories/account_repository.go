package repositories

import (
	"context"
	"errors"

	"antifraud/internal/models"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrCacheUnavailable  = errors.New("credential cache unavailable")
)

// AccountRepository stores accounts keyed by their normalized username.
// Implementations must make the uniqueness check and the insert in Create
// atomic, and must never reuse an ID.
type AccountRepository interface {
	// Create assigns ID and UsernameKey and inserts the account, or returns
	// ErrUsernameTaken if the normalized username already exists.
	Create(ctx context.Context, account *models.Account) error

	// GetByUsername looks up an account case-insensitively.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// List returns all accounts ordered by ascending ID.
	List(ctx context.Context) ([]*models.Account, error)

	// DeleteByUsername removes the account case-insensitively and returns it.
	// Once it returns nil, no later GetByUsername may return the removed
	// account. It fails with ErrCacheUnavailable, leaving the account in
	// place, when that cannot be guaranteed.
	DeleteByUsername(ctx context.Context, username string) (*models.Account, error)
}
