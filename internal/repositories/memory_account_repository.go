package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"antifraud/internal/models"
)

// MemoryAccountRepository keeps accounts in process memory behind a single
// lock. It backs STORE=memory and the service tests.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
	nextID   uint
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[string]*models.Account),
		nextID:   1,
	}
}

func (r *MemoryAccountRepository) Create(_ context.Context, account *models.Account) error {
	key := models.NormalizeUsername(account.Username)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[key]; exists {
		return ErrUsernameTaken
	}

	account.ID = r.nextID
	account.UsernameKey = key
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	r.nextID++

	stored := *account
	r.accounts[key] = &stored
	return nil
}

func (r *MemoryAccountRepository) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[models.NormalizeUsername(username)]
	if !ok {
		return nil, ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (r *MemoryAccountRepository) List(_ context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	accounts := make([]*models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		cp := *account
		accounts = append(accounts, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *MemoryAccountRepository) DeleteByUsername(_ context.Context, username string) (*models.Account, error) {
	key := models.NormalizeUsername(username)

	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[key]
	if !ok {
		return nil, ErrAccountNotFound
	}
	delete(r.accounts, key)
	return account, nil
}
