package repositories

import (
	"context"
	"errors"
	"fmt"

	"antifraud/internal/logging"
	"antifraud/internal/models"
	"antifraud/internal/repositories/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type accountRepository struct {
	db     *gorm.DB
	cache  *cache.CacheService
	logger *logging.Logger
}

// NewAccountRepository creates a PostgreSQL backed AccountRepository.
// cache may be nil.
func NewAccountRepository(db *gorm.DB, cache *cache.CacheService) AccountRepository {
	return &accountRepository{
		db:     db,
		cache:  cache,
		logger: logging.Global().Named("repositories.account"),
	}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	account.UsernameKey = models.NormalizeUsername(account.Username)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).
			Where("username_key = ?", account.UsernameKey).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(account).Error
	})

	switch {
	case err == nil:
		return nil
	// A concurrent insert that passed the count check loses on the unique index.
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrUsernameTaken
	default:
		r.logger.Error("failed to create account", zap.String("username", account.Username), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	key := models.NormalizeUsername(username)

	if r.cache != nil {
		if account, ok := r.cache.GetAccount(ctx, key); ok {
			return account, nil
		}
	}

	var account models.Account
	err := r.db.WithContext(ctx).Where("username_key = ?", key).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if r.cache != nil {
		if _, err := r.cache.CacheAccount(ctx, &account); err != nil {
			r.logger.Debug("failed to cache account", zap.String("username", key), zap.Error(err))
		}
	}

	return &account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	if err := r.db.WithContext(ctx).Order("id asc").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return accounts, nil
}

func (r *accountRepository) DeleteByUsername(ctx context.Context, username string) (*models.Account, error) {
	key := models.NormalizeUsername(username)

	if r.cache != nil {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Account{}).
			Where("username_key = ?", key).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}
		if count == 0 {
			return nil, ErrAccountNotFound
		}
		// Fence before deleting: lookups racing with the delete must not
		// serve or refill the old credentials.
		if err := r.cache.FenceAccount(ctx, key); err != nil {
			r.logger.Warn("refusing to delete account without cache fence", zap.String("username", key), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
		}
	}

	var account models.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username_key = ?", key).First(&account).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Account{}, account.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if r.cache != nil {
		// The fence already hides the entry; this only frees memory.
		if err := r.cache.InvalidateAccount(ctx, key); err != nil {
			r.logger.Debug("failed to evict account cache entry", zap.String("username", key), zap.Error(err))
		}
	}

	return &account, nil
}
