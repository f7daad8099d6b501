package repositories

import (
	"context"
	"errors"
	"fmt"

	"antifraud/internal/config"
	"antifraud/internal/repositories/cache"

	"gorm.io/gorm"
)

// Store bundles the account repository with the connections behind it.
// DB and Cache are nil for the memory backend.
type Store struct {
	Accounts AccountRepository
	DB       *gorm.DB
	Cache    *cache.CacheService
}

// OpenStore connects the backend selected by cfg.Store.
func OpenStore(cfg config.Config) (*Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return &Store{Accounts: NewMemoryAccountRepository()}, nil
	case config.StorePostgres, "":
		db, err := InitDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		cacheService := InitCache(cfg.Redis)
		return &Store{
			Accounts: NewAccountRepository(db, cacheService),
			DB:       db,
			Cache:    cacheService,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// PingDB reports whether the database answers. The memory store always does.
func (s *Store) PingDB(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database pool and the Redis client.
func (s *Store) Close() error {
	var errs []error
	if s.DB != nil {
		if err := CloseDB(s.DB); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
