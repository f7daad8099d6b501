package repositories_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "antifraud/internal/errors"
	"antifraud/internal/models"
	"antifraud/internal/repositories"
	"antifraud/internal/repositories/cache"
	"antifraud/internal/services/account"
	"antifraud/internal/utils"
	cachekeys "antifraud/internal/utils/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type cachedStore struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	cache *cache.CacheService
	repo  repositories.AccountRepository
}

// newCachedStore backs the gorm repository with a sqlite file and a
// miniredis credential cache.
func newCachedStore(t *testing.T) *cachedStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "accounts.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}))

	mr := miniredis.RunT(t)
	cacheService := cache.NewCacheService(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), time.Minute)

	t.Cleanup(func() {
		_ = cacheService.Close()
		_ = repositories.CloseDB(db)
	})

	return &cachedStore{
		db:    db,
		mr:    mr,
		cache: cacheService,
		repo:  repositories.NewAccountRepository(db, cacheService),
	}
}

func (s *cachedStore) create(t *testing.T, username, hash string) *models.Account {
	t.Helper()
	account := &models.Account{Name: username, Username: username, PasswordHash: hash}
	require.NoError(t, s.repo.Create(context.Background(), account))
	return account
}

func TestAccountRepository_ReadsThroughCache(t *testing.T) {
	s := newCachedStore(t)
	ctx := context.Background()
	s.create(t, "John", "hash-1")

	found, err := s.repo.GetByUsername(ctx, "john")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", found.PasswordHash)
	assert.True(t, s.mr.Exists(cachekeys.AccountKey("john")))

	require.NoError(t, s.db.Model(&models.Account{}).
		Where("username_key = ?", "john").
		Update("password_hash", "hash-2").Error)

	cached, err := s.repo.GetByUsername(ctx, "JOHN")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", cached.PasswordHash)
}

func TestAccountRepository_DeleteFencesCache(t *testing.T) {
	s := newCachedStore(t)
	ctx := context.Background()
	s.create(t, "john", "hash")

	snapshot, err := s.repo.GetByUsername(ctx, "john")
	require.NoError(t, err)

	deleted, err := s.repo.DeleteByUsername(ctx, "John")
	require.NoError(t, err)
	assert.Equal(t, snapshot.ID, deleted.ID)
	assert.False(t, s.mr.Exists(cachekeys.AccountKey("john")))
	assert.True(t, s.mr.Exists(cachekeys.AccountTombstoneKey("john")))

	// Another instance read the row before the delete and fills afterwards.
	stored, err := s.cache.CacheAccount(ctx, snapshot)
	require.NoError(t, err)
	assert.False(t, stored)

	_, err = s.repo.GetByUsername(ctx, "john")
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestAccountRepository_DeleteRefusedWithoutFence(t *testing.T) {
	s := newCachedStore(t)
	ctx := context.Background()
	s.create(t, "john", "hash")

	_, err := s.repo.GetByUsername(ctx, "john")
	require.NoError(t, err)

	s.mr.SetError("LOADING Redis is loading the dataset in memory")
	_, err = s.repo.DeleteByUsername(ctx, "john")
	s.mr.SetError("")

	assert.ErrorIs(t, err, repositories.ErrCacheUnavailable)

	kept, err := s.repo.GetByUsername(ctx, "john")
	require.NoError(t, err)
	assert.Equal(t, "hash", kept.PasswordHash)
}

func TestAccountRepository_DeleteMissingLeavesNoTombstone(t *testing.T) {
	s := newCachedStore(t)

	_, err := s.repo.DeleteByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
	assert.False(t, s.mr.Exists(cachekeys.AccountTombstoneKey("ghost")))
}

func TestAccountService_RemovedCredentialsStopWorkingWithCache(t *testing.T) {
	s := newCachedStore(t)
	svc := account.NewService(s.repo, utils.NewBcryptHasher(bcrypt.MinCost), nil)
	ctx := context.Background()

	register := func(password string) {
		_, err := svc.Register(ctx, &models.CreateAccountInput{Name: "John", Username: "john", Password: password})
		require.NoError(t, err)
	}

	register("secret")
	require.True(t, svc.Verify(ctx, "john", "secret"))
	require.True(t, s.mr.Exists(cachekeys.AccountKey("john")))

	s.mr.SetError("LOADING transient")
	_, err := svc.Remove(ctx, "john")
	s.mr.SetError("")
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
	assert.True(t, svc.Verify(ctx, "john", "secret"), "a refused removal keeps the account")

	_, err = svc.Remove(ctx, "john")
	require.NoError(t, err)
	assert.False(t, svc.Verify(ctx, "john", "secret"))

	register("other")
	assert.False(t, svc.Verify(ctx, "john", "secret"))
	assert.True(t, svc.Verify(ctx, "john", "other"))
}
