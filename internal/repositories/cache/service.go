package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"antifraud/internal/logging"
	"antifraud/internal/models"
	cachekeys "antifraud/internal/utils/cache"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const defaultTTL = 10 * time.Minute

// cacheAccountScript stores KEYS[1] unless the tombstone KEYS[2] exists.
var cacheAccountScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// CacheService is a JSON credential cache over Redis. Every call goes
// through a circuit breaker and a per-call timeout, so a slow or absent Redis
// degrades to cache misses instead of failing lookups.
//
// Removal is fenced with a tombstone that lives as long as an entry can:
// while it exists, reads miss and fills are dropped, so an entry written
// from a row read before the delete can never be served after it.
type CacheService struct {
	client    *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
	breaker   *gobreaker.CircuitBreaker
	logger    *logging.Logger
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	return NewCacheServiceWithBreaker(client, ttl, DefaultBreakerConfig())
}

func NewCacheServiceWithBreaker(client *redis.Client, ttl time.Duration, cfg BreakerConfig) *CacheService {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	logger := logging.Global().Named("cache")
	return &CacheService{
		client:    client,
		ttl:       ttl,
		opTimeout: cfg.OpTimeout,
		breaker:   newBreaker("redis", cfg, logger),
		logger:    logger,
	}
}

func (s *CacheService) execute(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	return s.breaker.Execute(func() (interface{}, error) {
		if s.opTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opTimeout)
			defer cancel()
		}
		return fn(ctx)
	})
}

// accountEntry is the cached form of an account. models.Account hides its
// hash from JSON, so the cache keeps its own shape.
type accountEntry struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// CacheAccount stores account unless its username is tombstoned. stored is
// false when the write was dropped for that reason.
func (s *CacheService) CacheAccount(ctx context.Context, account *models.Account) (stored bool, err error) {
	if account == nil {
		return false, errors.New("cannot cache nil account")
	}
	data, err := json.Marshal(accountEntry{
		ID:           account.ID,
		Name:         account.Name,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	keys := []string{
		cachekeys.AccountKey(account.UsernameKey),
		cachekeys.AccountTombstoneKey(account.UsernameKey),
	}
	res, err := s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return cacheAccountScript.Run(ctx, s.client, keys, data, s.ttl.Milliseconds()).Int64()
	})
	if err != nil {
		return false, fmt.Errorf("failed to cache account: %w", err)
	}
	return res.(int64) == 1, nil
}

// GetAccount returns the cached account for a normalized username. A miss,
// a tombstoned username and a cache failure all return (nil, false);
// failures are logged.
func (s *CacheService) GetAccount(ctx context.Context, usernameKey string) (*models.Account, bool) {
	res, err := s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return s.client.MGet(ctx,
			cachekeys.AccountKey(usernameKey),
			cachekeys.AccountTombstoneKey(usernameKey),
		).Result()
	})
	if err != nil {
		s.logger.Debug("account cache lookup failed", zap.String("username", usernameKey), zap.Error(err))
		return nil, false
	}

	values := res.([]interface{})
	if len(values) != 2 || values[0] == nil || values[1] != nil {
		return nil, false
	}
	raw, ok := values[0].(string)
	if !ok {
		return nil, false
	}

	var entry accountEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.logger.Warn("corrupt account cache entry", zap.String("username", usernameKey), zap.Error(err))
		return nil, false
	}
	return &models.Account{
		ID:           entry.ID,
		Name:         entry.Name,
		Username:     entry.Username,
		UsernameKey:  usernameKey,
		PasswordHash: entry.PasswordHash,
	}, true
}

// FenceAccount tombstones a username ahead of its removal. Callers must not
// remove the account when it fails.
func (s *CacheService) FenceAccount(ctx context.Context, usernameKey string) error {
	_, err := s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, s.client.Set(ctx, cachekeys.AccountTombstoneKey(usernameKey), "1", s.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to fence account: %w", err)
	}
	return nil
}

// InvalidateAccount drops the cached entry. The tombstone stays until it
// expires.
func (s *CacheService) InvalidateAccount(ctx context.Context, usernameKey string) error {
	_, err := s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, s.client.Del(ctx, cachekeys.AccountKey(usernameKey)).Err()
	})
	return err
}

// HealthCheck pings Redis directly, bypassing the breaker.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// BreakerState reports the circuit breaker state.
func (s *CacheService) BreakerState() gobreaker.State {
	return s.breaker.State()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
