package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient wraps a go-redis client together with a redislock client so
// callers can use it both as a key-value store and as a writer lock.
type RedisClient struct {
	rdb    *redis.Client
	locker *redislock.Client

	mu   sync.Mutex
	held map[string]*redislock.Lock
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return &RedisClient{
		rdb:    rdb,
		locker: redislock.New(rdb),
		held:   make(map[string]*redislock.Lock),
	}, nil
}

// Client exposes the underlying go-redis client.
func (c *RedisClient) Client() *redis.Client {
	return c.rdb
}

// AcquireLock tries once to obtain key for ttl. It reports false, nil when the
// lock is held elsewhere.
func (c *RedisClient) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	lock, err := c.locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.held[heldKey(key, value)] = lock
	c.mu.Unlock()
	return true, nil
}

func (c *RedisClient) ReleaseLock(ctx context.Context, key, value string) error {
	c.mu.Lock()
	lock, ok := c.held[heldKey(key, value)]
	delete(c.held, heldKey(key, value))
	c.mu.Unlock()

	if !ok {
		return nil
	}
	if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}

func (c *RedisClient) Close() error {
	return c.rdb.Close()
}

func heldKey(key, value string) string {
	return key + "\x00" + value
}
