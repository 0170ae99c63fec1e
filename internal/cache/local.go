package cache

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is the in-process counterpart of RedisClient's lock methods,
// used when a single process owns the store.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localLock
	clock func() time.Time
}

type localLock struct {
	value     string
	expiresAt time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]localLock),
		clock: time.Now,
	}
}

func (l *LocalLocker) AcquireLock(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if cur, ok := l.held[key]; ok && now.Before(cur.expiresAt) {
		return false, nil
	}
	l.held[key] = localLock{value: value, expiresAt: now.Add(ttl)}
	return true, nil
}

func (l *LocalLocker) ReleaseLock(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.held[key]; ok && cur.value == value {
		delete(l.held, key)
	}
	return nil
}
