package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
)

// InMemorySweepLock candado local para una sola instancia (sin Redis) y tests.
type InMemorySweepLock struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewInMemorySweepLock() *InMemorySweepLock {
	return &InMemorySweepLock{expires: make(map[string]time.Time), now: time.Now}
}

func (l *InMemorySweepLock) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if exp, ok := l.expires[key]; ok && now.Before(exp) {
		return false, nil
	}
	l.expires[key] = now.Add(ttl)
	return true, nil
}

var _ inventory.SweepLocker = (*InMemorySweepLock)(nil)
