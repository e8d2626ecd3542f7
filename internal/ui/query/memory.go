package query

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memItem struct {
	val     []byte
	expires time.Time
}

// MemoryStore keeps results in process. Used when no Redis is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok || m.now().After(it.expires) {
		return nil, false, nil
	}
	return it.val, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.items[key] = memItem{val: val, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteScope(_ context.Context, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if k == scope || strings.HasPrefix(k, scope+":") {
			delete(m.items, k)
		}
	}
	return nil
}
