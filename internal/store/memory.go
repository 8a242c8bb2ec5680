package store

import (
	"context"
	"sync"

	"github.com/theirongolddev/payoff/internal/model"
)

// MemoryCache is a process-local ResultCache.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]model.PaymentHistory
}

var _ ResultCache = (*MemoryCache)(nil)

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]model.PaymentHistory)}
}

// Get returns the cached history for key, if present.
func (m *MemoryCache) Get(_ context.Context, key string) (model.PaymentHistory, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.data[key]
	return h, ok, nil
}

// Put stores h under key.
func (m *MemoryCache) Put(_ context.Context, key string, _ model.LoanParameters, h model.PaymentHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = h
	return nil
}

// Len is the number of cached results.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Close is a no-op.
func (m *MemoryCache) Close() error { return nil }
