package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

// MemoryAdapter is the process-local backend used when no Redis or MySQL is
// configured. Nothing survives a restart.
type MemoryAdapter struct {
	mu     sync.RWMutex
	prefs  map[string]string
	assets map[string]domain.Asset
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		prefs:  make(map[string]string),
		assets: make(map[string]domain.Asset),
	}
}

func (m *MemoryAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.prefs[key]
	return v, ok, nil
}

func (m *MemoryAdapter) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[key] = value
	return nil
}

func (m *MemoryAdapter) GetAsset(ctx context.Context, cacheName, path string) (*domain.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[assetKey(cacheName, path)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *MemoryAdapter) PutAsset(ctx context.Context, cacheName string, asset domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	asset.Body = append([]byte(nil), asset.Body...)
	m.assets[assetKey(cacheName, asset.Path)] = asset
	return nil
}

func (m *MemoryAdapter) DeleteOtherCaches(ctx context.Context, keep string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keepPrefix := assetKeyPrefix + keep + ":"
	n := 0
	for k := range m.assets {
		if !strings.HasPrefix(k, keepPrefix) {
			delete(m.assets, k)
			n++
		}
	}
	return n, nil
}
