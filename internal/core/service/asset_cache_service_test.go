package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

// Mock AssetStore
type mockAssetStore struct {
	mu     sync.Mutex
	assets map[string]domain.Asset
}

func newMockAssetStore() *mockAssetStore {
	return &mockAssetStore{assets: make(map[string]domain.Asset)}
}

func (m *mockAssetStore) GetAsset(ctx context.Context, cacheName, path string) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[cacheName+"|"+path]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *mockAssetStore) PutAsset(ctx context.Context, cacheName string, asset domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[cacheName+"|"+asset.Path] = asset
	return nil
}

func (m *mockAssetStore) DeleteOtherCaches(ctx context.Context, keep string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.assets {
		if !strings.HasPrefix(k, keep+"|") {
			delete(m.assets, k)
			n++
		}
	}
	return n, nil
}

type mockOrigin struct {
	mu      sync.Mutex
	files   map[string]string
	fetches int
	down    bool
	paths   []string
}

func (m *mockOrigin) FetchAsset(ctx context.Context, path string) (domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	m.paths = append(m.paths, path)
	if m.down {
		return domain.Asset{}, errors.New("offline")
	}
	body, ok := m.files[path]
	if !ok {
		return domain.Asset{}, domain.ErrAssetNotFound
	}
	return domain.Asset{Path: path, ContentType: "text/plain", Body: []byte(body)}, nil
}

func TestAssetCache_InstallThenServeOffline(t *testing.T) {
	store := newMockAssetStore()
	origin := &mockOrigin{files: map[string]string{"/index.html": "<html>", "/assets/js/app.js": "js"}}
	svc := NewAssetCacheService(store, origin, quietLogger(), "", []string{"../index.html", "../assets/js/app.js"})
	ctx := context.Background()

	assert.Equal(t, DefaultAssetCacheName, svc.CacheName())
	assert.Equal(t, []string{"/index.html", "/assets/js/app.js"}, svc.Files())
	require.NoError(t, svc.Install(ctx))

	origin.down = true
	asset, err := svc.Fetch(ctx, "/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(asset.Body))
}

func TestAssetCache_MissFallsBackToNetwork(t *testing.T) {
	store := newMockAssetStore()
	origin := &mockOrigin{files: map[string]string{"/extra.css": "css"}}
	svc := NewAssetCacheService(store, origin, quietLogger(), "smartpos-v2", nil)
	ctx := context.Background()

	asset, err := svc.Fetch(ctx, "extra.css")
	require.NoError(t, err)
	assert.Equal(t, "css", string(asset.Body))

	origin.down = true
	_, err = svc.Fetch(ctx, "extra.css")
	assert.ErrorIs(t, err, domain.ErrNetwork, "network fallback results are not stored")
}

func TestAssetCache_InstallFailsOnMissingFile(t *testing.T) {
	svc := NewAssetCacheService(newMockAssetStore(), &mockOrigin{files: map[string]string{}}, quietLogger(), "", []string{"/missing.png"})

	assert.Error(t, svc.Install(context.Background()))
}

func TestAssetCache_ActivateDropsOldVersions(t *testing.T) {
	store := newMockAssetStore()
	origin := &mockOrigin{files: map[string]string{"/index.html": "v"}}
	ctx := context.Background()

	old := NewAssetCacheService(store, origin, quietLogger(), "smartpos-v1", []string{"/index.html"})
	require.NoError(t, old.Install(ctx))

	current := NewAssetCacheService(store, origin, quietLogger(), "smartpos-v2", []string{"/index.html"})
	require.NoError(t, current.Install(ctx))
	require.NoError(t, current.Activate(ctx))

	a, _ := store.GetAsset(ctx, "smartpos-v1", "/index.html")
	assert.Nil(t, a)
	a, _ = store.GetAsset(ctx, "smartpos-v2", "/index.html")
	assert.NotNil(t, a)
}

func TestAssetCache_FetchResolvesDotSegments(t *testing.T) {
	origin := &mockOrigin{files: map[string]string{"/index.html": "<html>"}}
	svc := NewAssetCacheService(newMockAssetStore(), origin, quietLogger(), "", nil)

	asset, err := svc.Fetch(context.Background(), "/x/../../index.html")
	require.NoError(t, err)
	assert.Equal(t, "/index.html", asset.Path)
	assert.Equal(t, []string{"/index.html"}, origin.paths)
}

func TestAssetCache_MissingFileIsNotNetworkError(t *testing.T) {
	svc := NewAssetCacheService(newMockAssetStore(), &mockOrigin{files: map[string]string{}}, quietLogger(), "", nil)

	_, err := svc.Fetch(context.Background(), "/nope.css")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
}
