package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

const DefaultAssetCacheName = "smartpos-v1"

// AssetCacheService serves a fixed list of files cache-first with origin
// fallback. Invalidation happens only by changing the cache name.
type AssetCacheService struct {
	store     port.AssetStore
	origin    port.AssetOrigin
	log       logrus.FieldLogger
	cacheName string
	files     []string
}

func NewAssetCacheService(store port.AssetStore, origin port.AssetOrigin, log logrus.FieldLogger, cacheName string, files []string) *AssetCacheService {
	if cacheName == "" {
		cacheName = DefaultAssetCacheName
	}
	normalized := make([]string, 0, len(files))
	for _, f := range files {
		normalized = append(normalized, cleanAssetPath(f))
	}
	return &AssetCacheService{
		store:     store,
		origin:    origin,
		log:       log.WithFields(logrus.Fields{"component": "assets", "cache": cacheName}),
		cacheName: cacheName,
		files:     normalized,
	}
}

// cleanAssetPath roots the path and resolves dot segments, so no request
// climbs above the origin root.
func cleanAssetPath(p string) string {
	return path.Clean("/" + strings.TrimSpace(p))
}

func (s *AssetCacheService) CacheName() string {
	return s.cacheName
}

func (s *AssetCacheService) Files() []string {
	return append([]string(nil), s.files...)
}

// Install fetches every listed file into the current cache. One failure
// fails the whole install.
func (s *AssetCacheService) Install(ctx context.Context) error {
	for _, p := range s.files {
		asset, err := s.origin.FetchAsset(ctx, p)
		if err != nil {
			return fmt.Errorf("install %s: %w", p, err)
		}
		asset.Path = p
		if err := s.store.PutAsset(ctx, s.cacheName, asset); err != nil {
			return fmt.Errorf("cache %s: %w", p, err)
		}
	}
	s.log.WithField("files", len(s.files)).Info("asset cache installed")
	return nil
}

// Activate removes the entries of every other cache name.
func (s *AssetCacheService) Activate(ctx context.Context) error {
	n, err := s.store.DeleteOtherCaches(ctx, s.cacheName)
	if err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	if n > 0 {
		s.log.WithField("deleted", n).Info("stale asset caches removed")
	}
	return nil
}

// Fetch answers from the cache first and falls back to the origin.
func (s *AssetCacheService) Fetch(ctx context.Context, p string) (domain.Asset, error) {
	p = cleanAssetPath(p)

	cached, err := s.store.GetAsset(ctx, s.cacheName, p)
	if err != nil {
		s.log.WithError(err).WithField("path", p).Warn("asset cache read failed")
	}
	if cached != nil {
		return *cached, nil
	}

	asset, err := s.origin.FetchAsset(ctx, p)
	if errors.Is(err, domain.ErrAssetNotFound) {
		return domain.Asset{}, fmt.Errorf("fetch %s: %w", p, err)
	}
	if err != nil {
		return domain.Asset{}, fmt.Errorf("%w: fetch %s: %w", domain.ErrNetwork, p, err)
	}
	asset.Path = p
	return asset, nil
}
