package port

import (
	"context"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

type AssetStore interface {
	// GetAsset returns nil when the asset is not cached under cacheName
	GetAsset(ctx context.Context, cacheName, path string) (*domain.Asset, error)

	PutAsset(ctx context.Context, cacheName string, asset domain.Asset) error

	// DeleteOtherCaches drops every cached asset not stored under keep
	DeleteOtherCaches(ctx context.Context, keep string) (int, error)
}

type AssetOrigin interface {
	FetchAsset(ctx context.Context, path string) (domain.Asset, error)
}
