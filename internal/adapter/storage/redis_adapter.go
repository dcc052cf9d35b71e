package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

const (
	prefKeyPrefix  = "pref:"
	assetKeyPrefix = "asset:"
	scanBatchSize  = 100
)

// RedisAdapter keeps preferences as plain strings and cached assets as hashes
// under asset:<cache>:<path>.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, prefKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, prefKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func assetKey(cacheName, path string) string {
	return assetKeyPrefix + cacheName + ":" + path
}

func (r *RedisAdapter) GetAsset(ctx context.Context, cacheName, path string) (*domain.Asset, error) {
	fields, err := r.client.HGetAll(ctx, assetKey(cacheName, path)).Result()
	if err != nil {
		return nil, fmt.Errorf("get asset %s: %w", path, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &domain.Asset{Path: path, ContentType: fields["type"], Body: []byte(fields["body"])}, nil
}

func (r *RedisAdapter) PutAsset(ctx context.Context, cacheName string, asset domain.Asset) error {
	err := r.client.HSet(ctx, assetKey(cacheName, asset.Path),
		"type", asset.ContentType,
		"body", asset.Body,
	).Err()
	if err != nil {
		return fmt.Errorf("put asset %s: %w", asset.Path, err)
	}
	return nil
}

func (r *RedisAdapter) DeleteOtherCaches(ctx context.Context, keep string) (int, error) {
	keepPrefix := assetKeyPrefix + keep + ":"

	var stale []string
	iter := r.client.Scan(ctx, 0, assetKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		if key := iter.Val(); !strings.HasPrefix(key, keepPrefix) {
			stale = append(stale, key)
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan assets: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	n, err := r.client.Del(ctx, stale...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete stale assets: %w", err)
	}
	return int(n), nil
}
