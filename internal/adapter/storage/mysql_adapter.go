package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS preferences (
	pref_key   VARCHAR(128) NOT NULL PRIMARY KEY,
	pref_value MEDIUMTEXT   NOT NULL,
	version    INT          NOT NULL DEFAULT 0,
	created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`, `
CREATE TABLE IF NOT EXISTS cached_assets (
	cache_name   VARCHAR(64)  NOT NULL,
	path         VARCHAR(255) NOT NULL,
	content_type VARCHAR(128) NOT NULL DEFAULT '',
	body         MEDIUMBLOB   NOT NULL,
	cached_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (cache_name, path)
)`}

// MySQLAdapter stores preferences in a key-value table where every write
// bumps the row version, and cached assets keyed by cache name and path.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := m.db.QueryRowContext(ctx, `
		SELECT pref_value FROM preferences WHERE pref_key = ?`, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query preference %s: %w", key, err)
	}
	return value, true, nil
}

func (m *MySQLAdapter) Set(ctx context.Context, key, value string) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO preferences (pref_key, pref_value, version) VALUES (?, ?, 0)
		ON DUPLICATE KEY UPDATE pref_value = VALUES(pref_value), version = version + 1`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert preference %s: %w", key, err)
	}
	return nil
}

func (m *MySQLAdapter) GetAsset(ctx context.Context, cacheName, path string) (*domain.Asset, error) {
	asset := domain.Asset{Path: path}
	err := m.db.QueryRowContext(ctx, `
		SELECT content_type, body FROM cached_assets WHERE cache_name = ? AND path = ?`,
		cacheName, path,
	).Scan(&asset.ContentType, &asset.Body)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query asset %s: %w", path, err)
	}
	return &asset, nil
}

func (m *MySQLAdapter) PutAsset(ctx context.Context, cacheName string, asset domain.Asset) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO cached_assets (cache_name, path, content_type, body) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE content_type = VALUES(content_type), body = VALUES(body), cached_at = CURRENT_TIMESTAMP`,
		cacheName, asset.Path, asset.ContentType, asset.Body,
	)
	if err != nil {
		return fmt.Errorf("upsert asset %s: %w", asset.Path, err)
	}
	return nil
}

func (m *MySQLAdapter) DeleteOtherCaches(ctx context.Context, keep string) (int, error) {
	result, err := m.db.ExecContext(ctx, `DELETE FROM cached_assets WHERE cache_name <> ?`, keep)
	if err != nil {
		return 0, fmt.Errorf("delete stale assets: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
