package port

import "context"

// LocalStore is the durable key-value store behind terminal preferences.
type LocalStore interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set overwrites the value under key
	Set(ctx context.Context, key, value string) error
}
