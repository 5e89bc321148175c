// Package metadata is a small key/value store in the client database. The
// session cache keeps the signed-in account under the "session." prefix.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// List returns all pairs whose key starts with prefix ("" lists all).
	List(ctx context.Context, prefix string) (map[string]string, error)
	Clear(ctx context.Context) error
}
