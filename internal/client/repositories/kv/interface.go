// Package kv is the local key/value store behind the durable client state.
// The session table holds the bearer token and the cached user; the
// preferences table holds settings that survive logout.
package kv

import (
	"context"
)

// Repository is a byte-valued key/value table. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
