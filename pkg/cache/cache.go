// Package cache stores rendered figure artifacts between runs, so repeated
// composition of an unchanged configuration skips image loading and
// rasterization entirely. Backends: a file cache for the CLI, Redis for the
// HTTP service, and a null cache for disabling.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is the artifact store. Get reports a miss with hit == false rather
// than an error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ArtifactKey builds the cache key for a rendered figure from the raw
// configuration bytes and the render options. Any option change produces a
// different key, so stale artifacts are never served.
func ArtifactKey(config []byte, opts interface{}) string {
	optsData, _ := json.Marshal(opts)
	h := sha256.New()
	h.Write(config)
	h.Write(optsData)
	return "figure:" + hex.EncodeToString(h.Sum(nil))
}

// NullCache never stores anything; every Get is a miss. Used when caching is
// disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
