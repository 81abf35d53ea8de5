// Package cache stores fetched sources and rendered artifacts.
//
// # Backends
//
// All backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, entries expire via Redis TTLs
//   - [MongoCache]: a MongoDB collection with an expires_at field
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] turns inputs into cache keys. [DefaultKeyer] hashes every
// component, so keys are safe for any backend:
//
//	k := cache.NewDefaultKeyer()
//	k.SourceKey("https://example.com/colleges.csv")
//	k.ArtifactKey(dataHash, cache.ArtifactKeyOpts{Format: "svg", Width: 800})
//
// [ScopedKeyer] prefixes keys so several tools can share one Redis or Mongo
// backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTLs.
type Cache interface {
	// Get returns the data stored at key. A missing or expired entry is a
	// miss (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data at key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// SourceKey identifies the raw bytes fetched from a location.
	SourceKey(location string) string

	// ArtifactKey identifies one rendered output of a dataset.
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes rendered output.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Title       string  `json:"title"`
	Policy      string  `json:"policy"`
	Tooltip     bool    `json:"tooltip"`
	Fingerprint string  `json:"fingerprint,omitempty"` // hash of remaining layout settings
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SourceKey returns "source:<hash(location)>".
func (DefaultKeyer) SourceKey(location string) string {
	return hashKey("source", location)
}

// ArtifactKey returns "artifact:<hash(dataHash, opts)>".
func (DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dataHash, opts)
}
