// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: shared cache for multi-instance servers
//   - [MongoCache]: shared cache with a TTL index, for deployments that
//     already run MongoDB
//   - [NullCache]: disables caching
//
// Use [Open] to build a backend from a [Config].
//
// # Keys
//
// Keys are derived by a [Keyer] from a content hash of the input plus every
// option that changes the output, so a cached entry can never be returned
// for a different request. [ScopedKeyer] prefixes keys for tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values. Layouts are pure functions of their input,
// so entries only expire to bound storage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (false, nil error), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections or file handles.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the gallery with the given
	// content hash.
	LayoutKey(galleryHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact of the layout with
	// the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that affects a computed layout.
type LayoutKeyOpts struct {
	Algorithm   string  `json:"algorithm"`
	Width       float64 `json:"width"`
	MaxHeight   float64 `json:"max_height"`
	IdealHeight float64 `json:"ideal_height"`
	Spacing     float64 `json:"spacing"`
	Align       string  `json:"align"`
	Columns     int     `json:"columns"`
	Margin      float64 `json:"margin"`
}

// ArtifactKeyOpts lists every option that affects a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	Background string  `json:"background"`
	Labels     bool    `json:"labels"`
	Scale      float64 `json:"scale"`
}

// keyVersion is bumped whenever the serialized layout format changes.
const keyVersion = "v1"

// DefaultKeyer derives keys as "<kind>:<sha256 of inputs>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(galleryHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", keyVersion, galleryHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
