// Package cache stores built layout trees between runs.
//
// Building a tree from a large document decodes every channel plane, so
// the CLI caches the result keyed by a hash of the document bytes. Entries
// are opaque byte slices; the pipeline encodes trees with uitree.Encode.
//
// Two implementations are provided: [FileCache] for the CLI and
// [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. A zero TTL never expires.
const (
	TTLTree = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TreeKeyOpts are the build settings that change a built tree.
type TreeKeyOpts struct {
	Name         string `json:"name"` // document name, which fixtures may leave to the file name
	CodecVersion int    `json:"codec_version"`
}

// Keyer derives cache keys.
type Keyer interface {
	// TreeKey returns the key of the tree built from a document whose
	// bytes hash to docHash.
	TreeKey(docHash string, opts TreeKeyOpts) string
}

// DefaultKeyer produces "tree:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) TreeKey(docHash string, opts TreeKeyOpts) string {
	return hashKey("tree", docHash, opts)
}
