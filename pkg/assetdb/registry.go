// Package assetdb tracks exported asset files on behalf of the host.
//
// Writing a file is not enough to make it loadable. The writer announces
// the file with [Registry.Refresh], which only queues it; the host commits
// queued files during its next tick by calling [Registry.Settle]. Until
// then [Registry.Load] reports MISSING_ASSET. This is the ordering
// constraint the import routine yields a tick for.
//
// Two implementations are provided: [MemoryRegistry] for single runs and
// tests, and [SQLiteRegistry], which keeps the registry across runs.
package assetdb

import (
	"fmt"
	"image"
	_ "image/png" // PNG headers for Settle
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/psdui/pkg/errors"
)

// State is the registration state of an asset.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
)

// Asset is a committed asset file.
type Asset struct {
	Path      string    `json:"path"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Registry queues, commits and resolves asset files.
type Registry interface {
	// Refresh queues paths for commit on the next Settle. A path that is
	// already committed goes back to pending.
	Refresh(paths ...string) error

	// Settle commits every queued path. It returns the number of assets
	// committed.
	Settle() (int, error)

	// Load returns a committed asset, or a MISSING_ASSET error when the
	// path is unknown or still pending.
	Load(path string) (Asset, error)

	// Close releases resources held by the registry.
	Close() error
}

// key normalizes a path so "out/a.png" and "out/./a.png" are one asset.
func key(path string) string {
	return filepath.Clean(path)
}

// probe reads the image header of a written asset.
func probe(path string) (Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Asset{}, errors.Wrap(errors.ErrCodeMissingAsset, err, "asset %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Asset{}, errors.Wrap(errors.ErrCodeMissingAsset, err, "asset %s is not a readable image", path)
	}
	return Asset{Path: path, Width: cfg.Width, Height: cfg.Height, UpdatedAt: time.Now()}, nil
}

func errPending(path string) error {
	return errors.New(errors.ErrCodeMissingAsset, "asset %s is not settled yet", path)
}

func errUnknown(path string) error {
	return errors.New(errors.ErrCodeMissingAsset, "asset %s was never registered", path)
}

func (a Asset) String() string {
	return fmt.Sprintf("%s (%dx%d)", a.Path, a.Width, a.Height)
}
