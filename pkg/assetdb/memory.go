package assetdb

import (
	stderrors "errors"
	"sort"
	"sync"
)

// MemoryRegistry keeps the registry in memory.
type MemoryRegistry struct {
	mu      sync.Mutex
	pending map[string]struct{}
	ready   map[string]Asset
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		pending: make(map[string]struct{}),
		ready:   make(map[string]Asset),
	}
}

func (r *MemoryRegistry) Refresh(paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range paths {
		k := key(p)
		delete(r.ready, k)
		r.pending[k] = struct{}{}
	}
	return nil
}

func (r *MemoryRegistry) Settle() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths := make([]string, 0, len(r.pending))
	for p := range r.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var errs []error
	n := 0
	for _, p := range paths {
		delete(r.pending, p)
		asset, err := probe(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.ready[p] = asset
		n++
	}
	return n, stderrors.Join(errs...)
}

func (r *MemoryRegistry) Load(path string) (Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(path)
	if a, ok := r.ready[k]; ok {
		return a, nil
	}
	if _, ok := r.pending[k]; ok {
		return Asset{}, errPending(path)
	}
	return Asset{}, errUnknown(path)
}

// Pending returns the number of queued paths.
func (r *MemoryRegistry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *MemoryRegistry) Close() error { return nil }

var _ Registry = (*MemoryRegistry)(nil)
