package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/psdui/pkg/builder"
	"github.com/matzehuels/psdui/pkg/cache"
	"github.com/matzehuels/psdui/pkg/config"
	"github.com/matzehuels/psdui/pkg/document"
	"github.com/matzehuels/psdui/pkg/observability"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// ParseWithCacheInfo builds the layout tree of docPath with caching and
// returns cache hit info. Trees are keyed by a hash of the document bytes.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, docPath string) (*uitree.Root, bool, error) {
	tree, hit, _, err := r.parse(ctx, docPath)
	return tree, hit, err
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, docPath string) (*uitree.Root, error) {
	tree, _, err := r.ParseWithCacheInfo(ctx, docPath)
	return tree, err
}

func (r *Runner) parse(ctx context.Context, docPath string) (*uitree.Root, bool, Stats, error) {
	var stats Stats
	start := time.Now()
	name := config.DocumentName(docPath)

	data, err := readDocument(docPath)
	if err != nil {
		return nil, false, stats, fmt.Errorf("parse: %w", err)
	}

	cacheKey := r.Keyer.TreeKey(cache.Hash(data), cache.TreeKeyOpts{
		Name:         name,
		CodecVersion: uitree.CodecVersion,
	})

	// Try cache first
	if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if tree, err := uitree.Decode(cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "tree")
			stats.ParseTime = time.Since(start)
			stats.Nodes = nodeCount(tree)
			return tree, true, stats, nil
		}
		// If deserialization fails, fall through to rebuild
	}
	observability.Cache().OnCacheMiss(ctx, "tree")

	observability.Pipeline().OnBuildStart(ctx, name)
	tree, err := r.build(data, name)
	stats.ParseTime = time.Since(start)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, name, 0, stats.ParseTime, err)
		return nil, false, stats, fmt.Errorf("parse: %w", err)
	}
	stats.Nodes = nodeCount(tree)
	observability.Pipeline().OnBuildComplete(ctx, name, stats.Nodes, stats.ParseTime, nil)

	r.Logger.Info("built layout tree",
		"document", tree.Name,
		"nodes", stats.Nodes,
		"overlay", tree.Configs.Len(),
		"duration", stats.ParseTime)

	// Cache the result
	if encoded, err := uitree.Encode(tree); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, encoded, cache.TTLTree); err == nil {
			observability.Cache().OnCacheSet(ctx, "tree", len(encoded))
		}
	}

	return tree, false, stats, nil
}

func (r *Runner) build(data []byte, name string) (*uitree.Root, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return builder.Build(doc, builder.WithLogger(r.Logger))
}

func nodeCount(tree *uitree.Root) int {
	n := 0
	for _, c := range tree.Count() {
		n += c
	}
	return n
}
