package pipeline

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/psdui/pkg/assetdb"
	"github.com/matzehuels/psdui/pkg/cache"
	"github.com/matzehuels/psdui/pkg/config"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/fonts"
)

// Runner encapsulates document imports with caching.
//
// The Runner is stateless except for the cache, the registry and the
// logger; it doesn't store import results. Jobs carry their own state.
type Runner struct {
	Config   *config.Config
	Registry assetdb.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger

	fonts *fonts.Table
}

// NewRunner creates a runner.
// If cfg is nil, [config.Default] is used.
// If registry is nil, an in-memory registry is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(cfg *config.Config, registry assetdb.Registry, c cache.Cache, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if registry == nil {
		registry = assetdb.NewMemoryRegistry()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Config:   cfg,
		Registry: registry,
		Cache:    c,
		Keyer:    cache.NewDefaultKeyer(),
		Logger:   logger,
		fonts:    cfg.FontTable(),
	}
}

// NewJob parses docPath and returns a pending import job for it.
func (r *Runner) NewJob(ctx context.Context, docPath string) (*Job, error) {
	tree, hit, stats, err := r.parse(ctx, docPath)
	if err != nil {
		return nil, err
	}
	job := newJob(docPath, tree, r.Config)
	job.Stats = stats
	job.Stats.CacheHit = hit
	return job, nil
}

// Import parses docPath and runs its import routine to completion on a
// private host. With canvas set, the scene is also wrapped in a canvas.
// The returned error is the job's error; the job is returned either way
// once it was created.
func (r *Runner) Import(ctx context.Context, docPath string, canvas bool) (*Job, error) {
	host := NewHost(r.Registry, r.Logger)
	job, err := r.Submit(ctx, host, docPath, canvas)
	if err != nil {
		return nil, err
	}
	if err := host.Run(ctx, 0); err != nil {
		return job, err
	}
	return job, job.Err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger returns the runner's logger tagged with the job.
func (r *Runner) logger(job *Job) *log.Logger {
	return r.Logger.With("job", job.ShortID(), "document", job.Tree.Name)
}

func readDocument(docPath string) ([]byte, error) {
	if err := errors.ValidateDocumentPath(docPath); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(docPath)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", docPath)
	}
	return data, err
}
