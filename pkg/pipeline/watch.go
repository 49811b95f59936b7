package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/psdui/pkg/coroutine"
)

// DefaultWatchInterval is the polling interval of [Runner.Watch].
const DefaultWatchInterval = 500 * time.Millisecond

// Submit parses docPath and schedules its import on host.
func (r *Runner) Submit(ctx context.Context, host *Host, docPath string, canvas bool) (*Job, error) {
	job, err := r.NewJob(ctx, docPath)
	if err != nil {
		return nil, err
	}
	var routine coroutine.Routine
	if canvas {
		routine = r.ImportWithCanvasRoutine(job)
	} else {
		routine = r.ImportRoutine(job)
	}
	host.Submit(job, routine)
	return job, nil
}

// ImportTracked schedules an import for every tracked document. Documents
// that fail to parse are logged and skipped.
func (r *Runner) ImportTracked(ctx context.Context, host *Host, canvas bool) []*Job {
	var jobs []*Job
	for _, path := range r.Config.TrackedPaths() {
		job, err := r.Submit(ctx, host, path, canvas)
		if err != nil {
			r.Logger.Error("import not started", "document", path, "err", err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// Watch re-imports tracked documents whenever they change, ticking host
// once per interval. Every tracked document is imported on the first
// pass. A document is not submitted again while its previous import is
// still running. Watch returns when ctx is done.
func (r *Runner) Watch(ctx context.Context, host *Host, interval time.Duration, canvas bool) error {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	seen := make(map[string]time.Time)
	r.Logger.Info("watching documents", "tracked", len(r.Config.Tracked), "interval", interval)

	for {
		for _, path := range r.changed(seen, host) {
			if _, err := r.Submit(ctx, host, path, canvas); err != nil {
				r.Logger.Error("import not started", "document", path, "err", err)
			}
		}
		if host.Pending() > 0 {
			host.Tick()
		}

		select {
		case <-ctx.Done():
			host.Stop()
			return nil
		case <-ticker.C:
		}
	}
}

// changed returns the tracked documents modified since the last call and
// records their modification times.
func (r *Runner) changed(seen map[string]time.Time, host *Host) []string {
	running := make(map[string]bool)
	for _, job := range host.Jobs() {
		running[job.DocPath] = true
	}

	var out []string
	for _, path := range r.Config.TrackedPaths() {
		info, err := os.Stat(path)
		if err != nil {
			if _, ok := seen[path]; ok {
				r.Logger.Warn("tracked document disappeared", "document", path)
				delete(seen, path)
			}
			continue
		}
		if running[path] {
			continue
		}
		if last, ok := seen[path]; ok && last.Equal(info.ModTime()) {
			continue
		}
		seen[path] = info.ModTime()
		out = append(out, path)
	}
	return out
}
