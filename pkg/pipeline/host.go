package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/psdui/pkg/assetdb"
	"github.com/matzehuels/psdui/pkg/coroutine"
	"github.com/matzehuels/psdui/pkg/observability"
)

// Host plays the part of the editor loop: it owns the asset registry's
// settle step and the executor that advances import routines.
//
// A Host is driven from a single goroutine.
type Host struct {
	Executor *coroutine.Executor
	Registry assetdb.Registry
	Logger   *log.Logger

	ticks int
	jobs  []*hosted
}

type hosted struct {
	job  *Job
	task *coroutine.Task
	tick int // tick count at submission
}

// NewHost creates a host around registry.
func NewHost(registry assetdb.Registry, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	return &Host{
		Executor: coroutine.NewExecutor(),
		Registry: registry,
		Logger:   logger,
	}
}

// Submit schedules routine on behalf of job. The routine first runs on the
// next tick.
func (h *Host) Submit(job *Job, routine coroutine.Routine) *coroutine.Task {
	task := h.Executor.Go(routine)
	h.jobs = append(h.jobs, &hosted{job: job, task: task, tick: h.ticks})
	h.Logger.Debug("submitted import", "job", job.ShortID(), "document", job.DocPath)
	return task
}

// Tick performs one unit of host progress: commit the assets announced
// since the previous tick, then resume every routine once. It returns the
// number of assets committed. A settle error is reported but the routines
// are resumed anyway; they observe uncommitted assets as MISSING_ASSET.
func (h *Host) Tick() (int, error) {
	settled, err := h.Registry.Settle()
	if err != nil {
		h.Logger.Warn("asset settle failed", "err", err)
	}
	h.Executor.Resume()
	h.ticks++

	h.reap()
	observability.Scheduler().OnTick(context.Background(), h.ticks, settled, h.Executor.Len())
	return settled, err
}

// Run ticks until every routine has ended or ctx is done. A positive
// interval spaces ticks out. On cancellation the remaining routines are
// stopped and ctx's error is returned.
func (h *Host) Run(ctx context.Context, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for h.Pending() > 0 {
		if tick != nil {
			select {
			case <-ctx.Done():
				h.Stop()
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			h.Stop()
			return err
		}
		h.Tick()
	}
	return nil
}

// Stop abandons every routine. Jobs that had not finished are canceled.
func (h *Host) Stop() {
	h.Executor.Stop()
	for _, hj := range h.jobs {
		hj.job.cancel()
		h.finish(hj)
	}
	h.jobs = nil
}

// Pending returns the number of live routines.
func (h *Host) Pending() int {
	return h.Executor.Len()
}

// Ticks returns the number of ticks performed.
func (h *Host) Ticks() int {
	return h.ticks
}

// Jobs returns the jobs whose routines are still live.
func (h *Host) Jobs() []*Job {
	jobs := make([]*Job, len(h.jobs))
	for i, hj := range h.jobs {
		jobs[i] = hj.job
	}
	return jobs
}

// reap reports jobs whose routines ended during the last tick.
func (h *Host) reap() {
	live := h.jobs[:0]
	for _, hj := range h.jobs {
		if hj.task.Ended() {
			h.finish(hj)
			continue
		}
		live = append(live, hj)
	}
	clear(h.jobs[len(live):])
	h.jobs = live
}

func (h *Host) finish(hj *hosted) {
	job := hj.job
	job.Stats.Ticks = h.ticks - hj.tick
	if !job.State.Final() {
		// The routine ended without recording an outcome.
		job.cancel()
	}
	observability.Scheduler().OnTaskEnd(context.Background(), job.ID.String(), job.Stats.Ticks, job.Err)

	switch {
	case job.State == StateCanceled:
		h.Logger.Warn("import canceled", "job", job.ShortID(), "document", job.DocPath)
		return
	case job.Err != nil:
		h.Logger.Error("import failed", "job", job.ShortID(), "document", job.DocPath, "state", job.State, "err", job.Err)
		return
	}
	h.Logger.Info("import finished", "job", job.ShortID(), "document", job.DocPath, "ticks", job.Stats.Ticks)
}
