// Package pipeline imports layered documents into scenes.
//
// This package ties the stages together for the CLI. By centralizing the
// orchestration here, one-shot imports, the TUI and the watch loop all run
// the same routine.
//
// # Architecture
//
// An import has three stages:
//
//  1. Parse: load the document and build its layout tree (cached)
//  2. Export: write every image layer as a PNG and announce it to the
//     asset registry
//  3. Scene: build the container tree and save it as a prefab
//
// The registry only commits announced files on the host's next tick, so
// export and scene cannot run back to back. [Runner.ImportRoutine] returns
// a coroutine that exports, yields one tick, then builds the scene. A
// [Host] drives any number of such routines: each [Host.Tick] settles the
// registry and then resumes every routine once.
//
// # Usage
//
//	runner := pipeline.NewRunner(cfg, registry, cache, logger)
//	job, err := runner.Import(ctx, "ui/main_menu.yaml", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(job.PrefabPath)
//
// Drive several imports from an existing event loop:
//
//	host := pipeline.NewHost(registry, logger)
//	for _, path := range docs {
//	    job, err := runner.NewJob(ctx, path)
//	    ...
//	    host.Submit(job, runner.ImportRoutine(job))
//	}
//	for host.Pending() > 0 {
//	    host.Tick()
//	}
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/psdui/pkg/config"
	"github.com/matzehuels/psdui/pkg/render/scene"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// State is the progress of an import job.
type State int

const (
	StatePending   State = iota // submitted, not resumed yet
	StateExporting              // writing assets
	StateWaiting                // waiting for the registry to commit assets
	StateBuilding               // building and saving the scene
	StateWrapping               // wrapping the saved scene in a canvas
	StateDone
	StateFailed
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateExporting:
		return "exporting"
	case StateWaiting:
		return "waiting"
	case StateBuilding:
		return "building"
	case StateWrapping:
		return "wrapping"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Final reports whether the job will not change anymore.
func (s State) Final() bool {
	return s == StateDone || s == StateFailed || s == StateCanceled
}

// Stats contains import statistics.
type Stats struct {
	Nodes      int
	Assets     int
	Skipped    int
	Containers int
	ParseTime  time.Duration
	ExportTime time.Duration
	SceneTime  time.Duration
	Ticks      int // host ticks from submission to the final state
	CacheHit   bool
}

// Job is one document import. Routines report their outcome by updating
// the job; the scheduler itself carries no errors.
type Job struct {
	ID      uuid.UUID
	DocPath string
	Tree    *uitree.Root

	// Canvas is set by [Runner.ImportWithCanvasRoutine].
	Canvas bool

	State State
	Err   error
	Stats Stats

	ExportDir  string
	PrefabPath string
	CanvasPath string
	Scene      *scene.Container
}

// newJob creates a pending job for a parsed document.
func newJob(docPath string, tree *uitree.Root, cfg *config.Config) *Job {
	return &Job{
		ID:         uuid.New(),
		DocPath:    docPath,
		Tree:       tree,
		ExportDir:  cfg.ExportDir(docPath),
		PrefabPath: cfg.PrefabPath(docPath),
		CanvasPath: cfg.CanvasPath(docPath),
	}
}

// ShortID returns the first block of the job id for log lines.
func (j *Job) ShortID() string {
	return j.ID.String()[:8]
}

func (j *Job) fail(err error) {
	j.State = StateFailed
	j.Err = err
}

func (j *Job) cancel() {
	if !j.State.Final() {
		j.State = StateCanceled
		j.Err = context.Canceled
	}
}

func (j *Job) String() string {
	if j.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", j.ShortID(), j.DocPath, j.State, j.Err)
	}
	return fmt.Sprintf("%s %s: %s", j.ShortID(), j.DocPath, j.State)
}
