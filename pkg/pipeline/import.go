package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/psdui/pkg/coroutine"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/observability"
	"github.com/matzehuels/psdui/pkg/render/export"
	"github.com/matzehuels/psdui/pkg/render/scene"
)

// ImportRoutine returns the routine that imports job's tree:
//
//  1. clear the export directory, export the assets
//  2. wait one tick so the registry commits them
//  3. build the scene and save the prefab
//
// The routine records its outcome on job and ends on the tick that builds
// the scene, or on the first tick when the export fails.
func (r *Runner) ImportRoutine(job *Job) coroutine.Routine {
	return coroutine.FromSeq(func(yield func(coroutine.Yield) bool) {
		if !r.exportStep(job) {
			return
		}

		job.State = StateWaiting
		if !yield(coroutine.Wait) {
			job.cancel()
			return
		}

		r.sceneStep(job)
	})
}

// ImportWithCanvasRoutine runs [Runner.ImportRoutine] as a sub-routine,
// then loads the saved prefab and wraps it in a canvas whose reference
// resolution is the document size.
func (r *Runner) ImportWithCanvasRoutine(job *Job) coroutine.Routine {
	job.Canvas = true
	return coroutine.FromSeq(func(yield func(coroutine.Yield) bool) {
		if !yield(coroutine.Spawn(r.ImportRoutine(job))) {
			job.cancel()
			return
		}
		if job.State != StateWrapping {
			return
		}
		r.canvasStep(job)
	})
}

func (r *Runner) exportStep(job *Job) bool {
	ctx := context.Background()
	logger := r.logger(job)
	job.State = StateExporting
	start := time.Now()

	if err := resetDir(job.ExportDir); err != nil {
		job.fail(fmt.Errorf("export: %w", err))
		observability.Pipeline().OnExportComplete(ctx, job.Tree.Name, 0, time.Since(start), job.Err)
		return false
	}

	stats, err := export.Tree(job.Tree, job.ExportDir, r.Registry, export.WithLogger(logger))
	job.Stats.ExportTime = time.Since(start)
	if err != nil {
		job.fail(fmt.Errorf("export: %w", err))
		observability.Pipeline().OnExportComplete(ctx, job.Tree.Name, 0, job.Stats.ExportTime, job.Err)
		return false
	}
	job.Stats.Assets = len(stats.Written)
	job.Stats.Skipped = stats.Skipped
	observability.Pipeline().OnExportComplete(ctx, job.Tree.Name, job.Stats.Assets, job.Stats.ExportTime, nil)

	logger.Info("exported assets",
		"dir", job.ExportDir,
		"assets", job.Stats.Assets,
		"skipped", job.Stats.Skipped,
		"duration", job.Stats.ExportTime)
	return true
}

func (r *Runner) sceneStep(job *Job) {
	ctx := context.Background()
	logger := r.logger(job)
	job.State = StateBuilding
	start := time.Now()

	root, err := scene.Build(job.Tree, r.Registry,
		scene.WithFonts(r.fonts),
		scene.WithFontScale(r.Config.FontScale),
		scene.WithLogger(logger))
	if err == nil {
		err = scene.Save(job.PrefabPath, root)
	}
	job.Stats.SceneTime = time.Since(start)
	if err != nil {
		job.fail(fmt.Errorf("scene: %w", err))
		observability.Pipeline().OnSceneComplete(ctx, job.Tree.Name, 0, job.Stats.SceneTime, job.Err)
		return
	}

	job.Scene = root
	job.Stats.Containers = root.Count()
	observability.Pipeline().OnSceneComplete(ctx, job.Tree.Name, job.Stats.Containers, job.Stats.SceneTime, nil)
	logger.Info("saved scene",
		"prefab", job.PrefabPath,
		"containers", job.Stats.Containers,
		"duration", job.Stats.SceneTime)

	if job.Canvas {
		job.State = StateWrapping
		return
	}
	job.State = StateDone
}

func (r *Runner) canvasStep(job *Job) {
	prefab, err := scene.Load(job.PrefabPath)
	if err != nil {
		job.fail(fmt.Errorf("canvas: %w", err))
		return
	}

	canvas := scene.NewCanvas(job.Tree.Width, job.Tree.Height)
	canvas.Attach(prefab)
	if err := scene.SaveCanvas(job.CanvasPath, canvas); err != nil {
		job.fail(fmt.Errorf("canvas: %w", err))
		return
	}

	r.logger(job).Info("saved canvas", "canvas", job.CanvasPath)
	job.State = StateDone
}

// resetDir removes dir and creates it empty.
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "clear %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	return nil
}
