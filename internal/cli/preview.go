package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/psdui/pkg/config"
	"github.com/matzehuels/psdui/pkg/pipeline"
	"github.com/matzehuels/psdui/pkg/render/preview"
	"github.com/matzehuels/psdui/pkg/render/scene"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	output   string
	outlines bool
	reimport bool
	noCache  bool
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <document>",
		Short: "Render an imported scene to a PNG",
		Long: `Render the scene of a document to a PNG.

The saved prefab is used when it exists; otherwise the document is imported
first. The image has the document's size, so it can be compared with the
source artwork.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <name>.preview.png)")
	cmd.Flags().BoolVar(&opts.outlines, "outlines", false, "outline every container")
	cmd.Flags().BoolVar(&opts.reimport, "reimport", false, "import even if a prefab exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree cache")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, doc string, opts previewOpts) error {
	runner, cleanup, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	prog := newProgress(c.Logger)
	root, err := c.loadScene(cmd, runner, doc, opts.reimport)
	if err != nil {
		return err
	}

	tree, err := runner.Parse(cmd.Context(), doc)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(filepath.Dir(doc), config.DocumentName(doc)+".preview.png")
	}
	err = preview.Save(output, root, tree.Frame(),
		preview.WithOutlines(opts.outlines),
		preview.WithLogger(c.Logger),
	)
	if err != nil {
		return err
	}

	prog.done("Rendered preview")
	printFile(output)
	return nil
}

// loadScene returns the saved prefab of doc, importing it when there is
// none yet.
func (c *CLI) loadScene(cmd *cobra.Command, runner *pipeline.Runner, doc string, reimport bool) (*scene.Container, error) {
	prefab := runner.Config.PrefabPath(doc)
	if _, err := os.Stat(prefab); err == nil && !reimport {
		c.Logger.Debug("using saved prefab", "path", prefab)
		return scene.Load(prefab)
	}

	job, err := runner.Import(cmd.Context(), doc, false)
	if err != nil {
		return nil, err
	}
	if job.Err != nil {
		return nil, job.Err
	}
	return job.Scene, nil
}
