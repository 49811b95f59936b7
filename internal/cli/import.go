package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/psdui/pkg/pipeline"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	canvas  bool // wrap the scene in a canvas
	tui     bool // show the interactive job table
	noCache bool // bypass the tree cache
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import <document>...",
		Short: "Import documents as UI scenes",
		Long: `Import layered documents as UI scenes.

Each document's image layers are exported to a texture directory beside it,
and the scene is saved as a prefab. With --canvas the scene is additionally
wrapped in a canvas of the document's size.

Examples:
  psdui import ui/main_menu.yaml
  psdui import --canvas ui/*.yaml
  psdui import --tui ui/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.tui {
				return c.runImportTUI(cmd, args, opts)
			}
			return c.runImport(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.canvas, "canvas", false, "wrap each scene in a canvas")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show an interactive job table")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree cache")

	return cmd
}

// runImport imports documents one after another.
func (c *CLI) runImport(cmd *cobra.Command, docs []string, opts importOpts) error {
	runner, cleanup, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	var failed int
	for i, doc := range docs {
		msg := "Importing " + doc + "..."
		if len(docs) > 1 {
			msg = fmt.Sprintf("Importing %s (%d/%d)...", doc, i+1, len(docs))
		}
		spinner := newSpinner(cmd.Context(), msg)
		spinner.Start()

		job, err := runner.Import(cmd.Context(), doc, opts.canvas)
		if cmd.Context().Err() != nil {
			spinner.Stop()
			return cmd.Context().Err()
		}
		if job == nil || job.State != pipeline.StateDone {
			state := "failed"
			if job != nil {
				state = job.State.String()
			}
			spinner.StopWithError(fmt.Sprintf("Import %s: %s", state, doc))
			printDetail("%v", err)
			failed++
			continue
		}

		spinner.StopWithSuccess("Imported " + doc)
		printJobStats(job)
		printFile(job.PrefabPath)
		if job.Canvas {
			printFile(job.CanvasPath)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(docs))
	}
	if len(docs) == 1 {
		printNewline()
		printNextStep("Preview", "psdui preview "+docs[0])
	}
	return nil
}
