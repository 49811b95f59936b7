package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/psdui/pkg/config"
	"github.com/matzehuels/psdui/pkg/render/treeviz"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file; the extension picks dot, svg or png
	detailed bool   // include layout details in node labels
	noCache  bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <document>",
		Short: "Render the layout tree as a Graphviz diagram",
		Long: `Render the layout tree of a document as a Graphviz diagram.

The output format follows the file extension: .dot writes the DOT source,
.svg and .png are rendered with Graphviz.

Examples:
  psdui graph ui/main_menu.yaml
  psdui graph -o tree.png --detailed ui/main_menu.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <name>.tree.svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show rects, anchors and widgets")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree cache")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, doc string, opts graphOpts) error {
	runner, cleanup, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	prog := newProgress(c.Logger)
	root, err := runner.Parse(cmd.Context(), doc)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(filepath.Dir(doc), config.DocumentName(doc)+".tree.svg")
	}

	dot := treeviz.ToDOT(root, treeviz.Options{Detailed: opts.detailed})
	var data []byte
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		data, err = treeviz.RenderSVG(dot)
	case ".png":
		data, err = treeviz.RenderPNG(dot)
	default:
		return fmt.Errorf("unsupported graph format %q (use .dot, .svg or .png)", ext)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	prog.done("Rendered tree graph")
	printFile(output)
	return nil
}
