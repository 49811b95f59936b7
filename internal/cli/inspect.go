package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/psdui/pkg/document"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/overlay"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Print the layout tree built from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			root, cached, err := runner.ParseWithCacheInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			counts := root.Count()
			printKeyValue("Document", root.Name)
			printKeyValue("Size", fmt.Sprintf("%gx%g", root.Width, root.Height))
			printKeyValue("Groups", fmt.Sprint(counts[uitree.KindGroup]))
			printKeyValue("Images", fmt.Sprint(counts[uitree.KindImage]))
			printKeyValue("Texts", fmt.Sprint(counts[uitree.KindText]))
			printNewline()
			fmt.Println(renderTree(root))
			printStats(counts[uitree.KindGroup]+counts[uitree.KindImage]+counts[uitree.KindText], counts[uitree.KindImage], cached)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the tree cache")
	return cmd
}

// renderTree draws root as an indented lipgloss tree.
func renderTree(root *uitree.Root) string {
	t := tree.Root(StyleTitle.Render(root.Name)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	addNodes(t, root.Children)
	return t.String()
}

func addNodes(t *tree.Tree, nodes []uitree.Node) {
	for _, n := range nodes {
		label := nodeLabel(n)
		if g, ok := n.(*uitree.GroupNode); ok && len(g.Children) > 0 {
			sub := tree.Root(label)
			addNodes(sub, g.Children)
			t.Child(sub)
			continue
		}
		t.Child(label)
	}
}

func nodeLabel(n uitree.Node) string {
	a := n.Attrs()
	style := StyleValue
	switch {
	case a.Skipped:
		style = StyleDim
	case !a.Visible:
		style = StyleWarning
	}

	var b strings.Builder
	b.WriteString(style.Render(a.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" #%d %s %s", a.ID, n.Kind(), a.Rect)))

	switch n := n.(type) {
	case *uitree.GroupNode:
		if n.HasScrollRect {
			b.WriteString(StyleHighlight.Render(" scroll"))
		}
		if n.HasGrid {
			b.WriteString(StyleHighlight.Render(" grid"))
		}
	case *uitree.ImageNode:
		if n.Widget != uitree.WidgetNone {
			b.WriteString(StyleHighlight.Render(" " + n.Widget.String()))
		}
	case *uitree.TextNode:
		b.WriteString(StyleHighlight.Render(fmt.Sprintf(" %q", n.Text)))
	}
	return b.String()
}

// overlayCommand creates the overlay command.
func (c *CLI) overlayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overlay <document>",
		Short: "Print the per-layer overlay configuration of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDocumentPath(args[0]); err != nil {
				return err
			}
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			configs, err := overlay.Parse(doc.XMP)
			if err != nil {
				return err
			}
			if configs.Len() == 0 {
				printInfo("No overlay configuration")
				return nil
			}
			fmt.Println(renderConfigs(configs))
			return nil
		},
	}
}

// renderConfigs draws one table row per layer property.
func renderConfigs(configs *overlay.Configs) string {
	var rows [][]string
	for _, id := range configs.IDs() {
		props := configs.Get(id)
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		layer := fmt.Sprint(id)
		for _, k := range keys {
			rows = append(rows, []string{layer, k, props[k]})
			layer = ""
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Layer", "Property", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleNumber
			case col == 1:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
