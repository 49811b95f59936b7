package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/psdui/pkg/uitree"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the rect, anchors and widget to node labels.
	// When false, only the layer name and id are shown.
	Detailed bool
}

// rootID is the DOT identifier of the document node.
const rootID = "root"

// ToDOT converts a tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(root *uitree.Root, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	label := root.Name
	if opts.Detailed {
		label = fmt.Sprintf("%s\n%gx%g", root.Name, root.Width, root.Height)
	}
	fmt.Fprintf(&buf, "  %q [label=%q, shape=box3d, fillcolor=lightblue];\n", rootID, label)

	var edges []string
	w := &writer{buf: &buf, opts: opts}
	for _, n := range root.Children {
		edges = append(edges, w.node(rootID, n)...)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf  *bytes.Buffer
	opts Options
	seq  int
}

// node writes n and its descendants and returns the edges that connect
// them. Layer ids are not guaranteed unique, so DOT ids are sequential.
func (w *writer) node(parent string, n uitree.Node) []string {
	w.seq++
	id := "n" + strconv.Itoa(w.seq)
	fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, fmtLabel(n, w.opts.Detailed)), ", "))

	edges := []string{fmt.Sprintf("  %q -> %q;\n", parent, id)}
	if g, ok := n.(*uitree.GroupNode); ok {
		for _, c := range g.Children {
			edges = append(edges, w.node(id, c)...)
		}
	}
	return edges
}

func fmtLabel(n uitree.Node, detailed bool) string {
	a := n.Attrs()
	head := fmt.Sprintf("%s #%d", a.Name, a.ID)
	if !detailed {
		return head
	}

	parts := []string{
		"rect: " + a.Rect.String(),
		fmt.Sprintf("anchor: %s/%s", a.XAnchor, a.YAnchor),
		fmt.Sprintf("pivot: %g,%g", a.Pivot.X, a.Pivot.Y),
	}
	switch n := n.(type) {
	case *uitree.ImageNode:
		parts = append(parts, "widget: "+n.Widget.String())
		if p := n.AssetPath(); p != "" {
			parts = append(parts, "asset: "+p)
		}
	case *uitree.TextNode:
		parts = append(parts, fmt.Sprintf("text: %q", n.Text), fmt.Sprintf("font: %s %g", n.FontName, n.FontSize))
	case *uitree.GroupNode:
		if n.HasScrollRect {
			parts = append(parts, "scroll")
		}
		if n.HasGrid {
			parts = append(parts, fmt.Sprintf("grid: %gx%g", n.CellSize.X, n.CellSize.Y))
		}
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n uitree.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind() {
	case uitree.KindGroup:
		attrs = append(attrs, "shape=folder")
	case uitree.KindText:
		attrs = append(attrs, "shape=note")
	}

	a := n.Attrs()
	style := "rounded,filled"
	if !a.Visible {
		style += ",dashed"
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", style))
	if a.Skipped {
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=grey40")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
