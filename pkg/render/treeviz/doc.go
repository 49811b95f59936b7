// Package treeviz renders built layout trees as node-link diagrams.
//
// # Overview
//
// This package produces a top-down Graphviz diagram of a [uitree.Root],
// one box per node with an arrow from each group to its children. It is a
// debugging aid for inspecting how a document's layers were classified
// and where their rects ended up.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := treeviz.ToDOT(root, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(dot)
//
// PNG output is rendered by Graphviz directly:
//
//	png, err := treeviz.RenderPNG(dot)
//
// # Styling
//
// Groups are folders, images are plain boxes, text layers are notes.
// Invisible nodes are drawn with a dashed outline and skipped nodes are
// greyed out, mirroring how the export and scene passes treat them.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering; no external Graphviz installation is needed.
//
// [uitree.Root]: github.com/matzehuels/psdui/pkg/uitree
package treeviz
