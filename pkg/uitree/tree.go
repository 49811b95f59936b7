// Package uitree defines the UI layout tree built from a layered document.
//
// A tree is a [Root] owning an ordered list of top-level nodes. Nodes form
// a closed set of three variants, [GroupNode], [ImageNode] and [TextNode];
// consumers dispatch with a type switch (see package visit). Every node
// carries the same [Attributes]: identity, visibility, skip flag, pivot,
// anchors and a rect normalized to a bottom-left origin.
//
// The topology of a built tree never changes. The only sanctioned mutation
// is [ImageNode.Commit], which the export pass uses to move an image's
// sprite source from memory to an exported file.
package uitree

import (
	"github.com/matzehuels/psdui/pkg/overlay"
)

// Kind identifies a node variant.
type Kind int

const (
	KindGroup Kind = iota
	KindImage
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Node is one of *GroupNode, *ImageNode or *TextNode.
type Node interface {
	// Attrs returns the attributes shared by every variant.
	Attrs() *Attributes
	// Kind reports the variant.
	Kind() Kind
}

// Attributes are the fields common to every node variant.
type Attributes struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Visible bool    `json:"visible"`
	Skipped bool    `json:"skipped"`
	Pivot   Vec2    `json:"pivot"`
	XAnchor XAnchor `json:"x_anchor"`
	YAnchor YAnchor `json:"y_anchor"`
	Rect    Rect    `json:"rect"`
}

// GroupNode is a folder layer with ordered children.
type GroupNode struct {
	Attributes
	Children []Node

	HasScrollRect    bool
	ScrollHorizontal bool
	ScrollVertical   bool

	HasGrid  bool
	CellSize Vec2
	Spacing  Vec2
}

// ImageNode is a raster layer.
type ImageNode struct {
	Attributes
	Sprite SpriteSource
	Widget WidgetType
}

// TextNode is a text layer.
type TextNode struct {
	Attributes
	FontSize float64
	FontName string
	Text     string
	Color    Color
}

func (n *GroupNode) Attrs() *Attributes { return &n.Attributes }
func (n *ImageNode) Attrs() *Attributes { return &n.Attributes }
func (n *TextNode) Attrs() *Attributes  { return &n.Attributes }

func (n *GroupNode) Kind() Kind { return KindGroup }
func (n *ImageNode) Kind() Kind { return KindImage }
func (n *TextNode) Kind() Kind  { return KindText }

// AddChild appends a child in document order.
func (n *GroupNode) AddChild(child Node) {
	n.Children = append(n.Children, child)
}

// Raster returns the in-memory raster, or nil once the sprite has been
// exported.
func (n *ImageNode) Raster() *Raster {
	if src, ok := n.Sprite.(InMemory); ok {
		return src.Raster
	}
	return nil
}

// AssetPath returns the exported asset path, or "" while the sprite is
// still in memory.
func (n *ImageNode) AssetPath() string {
	if src, ok := n.Sprite.(OnDisk); ok {
		return src.Path
	}
	return ""
}

// Commit records that the node's raster was written to path. After Commit
// the in-memory raster is released and the node refers to the file.
func (n *ImageNode) Commit(path string) {
	n.Sprite = OnDisk{Path: path}
}

// Root is a built tree. Width and Height are the document's pixel size and
// the basis of every descendant rect.
type Root struct {
	Name     string
	Width    float64
	Height   float64
	Configs  *overlay.Configs
	Children []Node
}

// AddChild appends a top-level node in document order.
func (r *Root) AddChild(child Node) {
	r.Children = append(r.Children, child)
}

// Frame returns the document rect (0, 0, width, height).
func (r *Root) Frame() Rect {
	return NewRect(0, 0, r.Width, r.Height)
}

// Walk calls fn for every node, parents before children, in document
// order. depth is 0 for top-level nodes. Returning false from fn skips the
// node's children.
func (r *Root) Walk(fn func(n Node, depth int) bool) {
	walkNodes(r.Children, 0, fn)
}

func walkNodes(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if !fn(n, depth) {
			continue
		}
		if g, ok := n.(*GroupNode); ok {
			walkNodes(g.Children, depth+1, fn)
		}
	}
}

// Count returns the number of nodes of each kind.
func (r *Root) Count() map[Kind]int {
	counts := make(map[Kind]int, 3)
	r.Walk(func(n Node, _ int) bool {
		counts[n.Kind()]++
		return true
	})
	return counts
}

// NodeByID returns the first node with the given layer id.
func (r *Root) NodeByID(id int) (Node, bool) {
	var found Node
	r.Walk(func(n Node, _ int) bool {
		if found == nil && n.Attrs().ID == id {
			found = n
		}
		return found == nil
	})
	return found, found != nil
}

// Images returns every image node in document order.
func (r *Root) Images() []*ImageNode {
	var images []*ImageNode
	r.Walk(func(n Node, _ int) bool {
		if img, ok := n.(*ImageNode); ok {
			images = append(images, img)
		}
		return true
	})
	return images
}
