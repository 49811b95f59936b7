package scene

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/psdui/pkg/assetdb"
	"github.com/matzehuels/psdui/pkg/fonts"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// RootLayerID tags the root container, which has no source layer.
const RootLayerID = -1

// Container is one node of the scene tree.
type Container struct {
	Name    string `json:"name"`
	LayerID int    `json:"layer_id"`
	Active  bool   `json:"active"`
	Placement

	Content    Content      `json:"-"`
	ScrollRect *ScrollRect  `json:"scroll_rect,omitempty"`
	GridLayout *GridLayout  `json:"grid_layout,omitempty"`
	Children   []*Container `json:"children,omitempty"`
}

// Content is the type-specific payload of a container: one of
// [ImageContent], [EmptyGraphic] or [TextContent]. Group containers have
// no content.
type Content interface {
	contentType() string
}

// ImageContent displays a committed asset.
type ImageContent struct {
	Asset assetdb.Asset `json:"asset"`
}

// EmptyGraphic is an invisible graphic that still receives input.
type EmptyGraphic struct{}

// TextContent displays a text string.
type TextContent struct {
	Text     string       `json:"text"`
	Font     *fonts.Font  `json:"font"` // nil when the font name did not resolve
	FontName string       `json:"font_name"`
	FontSize int          `json:"font_size"`
	Color    uitree.Color `json:"color"`
	BestFit  bool         `json:"best_fit"`
}

func (ImageContent) contentType() string { return "image" }
func (EmptyGraphic) contentType() string { return "empty" }
func (TextContent) contentType() string  { return "text" }

// ScrollRect makes a group scrollable.
type ScrollRect struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

// GridLayout lays a group's children out on a grid.
type GridLayout struct {
	CellSize uitree.Vec2 `json:"cell_size"`
	Spacing  uitree.Vec2 `json:"spacing"`
}

// AddChild appends a child container.
func (c *Container) AddChild(child *Container) {
	c.Children = append(c.Children, child)
}

// Walk calls fn for c and every descendant, parents first. parent is the
// absolute rect of the container's parent, starting from frame.
func (c *Container) Walk(frame uitree.Rect, fn func(c *Container, rect uitree.Rect, depth int)) {
	c.walk(frame, 0, fn)
}

func (c *Container) walk(parent uitree.Rect, depth int, fn func(*Container, uitree.Rect, int)) {
	rect := c.Resolve(parent)
	fn(c, rect, depth)
	for _, child := range c.Children {
		child.walk(rect, depth+1, fn)
	}
}

// Find returns the first descendant (or c itself) with the given layer id.
func (c *Container) Find(layerID int) *Container {
	if c.LayerID == layerID {
		return c
	}
	for _, child := range c.Children {
		if found := child.Find(layerID); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of containers in the tree rooted at c.
func (c *Container) Count() int {
	n := 1
	for _, child := range c.Children {
		n += child.Count()
	}
	return n
}

// =============================================================================
// JSON
// =============================================================================

// contentRecord is the tagged JSON form of Content.
type contentRecord struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type containerAlias Container

type containerJSON struct {
	*containerAlias
	Content *contentRecord `json:"content,omitempty"`
}

// MarshalJSON writes Content as a tagged record.
func (c *Container) MarshalJSON() ([]byte, error) {
	out := containerJSON{containerAlias: (*containerAlias)(c)}
	if c.Content != nil {
		data, err := json.Marshal(c.Content)
		if err != nil {
			return nil, err
		}
		out.Content = &contentRecord{Type: c.Content.contentType(), Data: data}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a container written by MarshalJSON.
func (c *Container) UnmarshalJSON(data []byte) error {
	in := containerJSON{containerAlias: (*containerAlias)(c)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Content == nil {
		c.Content = nil
		return nil
	}

	var content Content
	switch in.Content.Type {
	case "image":
		var v ImageContent
		if err := json.Unmarshal(in.Content.Data, &v); err != nil {
			return err
		}
		content = v
	case "empty":
		content = EmptyGraphic{}
	case "text":
		var v TextContent
		if err := json.Unmarshal(in.Content.Data, &v); err != nil {
			return err
		}
		content = v
	default:
		return fmt.Errorf("container %q: unknown content type %q", c.Name, in.Content.Type)
	}
	c.Content = content
	return nil
}
