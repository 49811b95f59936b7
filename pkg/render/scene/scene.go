// Package scene builds a container tree from a UI layout tree.
//
// [Build] creates a root container named after the document that fills
// its parent, then walks the tree with a [Visitor]. Each non-skipped node
// becomes a container placed relative to its parent's rect with the
// standard anchor transform (see [Place]). Skipped nodes produce nothing,
// not even for their subtree. Invisible nodes still produce containers,
// marked inactive.
//
// Image containers reference the exported asset, which must already be
// committed in the asset registry. Building the scene in the same tick the
// assets were written fails with MISSING_ASSET; the import routine yields
// one tick between export and scene construction for this reason.
package scene

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/psdui/pkg/assetdb"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/fonts"
	"github.com/matzehuels/psdui/pkg/uitree"
	"github.com/matzehuels/psdui/pkg/visit"
)

// DefaultFontScale converts document font sizes to scene font sizes.
const DefaultFontScale = 4.16

// Option configures Build.
type Option func(*settings)

type settings struct {
	fonts     *fonts.Table
	fontScale float64
	logger    *log.Logger
}

// WithFonts sets the font table used to resolve text fonts.
func WithFonts(t *fonts.Table) Option {
	return func(s *settings) { s.fonts = t }
}

// WithFontScale sets the divisor applied to document font sizes.
func WithFontScale(scale float64) Option {
	return func(s *settings) {
		if scale > 0 {
			s.fontScale = scale
		}
	}
}

// WithLogger sets the logger. Unresolved fonts are reported as warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// Build creates the scene for root. registry resolves exported assets.
func Build(root *uitree.Root, registry assetdb.Registry, opts ...Option) (*Container, error) {
	s := &settings{
		fontScale: DefaultFontScale,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	top := &Container{
		Name:      root.Name,
		LayerID:   RootLayerID,
		Active:    true,
		Placement: stretched(),
	}

	v := &Visitor{
		frame:    root.Frame(),
		parent:   top,
		registry: registry,
		settings: s,
	}
	if err := visit.Tree(root, v); err != nil {
		return nil, err
	}
	return top, nil
}

// Visitor adds containers for visited nodes to a parent container. The
// parent frame is the absolute rect the parent container covers.
type Visitor struct {
	frame    uitree.Rect
	parent   *Container
	registry assetdb.Registry
	*settings
}

// container creates the container for n and attaches it to the parent.
func (v *Visitor) container(n uitree.Node) *Container {
	a := n.Attrs()
	anchorMin, anchorMax := Anchors(a.XAnchor, a.YAnchor)
	c := &Container{
		Name:      a.Name,
		LayerID:   a.ID,
		Active:    a.Visible,
		Placement: Place(a.Rect, v.frame, anchorMin, anchorMax, a.Pivot),
	}
	v.parent.AddChild(c)
	return c
}

func (v *Visitor) VisitGroup(n *uitree.GroupNode) error {
	if n.Skipped {
		return nil
	}
	c := v.container(n)
	if n.HasScrollRect {
		c.ScrollRect = &ScrollRect{Horizontal: n.ScrollHorizontal, Vertical: n.ScrollVertical}
	}
	if n.HasGrid {
		c.GridLayout = &GridLayout{CellSize: n.CellSize, Spacing: n.Spacing}
	}

	child := &Visitor{frame: n.Rect, parent: c, registry: v.registry, settings: v.settings}
	return visit.Nodes(n.Children, child)
}

func (v *Visitor) VisitImage(n *uitree.ImageNode) error {
	if n.Skipped {
		return nil
	}

	var content Content
	if n.Widget == uitree.WidgetEmptyGraphic {
		content = EmptyGraphic{}
	} else {
		asset, err := v.asset(n)
		if err != nil {
			return err
		}
		content = ImageContent{Asset: asset}
	}

	v.container(n).Content = content
	return nil
}

// asset resolves the committed asset of an image node. A node whose
// raster is empty has nothing to display and resolves to a zero asset.
func (v *Visitor) asset(n *uitree.ImageNode) (assetdb.Asset, error) {
	switch src := n.Sprite.(type) {
	case uitree.OnDisk:
		asset, err := v.registry.Load(src.Path)
		if err != nil {
			return assetdb.Asset{}, errors.NewLayerError(errors.ErrCodeMissingAsset, n.ID, n.Name,
				"%s", errors.UserMessage(err))
		}
		return asset, nil
	case uitree.InMemory:
		if src.Raster.Empty() {
			return assetdb.Asset{}, nil
		}
		return assetdb.Asset{}, errors.NewLayerError(errors.ErrCodeMissingAsset, n.ID, n.Name,
			"image was not exported")
	default:
		return assetdb.Asset{}, errors.NewLayerError(errors.ErrCodeMissingAsset, n.ID, n.Name,
			"image has no sprite source")
	}
}

func (v *Visitor) VisitText(n *uitree.TextNode) error {
	if n.Skipped {
		return nil
	}

	content := TextContent{
		Text:     n.Text,
		FontName: n.FontName,
		FontSize: int(n.FontSize / v.fontScale),
		Color:    n.Color,
		BestFit:  true,
	}
	if f, ok := v.fonts.Lookup(n.FontName); ok {
		content.Font = &f
	} else {
		v.logger.Warn("font not found", "font", n.FontName, "node", n.Name)
	}

	v.container(n).Content = content
	return nil
}

var _ visit.Visitor = (*Visitor)(nil)
