// Package builder converts a raw layered document into a UI layout tree.
//
// Build parses the document's overlay once, then walks the layer list
// recursively. For every layer it looks up the overlay property bag by
// layer id, flips the rect from the document's top-down frame to the
// tree's bottom-up frame, and classifies the layer as a group (folder
// section), text (text-engine resources) or image (everything else).
//
// Missing overlay data is never an error; every property has a default.
// Build fails only when the source itself is unusable: a malformed overlay
// record id, an unparseable numeric property, a text layer without style
// runs, or channel planes that do not match the layer size. Errors name the
// offending layer, and no partial tree is returned.
package builder

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/psdui/pkg/document"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/overlay"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// Defaults applied when the source omits a value.
const (
	DefaultPivot    = 0.5
	DefaultFontSize = 42.0
)

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger used for per-layer debug output.
func WithLogger(l *log.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

type builder struct {
	logger *log.Logger
	tree   *uitree.Root
}

// Build converts doc into a tree.
func Build(doc *document.Document, opts ...Option) (*uitree.Root, error) {
	b := &builder{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(b)
	}

	configs, err := overlay.Parse(doc.XMP)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", doc.Name, err)
	}

	b.tree = &uitree.Root{
		Name:    doc.Name,
		Width:   float64(doc.Width),
		Height:  float64(doc.Height),
		Configs: configs,
	}
	b.logger.Debug("parsed overlay", "document", doc.Name, "records", configs.Len())

	for _, layer := range doc.Layers {
		node, err := b.buildNode(layer)
		if err != nil {
			return nil, err
		}
		b.tree.AddChild(node)
	}
	return b.tree, nil
}

// buildNode converts one raw layer and, for folders, its subtree.
func (b *builder) buildNode(layer *document.Layer) (uitree.Node, error) {
	props := b.tree.Configs.Get(layer.ID)

	attrs, err := b.attributes(layer, props)
	if err != nil {
		return nil, err
	}

	switch {
	case layer.Section.IsFolder():
		return b.buildGroup(layer, attrs, props)
	case layer.HasTextResources():
		return b.buildText(layer, attrs)
	default:
		return b.buildImage(layer, attrs, props)
	}
}

// attributes computes the fields shared by every node variant.
func (b *builder) attributes(layer *document.Layer, props overlay.Properties) (uitree.Attributes, error) {
	xPivot, err := floatProp(layer, props, overlay.PropXPivot, DefaultPivot)
	if err != nil {
		return uitree.Attributes{}, err
	}
	yPivot, err := floatProp(layer, props, overlay.PropYPivot, DefaultPivot)
	if err != nil {
		return uitree.Attributes{}, err
	}

	return uitree.Attributes{
		ID:      layer.ID,
		Name:    layer.Name,
		Visible: layer.Visible,
		Skipped: props.Bool(overlay.PropIsSkipped),
		Pivot:   uitree.Vec2{X: xPivot, Y: yPivot},
		XAnchor: uitree.ParseXAnchor(props.String(overlay.PropXAnchor)),
		YAnchor: uitree.ParseYAnchor(props.String(overlay.PropYAnchor)),
		Rect:    b.flipRect(layer),
	}, nil
}

// flipRect converts a top-down layer box into the tree's bottom-up frame
// using the document height.
func (b *builder) flipRect(layer *document.Layer) uitree.Rect {
	return uitree.Rect{
		XMin: float64(layer.Left),
		XMax: float64(layer.Right),
		YMin: b.tree.Height - float64(layer.Bottom),
		YMax: b.tree.Height - float64(layer.Top),
	}
}

func (b *builder) buildGroup(layer *document.Layer, attrs uitree.Attributes, props overlay.Properties) (uitree.Node, error) {
	group := &uitree.GroupNode{
		Attributes:       attrs,
		HasScrollRect:    props.Bool(overlay.PropHasScrollRect),
		ScrollHorizontal: props.Bool(overlay.PropIsScrollRectHorizontal),
		ScrollVertical:   props.Bool(overlay.PropIsScrollRectVertical),
		HasGrid:          props.Bool(overlay.PropHasGrid),
	}

	if group.HasGrid {
		var err error
		if group.CellSize, err = vecProp(layer, props, overlay.PropGridCellSizeX, overlay.PropGridCellSizeY); err != nil {
			return nil, err
		}
		if group.Spacing, err = vecProp(layer, props, overlay.PropGridSpacingX, overlay.PropGridSpacingY); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("group", "id", layer.ID, "name", layer.Name, "children", len(layer.Children))

	for _, child := range layer.Children {
		node, err := b.buildNode(child)
		if err != nil {
			return nil, err
		}
		group.AddChild(node)
	}
	return group, nil
}

func (b *builder) buildText(layer *document.Layer, attrs uitree.Attributes) (uitree.Node, error) {
	engine := layer.Text
	if len(engine.StyleRuns) == 0 {
		return nil, errors.NewLayerError(errors.ErrCodeAmbiguousSource, layer.ID, layer.Name,
			"text layer has no style runs")
	}
	run := engine.StyleRuns[0]

	if run.Font < 0 || run.Font >= len(engine.FontSet) {
		return nil, errors.NewLayerError(errors.ErrCodeAmbiguousSource, layer.ID, layer.Name,
			"style run font index %d outside font set of %d", run.Font, len(engine.FontSet))
	}

	fontSize := DefaultFontSize
	if run.FontSize != nil {
		fontSize = *run.FontSize
	}

	color := uitree.Black
	if run.FillColor != nil {
		if len(run.FillColor) != 4 {
			return nil, errors.NewLayerError(errors.ErrCodeAmbiguousSource, layer.ID, layer.Name,
				"fill color has %d components, want 4 (A, R, G, B)", len(run.FillColor))
		}
		argb := run.FillColor
		color = uitree.Color{R: argb[1], G: argb[2], B: argb[3], A: argb[0]}
	}

	b.logger.Debug("text", "id", layer.ID, "name", layer.Name, "font", engine.FontSet[run.Font])

	return &uitree.TextNode{
		Attributes: attrs,
		FontSize:   fontSize,
		FontName:   engine.FontSet[run.Font],
		Text:       engine.Text,
		Color:      color,
	}, nil
}

func (b *builder) buildImage(layer *document.Layer, attrs uitree.Attributes, props overlay.Properties) (uitree.Node, error) {
	raster, err := layerRaster(layer)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("image", "id", layer.ID, "name", layer.Name, "size", fmt.Sprintf("%dx%d", raster.Width, raster.Height))

	return &uitree.ImageNode{
		Attributes: attrs,
		Widget:     uitree.ParseWidgetType(props.String(overlay.PropWidgetType)),
		Sprite:     uitree.InMemory{Raster: raster},
	}, nil
}

// =============================================================================
// Property helpers
// =============================================================================

func floatProp(layer *document.Layer, props overlay.Properties, key string, def float64) (float64, error) {
	v, err := props.Float(key, def)
	if err != nil {
		return 0, errors.NewLayerError(errors.ErrCodeMalformedOverlay, layer.ID, layer.Name,
			"property %s=%q is not a number", key, props.String(key))
	}
	return v, nil
}

func vecProp(layer *document.Layer, props overlay.Properties, xKey, yKey string) (uitree.Vec2, error) {
	x, err := floatProp(layer, props, xKey, 0)
	if err != nil {
		return uitree.Vec2{}, err
	}
	y, err := floatProp(layer, props, yKey, 0)
	if err != nil {
		return uitree.Vec2{}, err
	}
	return uitree.Vec2{X: x, Y: y}, nil
}
