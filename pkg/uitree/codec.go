package uitree

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/psdui/pkg/overlay"
)

// CodecVersion is bumped whenever the encoded layout changes so stale
// cache entries are rejected instead of misread.
const CodecVersion = 1

type rootRecord struct {
	Version  int              `msgpack:"v"`
	Name     string           `msgpack:"name"`
	Width    float64          `msgpack:"width"`
	Height   float64          `msgpack:"height"`
	Configs  *overlay.Configs `msgpack:"configs"`
	Children []nodeRecord     `msgpack:"children"`
}

// nodeRecord flattens the node variants into one tagged struct.
type nodeRecord struct {
	Kind  Kind       `msgpack:"kind"`
	Attrs Attributes `msgpack:"attrs"`

	// Group
	Children         []nodeRecord `msgpack:"children,omitempty"`
	HasScrollRect    bool         `msgpack:"scroll,omitempty"`
	ScrollHorizontal bool         `msgpack:"scroll_h,omitempty"`
	ScrollVertical   bool         `msgpack:"scroll_v,omitempty"`
	HasGrid          bool         `msgpack:"grid,omitempty"`
	CellSize         Vec2         `msgpack:"cell,omitempty"`
	Spacing          Vec2         `msgpack:"spacing,omitempty"`

	// Image
	Widget    WidgetType `msgpack:"widget,omitempty"`
	Raster    *Raster    `msgpack:"raster,omitempty"`
	AssetPath string     `msgpack:"asset,omitempty"`

	// Text
	FontSize float64 `msgpack:"font_size,omitempty"`
	FontName string  `msgpack:"font,omitempty"`
	Text     string  `msgpack:"text,omitempty"`
	Color    Color   `msgpack:"color,omitempty"`
}

// Encode serializes a tree with msgpack.
func Encode(root *Root) ([]byte, error) {
	rec := rootRecord{
		Version:  CodecVersion,
		Name:     root.Name,
		Width:    root.Width,
		Height:   root.Height,
		Configs:  root.Configs,
		Children: encodeNodes(root.Children),
	}
	return msgpack.Marshal(&rec)
}

// Decode deserializes a tree produced by [Encode].
func Decode(data []byte) (*Root, error) {
	var rec rootRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	if rec.Version != CodecVersion {
		return nil, fmt.Errorf("decode tree: unsupported version %d", rec.Version)
	}

	children, err := decodeNodes(rec.Children)
	if err != nil {
		return nil, err
	}
	configs := rec.Configs
	if configs == nil {
		configs = overlay.NewConfigs()
	}
	return &Root{
		Name:     rec.Name,
		Width:    rec.Width,
		Height:   rec.Height,
		Configs:  configs,
		Children: children,
	}, nil
}

func encodeNodes(nodes []Node) []nodeRecord {
	if len(nodes) == 0 {
		return nil
	}
	recs := make([]nodeRecord, 0, len(nodes))
	for _, n := range nodes {
		rec := nodeRecord{Kind: n.Kind(), Attrs: *n.Attrs()}
		switch n := n.(type) {
		case *GroupNode:
			rec.Children = encodeNodes(n.Children)
			rec.HasScrollRect = n.HasScrollRect
			rec.ScrollHorizontal = n.ScrollHorizontal
			rec.ScrollVertical = n.ScrollVertical
			rec.HasGrid = n.HasGrid
			rec.CellSize = n.CellSize
			rec.Spacing = n.Spacing
		case *ImageNode:
			rec.Widget = n.Widget
			rec.Raster = n.Raster()
			rec.AssetPath = n.AssetPath()
		case *TextNode:
			rec.FontSize = n.FontSize
			rec.FontName = n.FontName
			rec.Text = n.Text
			rec.Color = n.Color
		}
		recs = append(recs, rec)
	}
	return recs
}

func decodeNodes(recs []nodeRecord) ([]Node, error) {
	nodes := make([]Node, 0, len(recs))
	for _, rec := range recs {
		switch rec.Kind {
		case KindGroup:
			children, err := decodeNodes(rec.Children)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &GroupNode{
				Attributes:       rec.Attrs,
				Children:         children,
				HasScrollRect:    rec.HasScrollRect,
				ScrollHorizontal: rec.ScrollHorizontal,
				ScrollVertical:   rec.ScrollVertical,
				HasGrid:          rec.HasGrid,
				CellSize:         rec.CellSize,
				Spacing:          rec.Spacing,
			})
		case KindImage:
			img := &ImageNode{Attributes: rec.Attrs, Widget: rec.Widget}
			if rec.AssetPath != "" {
				img.Sprite = OnDisk{Path: rec.AssetPath}
			} else {
				img.Sprite = InMemory{Raster: rec.Raster}
			}
			nodes = append(nodes, img)
		case KindText:
			nodes = append(nodes, &TextNode{
				Attributes: rec.Attrs,
				FontSize:   rec.FontSize,
				FontName:   rec.FontName,
				Text:       rec.Text,
				Color:      rec.Color,
			})
		default:
			return nil, fmt.Errorf("decode tree: unknown node kind %d", rec.Kind)
		}
	}
	return nodes, nil
}
