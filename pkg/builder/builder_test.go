package builder

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/psdui/pkg/document"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/uitree"
)

func ptr(v float64) *float64 { return &v }

// xmp wraps overlay records into a minimal packet.
func xmp(records ...string) string {
	return `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">` +
		`<rdf:Description xmlns:agugu="http://www.agugu.org/"><agugu:Config><agugu:Layers><rdf:Bag>` +
		strings.Join(records, "") +
		`</rdf:Bag></agugu:Layers></agugu:Config></rdf:Description></rdf:RDF></x:xmpmeta>`
}

func record(id int, props map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<rdf:li><agugu:Id>%d</agugu:Id><agugu:Properties>", id)
	for k, v := range props {
		fmt.Fprintf(&b, "<agugu:%s>%s</agugu:%s>", k, v, k)
	}
	b.WriteString("</agugu:Properties></rdf:li>")
	return b.String()
}

func TestBuild_SingleImageNoOverlay(t *testing.T) {
	doc := &document.Document{
		Name:   "screen",
		Width:  200,
		Height: 100,
		Layers: []*document.Layer{
			{ID: 1, Name: "Icon", Visible: true, Left: 10, Top: 10, Right: 50, Bottom: 30},
		},
	}

	root, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if root.Name != "screen" || root.Width != 200 || root.Height != 100 {
		t.Errorf("root = %s %gx%g", root.Name, root.Width, root.Height)
	}
	if len(root.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(root.Children))
	}

	icon, ok := root.Children[0].(*uitree.ImageNode)
	if !ok {
		t.Fatalf("child is %T, want *ImageNode", root.Children[0])
	}

	want := uitree.Rect{XMin: 10, XMax: 50, YMin: 70, YMax: 90}
	if icon.Rect != want {
		t.Errorf("Rect = %v, want %v", icon.Rect, want)
	}
	if icon.XAnchor != uitree.XAnchorNone || icon.YAnchor != uitree.YAnchorNone {
		t.Errorf("anchors = %v/%v, want none/none", icon.XAnchor, icon.YAnchor)
	}
	if icon.Pivot != (uitree.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("Pivot = %v, want (0.5, 0.5)", icon.Pivot)
	}
	if icon.Skipped {
		t.Error("Skipped = true, want false")
	}
	if icon.Widget != uitree.WidgetNone {
		t.Errorf("Widget = %v, want none", icon.Widget)
	}
	if r := icon.Raster(); r == nil || r.Width != 40 || r.Height != 20 {
		t.Errorf("raster = %+v, want 40x20 in memory", r)
	}
}

func TestBuild_VerticalFlip(t *testing.T) {
	tests := []struct {
		height, top, bottom int
	}{
		{100, 0, 100},
		{100, 10, 30},
		{768, 700, 768},
		{50, 25, 25},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("H%d_t%d_b%d", tt.height, tt.top, tt.bottom), func(t *testing.T) {
			doc := &document.Document{Width: 10, Height: tt.height, Layers: []*document.Layer{
				{ID: 1, Name: "L", Top: tt.top, Bottom: tt.bottom, Right: 0},
			}}
			root, err := Build(doc)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			r := root.Children[0].Attrs().Rect
			if r.YMin != float64(tt.height-tt.bottom) || r.YMax != float64(tt.height-tt.top) {
				t.Errorf("Rect = %v, want yMin=%d yMax=%d", r, tt.height-tt.bottom, tt.height-tt.top)
			}
		})
	}
}

func TestBuild_PixelReindexing(t *testing.T) {
	const w, h = 3, 2
	red := make([]byte, w*h)
	green := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			red[x+y*w] = byte(x)
			green[x+y*w] = byte(y)
		}
	}

	doc := &document.Document{Width: 10, Height: 10, Layers: []*document.Layer{{
		ID: 1, Name: "Gradient", Right: w, Bottom: h,
		Channels: map[document.ChannelType][]byte{
			document.ChannelRed:   red,
			document.ChannelGreen: green,
		},
	}}}

	root, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	raster := root.Children[0].(*uitree.ImageNode).Raster()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := raster.At(x, h-1-y)
			if px.R != byte(x) || px.G != byte(y) {
				t.Errorf("raw (%d,%d) landed as R=%d G=%d at (%d,%d)", x, y, px.R, px.G, x, h-1-y)
			}
			if px.B != 0 {
				t.Errorf("missing blue plane should read 0, got %d", px.B)
			}
			if px.A != 255 {
				t.Errorf("missing alpha plane should read 255, got %d", px.A)
			}
		}
	}
}

func TestBuild_ChannelSizeMismatch(t *testing.T) {
	doc := &document.Document{Width: 10, Height: 10, Layers: []*document.Layer{{
		ID: 5, Name: "Broken", Right: 2, Bottom: 2,
		Channels: map[document.ChannelType][]byte{document.ChannelAlpha: {1, 2, 3}},
	}}}

	_, err := Build(doc)
	if !errors.Is(err, errors.ErrCodeAmbiguousSource) {
		t.Fatalf("error = %v, want AMBIGUOUS_SOURCE", err)
	}
	if !strings.Contains(err.Error(), "Broken") {
		t.Errorf("error %q should name the layer", err)
	}
}

func TestBuild_ChannelSizeMismatchOrder(t *testing.T) {
	doc := &document.Document{Width: 10, Height: 10, Layers: []*document.Layer{{
		ID: 6, Name: "Broken", Right: 2, Bottom: 2,
		Channels: map[document.ChannelType][]byte{
			document.ChannelRed:   {1},
			document.ChannelGreen: {1, 2, 3, 4},
			document.ChannelAlpha: {1, 2},
		},
	}}}

	for i := 0; i < 20; i++ {
		_, err := Build(doc)
		if err == nil || !strings.Contains(err.Error(), "red channel has 1 bytes") {
			t.Fatalf("error = %v, want the red channel reported first", err)
		}
	}
}

func TestBuild_OverlayAttributes(t *testing.T) {
	doc := &document.Document{
		Width:  100,
		Height: 100,
		XMP: xmp(
			record(1, map[string]string{"xAnchor": "left", "yAnchor": "top", "xPivot": "0", "yPivot": "1"}),
			record(2, map[string]string{"isSkipped": "TRUE", "xAnchor": "middle", "yAnchor": "stretch", "xPivot": ""}),
			record(3, map[string]string{"widgetType": "empty", "isSkipped": "yes"}),
			record(99, map[string]string{"xAnchor": "right"}),
		),
		Layers: []*document.Layer{
			{ID: 1, Name: "A"},
			{ID: 2, Name: "B"},
			{ID: 3, Name: "C"},
		},
	}

	root, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !root.Configs.Has(99) {
		t.Error("records for unknown layers are kept but unused")
	}

	a := root.Children[0].Attrs()
	if a.XAnchor != uitree.XAnchorLeft || a.YAnchor != uitree.YAnchorTop {
		t.Errorf("A anchors = %v/%v, want left/top", a.XAnchor, a.YAnchor)
	}
	if a.Pivot != (uitree.Vec2{X: 0, Y: 1}) {
		t.Errorf("A pivot = %v, want (0, 1)", a.Pivot)
	}

	b := root.Children[1].Attrs()
	if !b.Skipped {
		t.Error("B isSkipped=TRUE should skip")
	}
	if b.XAnchor != uitree.XAnchorNone || b.YAnchor != uitree.YAnchorStretch {
		t.Errorf("B anchors = %v/%v, want none/stretch", b.XAnchor, b.YAnchor)
	}
	if b.Pivot != (uitree.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("B pivot = %v, want defaults", b.Pivot)
	}

	c := root.Children[2].(*uitree.ImageNode)
	if c.Skipped {
		t.Error("C isSkipped=yes is not true")
	}
	if c.Widget != uitree.WidgetEmptyGraphic {
		t.Errorf("C widget = %v, want empty", c.Widget)
	}
}

func TestBuild_MalformedPivot(t *testing.T) {
	doc := &document.Document{
		Width: 10, Height: 10,
		XMP:    xmp(record(4, map[string]string{"xPivot": "half"})),
		Layers: []*document.Layer{{ID: 4, Name: "Knob"}},
	}

	_, err := Build(doc)
	if !errors.Is(err, errors.ErrCodeMalformedOverlay) {
		t.Fatalf("error = %v, want MALFORMED_OVERLAY", err)
	}
	var le *errors.LayerError
	if !asLayerError(err, &le) || le.LayerID != 4 || le.LayerName != "Knob" {
		t.Errorf("error should identify layer 4 Knob, got %v", err)
	}
}

func TestBuild_MalformedOverlayID(t *testing.T) {
	doc := &document.Document{
		Width: 10, Height: 10,
		XMP: xmp(`<rdf:li><agugu:Id>four</agugu:Id><agugu:Properties/></rdf:li>`),
	}
	if _, err := Build(doc); !errors.Is(err, errors.ErrCodeMalformedOverlay) {
		t.Fatalf("error = %v, want MALFORMED_OVERLAY", err)
	}
}

func TestBuild_Classification(t *testing.T) {
	doc := &document.Document{
		Width: 100, Height: 100,
		Layers: []*document.Layer{
			{ID: 1, Name: "Open", Section: document.SectionOpen},
			{ID: 2, Name: "Closed", Section: document.SectionClosed,
				Text: &document.TextEngine{FontSet: []string{"F"}, StyleRuns: []document.StyleRun{{}}}},
			{ID: 3, Name: "Text", Text: &document.TextEngine{FontSet: []string{"F"}, StyleRuns: []document.StyleRun{{}}}},
			{ID: 4, Name: "Divider", Section: document.SectionDivider},
			{ID: 5, Name: "Plain"},
		},
	}

	root, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []uitree.Kind{uitree.KindGroup, uitree.KindGroup, uitree.KindText, uitree.KindImage, uitree.KindImage}
	for i, k := range want {
		if got := root.Children[i].Kind(); got != k {
			t.Errorf("%s: kind = %v, want %v", root.Children[i].Attrs().Name, got, k)
		}
	}
}

func TestBuild_GroupProperties(t *testing.T) {
	doc := &document.Document{
		Width: 300, Height: 300,
		XMP: xmp(
			record(10, map[string]string{
				"hasScrollRect": "true", "isScrollRectVertical": "true",
				"hasGrid": "true", "gridCellSizeX": "64", "gridCellSizeY": "32", "gridSpacingX": "4",
			}),
			record(20, map[string]string{"hasGrid": "false", "gridCellSizeX": "not-read"}),
		),
		Layers: []*document.Layer{
			{ID: 10, Name: "List", Section: document.SectionOpen, Visible: true, Children: []*document.Layer{
				{ID: 11, Name: "First"},
				{ID: 12, Name: "Second"},
				{ID: 20, Name: "Nested", Section: document.SectionClosed},
			}},
		},
	}

	root, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	list := root.Children[0].(*uitree.GroupNode)
	if !list.HasScrollRect || list.ScrollHorizontal || !list.ScrollVertical {
		t.Errorf("scroll flags = %v %v %v", list.HasScrollRect, list.ScrollHorizontal, list.ScrollVertical)
	}
	if !list.HasGrid || list.CellSize != (uitree.Vec2{X: 64, Y: 32}) || list.Spacing != (uitree.Vec2{X: 4, Y: 0}) {
		t.Errorf("grid = %v cell=%v spacing=%v", list.HasGrid, list.CellSize, list.Spacing)
	}

	var names []string
	for _, c := range list.Children {
		names = append(names, c.Attrs().Name)
	}
	if strings.Join(names, ",") != "First,Second,Nested" {
		t.Errorf("children order = %v", names)
	}

	nested := list.Children[2].(*uitree.GroupNode)
	if nested.HasGrid || nested.CellSize != (uitree.Vec2{}) {
		t.Error("grid sizes are only read when hasGrid is true")
	}
}

func TestBuild_Text(t *testing.T) {
	doc := &document.Document{
		Width: 100, Height: 100,
		Layers: []*document.Layer{
			{ID: 1, Name: "Styled", Text: &document.TextEngine{
				Text:    "Play",
				FontSet: []string{"ArialMT", "Roboto-Bold"},
				StyleRuns: []document.StyleRun{
					{Font: 1, FontSize: ptr(36), FillColor: []float64{0.5, 1, 0.25, 0}},
					{Font: 0, FontSize: ptr(12)},
				},
			}},
			{ID: 2, Name: "Plain", Text: &document.TextEngine{
				Text:      "x",
				FontSet:   []string{"ArialMT"},
				StyleRuns: []document.StyleRun{{Font: 0}},
			}},
		},
	}

	root, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	styled := root.Children[0].(*uitree.TextNode)
	if styled.Text != "Play" || styled.FontName != "Roboto-Bold" || styled.FontSize != 36 {
		t.Errorf("styled = %q %q %g", styled.Text, styled.FontName, styled.FontSize)
	}
	wantColor := uitree.Color{R: 1, G: 0.25, B: 0, A: 0.5}
	if styled.Color != wantColor {
		t.Errorf("color = %+v, want %+v (stored A,R,G,B)", styled.Color, wantColor)
	}

	plain := root.Children[1].(*uitree.TextNode)
	if plain.FontSize != DefaultFontSize {
		t.Errorf("default font size = %g, want %g", plain.FontSize, DefaultFontSize)
	}
	if plain.Color != uitree.Black {
		t.Errorf("default color = %+v, want opaque black", plain.Color)
	}
}

func TestBuild_TextStructureErrors(t *testing.T) {
	tests := []struct {
		name   string
		engine *document.TextEngine
		reason string
	}{
		{"no style runs", &document.TextEngine{FontSet: []string{"A"}}, "no style runs"},
		{"font out of range", &document.TextEngine{StyleRuns: []document.StyleRun{{Font: 2}}, FontSet: []string{"A"}}, "font index"},
		{"short fill color", &document.TextEngine{
			FontSet:   []string{"A"},
			StyleRuns: []document.StyleRun{{FillColor: []float64{1, 0, 0}}},
		}, "fill color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &document.Document{Width: 10, Height: 10, Layers: []*document.Layer{
				{ID: 1, Name: "Wrapper", Section: document.SectionOpen, Children: []*document.Layer{
					{ID: 42, Name: "Score", Text: tt.engine},
				}},
			}}

			root, err := Build(doc)
			if root != nil {
				t.Error("no partial tree is returned on error")
			}
			if !errors.Is(err, errors.ErrCodeAmbiguousSource) {
				t.Fatalf("error = %v, want AMBIGUOUS_SOURCE", err)
			}
			msg := err.Error()
			if !strings.Contains(msg, "42") || !strings.Contains(msg, "Score") || !strings.Contains(msg, tt.reason) {
				t.Errorf("error %q should name layer 42 Score and mention %q", msg, tt.reason)
			}
		})
	}
}

func asLayerError(err error, target **errors.LayerError) bool {
	for err != nil {
		if le, ok := err.(*errors.LayerError); ok {
			*target = le
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
