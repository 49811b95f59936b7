package uitree

import (
	"image/color"
	"testing"

	"github.com/matzehuels/psdui/pkg/overlay"
)

func sampleTree() *Root {
	raster := NewRaster(2, 1)
	raster.Set(1, 0, color.NRGBA{R: 255, A: 255})

	return &Root{
		Name:    "menu",
		Width:   200,
		Height:  100,
		Configs: overlay.NewConfigs(),
		Children: []Node{
			&ImageNode{
				Attributes: Attributes{ID: 1, Name: "Background", Visible: true, Pivot: Vec2{0.5, 0.5}},
				Sprite:     InMemory{Raster: raster},
			},
			&GroupNode{
				Attributes: Attributes{ID: 2, Name: "Panel", Visible: true, XAnchor: XAnchorStretch},
				HasGrid:    true,
				CellSize:   Vec2{32, 32},
				Children: []Node{
					&TextNode{
						Attributes: Attributes{ID: 3, Name: "Title", Visible: false},
						FontSize:   42,
						FontName:   "ArialMT",
						Text:       "Hello",
						Color:      Black,
					},
					&ImageNode{
						Attributes: Attributes{ID: 4, Name: "Icon", Skipped: true},
						Sprite:     OnDisk{Path: "out/PanelIcon.png"},
						Widget:     WidgetEmptyGraphic,
					},
				},
			},
		},
	}
}

func TestRoot_Walk(t *testing.T) {
	root := sampleTree()

	var names []string
	var depths []int
	root.Walk(func(n Node, depth int) bool {
		names = append(names, n.Attrs().Name)
		depths = append(depths, depth)
		return true
	})

	wantNames := []string{"Background", "Panel", "Title", "Icon"}
	wantDepths := []int{0, 0, 1, 1}
	for i := range wantNames {
		if names[i] != wantNames[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = %s@%d, want %s@%d", i, names[i], depths[i], wantNames[i], wantDepths[i])
		}
	}

	var pruned []string
	root.Walk(func(n Node, _ int) bool {
		pruned = append(pruned, n.Attrs().Name)
		return n.Kind() != KindGroup
	})
	if len(pruned) != 2 {
		t.Errorf("returning false should skip children, visited %v", pruned)
	}
}

func TestRoot_Queries(t *testing.T) {
	root := sampleTree()

	counts := root.Count()
	if counts[KindGroup] != 1 || counts[KindImage] != 2 || counts[KindText] != 1 {
		t.Errorf("Count() = %v", counts)
	}

	n, ok := root.NodeByID(3)
	if !ok || n.Kind() != KindText {
		t.Fatalf("NodeByID(3) = %v, %v", n, ok)
	}
	if _, ok := root.NodeByID(99); ok {
		t.Error("NodeByID(99) should not be found")
	}

	if images := root.Images(); len(images) != 2 || images[1].Name != "Icon" {
		t.Errorf("Images() = %v", images)
	}

	if f := root.Frame(); f.Width() != 200 || f.Height() != 100 || f.XMin != 0 {
		t.Errorf("Frame() = %v", f)
	}
}

func TestImageNode_Commit(t *testing.T) {
	img := sampleTree().Children[0].(*ImageNode)
	if img.Raster() == nil || img.AssetPath() != "" {
		t.Fatal("fresh image should be in memory")
	}

	img.Commit("out/Background.png")

	if img.Raster() != nil {
		t.Error("raster should be released after Commit")
	}
	if img.AssetPath() != "out/Background.png" {
		t.Errorf("AssetPath() = %q", img.AssetPath())
	}
}

func TestRaster_ImageIsTopDown(t *testing.T) {
	r := NewRaster(1, 3)
	r.Set(0, 0, color.NRGBA{R: 1, A: 255}) // bottom row
	r.Set(0, 2, color.NRGBA{R: 3, A: 255}) // top row

	img := r.Image()
	if got := img.NRGBAAt(0, 0).R; got != 3 {
		t.Errorf("image top pixel R = %d, want 3", got)
	}
	if got := img.NRGBAAt(0, 2).R; got != 1 {
		t.Errorf("image bottom pixel R = %d, want 1", got)
	}
}

func TestParseAnchors(t *testing.T) {
	xTests := map[string]XAnchor{
		"left": XAnchorLeft, "center": XAnchorCenter, "right": XAnchorRight,
		"stretch": XAnchorStretch, "": XAnchorNone, "Left": XAnchorNone, "top": XAnchorNone,
	}
	for in, want := range xTests {
		if got := ParseXAnchor(in); got != want {
			t.Errorf("ParseXAnchor(%q) = %v, want %v", in, got, want)
		}
	}

	yTests := map[string]YAnchor{
		"top": YAnchorTop, "middle": YAnchorMiddle, "bottom": YAnchorBottom,
		"stretch": YAnchorStretch, "center": YAnchorNone, "": YAnchorNone,
	}
	for in, want := range yTests {
		if got := ParseYAnchor(in); got != want {
			t.Errorf("ParseYAnchor(%q) = %v, want %v", in, got, want)
		}
	}

	wTests := map[string]WidgetType{
		"image": WidgetImage, "text": WidgetText, "empty": WidgetEmptyGraphic, "button": WidgetNone,
	}
	for in, want := range wTests {
		if got := ParseWidgetType(in); got != want {
			t.Errorf("ParseWidgetType(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGeometry(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.XMax != 40 || r.YMax != 60 || r.Size() != (Vec2{30, 40}) {
		t.Errorf("NewRect = %v", r)
	}

	got := Lerp(Vec2{0, 0}, Vec2{10, 20}, Vec2{0.5, 1.5})
	if got != (Vec2{5, 30}) {
		t.Errorf("Lerp should not clamp, got %v", got)
	}

	if hex := (Color{1, 0, 0.5, 1}).Hex(); hex != "#FF0080FF" {
		t.Errorf("Hex() = %s", hex)
	}
}

func TestCodec(t *testing.T) {
	root := sampleTree()
	root.Configs.Set(2, overlay.Properties{"hasGrid": "true"})

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Name != "menu" || got.Height != 100 || !got.Configs.Get(2).Bool("hasGrid") {
		t.Errorf("root fields lost: %+v", got)
	}

	bg := got.Children[0].(*ImageNode)
	if r := bg.Raster(); r == nil || r.At(1, 0).R != 255 {
		t.Error("in-memory raster should survive encoding")
	}

	panel := got.Children[1].(*GroupNode)
	if !panel.HasGrid || panel.CellSize.X != 32 || panel.XAnchor != XAnchorStretch {
		t.Errorf("group fields lost: %+v", panel)
	}

	title := panel.Children[0].(*TextNode)
	if title.Text != "Hello" || title.Color != Black || title.Visible {
		t.Errorf("text fields lost: %+v", title)
	}

	icon := panel.Children[1].(*ImageNode)
	if icon.AssetPath() != "out/PanelIcon.png" || !icon.Skipped || icon.Widget != WidgetEmptyGraphic {
		t.Errorf("image fields lost: %+v", icon)
	}

	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("Decode should reject garbage")
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{XAnchorRight.String(), "right"},
		{YAnchorTop.String(), "top"},
		{WidgetEmptyGraphic.String(), "empty"},
		{XAnchor(99).String(), "unknown"},
		{YAnchor(-1).String(), "unknown"},
		{WidgetType(4).String(), "unknown"},
		{Kind(42).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
