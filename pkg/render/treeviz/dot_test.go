package treeviz

import (
	"strings"
	"testing"

	"github.com/matzehuels/psdui/pkg/uitree"
)

func sampleTree() *uitree.Root {
	panel := &uitree.GroupNode{
		Attributes:    uitree.Attributes{ID: 1, Name: "Panel", Visible: true, Rect: uitree.NewRect(0, 0, 100, 50)},
		HasScrollRect: true,
	}
	panel.AddChild(&uitree.ImageNode{
		Attributes: uitree.Attributes{ID: 2, Name: "Icon", Visible: true, Rect: uitree.NewRect(10, 10, 20, 20)},
		Sprite:     uitree.OnDisk{Path: "out/PanelIcon.png"},
		Widget:     uitree.WidgetImage,
	})
	panel.AddChild(&uitree.TextNode{
		Attributes: uitree.Attributes{ID: 3, Name: "Label", Visible: false},
		Text:       "Play",
		FontName:   "ArialMT",
		FontSize:   42,
	})

	root := &uitree.Root{Name: "menu", Width: 200, Height: 100}
	root.AddChild(panel)
	root.AddChild(&uitree.ImageNode{
		Attributes: uitree.Attributes{ID: 4, Name: "Guide", Skipped: true},
	})
	return root
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{`"root"`, `Panel #1`, `Icon #2`, `Label #3`, `Guide #4`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
	// Document order: Panel is n1, its children n2 and n3, Guide is n4.
	for _, edge := range []string{`"root" -> "n1"`, `"n1" -> "n2"`, `"n1" -> "n3"`, `"root" -> "n4"`} {
		if !strings.Contains(dot, edge) {
			t.Errorf("ToDOT() output missing edge %s", edge)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{Detailed: true})

	for _, want := range []string{"200x100", "asset: out/PanelIcon.png", "widget: image", "scroll", `font: ArialMT 42`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q", want)
		}
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	n := &uitree.ImageNode{Attributes: uitree.Attributes{ID: 7, Name: "Bg"}}
	if label := fmtLabel(n, false); label != "Bg #7" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", label, "Bg #7")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	n := &uitree.GroupNode{
		Attributes: uitree.Attributes{ID: 1, Name: "Grid", XAnchor: uitree.XAnchorStretch, YAnchor: uitree.YAnchorTop},
		HasGrid:    true,
		CellSize:   uitree.Vec2{X: 64, Y: 32},
	}
	label := fmtLabel(n, true)

	if !strings.HasPrefix(label, "Grid #1\n") {
		t.Errorf("fmtLabel() detailed should start with name: %q", label)
	}
	if !strings.Contains(label, "anchor: stretch/top") {
		t.Errorf("fmtLabel() detailed missing anchors: %q", label)
	}
	if !strings.Contains(label, "grid: 64x32") {
		t.Errorf("fmtLabel() detailed missing grid: %q", label)
	}
}

func TestFmtAttrs(t *testing.T) {
	tests := []struct {
		name    string
		node    uitree.Node
		want    []string
		notWant []string
	}{
		{
			name:    "visible image",
			node:    &uitree.ImageNode{Attributes: uitree.Attributes{Visible: true}},
			want:    []string{`style="rounded,filled"`},
			notWant: []string{"shape=", "dashed", "lightgrey"},
		},
		{
			name: "group",
			node: &uitree.GroupNode{Attributes: uitree.Attributes{Visible: true}},
			want: []string{"shape=folder"},
		},
		{
			name: "hidden text",
			node: &uitree.TextNode{},
			want: []string{"shape=note", "dashed"},
		},
		{
			name: "skipped",
			node: &uitree.ImageNode{Attributes: uitree.Attributes{Visible: true, Skipped: true}},
			want: []string{"lightgrey"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joined := strings.Join(fmtAttrs(tt.node, "x"), " ")
			for _, w := range tt.want {
				if !strings.Contains(joined, w) {
					t.Errorf("fmtAttrs() = %s, missing %s", joined, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(joined, w) {
					t.Errorf("fmtAttrs() = %s, should not contain %s", joined, w)
				}
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sampleTree(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(`not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
