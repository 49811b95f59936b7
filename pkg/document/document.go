// Package document defines the raw layered-document model consumed by the
// tree builder.
//
// The model mirrors what a layered image decoder exposes: a document of
// fixed pixel size holding an ordered list of layers, each with a stable
// integer id, a top-down bounding box, a section marker distinguishing
// folders from plain layers, optional text-engine data, and up to four
// 8-bit channel planes. Decoding the native file format is out of scope;
// documents are loaded from YAML or JSON fixtures (see [Load]).
package document

import (
	"fmt"
	"strings"
)

// SectionType marks a layer as a folder boundary or a plain layer.
type SectionType int

const (
	SectionNormal  SectionType = iota // plain layer
	SectionOpen                       // expanded folder
	SectionClosed                     // collapsed folder
	SectionDivider                    // hidden folder end marker
)

var sectionNames = map[SectionType]string{
	SectionNormal:  "normal",
	SectionOpen:    "open",
	SectionClosed:  "closed",
	SectionDivider: "divider",
}

// String returns the fixture spelling of s.
func (s SectionType) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// ParseSectionType parses the fixture spelling of a section marker.
// The empty string is a normal layer.
func ParseSectionType(s string) (SectionType, error) {
	if s == "" {
		return SectionNormal, nil
	}
	for t, name := range sectionNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return SectionNormal, fmt.Errorf("unknown section type %q", s)
}

// IsFolder reports whether s opens a folder (expanded or collapsed).
func (s SectionType) IsFolder() bool {
	return s == SectionOpen || s == SectionClosed
}

// ChannelType names a channel plane.
type ChannelType string

const (
	ChannelRed   ChannelType = "red"
	ChannelGreen ChannelType = "green"
	ChannelBlue  ChannelType = "blue"
	ChannelAlpha ChannelType = "alpha"
)

// Document is a decoded layered document.
type Document struct {
	Name   string   `yaml:"name" json:"name"`
	Width  int      `yaml:"width" json:"width"`
	Height int      `yaml:"height" json:"height"`
	XMP    string   `yaml:"xmp" json:"xmp,omitempty"`
	Layers []*Layer `yaml:"layers" json:"layers"`
}

// Layer is a single raw layer. Coordinates are in document pixels with a
// top-left origin; Right and Bottom are exclusive.
type Layer struct {
	ID       int                    `yaml:"id" json:"id"`
	Name     string                 `yaml:"name" json:"name"`
	Visible  bool                   `yaml:"visible" json:"visible"`
	Left     int                    `yaml:"left" json:"left"`
	Top      int                    `yaml:"top" json:"top"`
	Right    int                    `yaml:"right" json:"right"`
	Bottom   int                    `yaml:"bottom" json:"bottom"`
	Section  SectionType            `yaml:"section" json:"section"`
	Text     *TextEngine            `yaml:"text" json:"text,omitempty"`
	Channels map[ChannelType][]byte `yaml:"channels" json:"channels,omitempty"`
	Children []*Layer               `yaml:"children" json:"children,omitempty"`
}

// Width returns the layer's bounding-box width.
func (l *Layer) Width() int { return l.Right - l.Left }

// Height returns the layer's bounding-box height.
func (l *Layer) Height() int { return l.Bottom - l.Top }

// HasTextResources reports whether the layer carries text-engine data.
func (l *Layer) HasTextResources() bool { return l.Text != nil }

// Channel returns the plane for t, or nil when the layer has none.
func (l *Layer) Channel(t ChannelType) []byte {
	return l.Channels[t]
}

// TextEngine is the text-engine resource of a text layer.
type TextEngine struct {
	Text      string     `yaml:"text" json:"text"`
	StyleRuns []StyleRun `yaml:"style_runs" json:"style_runs"`
	FontSet   []string   `yaml:"font_set" json:"font_set"`
}

// StyleRun is the style-sheet data of one run of characters.
// FontSize and FillColor are optional in the source. FillColor is stored
// as A, R, G, B components in [0,1].
type StyleRun struct {
	Font      int       `yaml:"font" json:"font"`
	FontSize  *float64  `yaml:"font_size" json:"font_size,omitempty"`
	FillColor []float64 `yaml:"fill_color" json:"fill_color,omitempty"`
}

// Walk calls fn for every layer in document order, parents before
// children. Walking stops at the first error.
func (d *Document) Walk(fn func(l *Layer, depth int) error) error {
	var walk func(layers []*Layer, depth int) error
	walk = func(layers []*Layer, depth int) error {
		for _, l := range layers {
			if err := fn(l, depth); err != nil {
				return err
			}
			if err := walk(l.Children, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.Layers, 0)
}

// LayerCount returns the total number of layers, nested ones included.
func (d *Document) LayerCount() int {
	n := 0
	_ = d.Walk(func(*Layer, int) error {
		n++
		return nil
	})
	return n
}
