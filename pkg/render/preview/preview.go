// Package preview draws a scene tree to a raster image.
//
// The preview resolves every active container against the scene frame,
// draws image assets stretched to their rects and text centered in its
// rect, then optionally outlines each container. Scene rects use a
// bottom-left origin; the canvas is top-down, so rects are flipped with
// y = height - YMax before drawing. Inactive containers and their
// subtrees are not drawn.
package preview

import (
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/psdui/pkg/render/scene"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// Option configures Render.
type Option func(*settings)

type settings struct {
	background color.Color
	outlines   bool
	logger     *log.Logger
}

// WithBackground fills the canvas before drawing. The default is
// transparent.
func WithBackground(c color.Color) Option {
	return func(s *settings) { s.background = c }
}

// WithOutlines strokes the rect of every drawn container.
func WithOutlines(on bool) Option {
	return func(s *settings) { s.outlines = on }
}

// WithLogger sets the logger. Unloadable assets and fonts are warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

var outlineColor = color.NRGBA{R: 255, G: 0, B: 160, A: 200}

// Render draws root into an image the size of frame.
func Render(root *scene.Container, frame uitree.Rect, opts ...Option) image.Image {
	s := &settings{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(s)
	}

	w, h := int(frame.Width()), int(frame.Height())
	dc := gg.NewContext(max(w, 1), max(h, 1))
	if s.background != nil {
		dc.SetColor(s.background)
		dc.Clear()
	}

	p := &painter{dc: dc, height: frame.Height(), settings: s}
	p.draw(root, frame)
	return dc.Image()
}

// Save renders root and writes it as PNG.
func Save(path string, root *scene.Container, frame uitree.Rect, opts ...Option) error {
	return imaging.Save(Render(root, frame, opts...), path)
}

type painter struct {
	dc     *gg.Context
	height float64
	*settings
}

// screen converts a scene rect to top-left canvas coordinates.
func (p *painter) screen(r uitree.Rect) (x, y, w, h float64) {
	return r.XMin, p.height - r.YMax, r.Width(), r.Height()
}

func (p *painter) draw(c *scene.Container, parent uitree.Rect) {
	if !c.Active {
		return
	}
	rect := c.Resolve(parent)

	switch content := c.Content.(type) {
	case scene.ImageContent:
		p.image(c, content, rect)
	case scene.TextContent:
		p.text(c, content, rect)
	}
	if p.outlines {
		x, y, w, h := p.screen(rect)
		p.dc.SetColor(outlineColor)
		p.dc.SetLineWidth(1)
		p.dc.DrawRectangle(x, y, w, h)
		p.dc.Stroke()
	}

	for _, child := range c.Children {
		p.draw(child, rect)
	}
}

func (p *painter) image(c *scene.Container, content scene.ImageContent, rect uitree.Rect) {
	if content.Asset.Path == "" {
		return
	}
	img, err := gg.LoadImage(content.Asset.Path)
	if err != nil {
		p.logger.Warn("asset not drawn", "asset", content.Asset.Path, "node", c.Name, "err", err)
		return
	}

	x, y, w, h := p.screen(rect)
	if w < 1 || h < 1 {
		return
	}
	b := img.Bounds()
	if b.Dx() != int(w) || b.Dy() != int(h) {
		img = imaging.Resize(img, int(w), int(h), imaging.Linear)
	}
	p.dc.DrawImage(img, int(x), int(y))
}

func (p *painter) text(c *scene.Container, content scene.TextContent, rect uitree.Rect) {
	if content.Text == "" {
		return
	}
	if content.Font != nil {
		if err := p.dc.LoadFontFace(content.Font.Path, float64(content.FontSize)); err != nil {
			p.logger.Warn("font not loaded", "font", content.Font.Name, "node", c.Name, "err", err)
		}
	}

	col := content.Color
	p.dc.SetRGBA(col.R, col.G, col.B, col.A)
	x, y, w, h := p.screen(rect)
	p.dc.DrawStringWrapped(content.Text, x+w/2, y+h/2, 0.5, 0.5, w, 1.2, gg.AlignCenter)
}
