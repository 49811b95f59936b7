package uitree

import "fmt"

// Vec2 is a 2D point or size.
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Lerp interpolates componentwise between a and b by t without clamping.
func Lerp(a, b, t Vec2) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t.X,
		Y: a.Y + (b.Y-a.Y)*t.Y,
	}
}

// Rect is an axis-aligned box. Inside a built tree every rect uses a
// bottom-left origin relative to the document.
type Rect struct {
	XMin float64 `json:"x_min" msgpack:"x_min"`
	XMax float64 `json:"x_max" msgpack:"x_max"`
	YMin float64 `json:"y_min" msgpack:"y_min"`
	YMax float64 `json:"y_max" msgpack:"y_max"`
}

// NewRect returns the rect with origin (x, y) and size (w, h).
func NewRect(x, y, w, h float64) Rect {
	return Rect{XMin: x, XMax: x + w, YMin: y, YMax: y + h}
}

func (r Rect) Min() Vec2       { return Vec2{r.XMin, r.YMin} }
func (r Rect) Max() Vec2       { return Vec2{r.XMax, r.YMax} }
func (r Rect) Width() float64  { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }
func (r Rect) Size() Vec2      { return Vec2{r.Width(), r.Height()} }

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", r.XMin, r.XMax, r.YMin, r.YMax)
}

// Color is an RGBA color with components in [0,1].
type Color struct {
	R float64 `json:"r" msgpack:"r"`
	G float64 `json:"g" msgpack:"g"`
	B float64 `json:"b" msgpack:"b"`
	A float64 `json:"a" msgpack:"a"`
}

// Black is opaque black, the default text color.
var Black = Color{0, 0, 0, 1}

// Hex returns the color as #RRGGBBAA.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
