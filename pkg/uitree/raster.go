package uitree

import (
	"image"
	"image/color"
)

// Raster is an 8-bit RGBA pixel buffer with bottom-up rows: row 0 is the
// bottom row of the layer.
type Raster struct {
	Width  int     `msgpack:"w"`
	Height int     `msgpack:"h"`
	Pix    []uint8 `msgpack:"pix"`
}

// NewRaster allocates a transparent raster.
func NewRaster(w, h int) *Raster {
	return &Raster{Width: w, Height: h, Pix: make([]uint8, 4*w*h)}
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool {
	return r == nil || r.Width == 0 || r.Height == 0
}

// offset returns the index of pixel (x, y) in Pix.
func (r *Raster) offset(x, y int) int {
	return 4 * (y*r.Width + x)
}

// Set stores the pixel at (x, y), y counted from the bottom.
func (r *Raster) Set(x, y int, c color.NRGBA) {
	i := r.offset(x, y)
	r.Pix[i+0] = c.R
	r.Pix[i+1] = c.G
	r.Pix[i+2] = c.B
	r.Pix[i+3] = c.A
}

// At returns the pixel at (x, y), y counted from the bottom.
func (r *Raster) At(x, y int) color.NRGBA {
	i := r.offset(x, y)
	return color.NRGBA{R: r.Pix[i+0], G: r.Pix[i+1], B: r.Pix[i+2], A: r.Pix[i+3]}
}

// Image converts the raster to a top-down image suitable for encoding.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	stride := 4 * r.Width
	for y := 0; y < r.Height; y++ {
		src := r.Pix[(r.Height-1-y)*stride : (r.Height-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img
}

// SpriteSource is where an image node's pixels live: [InMemory] right
// after building, [OnDisk] once the export pass has written them.
type SpriteSource interface {
	spriteSource()
}

// InMemory holds a raster that has not been exported yet.
type InMemory struct {
	Raster *Raster
}

// OnDisk references an exported asset file.
type OnDisk struct {
	Path string
}

func (InMemory) spriteSource() {}
func (OnDisk) spriteSource()   {}
