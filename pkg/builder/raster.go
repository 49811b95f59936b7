package builder

import (
	"image/color"

	"github.com/matzehuels/psdui/pkg/document"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// layerRaster assembles the layer's channel planes into a raster.
//
// Planes are stored top-down; the raster is bottom-up, so the pixel at
// plane position (x, y) lands at raster position (x, h-1-y). Missing color
// planes read as 0 and a missing alpha plane reads as 255.
func layerRaster(layer *document.Layer) (*uitree.Raster, error) {
	w, h := layer.Width(), layer.Height()
	if w < 0 || h < 0 {
		return nil, errors.NewLayerError(errors.ErrCodeAmbiguousSource, layer.ID, layer.Name,
			"negative layer size %dx%d", w, h)
	}

	red := layer.Channel(document.ChannelRed)
	green := layer.Channel(document.ChannelGreen)
	blue := layer.Channel(document.ChannelBlue)
	alpha := layer.Channel(document.ChannelAlpha)

	planes := [...]struct {
		name  document.ChannelType
		plane []byte
	}{
		{document.ChannelRed, red},
		{document.ChannelGreen, green},
		{document.ChannelBlue, blue},
		{document.ChannelAlpha, alpha},
	}
	for _, p := range planes {
		if p.plane != nil && len(p.plane) != w*h {
			return nil, errors.NewLayerError(errors.ErrCodeAmbiguousSource, layer.ID, layer.Name,
				"%s channel has %d bytes, want %d", p.name, len(p.plane), w*h)
		}
	}

	raster := uitree.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := x + y*w
			raster.Set(x, h-1-y, color.NRGBA{
				R: sample(red, src, 0),
				G: sample(green, src, 0),
				B: sample(blue, src, 0),
				A: sample(alpha, src, 255),
			})
		}
	}
	return raster, nil
}

func sample(plane []byte, i int, def uint8) uint8 {
	if plane == nil {
		return def
	}
	return plane[i]
}
