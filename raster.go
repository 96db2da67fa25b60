package julia

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
)

// DefaultMaxRasterBytes bounds the pixel buffer a single raster may
// allocate (1 GiB, about 16384x16384 pixels).
const DefaultMaxRasterBytes = 1 << 30

// Raster is a rectangular pixel buffer produced by the synthesizer.
// Channels are stored straight (not premultiplied), as the color mapper
// produces them. Once returned to the caller a Raster is never written again.
type Raster struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel, row-major
}

// newRaster allocates a zeroed raster, refusing sizes whose byte count
// overflows or exceeds limit.
func newRaster(width, height int, limit int64) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidf("raster size %dx%d must be positive", width, height)
	}
	if limit <= 0 {
		limit = DefaultMaxRasterBytes
	}
	if int64(width) > math.MaxInt64/4/int64(height) {
		return nil, fmt.Errorf("%w: raster %dx%d overflows", ErrAllocation, width, height)
	}
	size := int64(width) * int64(height) * 4
	if size > limit || size > int64(math.MaxInt) {
		return nil, fmt.Errorf("%w: raster %dx%d needs %d bytes, limit %d", ErrAllocation, width, height, size, limit)
	}
	return &Raster{
		width:  width,
		height: height,
		data:   make([]uint8, size),
	}, nil
}

// Width returns the width of the raster.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the height of the raster.
func (r *Raster) Height() int {
	return r.height
}

// Data returns the raw RGBA pixel data. Callers must not modify it.
func (r *Raster) Data() []uint8 {
	return r.data
}

// NRGBAAt returns the color of pixel (x, y), or transparent black outside
// the raster.
func (r *Raster) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return color.NRGBA{}
	}
	i := (y*r.width + x) * 4
	return color.NRGBA{R: r.data[i], G: r.data[i+1], B: r.data[i+2], A: r.data[i+3]}
}

// set writes one pixel. Only the synthesizer calls it, once per pixel.
func (r *Raster) set(x, y int, c color.NRGBA) {
	i := (y*r.width + x) * 4
	r.data[i+0] = c.R
	r.data[i+1] = c.G
	r.data[i+2] = c.B
	r.data[i+3] = c.A
}

// ToImage returns a copy of the raster as an image.NRGBA.
func (r *Raster) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	copy(img.Pix, r.data)
	return img
}

// EncodePNG writes the raster as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.ToImage())
}

// SavePNG saves the raster to a PNG file.
func (r *Raster) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := r.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (r *Raster) At(x, y int) color.Color {
	return r.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// ColorModel implements the image.Image interface.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBAModel
}
