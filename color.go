package julia

import (
	"image/color"
	"math/bits"
)

// Inside is the color of pixels whose orbit never escaped.
var Inside = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// Palette holds the per-channel coefficients that scale iteration counts
// into channel intensities.
type Palette struct {
	R uint32 `json:"r"`
	G uint32 `json:"g"`
	B uint32 `json:"b"`
}

// MapColor converts an iteration count to a pixel color.
//
// k == maxIter yields Inside. Otherwise each channel is
// k*coefficient*scale/maxIter computed in 64-bit integers and saturated to
// 255, and alpha is the scale itself. A zero scale means Scale250.
//
// For a fixed palette the result is non-decreasing in k on [0, maxIter).
func MapColor(k, maxIter int, p Palette, scale ColorScale) color.NRGBA {
	if k >= maxIter {
		return Inside
	}
	if scale == 0 {
		scale = Scale250
	}
	if k < 0 {
		k = 0
	}

	kk := uint64(k)
	s := uint64(scale)
	m := uint64(maxIter)
	return color.NRGBA{
		R: channel(kk, uint64(p.R), s, m),
		G: channel(kk, uint64(p.G), s, m),
		B: channel(kk, uint64(p.B), s, m),
		A: uint8(scale),
	}
}

// ColorTable returns MapColor(k, maxIter, p, scale) for every k in
// [0, maxIter], indexed by k.
func ColorTable(maxIter int, p Palette, scale ColorScale) []color.NRGBA {
	if maxIter < 0 {
		maxIter = 0
	}
	t := make([]color.NRGBA, maxIter+1)
	for k := range t {
		t[k] = MapColor(k, maxIter, p, scale)
	}
	return t
}

func channel(k, coeff, scale, maxIter uint64) uint8 {
	// coeff*scale < 2⁴⁰, so the full product fits in 128 bits.
	hi, lo := bits.Mul64(k, coeff*scale)
	if hi >= maxIter {
		return 255
	}
	v, _ := bits.Div64(hi, lo, maxIter)
	if v > 255 {
		return 255
	}
	return uint8(v)
}
