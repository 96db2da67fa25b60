package julia

import "math"

// ColorScale is the fixed factor the color mapper multiplies scaled
// iteration counts by. It is also used as the alpha of every non-inside
// pixel.
type ColorScale uint8

// Supported color scales.
const (
	// Scale250 maps k*p*250/maxIter and uses alpha 250.
	Scale250 ColorScale = 250

	// Scale255 maps k*p*255/maxIter and uses alpha 255.
	Scale255 ColorScale = 255
)

// Valid reports whether s is one of the supported scales.
func (s ColorScale) Valid() bool {
	return s == Scale250 || s == Scale255
}

// Config describes one raster to evaluate. It is immutable once passed to
// the evaluator; every call receives it explicitly.
type Config struct {
	// Width and Height are the raster dimensions in pixels.
	Width, Height int

	// MaxIterations caps the orbit length. A pixel that has not escaped
	// after MaxIterations steps is considered inside the filled Julia set.
	MaxIterations int

	// EscapeRadius is the bailout radius; orbits escape once |z|² > R².
	EscapeRadius float64

	// Zoom scales the visible extent of the plane around the origin: the
	// width spans 4*Zoom units. Zero means 1.
	Zoom float64

	// Scale selects the color scale. Zero means Scale250.
	Scale ColorScale
}

// DefaultConfig returns the 800x800, 150 iteration configuration.
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        800,
		MaxIterations: 150,
		EscapeRadius:  2,
		Zoom:          1,
		Scale:         Scale250,
	}
}

// withDefaults fills the optional fields.
func (c Config) withDefaults() Config {
	if c.Zoom == 0 {
		c.Zoom = 1
	}
	if c.Scale == 0 {
		c.Scale = Scale250
	}
	return c
}

// Validate checks the configuration invariants.
// The returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.Width <= 0:
		return invalidf("width %d must be positive", c.Width)
	case c.Height <= 0:
		return invalidf("height %d must be positive", c.Height)
	case c.MaxIterations <= 0:
		return invalidf("max iterations %d must be positive", c.MaxIterations)
	case !(c.EscapeRadius > 0) || math.IsInf(c.EscapeRadius, 0):
		return invalidf("escape radius %v must be positive and finite", c.EscapeRadius)
	case !(c.Zoom > 0) || math.IsInf(c.Zoom, 0):
		return invalidf("zoom %v must be positive and finite", c.Zoom)
	case !c.Scale.Valid():
		return invalidf("color scale %d must be 250 or 255", c.Scale)
	}
	return nil
}

// pixelScale is the number of pixels per unit of the complex plane.
func (c Config) pixelScale() float64 {
	return (float64(c.Width) / 4) / c.Zoom
}
