// Package plot draws boundary curves as scatter plots.
package plot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/julia"
)

// ErrInvalidOptions is returned for empty canvases and degenerate ranges.
var ErrInvalidOptions = errors.New("plot: invalid options")

// Options describes the canvas and the plotted region of the complex plane.
type Options struct {
	// Width and Height are the canvas size in pixels.
	Width, Height int

	// Min and Max bound both axes of the plotted region.
	Min, Max float64

	// Radius of each point marker in pixels.
	Radius float64

	// Inset is the blank border around the plot area in pixels.
	Inset float64

	// Axes draws the plot frame and the real and imaginary axes.
	Axes bool
}

// DefaultOptions returns a 640x480 canvas showing [-2, 2] on both axes.
func DefaultOptions() Options {
	return Options{
		Width:  640,
		Height: 480,
		Min:    -2,
		Max:    2,
		Radius: 3,
		Inset:  35,
		Axes:   true,
	}
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case !(o.Max > o.Min):
		return fmt.Errorf("%w: range [%v, %v]", ErrInvalidOptions, o.Min, o.Max)
	case 2*o.Inset >= float64(min(o.Width, o.Height)):
		return fmt.Errorf("%w: inset %v leaves no plot area", ErrInvalidOptions, o.Inset)
	}
	return nil
}

// Project maps z to canvas coordinates. The imaginary axis points up.
func (o Options) Project(z julia.Complex) (x, y float64) {
	span := o.Max - o.Min
	w := float64(o.Width) - 2*o.Inset
	h := float64(o.Height) - 2*o.Inset
	x = o.Inset + (z.Re-o.Min)/span*w
	y = float64(o.Height) - o.Inset - (z.Im-o.Min)/span*h
	return x, y
}

// Curve draws points as black dots on a white canvas. Non-finite points are
// skipped. The caller should Close the returned context.
func Curve(points []julia.Complex, o Options) (*gg.Context, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(o.Width, o.Height)
	dc.ClearWithColor(gg.White)

	if o.Axes {
		if err := drawAxes(dc, o); err != nil {
			_ = dc.Close()
			return nil, err
		}
	}

	dc.SetRGB(0, 0, 0)
	drawn := 0
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		x, y := o.Project(p)
		dc.DrawCircle(x, y, o.Radius)
		drawn++
	}
	if drawn > 0 {
		if err := dc.Fill(); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("plot: fill: %w", err)
		}
	}

	julia.Logger().Debug("plot: curve drawn",
		slog.Int("points", drawn),
		slog.Int("width", o.Width),
		slog.Int("height", o.Height))
	return dc, nil
}

// drawAxes strokes the plot frame and the two axes in light gray.
func drawAxes(dc *gg.Context, o Options) error {
	left, top := o.Inset, o.Inset
	right := float64(o.Width) - o.Inset
	bottom := float64(o.Height) - o.Inset

	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(left, top, right-left, bottom-top)
	if o.Min < 0 && o.Max > 0 {
		ox, oy := o.Project(julia.Complex{})
		dc.DrawLine(left, oy, right, oy)
		dc.DrawLine(ox, top, ox, bottom)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("plot: axes: %w", err)
	}
	return nil
}

// Image draws the curve and returns it as an image.
func Image(points []julia.Complex, o Options) (image.Image, error) {
	dc, err := Curve(points, o)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// EncodePNG draws the curve and writes it as PNG.
func EncodePNG(w io.Writer, points []julia.Complex, o Options) error {
	dc, err := Curve(points, o)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG draws the curve and saves it to a PNG file.
func SavePNG(path string, points []julia.Complex, o Options) error {
	dc, err := Curve(points, o)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}
