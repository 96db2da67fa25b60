package main

import (
	"context"
	"flag"
	"time"

	"github.com/gogpu/julia"
)

func runRender(_ context.Context, g *globals, args []string) error {
	p := g.params
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	paramFlags(fs, &p)
	var (
		output = fs.String("o", "julia.png", "output PNG file")
		re     = fs.Float64("re", p.StartParameter.Re, "real part of c")
		im     = fs.Float64("im", p.StartParameter.Im, "imaginary part of c")
		r      = fs.Uint("r", uint(p.StartPalette.R), "red palette coefficient")
		gr     = fs.Uint("g", uint(p.StartPalette.G), "green palette coefficient")
		b      = fs.Uint("b", uint(p.StartPalette.B), "blue palette coefficient")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	start := time.Now()
	palette := julia.Palette{R: uint32(*r), G: uint32(*gr), B: uint32(*b)}
	raster, err := julia.Render(p.Config(), julia.C(*re, *im), palette, g.options()...)
	if err != nil {
		return err
	}
	if err := raster.SavePNG(*output); err != nil {
		return err
	}

	g.out.Printf("saved %s: %dx%d, %d pixels in %v\n",
		*output, raster.Width(), raster.Height(), raster.Width()*raster.Height(),
		time.Since(start).Round(time.Millisecond))
	return nil
}

