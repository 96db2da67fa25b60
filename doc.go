// Package julia renders filled Julia sets of the quadratic family
// z ↦ z² + c and approximates the boundary of the bounded-orbit parameters.
//
// # Overview
//
// A Julia set is chosen by its complex parameter c. Every pixel of a raster
// is mapped to a starting point z₀ and iterated until it leaves the escape
// radius or the iteration cap is reached; the count is turned into a color
// with a three-coefficient palette. Whole rasters are evaluated in parallel
// on a worker pool, tile by tile.
//
// # Quick Start
//
//	import "github.com/gogpu/julia"
//
//	cfg := julia.DefaultConfig()
//	r, err := julia.Render(cfg, julia.C(-0.79, 0.155), julia.Palette{R: 4, G: 1, B: 9})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.SavePNG("julia.png")
//
// # Animation
//
// A Trajectory sweeps c linearly and cycles the palette. Animate renders each
// frame with a Synthesizer and hands the raster to a FrameSink in index
// order; package video writes numbered frame files and drives external
// tracers and encoders, package stream broadcasts frames over websockets.
//
// # Boundary contraction
//
// BoundarySolver starts from points on the unit circle and repeatedly
// contracts every point whose scaled orbit of 0 escapes, until all points
// test bounded in the same round or the round cap is reached. Package plot
// draws the resulting curve.
//
// # Coordinate System
//
//   - The raster center maps to the origin
//   - The width spans 4*zoom units of the complex plane
//   - X increases right, Y increases down (the imaginary axis points down)
package julia

// Version is the current version of the library.
const Version = "0.1.0"
