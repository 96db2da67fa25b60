package julia

// PlanePoint maps the pixel (x, y) to its starting point z₀ in the complex
// plane. The raster center maps to the origin and the width spans 4*zoom
// units; both axes share that scale.
func PlanePoint(x, y int, cfg Config) Complex {
	cfg = cfg.withDefaults()
	s := cfg.pixelScale()
	return Complex{
		Re: (float64(x) - float64(cfg.Width)/2) / s,
		Im: (float64(y) - float64(cfg.Height)/2) / s,
	}
}

// EscapeTime returns the escape-time iteration count of pixel (x, y) for
// the map z ↦ z² + c.
//
// The result is 0 when z₀ is already outside the escape radius, n when the
// (n+1)-th step is the first to leave it, and cfg.MaxIterations when the
// orbit stays inside for all MaxIterations steps.
//
// cfg is assumed valid; see Config.Validate.
func EscapeTime(x, y int, c Complex, cfg Config) int {
	return escapeTime(PlanePoint(x, y, cfg), c, cfg.MaxIterations, cfg.EscapeRadius*cfg.EscapeRadius)
}

// escapeTime is the hot loop shared by EscapeTime and the synthesizer.
func escapeTime(z, c Complex, maxIter int, r2 float64) int {
	re, im := z.Re, z.Im
	if float64(re*re)+float64(im*im) > r2 {
		return 0
	}
	for n := 0; n < maxIter; n++ {
		re, im = float64(re*re)-float64(im*im)+c.Re, float64(2*re*im)+c.Im
		if float64(re*re)+float64(im*im) > r2 {
			return n
		}
	}
	return maxIter
}
