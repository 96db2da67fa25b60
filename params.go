package julia

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Params is the complete set of named parameters for a render, an
// animation and a boundary run. It is what parameter files contain.
//
// A zero field falls back to the corresponding default of the component it
// feeds, except where a zero value is meaningful (steps and moduli).
type Params struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MaxIterations int     `json:"maxIterations"`
	EscapeRadius  float64 `json:"escapeRadius"`
	Zoom          float64 `json:"zoom"`
	ColorScale    int     `json:"colorScale,omitempty"`

	FrameCount     int     `json:"frameCount"`
	StartParameter Complex `json:"startParameter"`
	ParameterStep  Complex `json:"parameterStep"`
	StartPalette   Palette `json:"startPalette"`
	PaletteStep    Palette `json:"paletteStep"`
	PaletteModulus Palette `json:"paletteModulus"`

	EpsilonDivisor         float64 `json:"epsilonDivisor"`
	BoundaryPointCount     int     `json:"boundaryPointCount"`
	BoundaryTestIterations int     `json:"boundaryTestIterations"`
	BoundaryMaxRounds      int     `json:"boundaryMaxRounds,omitempty"`
	ScaleConvention        string  `json:"scaleConvention,omitempty"`

	// FrameRate is used by video encoders, in frames per second.
	FrameRate int `json:"frameRate,omitempty"`
}

// DefaultParams returns the reference parameter set: an 800x800, 150
// iteration sweep of 1000 frames starting at c = -0.79+0.155i.
func DefaultParams() Params {
	return Params{
		Width:         800,
		Height:        800,
		MaxIterations: 150,
		EscapeRadius:  2,
		Zoom:          1,
		ColorScale:    int(Scale250),

		FrameCount:     1000,
		StartParameter: C(-0.79, 0.155),
		ParameterStep:  C(0.00008, 0.00008),
		StartPalette:   Palette{R: 4, G: 1, B: 9},
		PaletteStep:    Palette{R: 1, G: 1, B: 1},

		EpsilonDivisor:         2,
		BoundaryPointCount:     DefaultBoundaryPoints,
		BoundaryTestIterations: DefaultBoundaryTestIterations,

		FrameRate: 30,
	}
}

// LoadParams reads a JSON parameter file. Fields missing from the file keep
// the values of DefaultParams.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Params{}, fmt.Errorf("julia: read params: %w", err)
	}
	p := DefaultParams()
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return p, nil
}

// Config returns the render configuration.
func (p Params) Config() Config {
	return Config{
		Width:         p.Width,
		Height:        p.Height,
		MaxIterations: p.MaxIterations,
		EscapeRadius:  p.EscapeRadius,
		Zoom:          p.Zoom,
		Scale:         ColorScale(p.ColorScale),
	}
}

// Trajectory returns the animation trajectory.
func (p Params) Trajectory() Trajectory {
	return Trajectory{
		Start:          p.StartParameter,
		Step:           p.ParameterStep,
		StartPalette:   p.StartPalette,
		PaletteStep:    p.PaletteStep,
		PaletteModulus: p.PaletteModulus,
		Frames:         p.FrameCount,
	}
}

// Boundary returns the boundary solver configuration.
func (p Params) Boundary() (BoundaryConfig, error) {
	conv, err := ParseScaleConvention(p.ScaleConvention)
	if err != nil {
		return BoundaryConfig{}, err
	}
	return BoundaryConfig{
		Points:         p.BoundaryPointCount,
		TestIterations: p.BoundaryTestIterations,
		Epsilon:        p.EpsilonDivisor,
		Convention:     conv,
		MaxRounds:      p.BoundaryMaxRounds,
	}, nil
}

// Validate checks the render configuration and the frame count.
// The boundary fields are checked by Boundary and BoundaryConfig.Validate.
func (p Params) Validate() error {
	if p.ColorScale < 0 || p.ColorScale > 255 {
		return invalidf("color scale %d must be 250 or 255", p.ColorScale)
	}
	if err := p.Config().Validate(); err != nil {
		return err
	}
	if p.FrameCount < 0 {
		return invalidf("frame count %d must not be negative", p.FrameCount)
	}
	if !p.StartParameter.IsFinite() || !p.ParameterStep.IsFinite() {
		return invalidf("trajectory parameters must be finite")
	}
	return nil
}

// ParseScaleConvention parses "reciprocal" or "complement". The empty
// string means ScaleReciprocal.
func ParseScaleConvention(s string) (ScaleConvention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reciprocal":
		return ScaleReciprocal, nil
	case "complement":
		return ScaleComplement, nil
	default:
		return 0, invalidf("unknown scale convention %q", s)
	}
}
