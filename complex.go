package julia

import "math"

// Complex is a complex number as a pair of float64 components.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// C is a convenience function to create a Complex.
func C(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im}
}

// Mul returns z * w.
//
// Each product is rounded before it is summed so the result is the same on
// architectures that would otherwise fuse the multiply-add.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: float64(z.Re*w.Re) - float64(z.Im*w.Im),
		Im: float64(z.Re*w.Im) + float64(z.Im*w.Re),
	}
}

// Sq returns z * z.
func (z Complex) Sq() Complex {
	return Complex{
		Re: float64(z.Re*z.Re) - float64(z.Im*z.Im),
		Im: float64(2 * z.Re * z.Im),
	}
}

// Scale returns z multiplied by the real factor s.
func (z Complex) Scale(s float64) Complex {
	return Complex{Re: z.Re * s, Im: z.Im * s}
}

// Abs2 returns the squared magnitude |z|².
func (z Complex) Abs2() float64 {
	return float64(z.Re*z.Re) + float64(z.Im*z.Im)
}

// IsFinite reports whether both components are finite.
func (z Complex) IsFinite() bool {
	return !math.IsInf(z.Re, 0) && !math.IsNaN(z.Re) &&
		!math.IsInf(z.Im, 0) && !math.IsNaN(z.Im)
}

// Complex128 converts z to the built-in complex type.
func (z Complex) Complex128() complex128 {
	return complex(z.Re, z.Im)
}
