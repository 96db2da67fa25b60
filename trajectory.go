package julia

import "iter"

// Frame is one step of an animation.
type Frame struct {
	Index   int
	C       Complex
	Palette Palette
}

// Trajectory is a linear sweep of the parameter c with a cycling palette.
//
// Frame i uses c = Start + i*Step. Each palette channel is
// start + (i mod M)*step with M taken from PaletteModulus; a zero modulus
// leaves that channel growing without wrapping.
type Trajectory struct {
	Start, Step Complex

	StartPalette   Palette
	PaletteStep    Palette
	PaletteModulus Palette

	// Frames is the number of frames in the sequence.
	Frames int
}

// Len returns the number of frames, never negative.
func (t Trajectory) Len() int {
	return max(t.Frames, 0)
}

// At returns frame i. It does not check i against Frames.
func (t Trajectory) At(i int) Frame {
	fi := float64(i)
	return Frame{
		Index: i,
		C: Complex{
			Re: t.Start.Re + fi*t.Step.Re,
			Im: t.Start.Im + fi*t.Step.Im,
		},
		Palette: Palette{
			R: cycle(i, t.StartPalette.R, t.PaletteStep.R, t.PaletteModulus.R),
			G: cycle(i, t.StartPalette.G, t.PaletteStep.G, t.PaletteModulus.G),
			B: cycle(i, t.StartPalette.B, t.PaletteStep.B, t.PaletteModulus.B),
		},
	}
}

// All returns the frames in index order. The sequence is lazy and can be
// ranged over any number of times.
func (t Trajectory) All() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for i := range t.Len() {
			if !yield(t.At(i)) {
				return
			}
		}
	}
}

func cycle(i int, start, step, modulus uint32) uint32 {
	n := uint32(i)
	if modulus != 0 {
		n %= modulus
	}
	return start + n*step
}
