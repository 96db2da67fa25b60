package julia

import (
	"image/color"
	"math"
	"testing"
)

func TestMapColor(t *testing.T) {
	p := Palette{R: 4, G: 1, B: 9}

	tests := []struct {
		name    string
		k       int
		maxIter int
		p       Palette
		scale   ColorScale
		want    color.NRGBA
	}{
		{"zero count", 0, 10, p, Scale250, color.NRGBA{0, 0, 0, 250}},
		{"one step", 1, 10, p, Scale250, color.NRGBA{100, 25, 225, 250}},
		{"inside", 10, 10, p, Scale250, Inside},
		{"beyond cap is inside", 11, 10, p, Scale250, Inside},
		{"saturates", 5, 10, p, Scale250, color.NRGBA{255, 125, 255, 250}},
		{"scale 255", 1, 10, p, Scale255, color.NRGBA{102, 25, 229, 255}},
		{"zero scale means 250", 1, 10, p, 0, color.NRGBA{100, 25, 225, 250}},
		{"default palette frame 0", 149, 150, p, Scale250, color.NRGBA{255, 248, 255, 250}},
		{"zero palette", 3, 10, Palette{}, Scale250, color.NRGBA{0, 0, 0, 250}},
		{"negative count clamps", -1, 10, p, Scale250, color.NRGBA{0, 0, 0, 250}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapColor(tt.k, tt.maxIter, tt.p, tt.scale)
			if got != tt.want {
				t.Errorf("MapColor(%d, %d, %+v, %d) = %v, want %v",
					tt.k, tt.maxIter, tt.p, tt.scale, got, tt.want)
			}
		})
	}
}

func TestMapColor_InsideIsDistinct(t *testing.T) {
	// Non-inside pixels always carry the scale as alpha, so no count below
	// the cap can produce the inside color.
	palettes := []Palette{{}, {R: 4, G: 1, B: 9}, {R: math.MaxUint32, G: 0, B: 1}}
	for _, scale := range []ColorScale{Scale250, Scale255} {
		for _, p := range palettes {
			for k := 0; k < 50; k++ {
				if c := MapColor(k, 50, p, scale); c == Inside {
					t.Fatalf("MapColor(%d, 50, %+v, %d) = Inside", k, p, scale)
				}
			}
		}
	}
}

func TestMapColor_Monotonic(t *testing.T) {
	palettes := []Palette{
		{R: 4, G: 1, B: 9},
		{R: 1, G: 2, B: 3},
		{R: 1000, G: 0, B: 7},
	}
	const maxIter = 150
	for _, p := range palettes {
		prev := MapColor(0, maxIter, p, Scale250)
		for k := 1; k < maxIter; k++ {
			c := MapColor(k, maxIter, p, Scale250)
			if c.R < prev.R || c.G < prev.G || c.B < prev.B {
				t.Fatalf("palette %+v: MapColor(%d) = %v < MapColor(%d) = %v", p, k, c, k-1, prev)
			}
			prev = c
		}
	}
}

func TestMapColor_NoOverflow(t *testing.T) {
	// k*coefficient*scale overflows 64 bits here; the channel must saturate.
	c := MapColor(math.MaxInt32, math.MaxInt32+1, Palette{R: math.MaxUint32, G: 1, B: 0}, Scale255)
	if c.R != 255 {
		t.Errorf("R = %d, want 255", c.R)
	}
	if c.G != 254 {
		t.Errorf("G = %d, want 254", c.G)
	}
	if c.B != 0 {
		t.Errorf("B = %d, want 0", c.B)
	}
}

func BenchmarkMapColor(b *testing.B) {
	p := Palette{R: 4, G: 1, B: 9}
	b.ReportAllocs()
	for b.Loop() {
		_ = MapColor(37, 150, p, Scale250)
	}
}

func TestColorTable(t *testing.T) {
	p := Palette{R: 4, G: 100, B: 9}
	for _, scale := range []ColorScale{Scale250, Scale255} {
		table := ColorTable(37, p, scale)
		if len(table) != 38 {
			t.Fatalf("len = %d, want 38", len(table))
		}
		for k, got := range table {
			if want := MapColor(k, 37, p, scale); got != want {
				t.Errorf("scale %d: table[%d] = %v, want %v", scale, k, got, want)
			}
		}
	}
}
