package julia

import (
	"testing"
)

func TestPlanePoint(t *testing.T) {
	cfg := Config{Width: 800, Height: 600, MaxIterations: 10, EscapeRadius: 2}

	tests := []struct {
		name string
		x, y int
		zoom float64
		want Complex
	}{
		{"center", 400, 300, 0, C(0, 0)},
		{"top left", 0, 0, 0, C(-2, -1.5)},
		{"right edge", 800, 300, 1, C(2, 0)},
		{"zoomed out", 0, 300, 2, C(-4, 0)},
		{"zoomed in", 0, 300, 4, C(-8, 0)},
		{"quarter width below center", 400, 500, 1, C(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.Zoom = tt.zoom
			got := PlanePoint(tt.x, tt.y, c)
			if got != tt.want {
				t.Errorf("PlanePoint(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestEscapeTime_ZeroParameterCenter(t *testing.T) {
	for _, size := range []int{2, 4, 100, 800} {
		cfg := Config{Width: size, Height: size, MaxIterations: 64, EscapeRadius: 2}
		x, y := size/2, size/2
		if got := EscapeTime(x, y, C(0, 0), cfg); got != cfg.MaxIterations {
			t.Errorf("size %d: EscapeTime(center, c=0) = %d, want %d", size, got, cfg.MaxIterations)
		}
	}
}

// With c = 0 the orbit is z₀^(2^n): every pixel strictly inside the unit
// disk stays bounded forever.
func TestEscapeTime_ZeroParameterUnitDisk(t *testing.T) {
	cfg := Config{Width: 64, Height: 64, MaxIterations: 50, EscapeRadius: 2}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			z := PlanePoint(x, y, cfg)
			if z.Abs2() >= 1 {
				continue
			}
			if got := EscapeTime(x, y, C(0, 0), cfg); got != cfg.MaxIterations {
				t.Fatalf("EscapeTime(%d, %d, 0) = %d, want %d (|z₀|² = %v)", x, y, got, cfg.MaxIterations, z.Abs2())
			}
		}
	}
}

func TestEscapeTime_OutsideRadiusIsZero(t *testing.T) {
	cfg := Config{Width: 40, Height: 40, MaxIterations: 100, EscapeRadius: 1.5, Zoom: 2}
	r2 := cfg.EscapeRadius * cfg.EscapeRadius

	params := []Complex{C(0, 0), C(-0.79, 0.155), C(0, -4.5), C(-2, 0)}
	for _, c := range params {
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				if PlanePoint(x, y, cfg).Abs2() <= r2 {
					continue
				}
				if got := EscapeTime(x, y, c, cfg); got != 0 {
					t.Fatalf("c=%v: EscapeTime(%d, %d) = %d, want 0", c, x, y, got)
				}
			}
		}
	}
}

func TestEscapeTime_Range(t *testing.T) {
	cfg := Config{Width: 32, Height: 32, MaxIterations: 20, EscapeRadius: 2}
	c := C(-0.4, 0.6)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			k := EscapeTime(x, y, c, cfg)
			if k < 0 || k > cfg.MaxIterations {
				t.Fatalf("EscapeTime(%d, %d) = %d, outside [0, %d]", x, y, k, cfg.MaxIterations)
			}
		}
	}
}

// goldenCounts4 holds the iteration counts of a 4x4 raster with
// maxIterations 10, escape radius 2 and c = -0.79+0.155i, row-major.
var goldenCounts4 = []int{
	0, 0, 0, 0,
	0, 0, 1, 0,
	0, 10, 10, 10,
	0, 0, 1, 0,
}

// goldenCounts8 is the same scene at 8x8.
var goldenCounts8 = []int{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 1, 1, 1, 0, 0,
	0, 0, 1, 3, 10, 5, 4, 1,
	0, 3, 10, 10, 10, 10, 10, 3,
	0, 1, 4, 5, 10, 3, 1, 0,
	0, 0, 0, 1, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

func TestEscapeTime_Golden(t *testing.T) {
	c := C(-0.79, 0.155)

	tests := []struct {
		name string
		size int
		want []int
	}{
		{"4x4", 4, goldenCounts4},
		{"8x8", 8, goldenCounts8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Width: tt.size, Height: tt.size, MaxIterations: 10, EscapeRadius: 2}
			for run := 0; run < 3; run++ {
				for y := 0; y < tt.size; y++ {
					for x := 0; x < tt.size; x++ {
						got := EscapeTime(x, y, c, cfg)
						if want := tt.want[y*tt.size+x]; got != want {
							t.Errorf("run %d: EscapeTime(%d, %d) = %d, want %d", run, x, y, got, want)
						}
					}
				}
			}
		})
	}
}

func BenchmarkEscapeTime(b *testing.B) {
	cfg := DefaultConfig()
	c := C(-0.79, 0.155)
	b.ReportAllocs()
	for b.Loop() {
		_ = EscapeTime(400, 400, c, cfg)
	}
}
