package video

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/julia"
)

func renderTest(t *testing.T, w, h int) *julia.Raster {
	t.Helper()
	r, err := julia.Render(julia.Config{Width: w, Height: h, MaxIterations: 20, EscapeRadius: 2},
		julia.C(-0.79, 0.155), julia.Palette{R: 4, G: 1, B: 9}, julia.WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestFrameName(t *testing.T) {
	tests := []struct {
		i    int
		ext  string
		want string
	}{
		{0, "png", "frame_0000.png"},
		{42, "svg", "frame_0042.svg"},
		{999, "bmp", "frame_0999.bmp"},
		{12345, "png", "frame_12345.png"},
	}
	for _, tt := range tests {
		if got := FrameName(tt.i, tt.ext); got != tt.want {
			t.Errorf("FrameName(%d, %q) = %q, want %q", tt.i, tt.ext, got, tt.want)
		}
	}
	if got := FramePattern("svg"); got != "frame_%04d.svg" {
		t.Errorf("FramePattern(svg) = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", PNG, false},
		{"png", PNG, false},
		{".BMP", BMP, false},
		{"tif", TIFF, false},
		{"tiff", TIFF, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFrameWriter_Formats(t *testing.T) {
	r := renderTest(t, 12, 10)

	tests := []struct {
		format Format
		decode func(f *os.File) (image.Image, error)
	}{
		{PNG, func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{BMP, func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
		{TIFF, func(f *os.File) (image.Image, error) { return tiff.Decode(f) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w := &FrameWriter{Dir: t.TempDir(), Format: tt.format}
			if err := w.WriteFrame(context.Background(), julia.Frame{Index: 7}, r); err != nil {
				t.Fatalf("WriteFrame() error = %v", err)
			}

			f, err := os.Open(w.Path(7))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			img, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got := img.Bounds(); got != image.Rect(0, 0, 12, 10) {
				t.Errorf("bounds = %v, want 12x10", got)
			}
		})
	}
}

func TestFrameWriter_PNGPixels(t *testing.T) {
	r := renderTest(t, 8, 8)
	w := &FrameWriter{Dir: t.TempDir()}
	if err := w.WriteFrame(context.Background(), julia.Frame{Index: 0}, r); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(w.Path(0))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", img)
	}
	if got, want := nrgba.NRGBAAt(4, 4), r.NRGBAAt(4, 4); got != want {
		t.Errorf("center = %v, want %v", got, want)
	}
}

func TestFrameWriter_Resize(t *testing.T) {
	r := renderTest(t, 16, 16)
	w := &FrameWriter{Dir: t.TempDir(), Width: 40, Height: 30}
	if err := w.WriteFrame(context.Background(), julia.Frame{Index: 3}, r); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(w.Path(3))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Errorf("resized frame = %dx%d, want 40x30", cfg.Width, cfg.Height)
	}
}

func TestFrameWriter_MissingDir(t *testing.T) {
	r := renderTest(t, 4, 4)
	w := &FrameWriter{Dir: "/nonexistent/frames"}
	if err := w.WriteFrame(context.Background(), julia.Frame{Index: 0}, r); err == nil {
		t.Error("WriteFrame() into a missing directory succeeded")
	}
}

func TestFormatEncode_Unknown(t *testing.T) {
	err := Format("gif").Encode(nil, image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode() = %v, want ErrUnknownFormat", err)
	}
}
