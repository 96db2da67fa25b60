package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/gogpu/julia"
)

// ErrUnknownFormat is returned for frame formats other than png, bmp and tiff.
var ErrUnknownFormat = errors.New("video: unknown frame format")

// framePrefix and frameDigits define the frame file naming scheme.
const (
	framePrefix = "frame_"
	frameDigits = "%04d"
)

// FrameName returns the file name of frame i, e.g. frame_0042.png.
func FrameName(i int, ext string) string {
	return fmt.Sprintf(framePrefix+frameDigits+".%s", i, ext)
}

// FramePattern returns the printf-style pattern matching every FrameName
// with the given extension, as understood by ffmpeg.
func FramePattern(ext string) string {
	return framePrefix + frameDigits + "." + ext
}

// Format is a raster frame file format.
type Format string

// Supported frame formats.
const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat parses a format name. The empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case "":
		return PNG, nil
	case PNG, BMP, TIFF:
		return f, nil
	case "tif":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	if f == "" {
		return string(PNG)
	}
	return string(f)
}

// Encode writes img in format f.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG, "":
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// FrameWriter is a julia.FrameSink that saves every frame as a numbered
// file in Dir.
type FrameWriter struct {
	// Dir is the output directory. It must exist.
	Dir string

	// Format selects the file format. Empty means PNG.
	Format Format

	// Width and Height, when both positive, resample each frame to that
	// size with a Catmull-Rom filter before saving.
	Width, Height int
}

// Path returns the path frame i is written to.
func (w *FrameWriter) Path(i int) string {
	return filepath.Join(w.Dir, FrameName(i, w.Format.Ext()))
}

// WriteFrame implements julia.FrameSink.
func (w *FrameWriter) WriteFrame(_ context.Context, f julia.Frame, r *julia.Raster) error {
	var img image.Image = r.ToImage()
	if w.Width > 0 && w.Height > 0 && (w.Width != r.Width() || w.Height != r.Height()) {
		img = resize(img, w.Width, w.Height)
	}

	path := w.Path(f.Index)
	if err := saveImage(path, w.Format, img); err != nil {
		return fmt.Errorf("video: write frame %d: %w", f.Index, err)
	}

	julia.Logger().Debug("video: frame written",
		slog.Int("index", f.Index),
		slog.String("path", path))
	return nil
}

// resize scales img to width x height.
func resize(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

func saveImage(path string, f Format, img image.Image) error {
	file, err := os.Create(path) //nolint:gosec // path is built from the configured directory
	if err != nil {
		return err
	}
	if err := f.Encode(file, img); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
