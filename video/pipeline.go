package video

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/julia"
)

// DefaultFrameRate is used when Pipeline.FrameRate is zero.
const DefaultFrameRate = 30

// Pipeline renders an animation into a video: every frame is saved, traced
// to SVG when a Tracer is set, and the whole sequence is encoded once all
// frames are on disk.
//
// A Pipeline is a julia.FrameSink; Run drives it from a Synthesizer.
type Pipeline struct {
	// Dir holds the intermediate frame files. It is created if missing.
	Dir string

	// Format is the raster frame format. Empty means PNG.
	Format Format

	// FrameWidth and FrameHeight, when both positive, resample the raster
	// frames before they are saved.
	FrameWidth, FrameHeight int

	// Tracer, when set, converts every raster frame to frame_NNNN.svg and
	// the SVG frames are encoded instead of the rasters.
	Tracer Tracer

	// SVGWidth and SVGHeight, when both positive, rescale each traced frame.
	SVGWidth, SVGHeight int

	// Encoder assembles the video. Nil skips encoding and keeps the frames.
	Encoder Encoder

	// Output is the video file path.
	Output string

	// FrameRate in frames per second. Zero means DefaultFrameRate.
	FrameRate int

	// KeepFrames keeps the intermediate files after a successful encode.
	KeepFrames bool

	writer *FrameWriter
	frames int
}

func (p *Pipeline) frameWriter() *FrameWriter {
	if p.writer == nil {
		p.writer = &FrameWriter{
			Dir:    p.Dir,
			Format: p.Format,
			Width:  p.FrameWidth,
			Height: p.FrameHeight,
		}
	}
	return p.writer
}

// encodedExt is the extension of the files handed to the encoder.
func (p *Pipeline) encodedExt() string {
	if p.Tracer != nil {
		return "svg"
	}
	return p.Format.Ext()
}

// Prepare creates the frame directory and removes a stale output video and
// stale frames from an earlier run.
func (p *Pipeline) Prepare() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil { //nolint:gosec // frames are meant to be shared
		return fmt.Errorf("video: create frame dir: %w", err)
	}
	if p.Output != "" {
		if err := os.Remove(p.Output); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("video: remove stale output: %w", err)
		}
	}
	p.removeFrames()
	p.frames = 0
	return nil
}

// WriteFrame implements julia.FrameSink.
func (p *Pipeline) WriteFrame(ctx context.Context, f julia.Frame, r *julia.Raster) error {
	w := p.frameWriter()
	if err := w.WriteFrame(ctx, f, r); err != nil {
		return err
	}

	if p.Tracer != nil {
		src := w.Path(f.Index)
		dst := filepath.Join(p.Dir, FrameName(f.Index, "svg"))
		if err := p.Tracer.Trace(ctx, src, dst); err != nil {
			return fmt.Errorf("video: trace frame %d: %w", f.Index, err)
		}
		if p.SVGWidth > 0 && p.SVGHeight > 0 {
			srcW, srcH := r.Width(), r.Height()
			if w.Width > 0 && w.Height > 0 {
				srcW, srcH = w.Width, w.Height
			}
			if err := ResizeSVGFile(dst, srcW, srcH, p.SVGWidth, p.SVGHeight); err != nil {
				return err
			}
		}
	}

	p.frames++
	return nil
}

// Frames returns the number of frames written since Prepare.
func (p *Pipeline) Frames() int {
	return p.frames
}

// Finish encodes the written frames and, unless KeepFrames is set, removes
// the intermediate files.
func (p *Pipeline) Finish(ctx context.Context) error {
	if p.Encoder == nil {
		return nil
	}
	if p.frames == 0 {
		return errors.New("video: no frames to encode")
	}

	rate := p.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}

	pattern := filepath.Join(p.Dir, FramePattern(p.encodedExt()))
	if err := p.Encoder.Encode(ctx, pattern, p.Output, rate); err != nil {
		return fmt.Errorf("video: encode %s: %w", p.Output, err)
	}

	if !p.KeepFrames {
		p.removeFrames()
	}
	return nil
}

// Run prepares the pipeline, renders every frame of t with s, and encodes
// the result. It returns the number of frames rendered.
func (p *Pipeline) Run(ctx context.Context, s *julia.Synthesizer, t julia.Trajectory) (int, error) {
	if err := p.Prepare(); err != nil {
		return 0, err
	}

	start := time.Now()
	n, err := julia.Animate(ctx, s, t, p)
	if err != nil {
		return n, err
	}
	if err := p.Finish(ctx); err != nil {
		return n, err
	}

	julia.Logger().Info("video: pipeline finished",
		slog.Int("frames", n),
		slog.String("output", p.Output),
		slog.Duration("elapsed", time.Since(start)))
	return n, nil
}

// removeFrames deletes raster and traced frame files from Dir. Failures are
// logged, not returned.
func (p *Pipeline) removeFrames() {
	exts := []string{p.Format.Ext()}
	if p.Tracer != nil {
		exts = append(exts, "svg")
	}
	for _, ext := range exts {
		matches, err := filepath.Glob(filepath.Join(p.Dir, framePrefix+"*."+ext))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				julia.Logger().Warn("video: remove frame",
					slog.String("path", m),
					slog.String("error", err.Error()))
			}
		}
	}
}
