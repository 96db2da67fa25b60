package julia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// FrameSink consumes rendered frames, for example by encoding them to files
// or streaming them to clients.
//
// The Animator calls WriteFrame in strictly increasing Frame.Index order and
// never concurrently. The raster must not be modified.
type FrameSink interface {
	WriteFrame(ctx context.Context, f Frame, r *Raster) error
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(ctx context.Context, f Frame, r *Raster) error

// WriteFrame calls fn(ctx, f, r).
func (fn FrameSinkFunc) WriteFrame(ctx context.Context, f Frame, r *Raster) error {
	return fn(ctx, f, r)
}

// MultiSink returns a sink that hands every frame to each of sinks in turn,
// stopping at the first error.
func MultiSink(sinks ...FrameSink) FrameSink {
	return FrameSinkFunc(func(ctx context.Context, f Frame, r *Raster) error {
		for _, s := range sinks {
			if err := s.WriteFrame(ctx, f, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// Animate renders every frame of t with s and hands the rasters to sink in
// index order. It returns the number of frames delivered.
//
// Frames are rendered one at a time; each frame already uses the whole
// worker pool. ctx is checked before every frame.
func Animate(ctx context.Context, s *Synthesizer, t Trajectory, sink FrameSink) (int, error) {
	if sink == nil {
		return 0, errors.New("julia: nil frame sink")
	}

	log := Logger()
	start := time.Now()
	log.Info("julia: animation started",
		slog.Int("frames", t.Len()),
		slog.Int("width", s.cfg.Width),
		slog.Int("height", s.cfg.Height))

	written := 0
	for f := range t.All() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		r, err := s.Render(f.C, f.Palette)
		if err != nil {
			return written, fmt.Errorf("julia: frame %d: %w", f.Index, err)
		}
		if err := sink.WriteFrame(ctx, f, r); err != nil {
			return written, fmt.Errorf("julia: frame %d: %w", f.Index, err)
		}
		written++
	}

	log.Info("julia: animation finished",
		slog.Int("frames", written),
		slog.Duration("elapsed", time.Since(start)))
	return written, nil
}
