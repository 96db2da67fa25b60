package video

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gogpu/julia"
)

// Runner runs an external program to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) error

// Run calls fn(ctx, name, args...).
func (fn RunnerFunc) Run(ctx context.Context, name string, args ...string) error {
	return fn(ctx, name, args...)
}

// ExecRunner runs programs with os/exec. The combined output of a failing
// program is included in the error.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	julia.Logger().Debug("video: exec",
		slog.String("cmd", name),
		slog.String("args", strings.Join(args, " ")))

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return fmt.Errorf("video: %s: %w", name, err)
		}
		return fmt.Errorf("video: %s: %w: %s", name, err, lastLine(msg))
	}
	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func runner(r Runner) Runner {
	if r == nil {
		return ExecRunner{}
	}
	return r
}

// Tracer converts a raster frame file into a vector file.
type Tracer interface {
	Trace(ctx context.Context, src, dst string) error
}

// VTracer traces frames with the vtracer command line tool.
type VTracer struct {
	// Path is the executable. Empty means "vtracer" from PATH.
	Path string

	// Runner runs the executable. Nil means ExecRunner.
	Runner Runner
}

// Trace implements Tracer.
func (v VTracer) Trace(ctx context.Context, src, dst string) error {
	path := v.Path
	if path == "" {
		path = "vtracer"
	}
	return runner(v.Runner).Run(ctx, path, "--input="+src, "--output="+dst)
}

// Encoder assembles numbered frame files into a video.
type Encoder interface {
	// Encode reads the frames matching the printf-style pattern and writes
	// the video to out at frameRate frames per second.
	Encode(ctx context.Context, pattern, out string, frameRate int) error
}

// FFmpeg encodes videos with the ffmpeg command line tool.
type FFmpeg struct {
	// Path is the executable. Empty means "ffmpeg" from PATH.
	Path string

	// Codec is the video codec. Empty means libx264.
	Codec string

	// Runner runs the executable. Nil means ExecRunner.
	Runner Runner
}

// Encode implements Encoder.
func (f FFmpeg) Encode(ctx context.Context, pattern, out string, frameRate int) error {
	path := f.Path
	if path == "" {
		path = "ffmpeg"
	}
	codec := f.Codec
	if codec == "" {
		codec = "libx264"
	}
	rate := strconv.Itoa(frameRate)
	return runner(f.Runner).Run(ctx, path,
		"-framerate", rate,
		"-i", pattern,
		"-c:v", codec,
		"-r", rate,
		out)
}
