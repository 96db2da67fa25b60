package main

import (
	"context"
	"flag"
	"time"

	"github.com/gogpu/julia"
	"github.com/gogpu/julia/video"
)

func runAnimate(ctx context.Context, g *globals, args []string) error {
	p := g.params
	fs := flag.NewFlagSet("animate", flag.ContinueOnError)
	paramFlags(fs, &p)
	trajectoryFlags(fs, &p)
	var (
		dir         = fs.String("dir", "frames", "directory for intermediate frames")
		output      = fs.String("video", "output.mp4", "output video file (empty keeps the frames only)")
		format      = fs.String("format", "png", "frame format: png, bmp or tiff")
		trace       = fs.Bool("trace", false, "trace frames to SVG with vtracer before encoding")
		vtracer     = fs.String("vtracer", "vtracer", "vtracer executable")
		ffmpeg      = fs.String("ffmpeg", "ffmpeg", "ffmpeg executable")
		codec       = fs.String("codec", "libx264", "ffmpeg video codec")
		svgWidth    = fs.Int("svg-width", 3600, "width of the traced SVG frames")
		svgHeight   = fs.Int("svg-height", 3600, "height of the traced SVG frames")
		frameWidth  = fs.Int("frame-width", 0, "resample raster frames to this width")
		frameHeight = fs.Int("frame-height", 0, "resample raster frames to this height")
		keep        = fs.Bool("keep", false, "keep intermediate frames")
	)
	fs.IntVar(&p.FrameRate, "fps", p.FrameRate, "video frame rate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	f, err := video.ParseFormat(*format)
	if err != nil {
		return err
	}

	pipe := &video.Pipeline{
		Dir:         *dir,
		Format:      f,
		FrameWidth:  *frameWidth,
		FrameHeight: *frameHeight,
		Output:      *output,
		FrameRate:   p.FrameRate,
		KeepFrames:  *keep,
	}
	if *trace {
		pipe.Tracer = video.VTracer{Path: *vtracer}
		pipe.SVGWidth, pipe.SVGHeight = *svgWidth, *svgHeight
	}
	if *output != "" {
		pipe.Encoder = video.FFmpeg{Path: *ffmpeg, Codec: *codec}
	}

	s, err := julia.NewSynthesizer(p.Config(), g.options()...)
	if err != nil {
		return err
	}
	defer s.Close()

	start := time.Now()
	n, err := pipe.Run(ctx, s, p.Trajectory())
	if err != nil {
		return err
	}

	dest := *output
	if dest == "" {
		dest = *dir
	}
	g.out.Printf("rendered %d frames (%d pixels) to %s in %v\n",
		n, n*p.Width*p.Height, dest, time.Since(start).Round(time.Millisecond))
	return nil
}
