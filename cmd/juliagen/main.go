// Command juliagen renders Julia set images, animations and boundary plots.
//
// Usage:
//
//	juliagen [-config params.json] [-v] [-workers N] <command> [flags]
//
// Commands:
//
//	render    render one frame to a PNG file
//	animate   render the trajectory to frames and encode a video
//	boundary  contract the unit circle and plot the boundary
//	serve     stream the trajectory to browsers over websockets
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/julia"
)

// globals are the flags shared by every command.
type globals struct {
	params  julia.Params
	workers int
	out     *message.Printer
}

func (g *globals) options() []julia.Option {
	return []julia.Option{julia.WithWorkers(g.workers)}
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, g *globals, args []string) error
}

var commands = []command{
	{"render", "render one frame to a PNG file", runRender},
	{"animate", "render the trajectory to frames and encode a video", runAnimate},
	{"boundary", "contract the unit circle and plot the boundary", runBoundary},
	{"serve", "stream the trajectory to browsers over websockets", runServe},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("juliagen: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("juliagen", flag.ContinueOnError)
	var (
		config  = fs.String("config", "", "JSON parameter file")
		verbose = fs.Bool("v", false, "log debug output")
		workers = fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	)
	fs.Usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "usage: juliagen [flags] <command> [command flags]\n\ncommands:\n")
		for _, c := range commands {
			fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
		}
		fmt.Fprintf(w, "\nflags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	julia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	params := julia.DefaultParams()
	if *config != "" {
		p, err := julia.LoadParams(*config)
		if err != nil {
			return err
		}
		params = p
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		g := &globals{
			params:  params,
			workers: *workers,
			out:     message.NewPrinter(language.English),
		}
		return c.run(ctx, g, rest)
	}
	fs.Usage()
	return fmt.Errorf("unknown command %q", name)
}

// paramFlags registers the render parameters on fs, defaulting to p, so
// that command line values override the parameter file.
func paramFlags(fs *flag.FlagSet, p *julia.Params) {
	fs.IntVar(&p.Width, "width", p.Width, "raster width in pixels")
	fs.IntVar(&p.Height, "height", p.Height, "raster height in pixels")
	fs.IntVar(&p.MaxIterations, "iterations", p.MaxIterations, "maximum iterations per pixel")
	fs.Float64Var(&p.EscapeRadius, "radius", p.EscapeRadius, "escape radius")
	fs.Float64Var(&p.Zoom, "zoom", p.Zoom, "zoom factor (the width spans 4*zoom units)")
	fs.IntVar(&p.ColorScale, "scale", p.ColorScale, "color scale, 250 or 255")
}

// trajectoryFlags registers the animation parameters on fs.
func trajectoryFlags(fs *flag.FlagSet, p *julia.Params) {
	fs.IntVar(&p.FrameCount, "frames", p.FrameCount, "number of frames")
	fs.Float64Var(&p.StartParameter.Re, "re", p.StartParameter.Re, "real part of the first c")
	fs.Float64Var(&p.StartParameter.Im, "im", p.StartParameter.Im, "imaginary part of the first c")
	fs.Float64Var(&p.ParameterStep.Re, "step-re", p.ParameterStep.Re, "real step of c per frame")
	fs.Float64Var(&p.ParameterStep.Im, "step-im", p.ParameterStep.Im, "imaginary step of c per frame")
}
