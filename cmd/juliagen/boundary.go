package main

import (
	"context"
	"errors"
	"flag"

	"github.com/gogpu/julia"
	"github.com/gogpu/julia/plot"
)

func runBoundary(ctx context.Context, g *globals, args []string) error {
	p := g.params
	fs := flag.NewFlagSet("boundary", flag.ContinueOnError)
	fs.Float64Var(&p.EpsilonDivisor, "epsilon", p.EpsilonDivisor, "epsilon divisor of the scale factor")
	fs.IntVar(&p.BoundaryPointCount, "points", p.BoundaryPointCount, "number of curve points")
	fs.IntVar(&p.BoundaryTestIterations, "test-iterations", p.BoundaryTestIterations, "orbit length of the bounded test")
	fs.IntVar(&p.BoundaryMaxRounds, "rounds", p.BoundaryMaxRounds, "maximum contraction rounds (0 = default)")
	fs.StringVar(&p.ScaleConvention, "convention", p.ScaleConvention, "scale convention: reciprocal or complement")
	var (
		output = fs.String("plot", "plot.png", "output plot file (empty skips the plot)")
		list   = fs.Bool("print", false, "print the curve points")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := p.Boundary()
	if err != nil {
		return err
	}
	b, err := julia.SolveBoundary(ctx, cfg, g.options()...)
	var nc *julia.NotConvergedError
	switch {
	case errors.As(err, &nc):
		g.out.Printf("not converged after %d rounds: %d of %d points bounded\n", nc.Rounds, nc.Bounded, nc.Points)
	case err != nil:
		return err
	default:
		g.out.Printf("converged after %d rounds with %d points\n", b.Rounds, len(b.Points))
	}

	if *list {
		for i, z := range b.Points {
			g.out.Printf("%d\t%.12g\t%.12g\n", i, z.Re, z.Im)
		}
	}
	if *output != "" {
		if err := plot.SavePNG(*output, b.Points, plot.DefaultOptions()); err != nil {
			return err
		}
		g.out.Printf("saved %s\n", *output)
	}
	return err
}
