package julia

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/julia/internal/parallel"
)

// ScaleConvention selects how the epsilon divisor becomes the factor that
// both scales test parameters and contracts unbounded points.
type ScaleConvention uint8

const (
	// ScaleReciprocal uses the factor 1/ε.
	ScaleReciprocal ScaleConvention = iota

	// ScaleComplement uses the factor (ε-1)/ε.
	ScaleComplement
)

// String returns the convention name.
func (c ScaleConvention) String() string {
	switch c {
	case ScaleReciprocal:
		return "reciprocal"
	case ScaleComplement:
		return "complement"
	default:
		return fmt.Sprintf("ScaleConvention(%d)", uint8(c))
	}
}

// Boundary solver defaults.
const (
	DefaultBoundaryPoints         = 100
	DefaultBoundaryTestIterations = 50
	DefaultMaxRounds              = 10_000

	// maxBoundaryPoints bounds the curve allocation (16M points, 256MB).
	maxBoundaryPoints = 1 << 24
)

// BoundaryConfig parameterizes the boundary contraction.
type BoundaryConfig struct {
	// Points is the number of curve samples. Zero means DefaultBoundaryPoints.
	Points int

	// TestIterations is the orbit length of the bounded test.
	// Zero means DefaultBoundaryTestIterations.
	TestIterations int

	// Epsilon is the divisor the scale factor is derived from.
	Epsilon float64

	// Convention selects the scale factor formula.
	Convention ScaleConvention

	// MaxRounds caps the refinement. Zero means DefaultMaxRounds.
	MaxRounds int
}

func (c BoundaryConfig) withDefaults() BoundaryConfig {
	if c.Points == 0 {
		c.Points = DefaultBoundaryPoints
	}
	if c.TestIterations == 0 {
		c.TestIterations = DefaultBoundaryTestIterations
	}
	if c.MaxRounds == 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	return c
}

// Validate checks the configuration invariants.
// The returned error wraps ErrInvalidConfig or ErrAllocation.
func (c BoundaryConfig) Validate() error {
	c = c.withDefaults()
	switch {
	case c.Points < 0:
		return invalidf("boundary points %d must be positive", c.Points)
	case c.Points > maxBoundaryPoints:
		return fmt.Errorf("%w: %d boundary points exceeds %d", ErrAllocation, c.Points, maxBoundaryPoints)
	case c.TestIterations < 0:
		return invalidf("boundary test iterations %d must be positive", c.TestIterations)
	case c.MaxRounds < 0:
		return invalidf("boundary max rounds %d must be positive", c.MaxRounds)
	case !(c.Epsilon >= 1) || math.IsInf(c.Epsilon, 0):
		// Below 1 the reciprocal factor exceeds 1 and pushes points outward.
		return invalidf("epsilon %v must be finite and at least 1", c.Epsilon)
	case c.Convention != ScaleReciprocal && c.Convention != ScaleComplement:
		return invalidf("unknown scale convention %v", c.Convention)
	}
	return nil
}

// Factor returns the scale factor derived from Epsilon. It lies in [0, 1]
// for a valid configuration, so contracted points move toward the origin.
func (c BoundaryConfig) Factor() float64 {
	if c.Convention == ScaleComplement {
		return (c.Epsilon - 1) / c.Epsilon
	}
	return 1 / c.Epsilon
}

// UnitCircle returns n points evenly spaced on the unit circle, starting at
// 1 and running counter-clockwise.
func UnitCircle(n int) []Complex {
	pts := make([]Complex, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Complex{Re: math.Cos(theta), Im: math.Sin(theta)}
	}
	return pts
}

// Bounded reports whether the orbit of 0 under z ↦ z² + c stays within
// |z|² ≤ 4 for the given number of iterations.
func Bounded(c Complex, iterations int) bool {
	var z Complex
	for range iterations {
		z = z.Sq().Add(c)
		if z.Abs2() > 4 {
			return false
		}
	}
	return true
}

// Boundary is the result of a contraction run.
type Boundary struct {
	// Points is the curve in traversal order.
	Points []Complex

	// Rounds is the number of completed rounds.
	Rounds int

	// Converged reports whether every point tested bounded in the last round.
	Converged bool
}

// BoundarySolver contracts a sampled unit circle toward the boundary of the
// parameters whose scaled orbit of 0 stays bounded.
//
// Each round tests every point in parallel, contracting the ones that fail,
// and records one flag per point. After the round barrier the flags are
// AND-reduced; the curve has converged when all are set. Rounds run
// strictly one after another.
type BoundarySolver struct {
	cfg  BoundaryConfig
	pool *parallel.WorkerPool
}

// NewBoundarySolver validates cfg and starts a worker pool.
// Only WithWorkers applies to the solver.
func NewBoundarySolver(cfg BoundaryConfig, opts ...Option) (*BoundarySolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &BoundarySolver{
		cfg:  cfg.withDefaults(),
		pool: parallel.NewWorkerPool(o.workers),
	}, nil
}

// Config returns the (defaulted) boundary configuration.
func (s *BoundarySolver) Config() BoundaryConfig {
	return s.cfg
}

// Solve runs rounds until the curve converges, MaxRounds is reached, or
// ctx is done.
//
// On non-convergence the curve reached so far is returned together with a
// *NotConvergedError (matching ErrNotConverged). On cancellation the curve
// is returned with ctx.Err().
func (s *BoundarySolver) Solve(ctx context.Context) (*Boundary, error) {
	cfg := s.cfg
	factor := cfg.Factor()

	b := &Boundary{Points: UnitCircle(cfg.Points)}
	bounded := make([]bool, cfg.Points)
	ranges := parallel.Split(cfg.Points, s.pool.Workers()*4)

	log := Logger()
	last := 0
	for b.Rounds < cfg.MaxRounds {
		if err := ctx.Err(); err != nil {
			return b, err
		}

		ok := parallel.ForEachRange(s.pool, ranges, func(r parallel.Range) {
			for i := r.Lo; i < r.Hi; i++ {
				scaled := b.Points[i].Scale(factor)
				bounded[i] = Bounded(scaled, cfg.TestIterations)
				if !bounded[i] {
					b.Points[i] = scaled
				}
			}
		})
		if !ok {
			return b, ErrClosed
		}
		b.Rounds++

		last = countTrue(bounded)
		log.Debug("julia: boundary round",
			slog.Int("round", b.Rounds),
			slog.Int("bounded", last),
			slog.Int("points", cfg.Points))

		if last == cfg.Points {
			b.Converged = true
			return b, nil
		}
	}
	return b, &NotConvergedError{Rounds: b.Rounds, Bounded: last, Points: cfg.Points}
}

// Close stops the worker pool. It is safe to call multiple times.
func (s *BoundarySolver) Close() {
	s.pool.Close()
}

// SolveBoundary is a one-shot helper around NewBoundarySolver and Solve.
func SolveBoundary(ctx context.Context, cfg BoundaryConfig, opts ...Option) (*Boundary, error) {
	s, err := NewBoundarySolver(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Solve(ctx)
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
