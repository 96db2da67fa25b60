package julia

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a render, boundary or trajectory
	// configuration violates its invariants. Nothing has been computed when
	// it is returned.
	ErrInvalidConfig = errors.New("julia: invalid configuration")

	// ErrAllocation is returned when a raster or curve of the requested size
	// cannot be allocated.
	ErrAllocation = errors.New("julia: allocation failed")

	// ErrNotConverged is returned when the boundary solver reaches its round
	// cap before every point tests bounded.
	ErrNotConverged = errors.New("julia: boundary did not converge")

	// ErrClosed is returned when a closed Synthesizer or BoundarySolver is used.
	ErrClosed = errors.New("julia: use of closed worker pool")
)

// NotConvergedError reports how many rounds the boundary solver ran before
// giving up.
type NotConvergedError struct {
	Rounds int

	// Bounded is the number of points that tested bounded in the last round.
	Bounded int

	// Points is the curve size.
	Points int
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("julia: boundary did not converge within %d rounds (%d/%d points bounded)",
		e.Rounds, e.Bounded, e.Points)
}

// Unwrap lets errors.Is match ErrNotConverged.
func (e *NotConvergedError) Unwrap() error {
	return ErrNotConverged
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}
