// Package parallel provides the fork-join infrastructure used to evaluate
// escape-time fields and boundary rounds.
//
// A raster is cut into rectangular tiles; each tile is one task on a
// WorkerPool and owns a disjoint set of pixels, so tasks can write their
// results straight into a shared buffer without locking. Curves are cut
// into contiguous index ranges the same way.
package parallel

// Default tile dimensions. 64x64 RGBA pixels is 16KB, small enough for one
// tile's output to stay in L1 while it is being filled.
const (
	TileWidth  = 64
	TileHeight = 64
)

// Tile is a rectangle of pixels in raster space.
// Edge tiles are smaller when the raster is not a multiple of the tile size.
type Tile struct {
	// X and Y are the top-left pixel.
	X, Y int

	Width, Height int
}

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}
