package julia

// Option configures a Synthesizer or BoundarySolver during creation.
//
// Example:
//
//	// Default: one worker per GOMAXPROCS, 64x64 tiles
//	s, err := julia.NewSynthesizer(cfg)
//
//	// Single worker, useful for reproducing a frame in a profiler
//	s, err := julia.NewSynthesizer(cfg, julia.WithWorkers(1))
type Option func(*options)

// options holds the optional settings shared by the parallel components.
type options struct {
	workers        int
	tileW, tileH   int
	maxRasterBytes int64

	// colorTables is the number of palette color tables a synthesizer
	// keeps; 0 means DefaultColorTables and a negative value disables them.
	colorTables int
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		workers:        0, // GOMAXPROCS
		tileW:          0, // parallel.TileWidth
		tileH:          0, // parallel.TileHeight
		maxRasterBytes: DefaultMaxRasterBytes,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWorkers sets the worker pool size. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTileSize sets the size of the pixel tiles handed to workers.
// Non-positive values keep the 64x64 default. Output does not depend on the
// tile size.
func WithTileSize(w, h int) Option {
	return func(o *options) {
		o.tileW = w
		o.tileH = h
	}
}

// WithMaxRasterBytes bounds the pixel buffer of a single raster. Rendering a
// larger raster fails with ErrAllocation before any work is dispatched.
func WithMaxRasterBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRasterBytes = n
		}
	}
}

// WithColorTables sets how many per-palette color tables a Synthesizer keeps
// in its least recently used cache. A trajectory with a palette modulus
// revisits the same palettes, so their tables are built once. Zero keeps
// DefaultColorTables; a negative value maps every pixel directly.
func WithColorTables(n int) Option {
	return func(o *options) {
		o.colorTables = n
	}
}
