package julia

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"time"

	"github.com/gogpu/julia/internal/cache"
	"github.com/gogpu/julia/internal/parallel"
)

// DefaultColorTables is the number of palette color tables a Synthesizer
// keeps by default.
const DefaultColorTables = 32

// countBytes is the size of one Field count.
const countBytes = strconv.IntSize / 8

// Synthesizer evaluates escape-time fields over whole rasters.
//
// The raster is partitioned into disjoint tiles, one pool task per tile.
// Every task writes only the cells of its own tile and reads nothing but the
// shared, read-only parameter, palette and configuration, so the result is
// byte-identical for any worker count or tile size.
//
// Thread safety: Render and Iterations may be called concurrently; the
// calls share the worker pool.
type Synthesizer struct {
	cfg   Config
	opts  options
	pool  *parallel.WorkerPool
	tiles []parallel.Tile

	// colors maps a palette to its ColorTable; nil when tables are off.
	colors *cache.Cache[Palette, []color.NRGBA]
}

// NewSynthesizer validates cfg and starts a worker pool for it.
// Call Close when done to stop the workers.
func NewSynthesizer(cfg Config, opts ...Option) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	o := applyOptions(opts)

	s := &Synthesizer{
		cfg:   cfg,
		opts:  o,
		pool:  parallel.NewWorkerPool(o.workers),
		tiles: parallel.Partition(cfg.Width, cfg.Height, o.tileW, o.tileH),
	}
	if n := o.colorTables; n >= 0 && cfg.MaxIterations < cfg.Width*cfg.Height {
		if n == 0 {
			n = DefaultColorTables
		}
		s.colors = cache.New[Palette, []color.NRGBA](int64(n), nil)
	}

	Logger().Debug("julia: synthesizer started",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.Int("workers", s.pool.Workers()),
		slog.Int("tiles", len(s.tiles)))

	return s, nil
}

// Config returns the (defaulted) render configuration.
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// Workers returns the size of the worker pool.
func (s *Synthesizer) Workers() int {
	return s.pool.Workers()
}

// Render evaluates the field for parameter c and colors it with palette p.
// It blocks until every pixel has been written.
//
// The only failure is ErrAllocation (or ErrClosed after Close); no partial
// raster is ever returned.
func (s *Synthesizer) Render(c Complex, p Palette) (*Raster, error) {
	start := time.Now()

	r, err := newRaster(s.cfg.Width, s.cfg.Height, s.opts.maxRasterBytes)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg
	r2 := cfg.EscapeRadius * cfg.EscapeRadius
	table := s.colorTable(p)
	ok := parallel.ForEachTile(s.pool, s.tiles, func(t parallel.Tile) {
		for y := t.Y; y < t.Y+t.Height; y++ {
			for x := t.X; x < t.X+t.Width; x++ {
				k := escapeTime(PlanePoint(x, y, cfg), c, cfg.MaxIterations, r2)
				if table != nil {
					r.set(x, y, table[k])
				} else {
					r.set(x, y, MapColor(k, cfg.MaxIterations, p, cfg.Scale))
				}
			}
		}
	})
	if !ok {
		return nil, ErrClosed
	}

	attrs := []any{
		slog.Float64("re", c.Re),
		slog.Float64("im", c.Im),
		slog.Duration("elapsed", time.Since(start)),
	}
	if s.colors != nil {
		st := s.colors.Stats()
		attrs = append(attrs,
			slog.Int("color_tables", st.Len),
			slog.Float64("color_table_hit_rate", st.HitRate))
	}
	Logger().Debug("julia: raster rendered", attrs...)

	return r, nil
}

// colorTable returns the cached color table of p, building it on a miss.
// It returns nil when tables are disabled or larger than a raster.
func (s *Synthesizer) colorTable(p Palette) []color.NRGBA {
	if s.colors == nil {
		return nil
	}
	if t, ok := s.colors.Get(p); ok {
		return t
	}
	t := ColorTable(s.cfg.MaxIterations, p, s.cfg.Scale)
	s.colors.Set(p, t)
	return t
}

// Field is a grid of raw escape-time iteration counts.
type Field struct {
	Width, Height int

	// MaxIterations is the cap the counts were computed with.
	MaxIterations int

	// Counts holds one count per pixel, row-major.
	Counts []int
}

// At returns the iteration count of pixel (x, y).
func (f *Field) At(x, y int) int {
	return f.Counts[y*f.Width+x]
}

// Inside returns the number of pixels that never escaped.
func (f *Field) Inside() int {
	n := 0
	for _, k := range f.Counts {
		if k == f.MaxIterations {
			n++
		}
	}
	return n
}

// Iterations evaluates the raw iteration counts for parameter c without
// coloring them.
func (s *Synthesizer) Iterations(c Complex) (*Field, error) {
	cfg := s.cfg
	// Counts share the raster byte budget.
	n := int64(cfg.Width) * int64(cfg.Height)
	if n > s.opts.maxRasterBytes/countBytes {
		return nil, fmt.Errorf("%w: field %dx%d too large", ErrAllocation, cfg.Width, cfg.Height)
	}

	f := &Field{
		Width:         cfg.Width,
		Height:        cfg.Height,
		MaxIterations: cfg.MaxIterations,
		Counts:        make([]int, n),
	}

	r2 := cfg.EscapeRadius * cfg.EscapeRadius
	ok := parallel.ForEachTile(s.pool, s.tiles, func(t parallel.Tile) {
		for y := t.Y; y < t.Y+t.Height; y++ {
			row := f.Counts[y*cfg.Width : (y+1)*cfg.Width]
			for x := t.X; x < t.X+t.Width; x++ {
				row[x] = escapeTime(PlanePoint(x, y, cfg), c, cfg.MaxIterations, r2)
			}
		}
	})
	if !ok {
		return nil, ErrClosed
	}
	return f, nil
}

// Close stops the worker pool. It is safe to call multiple times.
func (s *Synthesizer) Close() {
	s.pool.Close()
}

// Render is a one-shot helper that validates cfg, renders a single raster
// and releases the workers.
func Render(cfg Config, c Complex, p Palette, opts ...Option) (*Raster, error) {
	s, err := NewSynthesizer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Render(c, p)
}
