package parallel

// Partition cuts a width x height raster into tiles of at most
// tileW x tileH pixels, in row-major order. The tiles cover every pixel
// exactly once.
//
// Non-positive tile dimensions fall back to TileWidth and TileHeight.
// An empty raster yields no tiles.
func Partition(width, height, tileW, tileH int) []Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	if tileW <= 0 {
		tileW = TileWidth
	}
	if tileH <= 0 {
		tileH = TileHeight
	}

	tilesX := (width + tileW - 1) / tileW
	tilesY := (height + tileH - 1) / tileH

	tiles := make([]Tile, 0, tilesX*tilesY)
	for y := 0; y < height; y += tileH {
		th := min(tileH, height-y)
		for x := 0; x < width; x += tileW {
			tw := min(tileW, width-x)
			tiles = append(tiles, Tile{X: x, Y: y, Width: tw, Height: th})
		}
	}
	return tiles
}

// Split cuts [0, n) into at most parts contiguous ranges of nearly equal
// length. Earlier ranges get the remainder, one extra index each.
func Split(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	parts = min(parts, n)

	ranges := make([]Range, parts)
	size, rem := n/parts, n%parts
	lo := 0
	for i := range ranges {
		hi := lo + size
		if i < rem {
			hi++
		}
		ranges[i] = Range{Lo: lo, Hi: hi}
		lo = hi
	}
	return ranges
}

// ForEachTile runs fn once per tile on the pool and waits for all of them.
// fn must only touch the pixels of the tile it is given.
func ForEachTile(p *WorkerPool, tiles []Tile, fn func(t Tile)) bool {
	if fn == nil {
		return p.IsRunning()
	}
	tasks := make([]func(), len(tiles))
	for i, t := range tiles {
		tasks[i] = func() { fn(t) }
	}
	return p.ExecuteAll(tasks)
}

// ForEachRange runs fn once per range on the pool and waits for all of them.
func ForEachRange(p *WorkerPool, ranges []Range, fn func(r Range)) bool {
	if fn == nil {
		return p.IsRunning()
	}
	tasks := make([]func(), len(ranges))
	for i, r := range ranges {
		tasks[i] = func() { fn(r) }
	}
	return p.ExecuteAll(tasks)
}
