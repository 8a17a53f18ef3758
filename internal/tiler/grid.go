// Package tiler provides the tile partitioning and worker pool behind
// soft3d's parallel render path.
//
// Screen space is divided into fixed-size square tiles; each tile owns
// the exclusive right to write to the target subrect it covers, so tiles
// can be rasterized independently and in parallel. Primitives are binned
// to the tiles their bounding boxes touch and replayed per tile in
// submission order, which keeps the result identical to the serial path.
// Workers claim tiles from a shared cursor (see Pool), so load balances
// across tiles of very different primitive counts.
package tiler

// DefaultTileSize is the edge length of a tile in pixels. 64 keeps a
// tile's color and depth footprint within L1 cache while leaving enough
// tiles for even work distribution.
const DefaultTileSize = 64

// Tile is a rectangular screen-space region, half-open on both axes:
// x in [X0, X1), y in [Y0, Y1). Edge tiles may be smaller than the grid's
// tile size.
type Tile struct {
	X0, Y0, X1, Y1 int
}

// Grid divides a width x height target into square tiles. Tiles are
// addressed row-major: index = ty*TilesX() + tx.
type Grid struct {
	width    int
	height   int
	tileSize int
	tilesX   int
	tilesY   int
}

// NewGrid creates a grid covering the given target extent. A non-positive
// tileSize selects DefaultTileSize; the tile size is reduced to the
// target extent for targets smaller than one tile.
func NewGrid(width, height, tileSize int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if m := max(width, height); m > 0 && m < tileSize {
		tileSize = m
	}

	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tilesX:   (width + tileSize - 1) / tileSize,
		tilesY:   (height + tileSize - 1) / tileSize,
	}
}

// TilesX returns the number of tile columns.
func (g *Grid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g *Grid) TilesY() int { return g.tilesY }

// Count returns the total number of tiles.
func (g *Grid) Count() int { return g.tilesX * g.tilesY }

// TileSize returns the tile edge length in pixels.
func (g *Grid) TileSize() int { return g.tileSize }

// Tile returns the screen-space rect of the tile at the given row-major
// index. Edge tiles are clipped to the target extent.
func (g *Grid) Tile(i int) Tile {
	tx := i % g.tilesX
	ty := i / g.tilesX
	return Tile{
		X0: tx * g.tileSize,
		Y0: ty * g.tileSize,
		X1: min((tx+1)*g.tileSize, g.width),
		Y1: min((ty+1)*g.tileSize, g.height),
	}
}

// Overlap returns the half-open range of tile coordinates touched by the
// screen-space rect [x0, x1) x [y0, y1). The returned ranges are empty
// when the rect misses the grid.
func (g *Grid) Overlap(x0, y0, x1, y1 int) (tx0, ty0, tx1, ty1 int) {
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, g.width)
	y1 = min(y1, g.height)
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0
	}
	return x0 / g.tileSize, y0 / g.tileSize,
		(x1-1)/g.tileSize + 1, (y1-1)/g.tileSize + 1
}
