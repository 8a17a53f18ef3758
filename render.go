package soft3d

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/gogpu/soft3d/internal/tiler"
)

// Structural errors reported by Render before any shader runs.
var (
	// ErrSizeMismatch reports color and depth targets of different sizes.
	ErrSizeMismatch = errors.New("soft3d: color and depth target sizes differ")
	// ErrNilDepth reports a depth-testing or depth-writing mode with no
	// depth target.
	ErrNilDepth = errors.New("soft3d: depth mode requires a depth target")
	// ErrNoBlender reports PixelBlend with a pipeline that does not
	// implement Blender.
	ErrNoBlender = errors.New("soft3d: PixelBlend requires the pipeline to implement Blender")
)

// IndexError reports an out-of-range entry in an indexed draw. The draw
// fails before any shader runs and writes nothing.
type IndexError struct {
	// Pos is the position of the bad entry in the index stream.
	Pos int
	// Index is the offending value.
	Index int
	// Len is the length of the vertex stream.
	Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("soft3d: index %d at position %d out of range for %d vertices",
		e.Index, e.Pos, e.Len)
}

// renderConfig holds the fixed-function state for one draw.
type renderConfig struct {
	kind     PrimitiveKind
	coord    CoordinateMode
	cull     CullMode
	depth    DepthMode
	pixel    PixelMode
	workers  int
	tileSize int
}

func defaultConfig() renderConfig {
	return renderConfig{
		kind:  Triangles,
		coord: Vulkan,
		cull:  CullBack,
		depth: DepthLessWrite,
		pixel: PixelWrite,
	}
}

// RenderOption configures a single Render call. Unset options keep their
// defaults: Triangles, Vulkan coordinates, back-face culling, less-write
// depth testing, plain color writes, serial execution.
type RenderOption func(*renderConfig)

// WithPrimitive selects how the vertex stream is chunked into primitives.
func WithPrimitive(k PrimitiveKind) RenderOption {
	return func(c *renderConfig) { c.kind = k }
}

// WithCoordinateMode selects the clip-space conventions of the pipeline's
// vertex stage.
func WithCoordinateMode(m CoordinateMode) RenderOption {
	return func(c *renderConfig) { c.coord = m }
}

// WithCull selects which triangle facing is discarded.
func WithCull(m CullMode) RenderOption {
	return func(c *renderConfig) { c.cull = m }
}

// WithDepth selects the depth comparison and write behavior.
func WithDepth(m DepthMode) RenderOption {
	return func(c *renderConfig) { c.depth = m }
}

// WithPixelMode selects how shaded fragments reach the color target.
func WithPixelMode(m PixelMode) RenderOption {
	return func(c *renderConfig) { c.pixel = m }
}

// WithWorkers enables tiled parallel rasterization across n workers.
// n of 0 or 1 keeps the serial path; negative n uses GOMAXPROCS. For every
// input the parallel path produces targets bitwise identical to the
// serial one.
func WithWorkers(n int) RenderOption {
	return func(c *renderConfig) { c.workers = n }
}

// WithTileSize overrides the tile edge length used by the parallel path.
// Non-positive values keep the default (64 pixels, reduced automatically
// for small targets).
func WithTileSize(px int) RenderOption {
	return func(c *renderConfig) { c.tileSize = px }
}

// Render draws the vertex stream into the color and depth targets using
// the pipeline's stages. Vertices are read sequentially; primitives take
// effect in submission order.
//
// Either target may be nil or [Empty]: a nil color target discards
// fragments (a depth-only pass), and a nil depth target is valid when the
// depth mode neither tests nor writes. Non-empty targets must agree on
// size.
//
// Render returns only when every primitive has been fully processed and
// the targets updated.
func Render[V any, D Varying[D], P any](pipe Pipeline[V, D, P], verts []V, color Target[P], depth Target[float64], opts ...RenderOption) error {
	return renderDraw(pipe, verts, nil, color, depth, opts)
}

// RenderIndexed is Render for indexed draws: the stream is
// verts[indices[0]], verts[indices[1]], ... with the vertex stage invoked
// once per distinct index. An out-of-range index fails the draw with an
// [IndexError] before any shader runs. A nil index slice renders the
// vertices sequentially, like Render.
func RenderIndexed[V any, D Varying[D], P any](pipe Pipeline[V, D, P], verts []V, indices []int, color Target[P], depth Target[float64], opts ...RenderOption) error {
	return renderDraw(pipe, verts, indices, color, depth, opts)
}

func renderDraw[V any, D Varying[D], P any](pipe Pipeline[V, D, P], verts []V, indices []int, color Target[P], depth Target[float64], opts []RenderOption) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if color == nil {
		color = Empty[P]{}
	}
	st := &rastState[D, P]{
		frag:      pipe.Fragment,
		color:     color,
		depthMode: cfg.depth,
		pixelMode: cfg.pixel,
	}
	if cfg.pixel == PixelBlend {
		bl, ok := any(pipe).(Blender[P])
		if !ok {
			return ErrNoBlender
		}
		st.blend = bl.Blend
	}
	if depth == nil {
		if cfg.depth.usesDepth() {
			return ErrNilDepth
		}
		depth = Empty[float64]{}
	}
	st.depth = depth

	// The render extent comes from the color target, or from the depth
	// target when the color target is empty. Empty targets (zero size)
	// never constrain the extent and are exempt from the size check.
	cw, ch := color.Width(), color.Height()
	dw, dh := depth.Width(), depth.Height()
	colorEmpty := cw <= 0 || ch <= 0
	depthEmpty := dw <= 0 || dh <= 0
	w, h := cw, ch
	switch {
	case colorEmpty && depthEmpty:
		return nil
	case colorEmpty:
		w, h = dw, dh
	case !depthEmpty && (cw != dw || ch != dh):
		return fmt.Errorf("%w: color %dx%d, depth %dx%d", ErrSizeMismatch, cw, ch, dw, dh)
	}

	n := len(verts)
	if indices != nil {
		for pos, idx := range indices {
			if idx < 0 || idx >= len(verts) {
				return &IndexError{Pos: pos, Index: idx, Len: len(verts)}
			}
		}
		n = len(indices)
	}
	if n == 0 {
		return nil
	}

	fetch := makeFetch(pipe, verts, indices)
	prims, dropped := preparePrims(pipe, cfg, fetch, n, w, h)

	Logger().Debug("soft3d: render",
		"primitive", cfg.kind.String(),
		"stream", n,
		"rasterized", len(prims),
		"dropped", dropped,
		"workers", cfg.workers)

	if len(prims) == 0 {
		return nil
	}

	workers := cfg.workers
	if workers < 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 1 {
		for i := range prims {
			st.rasterize(&prims[i], 0, 0, w, h)
		}
		return nil
	}

	renderTiled(st, prims, w, h, workers, cfg.tileSize)
	return nil
}

// makeFetch returns the vertex-stage accessor for the draw. Non-indexed
// draws transform every vertex once, up front. Indexed draws memoize per
// index so shared vertices are transformed once; the cache lives for the
// duration of the call.
func makeFetch[V any, D Varying[D], P any](pipe Pipeline[V, D, P], verts []V, indices []int) func(int) ClipVertex[D] {
	if indices == nil {
		out := make([]ClipVertex[D], len(verts))
		for i := range verts {
			pos, data := pipe.Vertex(verts[i])
			out[i] = ClipVertex[D]{Pos: pos, Data: data}
		}
		return func(k int) ClipVertex[D] { return out[k] }
	}

	cache := make([]ClipVertex[D], len(verts))
	seen := make([]bool, len(verts))
	return func(k int) ClipVertex[D] {
		i := indices[k]
		if !seen[i] {
			pos, data := pipe.Vertex(verts[i])
			cache[i] = ClipVertex[D]{Pos: pos, Data: data}
			seen[i] = true
		}
		return cache[i]
	}
}

// preparePrims runs primitive assembly, the optional geometry stage,
// clipping, projection and culling, producing the screen-space primitives
// to rasterize and the count of primitives dropped for numeric
// degeneracy.
func preparePrims[V any, D Varying[D], P any](pipe Pipeline[V, D, P], cfg renderConfig, fetch func(int) ClipVertex[D], n, w, h int) ([]screenPrim[D], int) {
	arity := cfg.kind.arity()
	gs, hasGS := any(pipe).(GeometryShader[D])

	var clipPrims [][3]ClipVertex[D]
	appendPrim := func(p []ClipVertex[D]) {
		var t [3]ClipVertex[D]
		copy(t[:], p)
		clipPrims = append(clipPrims, t)
	}

	buf := make([]ClipVertex[D], arity)
	cfg.kind.assemble(n, func(tuple [3]int) {
		for j := range arity {
			buf[j] = fetch(tuple[j])
		}
		if hasGS {
			gs.Geometry(buf, func(p []ClipVertex[D]) {
				if len(p) == arity {
					appendPrim(p)
				}
			})
		} else {
			appendPrim(buf)
		}
	})

	var (
		prims   []screenPrim[D]
		dropped int
		scratch [][3]ClipVertex[D]
	)
	for i := range clipPrims {
		cp := &clipPrims[i]
		switch arity {
		case 3:
			if trivialReject(cfg.coord, cp[:3]) {
				continue
			}
			scratch = clipTriangleNear(cfg.coord, cp[0], cp[1], cp[2], scratch[:0])
			for _, tri := range scratch {
				pr, ok := projectTriangle(cfg, tri, w, h)
				if !ok {
					dropped++
					continue
				}
				if pr.n != 0 {
					prims = append(prims, pr)
				}
			}
		case 2:
			if trivialReject(cfg.coord, cp[:2]) {
				continue
			}
			a, b, ok := clipLineNear(cfg.coord, cp[0], cp[1])
			if !ok {
				continue
			}
			pr, ok := projectLine(cfg, a, b, w, h)
			if !ok {
				dropped++
				continue
			}
			if pr.n != 0 {
				prims = append(prims, pr)
			}
		default:
			if trivialReject(cfg.coord, cp[:1]) {
				continue
			}
			sv, ok := project(cfg.coord, cp[0], w, h)
			if !ok {
				dropped++
				continue
			}
			x := int(math.Floor(sv.x))
			y := int(math.Floor(sv.y))
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			prims = append(prims, screenPrim[D]{
				v:  [3]screenVertex[D]{sv},
				n:  1,
				x0: x, y0: y, x1: x + 1, y1: y + 1,
			})
		}
	}
	return prims, dropped
}

// projectTriangle projects a clipped triangle to screen space, applies
// the cull test, normalizes the winding to positive orientation, and
// computes the clamped bounding box. A zero-valued prim with n == 0 means
// the triangle was culled or lies outside the target; ok == false means
// it was numerically degenerate.
func projectTriangle[D Varying[D]](cfg renderConfig, tri [3]ClipVertex[D], w, h int) (screenPrim[D], bool) {
	var sv [3]screenVertex[D]
	for i := range tri {
		var ok bool
		sv[i], ok = project(cfg.coord, tri[i], w, h)
		if !ok {
			return screenPrim[D]{}, false
		}
	}

	area2 := signedArea2(sv[0], sv[1], sv[2])
	if culled(cfg.cull, cfg.coord, area2) {
		return screenPrim[D]{}, true
	}
	if area2 < 0 {
		sv[1], sv[2] = sv[2], sv[1]
	}

	minX := math.Min(sv[0].x, math.Min(sv[1].x, sv[2].x))
	maxX := math.Max(sv[0].x, math.Max(sv[1].x, sv[2].x))
	minY := math.Min(sv[0].y, math.Min(sv[1].y, sv[2].y))
	maxY := math.Max(sv[0].y, math.Max(sv[1].y, sv[2].y))

	x0 := max(int(math.Floor(minX)), 0)
	y0 := max(int(math.Floor(minY)), 0)
	x1 := min(int(math.Ceil(maxX)), w)
	y1 := min(int(math.Ceil(maxY)), h)
	if x0 >= x1 || y0 >= y1 {
		return screenPrim[D]{}, true
	}

	return screenPrim[D]{
		v: sv, n: 3,
		x0: x0, y0: y0, x1: x1, y1: y1,
	}, true
}

// projectLine projects a clipped segment to screen space and computes a
// conservative clamped bounding box for tile binning.
func projectLine[D Varying[D]](cfg renderConfig, a, b ClipVertex[D], w, h int) (screenPrim[D], bool) {
	sa, ok := project(cfg.coord, a, w, h)
	if !ok {
		return screenPrim[D]{}, false
	}
	sb, ok := project(cfg.coord, b, w, h)
	if !ok {
		return screenPrim[D]{}, false
	}

	x0 := max(int(math.Floor(math.Min(sa.x, sb.x))), 0)
	y0 := max(int(math.Floor(math.Min(sa.y, sb.y))), 0)
	x1 := min(int(math.Floor(math.Max(sa.x, sb.x)))+1, w)
	y1 := min(int(math.Floor(math.Max(sa.y, sb.y)))+1, h)
	if x0 >= x1 || y0 >= y1 {
		return screenPrim[D]{}, true
	}

	return screenPrim[D]{
		v: [3]screenVertex[D]{sa, sb}, n: 2,
		x0: x0, y0: y0, x1: x1, y1: y1,
	}, true
}

// renderTiled partitions the target into tiles, bins primitives to the
// tiles their bounding boxes touch, and rasterizes the tiles on a worker
// pool. Within a tile, primitives replay in submission order; tiles own
// disjoint subrects, so the result is bitwise identical to the serial
// path regardless of worker count.
func renderTiled[D Varying[D], P any](st *rastState[D, P], prims []screenPrim[D], w, h, workers, tileSize int) {
	grid := tiler.NewGrid(w, h, tileSize)

	bins := make([][]int32, grid.Count())
	for i := range prims {
		pr := &prims[i]
		tx0, ty0, tx1, ty1 := grid.Overlap(pr.x0, pr.y0, pr.x1, pr.y1)
		for ty := ty0; ty < ty1; ty++ {
			for tx := tx0; tx < tx1; tx++ {
				ti := ty*grid.TilesX() + tx
				bins[ti] = append(bins[ti], int32(i))
			}
		}
	}

	jobs := make([]func(), 0, grid.Count())
	for ti := range bins {
		bin := bins[ti]
		if len(bin) == 0 {
			continue
		}
		t := grid.Tile(ti)
		jobs = append(jobs, func() {
			for _, pi := range bin {
				st.rasterize(&prims[pi], t.X0, t.Y0, t.X1, t.Y1)
			}
		})
	}

	Logger().Debug("soft3d: tiled dispatch",
		"tiles", grid.Count(),
		"jobs", len(jobs),
		"workers", workers,
		"tile_size", grid.TileSize())

	pool := tiler.NewPool(workers)
	defer pool.Close()
	pool.ExecuteAll(jobs)
}
