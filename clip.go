package soft3d

import (
	"math"

	"golang.org/x/image/math/f64"
)

// screenVertex is a vertex after perspective division and viewport
// mapping: a screen-space position, a depth value in [0, 1], the clip-w
// reciprocal kept for perspective-correct interpolation, and the varyings.
type screenVertex[D any] struct {
	x, y float64
	z    float64
	invW float64
	data D
}

// screenPrim is a clipped, projected, cull-surviving primitive ready for
// scan conversion. n is the vertex count: 3 for a triangle, 2 for a line,
// 1 for a point. The bounding box is clamped to the target extent and
// half-open: x in [x0, x1), y in [y0, y1).
type screenPrim[D any] struct {
	v              [3]screenVertex[D]
	n              int
	x0, y0, x1, y1 int
}

// nearDist returns the signed distance of a clip-space position from the
// near plane: z = 0 for a [0, 1] z range, z = -w for [-1, 1]. Negative
// values are behind the plane.
func nearDist(m CoordinateMode, p f64.Vec4) float64 {
	if m.ZRange == MinusOneToOne {
		return p[2] + p[3]
	}
	return p[2]
}

// outsideFar reports whether the position is beyond the far plane z = w.
func outsideFar(p f64.Vec4) bool { return p[2] > p[3] }

// trivialReject reports whether all vertices of a primitive lie outside
// the same clip half-space, in which case the primitive cannot intersect
// the view volume.
func trivialReject[D any](m CoordinateMode, vs []ClipVertex[D]) bool {
	var left, right, below, above, near, far = true, true, true, true, true, true
	for i := range vs {
		p := vs[i].Pos
		left = left && p[0] < -p[3]
		right = right && p[0] > p[3]
		below = below && p[1] < -p[3]
		above = above && p[1] > p[3]
		near = near && nearDist(m, p) < 0
		far = far && outsideFar(p)
	}
	return left || right || below || above || near || far
}

// clipEdge returns the intersection of the edge (a, b) with the near
// plane, where a is in front and b behind. The position is interpolated
// componentwise in clip space; the varyings are interpolated linearly.
func clipEdge[D Varying[D]](m CoordinateMode, a, b ClipVertex[D]) ClipVertex[D] {
	da := nearDist(m, a.Pos)
	db := nearDist(m, b.Pos)
	t := da / (da - db)

	var pos f64.Vec4
	for i := range pos {
		pos[i] = a.Pos[i] + t*(b.Pos[i]-a.Pos[i])
	}
	return ClipVertex[D]{
		Pos:  pos,
		Data: a.Data.Scale(1 - t).Add(b.Data.Scale(t)),
	}
}

// clipTriangleNear clips the triangle (a, b, c) against the near plane and
// appends the surviving triangles to dst: the original when fully in
// front, two triangles when one vertex is behind, one when two are behind,
// nothing when all three are. Winding order is preserved.
func clipTriangleNear[D Varying[D]](m CoordinateMode, a, b, c ClipVertex[D], dst [][3]ClipVertex[D]) [][3]ClipVertex[D] {
	var mask uint8
	if nearDist(m, a.Pos) < 0 {
		mask |= 1
	}
	if nearDist(m, b.Pos) < 0 {
		mask |= 2
	}
	if nearDist(m, c.Pos) < 0 {
		mask |= 4
	}

	switch mask {
	case 0:
		return append(dst, [3]ClipVertex[D]{a, b, c})
	case 7:
		return dst

	// One vertex behind: the in-front quad splits into two triangles.
	case 1:
		iab := clipEdge(m, b, a)
		ica := clipEdge(m, c, a)
		return append(dst,
			[3]ClipVertex[D]{b, c, ica},
			[3]ClipVertex[D]{b, ica, iab})
	case 2:
		ibc := clipEdge(m, c, b)
		iab := clipEdge(m, a, b)
		return append(dst,
			[3]ClipVertex[D]{c, a, iab},
			[3]ClipVertex[D]{c, iab, ibc})
	case 4:
		ica := clipEdge(m, a, c)
		ibc := clipEdge(m, b, c)
		return append(dst,
			[3]ClipVertex[D]{a, b, ibc},
			[3]ClipVertex[D]{a, ibc, ica})

	// Two vertices behind: one clipped triangle remains.
	case 6: // b, c behind
		iab := clipEdge(m, a, b)
		ica := clipEdge(m, a, c)
		return append(dst, [3]ClipVertex[D]{a, iab, ica})
	case 5: // a, c behind
		ibc := clipEdge(m, b, c)
		iab := clipEdge(m, b, a)
		return append(dst, [3]ClipVertex[D]{b, ibc, iab})
	default: // a, b behind
		ica := clipEdge(m, c, a)
		ibc := clipEdge(m, c, b)
		return append(dst, [3]ClipVertex[D]{c, ica, ibc})
	}
}

// clipLineNear clips the segment (a, b) against the near plane. It
// reports false when the whole segment is behind the plane.
func clipLineNear[D Varying[D]](m CoordinateMode, a, b ClipVertex[D]) (ClipVertex[D], ClipVertex[D], bool) {
	da := nearDist(m, a.Pos)
	db := nearDist(m, b.Pos)
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		return clipEdge(m, b, a), b, true
	case db < 0:
		return a, clipEdge(m, a, b), true
	default:
		return a, b, true
	}
}

// project performs the perspective divide and viewport mapping for one
// clip-space vertex. It reports false for numerically degenerate input:
// NaN components or non-positive w.
func project[D any](m CoordinateMode, cv ClipVertex[D], width, height int) (screenVertex[D], bool) {
	p := cv.Pos
	for i := range p {
		if math.IsNaN(p[i]) {
			return screenVertex[D]{}, false
		}
	}
	w := p[3]
	if w <= 0 {
		return screenVertex[D]{}, false
	}

	invW := 1 / w
	ndcX := p[0] * invW
	ndcY := p[1] * invW
	ndcZ := p[2] * invW

	return screenVertex[D]{
		x:    (ndcX*0.5 + 0.5) * float64(width),
		y:    (m.ySign()*ndcY*0.5 + 0.5) * float64(height),
		z:    m.remapZ(ndcZ),
		invW: invW,
		data: cv.Data,
	}, true
}

// orient2d is the edge function: twice the signed area of the triangle
// (a, b, p), positive when p lies to the right of the directed edge a->b
// as seen in y-down screen coordinates (a clockwise turn on screen).
func orient2d(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// signedArea2 returns twice the signed screen-space area of the triangle.
func signedArea2[D any](v0, v1, v2 screenVertex[D]) float64 {
	return orient2d(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
}

// culled reports whether a triangle with the given screen-space doubled
// area should be discarded. The sign a front-facing triangle carries
// derives from the coordinate mode's handedness.
func culled(mode CullMode, coord CoordinateMode, area2 float64) bool {
	if area2 == 0 {
		return true
	}
	front := area2*coord.frontSign() > 0
	switch mode {
	case CullBack:
		return !front
	case CullFront:
		return front
	default:
		return false
	}
}
