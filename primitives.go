package soft3d

// PrimitiveKind is the strategy that chunks a vertex stream into
// primitives. The index tuples below describe how a stream of length n is
// drawn; trailing vertices that cannot complete a primitive are dropped.
type PrimitiveKind uint8

const (
	// Triangles draws non-overlapping triples: (0,1,2), (3,4,5), ...
	Triangles PrimitiveKind = iota
	// TriangleStrip draws (0,1,2), (2,1,3), (2,3,4), ... with the winding
	// alternating each step so orientation is preserved.
	TriangleStrip
	// TriangleFan draws (0,1,2), (0,2,3), (0,3,4), ... anchored at the
	// first vertex.
	TriangleFan
	// Lines draws consecutive pairs: (0,1), (2,3), ...
	Lines
	// LineStrip draws (0,1), (1,2), (2,3), ...
	LineStrip
	// LineTriangles draws triangle triples as wireframe edges: a triple
	// (a,b,c) yields the lines (a,b), (b,c), (c,a).
	LineTriangles
	// Points draws each vertex as a single point.
	Points
)

// String returns the kind's name.
func (k PrimitiveKind) String() string {
	switch k {
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	case Lines:
		return "Lines"
	case LineStrip:
		return "LineStrip"
	case LineTriangles:
		return "LineTriangles"
	case Points:
		return "Points"
	default:
		return "PrimitiveKind(?)"
	}
}

// arity returns the number of vertices in each primitive the kind emits:
// 3 for filled triangles, 2 for lines, 1 for points.
func (k PrimitiveKind) arity() int {
	switch k {
	case Triangles, TriangleStrip, TriangleFan:
		return 3
	case Lines, LineStrip, LineTriangles:
		return 2
	default:
		return 1
	}
}

// assemble walks a stream of n vertices and emits one index tuple per
// primitive, in submission order. Only the first arity() entries of the
// tuple are meaningful.
func (k PrimitiveKind) assemble(n int, emit func(tuple [3]int)) {
	switch k {
	case Triangles:
		for i := 0; i+2 < n; i += 3 {
			emit([3]int{i, i + 1, i + 2})
		}
	case TriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				emit([3]int{i, i + 1, i + 2})
			} else {
				emit([3]int{i + 1, i, i + 2})
			}
		}
	case TriangleFan:
		for i := 1; i+1 < n; i++ {
			emit([3]int{0, i, i + 1})
		}
	case Lines:
		for i := 0; i+1 < n; i += 2 {
			emit([3]int{i, i + 1, -1})
		}
	case LineStrip:
		for i := 0; i+1 < n; i++ {
			emit([3]int{i, i + 1, -1})
		}
	case LineTriangles:
		for i := 0; i+2 < n; i += 3 {
			emit([3]int{i, i + 1, -1})
			emit([3]int{i + 1, i + 2, -1})
			emit([3]int{i + 2, i, -1})
		}
	case Points:
		for i := 0; i < n; i++ {
			emit([3]int{i, -1, -1})
		}
	}
}
