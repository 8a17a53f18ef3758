package soft3d

// CullMode selects which triangle facing, if any, is discarded before
// scan conversion. Facing is decided by the sign of the screen-space
// signed area after viewport mapping; the sign convention for "front"
// derives from the active CoordinateMode.
type CullMode uint8

const (
	// CullNone rasterizes triangles of both windings.
	CullNone CullMode = iota
	// CullBack discards back-facing triangles.
	CullBack
	// CullFront discards front-facing triangles.
	CullFront
)

// Compare is a depth comparison function. The test passes when
// compare(fragment z, stored z) holds.
type Compare uint8

const (
	// CompareAlways passes every fragment.
	CompareAlways Compare = iota
	// CompareNever fails every fragment.
	CompareNever
	CompareLess
	CompareLessEqual
	CompareEqual
	CompareGreater
	CompareGreaterEqual
	CompareNotEqual
)

// test reports whether a fragment with depth z passes against the stored
// depth old.
func (c Compare) test(z, old float64) bool {
	switch c {
	case CompareAlways:
		return true
	case CompareNever:
		return false
	case CompareLess:
		return z < old
	case CompareLessEqual:
		return z <= old
	case CompareEqual:
		return z == old
	case CompareGreater:
		return z > old
	case CompareGreaterEqual:
		return z >= old
	case CompareNotEqual:
		return z != old
	default:
		return true
	}
}

// DepthMode describes how the pipeline interacts with the depth target:
// the comparison applied to each fragment and whether passing fragments
// write their depth back.
type DepthMode struct {
	Compare Compare
	Write   bool
}

// Common depth modes.
var (
	// DepthNone performs no depth test and no depth write. The depth
	// target may be nil.
	DepthNone = DepthMode{Compare: CompareAlways, Write: false}
	// DepthLessWrite is the conventional mode: near fragments win and
	// their depth is recorded.
	DepthLessWrite = DepthMode{Compare: CompareLess, Write: true}
	// DepthLessPass tests without recording depth.
	DepthLessPass = DepthMode{Compare: CompareLess, Write: false}
	// DepthGreaterWrite is the reversed-z counterpart of DepthLessWrite.
	DepthGreaterWrite = DepthMode{Compare: CompareGreater, Write: true}
)

// usesDepth reports whether the mode touches the depth target at all.
func (m DepthMode) usesDepth() bool {
	return m.Write || (m.Compare != CompareAlways)
}

// PixelMode describes how shaded fragments reach the color target.
//
// PixelPassthrough controls only the color write: depth writes still occur
// when the depth test passes.
type PixelMode uint8

const (
	// PixelWrite replaces the stored pixel with the fragment output.
	PixelWrite PixelMode = iota
	// PixelPassthrough leaves the color target untouched. The fragment
	// stage is skipped entirely; depth testing and writing proceed.
	PixelPassthrough
	// PixelBlend combines the fragment output with the stored pixel via
	// the pipeline's Blend method. The pipeline must implement [Blender].
	PixelBlend
)
