package soft3d

import "math"

// Filter selects how a sampler reconstructs a value between texels.
type Filter uint8

const (
	// FilterNearest picks the texel containing the sample point.
	FilterNearest Filter = iota
	// FilterLinear blends the 2x2 texel neighborhood by the fractional
	// sample coordinates.
	FilterLinear
)

// AddressMode selects how sample coordinates outside [0, 1] map back into
// the source.
type AddressMode uint8

const (
	// AddressClamp saturates coordinates to the edge texels.
	AddressClamp AddressMode = iota
	// AddressRepeat tiles the source by taking the fractional part.
	AddressRepeat
	// AddressMirror tiles the source, mirroring at every edge
	// (a triangular wave over the coordinate).
	AddressMirror
)

// apply maps a normalized coordinate into [0, 1] per the address mode.
func (m AddressMode) apply(u float64) float64 {
	switch m {
	case AddressRepeat:
		return u - math.Floor(u)
	case AddressMirror:
		r := math.Mod(u, 2)
		if r < 0 {
			r += 2
		}
		if r >= 1 {
			return 2 - r
		}
		return r
	default:
		return math.Min(math.Max(u, 0), 1)
	}
}

// Sampler binds a source target to a filtering and addressing strategy.
// Sampling is a pure function of the coordinates and the source; a
// Sampler has no internal state and is safe to share across goroutines
// as long as nothing mutates the source.
//
// Coordinates are normalized: (0, 0) addresses the top-left texel of the
// source and (1, 1) the bottom-right one, consistent with the y-down
// raster addressing of targets.
//
// Linear filtering blends texels with the Varying algebra, so the element
// type must support it. For plain nearest sampling of arbitrary element
// types, use [SampleNearest].
type Sampler[T Varying[T]] struct {
	Source  Target[T]
	Filter  Filter
	Address AddressMode
}

// At samples the source at the normalized coordinates (u, v).
func (s Sampler[T]) At(u, v float64) T {
	if s.Filter == FilterLinear {
		return sampleLinear(s.Source, u, v, s.Address)
	}
	return SampleNearest(s.Source, u, v, s.Address)
}

// SampleNearest samples src at the normalized coordinates (u, v) with
// nearest-neighbor filtering, addressing out-of-range coordinates per
// addr. It works for any element type.
func SampleNearest[T any](src Target[T], u, v float64, addr AddressMode) T {
	w, h := src.Width(), src.Height()
	x := denormalize(addr.apply(u), w)
	y := denormalize(addr.apply(v), h)
	return src.Get(x, y)
}

// sampleLinear blends the 2x2 neighborhood around the sample point.
// Neighbor fetches past the edge clamp to the edge texel.
func sampleLinear[T Varying[T]](src Target[T], u, v float64, addr AddressMode) T {
	w, h := src.Width(), src.Height()

	tx := addr.apply(u) * float64(w)
	ty := addr.apply(v) * float64(h)

	x0 := int(tx)
	y0 := int(ty)
	fx := tx - math.Trunc(tx)
	fy := ty - math.Trunc(ty)

	x0 = clampIndex(x0, w)
	y0 = clampIndex(y0, h)
	x1 := clampIndex(x0+1, w)
	y1 := clampIndex(y0+1, h)

	t00 := src.Get(x0, y0)
	t10 := src.Get(x1, y0)
	t01 := src.Get(x0, y1)
	t11 := src.Get(x1, y1)

	t0 := t00.Scale(1 - fy).Add(t01.Scale(fy))
	t1 := t10.Scale(1 - fy).Add(t11.Scale(fy))
	return t0.Scale(1 - fx).Add(t1.Scale(fx))
}

// denormalize converts a coordinate in [0, 1] to a texel index in
// [0, size-1].
func denormalize(u float64, size int) int {
	i := int(u * float64(size))
	return clampIndex(i, size)
}

// clampIndex saturates a texel index to [0, size-1].
func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
