package soft3d

import "golang.org/x/image/math/f64"

// Pipeline describes the programmable stages of a render. The caller
// implements it; soft3d supplies everything between the stages.
//
// Type parameters:
//   - V is the per-vertex input record.
//   - D is the interpolated varyings record passed from the vertex stage
//     to the fragment stage. It must support the Varying algebra so the
//     rasterizer can blend it barycentrically.
//   - P is the per-fragment output record (usually a pixel color).
//
// Both stages must be pure functions of their inputs and the pipeline's
// immutable fields: during parallel rendering the pipeline value is shared
// read-only across workers.
//
// Pipelines may additionally implement [Blender] to customize how new
// fragments combine with existing pixels, and [GeometryShader] to expand
// assembled primitives before rasterization.
type Pipeline[V, D, P any] interface {
	// Vertex transforms a vertex into a homogeneous clip-space position
	// and the varyings to be interpolated across the primitive.
	Vertex(v V) (pos f64.Vec4, data D)

	// Fragment shades one fragment from its interpolated varyings.
	Fragment(data D) P
}

// Blender is an optional pipeline capability: combining a newly shaded
// fragment with the pixel already stored in the color target. It is
// consulted only when rendering with [PixelBlend].
//
// Blend must be a pure function; it runs concurrently during tiled
// rendering.
type Blender[P any] interface {
	Blend(old, new P) P
}

// GeometryShader is an optional pipeline capability that sits between
// primitive assembly and rasterization. For every assembled primitive it
// may emit zero or more primitives of the same arity via emit. When the
// pipeline does not implement GeometryShader, primitives pass through
// unchanged.
//
// Amplification is expected to be bounded and small; the emitted
// primitives are buffered before rasterization.
//
// The prim slice is reused between invocations. Emitted slices are copied
// immediately; prim itself must be copied if retained.
type GeometryShader[D any] interface {
	Geometry(prim []ClipVertex[D], emit func(prim []ClipVertex[D]))
}

// ClipVertex is a vertex-stage output: a homogeneous clip-space position
// together with the varyings attached to it. Geometry shaders consume and
// produce slices of ClipVertex.
type ClipVertex[D any] struct {
	Pos  f64.Vec4
	Data D
}

// Varying is the algebra a varyings record must support so the rasterizer
// can interpolate it: componentwise scaling and addition. The value at a
// fragment is a weighted sum of the primitive's vertex records, with
// weights that have been perspective-corrected and renormalized.
//
// The constraint is self-referential: a type D satisfies Varying[D] by
// having Scale and Add methods returning D. NoVarying, Float, Vec2, Vec3
// and Vec4 are provided for common cases; user records compose them or
// implement the two methods directly.
type Varying[D any] interface {
	// Scale returns the record with every component multiplied by k.
	Scale(k float64) D

	// Add returns the componentwise sum of the two records.
	Add(o D) D
}

// NoVarying is the empty varyings record, for pipelines whose fragment
// stage needs no interpolated inputs.
type NoVarying struct{}

func (NoVarying) Scale(float64) NoVarying { return NoVarying{} }
func (NoVarying) Add(NoVarying) NoVarying { return NoVarying{} }

// Float is a single interpolated scalar.
type Float float64

func (f Float) Scale(k float64) Float { return Float(float64(f) * k) }
func (f Float) Add(o Float) Float     { return f + o }

// Vec2 is a pair of interpolated scalars (e.g. texture coordinates).
type Vec2 f64.Vec2

func (v Vec2) Scale(k float64) Vec2 { return Vec2{v[0] * k, v[1] * k} }
func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v[0] + o[0], v[1] + o[1]} }

// Vec3 is a triple of interpolated scalars (e.g. a normal or RGB color).
type Vec3 f64.Vec3

func (v Vec3) Scale(k float64) Vec3 { return Vec3{v[0] * k, v[1] * k, v[2] * k} }
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Vec4 is a quadruple of interpolated scalars (e.g. an RGBA color).
type Vec4 f64.Vec4

func (v Vec4) Scale(k float64) Vec4 {
	return Vec4{v[0] * k, v[1] * k, v[2] * k, v[3] * k}
}

func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}
