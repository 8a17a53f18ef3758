// Package soft3d provides a CPU-resident 3D rasterization pipeline for Go.
//
// # Overview
//
// soft3d is a pure Go software rasterizer designed to integrate with the
// GoGPU ecosystem. It runs without any graphics hardware, which makes it
// suitable for headless environments: testing, prerendering, embedded
// displays, and terminals. The caller supplies the programmable stages
// (vertex and fragment shaders) as ordinary Go code; soft3d supplies the
// fixed-function pipeline between them: primitive assembly, near-plane
// clipping, perspective division, viewport mapping, back-face culling,
// perspective-correct scan conversion, depth testing, and blending.
//
// # Quick Start
//
//	import "github.com/gogpu/soft3d"
//
//	// A pipeline is any type with Vertex and Fragment methods.
//	type flat struct{ color color.RGBA }
//
//	func (f flat) Vertex(v [2]float64) (f64.Vec4, soft3d.NoVarying) {
//	    return f64.Vec4{v[0], v[1], 0, 1}, soft3d.NoVarying{}
//	}
//
//	func (f flat) Fragment(soft3d.NoVarying) color.RGBA { return f.color }
//
//	colorBuf := soft3d.NewBuffer2d[color.RGBA](256, 256)
//	depthBuf := soft3d.NewBuffer2d[float64](256, 256)
//	depthBuf.Clear(1)
//
//	err := soft3d.Render(flat{red}, verts, colorBuf, depthBuf)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Pipeline, Target, Buffer2d, Sampler, render options
//   - Rasterization: clipping, triangle/line/point scan conversion
//   - internal/tiler: tile grid and worker pool for parallel dispatch
//
// The default render path is single-threaded and deterministic. With
// WithWorkers, screen space is partitioned into tiles that are processed
// in parallel; the result is bitwise identical to the serial path.
package soft3d
