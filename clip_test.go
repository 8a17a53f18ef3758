package soft3d

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

func cv(x, y, z, w float64, u Float) ClipVertex[Float] {
	return ClipVertex[Float]{Pos: f64.Vec4{x, y, z, w}, Data: u}
}

// TestTrivialReject verifies whole-primitive rejection per half-space.
func TestTrivialReject(t *testing.T) {
	tests := []struct {
		name string
		vs   []ClipVertex[Float]
		want bool
	}{
		{"inside", []ClipVertex[Float]{
			cv(0, 0, 0.5, 1, 0), cv(0.5, 0, 0.5, 1, 0), cv(0, 0.5, 0.5, 1, 0),
		}, false},
		{"all left", []ClipVertex[Float]{
			cv(-2, 0, 0.5, 1, 0), cv(-3, 0, 0.5, 1, 0), cv(-2, 1, 0.5, 1, 0),
		}, true},
		{"all above w on y", []ClipVertex[Float]{
			cv(0, 2, 0.5, 1, 0), cv(1, 3, 0.5, 1, 0), cv(0, 4, 0.5, 1, 0),
		}, true},
		{"all behind near", []ClipVertex[Float]{
			cv(0, 0, -1, 1, 0), cv(1, 0, -2, 1, 0), cv(0, 1, -0.5, 1, 0),
		}, true},
		{"all beyond far", []ClipVertex[Float]{
			cv(0, 0, 2, 1, 0), cv(1, 0, 3, 1, 0), cv(0, 1, 1.5, 1, 0),
		}, true},
		{"straddling is kept", []ClipVertex[Float]{
			cv(-2, 0, 0.5, 1, 0), cv(2, 0, 0.5, 1, 0), cv(0, 1, 0.5, 1, 0),
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trivialReject(Vulkan, tt.vs); got != tt.want {
				t.Errorf("trivialReject = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestTrivialReject_MinusOneToOne verifies the near half-space follows
// the z range.
func TestTrivialReject_MinusOneToOne(t *testing.T) {
	// z = -0.5 with w = 1 is in front of the OpenGL near plane (z = -w)
	// but behind the Vulkan one (z = 0).
	vs := []ClipVertex[Float]{
		cv(0, 0, -0.5, 1, 0), cv(0.5, 0, -0.5, 1, 0), cv(0, 0.5, -0.5, 1, 0),
	}
	if trivialReject(OpenGL, vs) {
		t.Error("OpenGL rejected a triangle in front of z = -w")
	}
	if !trivialReject(Vulkan, vs) {
		t.Error("Vulkan kept a triangle behind z = 0")
	}
}

// TestClipEdge verifies the intersection point and attribute lerp.
func TestClipEdge(t *testing.T) {
	a := cv(0, 0, 1, 1, 0)  // in front
	b := cv(2, 0, -1, 1, 1) // behind

	got := clipEdge(Vulkan, a, b)
	if got.Pos[2] != 0 {
		t.Errorf("clipped z = %v, want 0", got.Pos[2])
	}
	if got.Pos[0] != 1 {
		t.Errorf("clipped x = %v, want 1", got.Pos[0])
	}
	if math.Abs(float64(got.Data)-0.5) > 1e-12 {
		t.Errorf("clipped varying = %v, want 0.5", got.Data)
	}
}

// TestClipTriangleNear verifies the emitted triangle counts for every
// behind-count.
func TestClipTriangleNear(t *testing.T) {
	front := func(u Float) ClipVertex[Float] { return cv(0, 0, 0.5, 1, u) }
	behind := func(u Float) ClipVertex[Float] { return cv(0, 0, -0.5, 1, u) }

	tests := []struct {
		name    string
		a, b, c ClipVertex[Float]
		want    int
	}{
		{"all in front", front(0), front(1), front(2), 1},
		{"one behind", behind(0), front(1), front(2), 2},
		{"two behind", front(0), behind(1), behind(2), 1},
		{"all behind", behind(0), behind(1), behind(2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipTriangleNear(Vulkan, tt.a, tt.b, tt.c, nil)
			if len(got) != tt.want {
				t.Errorf("emitted %d triangles, want %d", len(got), tt.want)
			}
			for _, tri := range got {
				for _, v := range tri {
					if nearDist(Vulkan, v.Pos) < 0 {
						t.Errorf("emitted vertex behind the near plane: %v", v.Pos)
					}
				}
			}
		})
	}
}

// TestClipTriangleNear_PreservesWinding verifies clipping does not flip
// the triangle's orientation.
func TestClipTriangleNear_PreservesWinding(t *testing.T) {
	// A counter-clockwise (in clip xy) triangle with vertex c behind.
	a := cv(-1, -1, 0.5, 1, 0)
	b := cv(1, -1, 0.5, 1, 0)
	c := cv(0, 1, -0.5, 1, 0)

	orig := clipXYArea(a, b, c)
	for _, tri := range clipTriangleNear(Vulkan, a, b, c, nil) {
		got := clipXYArea(tri[0], tri[1], tri[2])
		if (got > 0) != (orig > 0) {
			t.Errorf("clipped triangle area sign %v, original %v", got, orig)
		}
	}
}

// clipXYArea is the doubled signed area of a triangle in clip-space xy.
func clipXYArea(a, b, c ClipVertex[Float]) float64 {
	return (b.Pos[0]-a.Pos[0])*(c.Pos[1]-a.Pos[1]) -
		(b.Pos[1]-a.Pos[1])*(c.Pos[0]-a.Pos[0])
}

// TestClipLineNear verifies segment clipping.
func TestClipLineNear(t *testing.T) {
	a := cv(0, 0, 1, 1, 0)
	b := cv(0, 0, -1, 1, 1)

	ca, cb, ok := clipLineNear(Vulkan, a, b)
	if !ok {
		t.Fatal("segment straddling the near plane was dropped")
	}
	if ca != a {
		t.Errorf("front endpoint moved: %+v", ca)
	}
	if cb.Pos[2] != 0 || math.Abs(float64(cb.Data)-0.5) > 1e-12 {
		t.Errorf("clipped endpoint = %+v, want z=0 u=0.5", cb)
	}

	if _, _, ok := clipLineNear(Vulkan, b, b); ok {
		t.Error("fully-behind segment survived")
	}
}

// TestProject verifies perspective division and viewport mapping.
func TestProject(t *testing.T) {
	// NDC (0, 0) maps to the viewport center under any y convention.
	sv, ok := project(Vulkan, cv(0, 0, 0.5, 1, 0), 8, 6)
	if !ok {
		t.Fatal("valid vertex rejected")
	}
	if sv.x != 4 || sv.y != 3 {
		t.Errorf("center = (%v, %v), want (4, 3)", sv.x, sv.y)
	}
	if sv.z != 0.5 || sv.invW != 1 {
		t.Errorf("z = %v invW = %v, want 0.5, 1", sv.z, sv.invW)
	}

	// Vulkan is y-down: NDC y = -1 is the top of the screen.
	top, _ := project(Vulkan, cv(0, -1, 0, 1, 0), 8, 6)
	if top.y != 0 {
		t.Errorf("Vulkan ndc y=-1 -> screen y = %v, want 0", top.y)
	}

	// OpenGL is y-up: NDC y = +1 is the top of the screen, and z is
	// remapped from [-1, 1] to [0, 1].
	gl, _ := project(OpenGL, cv(0, 1, 0, 1, 0), 8, 6)
	if gl.y != 0 {
		t.Errorf("OpenGL ndc y=+1 -> screen y = %v, want 0", gl.y)
	}
	if gl.z != 0.5 {
		t.Errorf("OpenGL ndc z=0 -> depth %v, want 0.5", gl.z)
	}

	// The perspective divide scales by 1/w and keeps the reciprocal.
	pv, _ := project(Vulkan, cv(2, 0, 1, 2, 0), 8, 6)
	if pv.x != 8 || pv.invW != 0.5 || pv.z != 0.5 {
		t.Errorf("w=2 projection = %+v", pv)
	}
}

// TestProject_Degenerate verifies NaN and non-positive w rejection.
func TestProject_Degenerate(t *testing.T) {
	if _, ok := project(Vulkan, cv(math.NaN(), 0, 0, 1, 0), 4, 4); ok {
		t.Error("NaN position accepted")
	}
	if _, ok := project(Vulkan, cv(0, 0, 0, 0, 0), 4, 4); ok {
		t.Error("w = 0 accepted")
	}
	if _, ok := project(Vulkan, cv(0, 0, 0, -1, 0), 4, 4); ok {
		t.Error("w < 0 accepted")
	}
}
