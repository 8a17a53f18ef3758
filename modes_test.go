package soft3d

import "testing"

// TestCoordinateModePresets verifies the named conventions.
func TestCoordinateModePresets(t *testing.T) {
	tests := []struct {
		name string
		mode CoordinateMode
		want CoordinateMode
	}{
		{"Vulkan", Vulkan, CoordinateMode{LeftHanded, YDown, ZeroToOne}},
		{"OpenGL", OpenGL, CoordinateMode{RightHanded, YUp, MinusOneToOne}},
		{"Metal", Metal, CoordinateMode{LeftHanded, YDown, ZeroToOne}},
		{"DirectX", DirectX, CoordinateMode{LeftHanded, YUp, ZeroToOne}},
	}
	for _, tt := range tests {
		if tt.mode != tt.want {
			t.Errorf("%s = %+v, want %+v", tt.name, tt.mode, tt.want)
		}
	}
}

// TestCoordinateMode_RemapZ verifies the NDC z remap to [0, 1].
func TestCoordinateMode_RemapZ(t *testing.T) {
	if got := Vulkan.remapZ(0.25); got != 0.25 {
		t.Errorf("ZeroToOne remap(0.25) = %v, want 0.25", got)
	}
	if got := OpenGL.remapZ(-1); got != 0 {
		t.Errorf("MinusOneToOne remap(-1) = %v, want 0", got)
	}
	if got := OpenGL.remapZ(1); got != 1 {
		t.Errorf("MinusOneToOne remap(1) = %v, want 1", got)
	}
	if got := OpenGL.remapZ(0); got != 0.5 {
		t.Errorf("MinusOneToOne remap(0) = %v, want 0.5", got)
	}
}

// TestCompare_Test verifies every comparison function.
func TestCompare_Test(t *testing.T) {
	tests := []struct {
		cmp    Compare
		z, old float64
		want   bool
	}{
		{CompareAlways, 5, 1, true},
		{CompareNever, 1, 5, false},
		{CompareLess, 0.2, 0.8, true},
		{CompareLess, 0.8, 0.2, false},
		{CompareLess, 0.5, 0.5, false},
		{CompareLessEqual, 0.5, 0.5, true},
		{CompareEqual, 0.5, 0.5, true},
		{CompareEqual, 0.4, 0.5, false},
		{CompareGreater, 0.8, 0.2, true},
		{CompareGreater, 0.2, 0.8, false},
		{CompareGreaterEqual, 0.5, 0.5, true},
		{CompareNotEqual, 0.4, 0.5, true},
		{CompareNotEqual, 0.5, 0.5, false},
	}
	for _, tt := range tests {
		if got := tt.cmp.test(tt.z, tt.old); got != tt.want {
			t.Errorf("Compare(%d).test(%v, %v) = %v, want %v", tt.cmp, tt.z, tt.old, got, tt.want)
		}
	}
}

// TestDepthMode_UsesDepth verifies the depth-target requirement check.
func TestDepthMode_UsesDepth(t *testing.T) {
	if DepthNone.usesDepth() {
		t.Error("DepthNone.usesDepth() = true")
	}
	if !DepthLessWrite.usesDepth() {
		t.Error("DepthLessWrite.usesDepth() = false")
	}
	if !DepthLessPass.usesDepth() {
		t.Error("DepthLessPass.usesDepth() = false")
	}
	if !(DepthMode{Compare: CompareAlways, Write: true}).usesDepth() {
		t.Error("write-only mode usesDepth() = false")
	}
}

// TestCulled verifies the facing decision against coordinate modes.
func TestCulled(t *testing.T) {
	tests := []struct {
		name  string
		mode  CullMode
		coord CoordinateMode
		area2 float64
		want  bool
	}{
		{"none keeps positive", CullNone, Vulkan, 1, false},
		{"none keeps negative", CullNone, Vulkan, -1, false},
		{"none drops degenerate", CullNone, Vulkan, 0, true},
		{"back keeps front LH", CullBack, Vulkan, 1, false},
		{"back drops back LH", CullBack, Vulkan, -1, true},
		{"front drops front LH", CullFront, Vulkan, 1, true},
		{"front keeps back LH", CullFront, Vulkan, -1, false},
		// Right-handed modes invert the screen-space front sign.
		{"back keeps front RH", CullBack, OpenGL, -1, false},
		{"back drops back RH", CullBack, OpenGL, 1, true},
	}
	for _, tt := range tests {
		if got := culled(tt.mode, tt.coord, tt.area2); got != tt.want {
			t.Errorf("%s: culled = %v, want %v", tt.name, got, tt.want)
		}
	}
}
