package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func unitTriangle() *Triangle {
	return NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)),
	)
}

func TestTriangle_Intersect_Hit(t *testing.T) {
	tri := unitTriangle()
	ray := core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1))

	hit, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if !vecClose(hit.Position, core.NewVec3(0.25, 0.25, 0), 1e-9) {
		t.Errorf("Expected position (0.25,0.25,0), got %v", hit.Position)
	}
	if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
}

func TestTriangle_Intersect_Miss(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
	}{
		{"outside barycentric range", core.NewVec3(0.25, 0.25, -1), core.NewVec3(2, 2, -1).Normalize()},
		{"beyond hypotenuse", core.NewVec3(0.75, 0.75, -1), core.NewVec3(0, 0, 1)},
		{"negative u side", core.NewVec3(-0.5, 0.25, -1), core.NewVec3(0, 0, 1)},
		{"parallel to plane", core.NewVec3(0.25, 0.25, -1), core.NewVec3(1, 0, 0)},
		{"behind origin", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := tri.Intersect(core.NewRay(tt.origin, tt.direction)); ok {
				t.Errorf("Expected miss, got hit at %v", hit.Position)
			}
		})
	}
}

func TestTriangle_Normal_FollowsWinding(t *testing.T) {
	tri := unitTriangle()

	// CCW winding in the xy plane gives an outward +z normal
	if !vecClose(tri.Normal(), core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected normal (0,0,1), got %v", tri.Normal())
	}
}

func TestSurfaceHit_ReflectionLaw(t *testing.T) {
	tri := unitTriangle()
	incident := core.NewVec3(1, -1, -1).Normalize()
	ray := core.NewRay(core.NewVec3(-0.3, 0.8, 0.55), incident)

	hit, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, got miss")
	}

	// Angle of incidence equals angle of reflection, and the precomputed
	// reflection stays unit length
	if math.Abs(hit.Reflection.Dot(hit.Normal)+hit.Incident.Dot(hit.Normal)) > 1e-9 {
		t.Errorf("Expected R·N == -I·N, got %f vs %f",
			hit.Reflection.Dot(hit.Normal), hit.Incident.Dot(hit.Normal))
	}
	if math.Abs(hit.Reflection.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit reflection, got length %f", hit.Reflection.Length())
	}
}

func TestPlane_Intersect(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewDiffuse(core.NewVec3(1, 1, 1)))

	hit, ok := plane.Intersect(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if !vecClose(hit.Position, core.NewVec3(0, 0, 0), 1e-9) {
		t.Errorf("Expected position at origin, got %v", hit.Position)
	}

	if _, ok := plane.Intersect(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(1, 0, 0))); ok {
		t.Error("Expected parallel ray to miss")
	}
	if _, ok := plane.Intersect(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, 1, 0))); ok {
		t.Error("Expected ray pointing away to miss")
	}
}
