package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const triangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices. The
// outward normal follows the counter-clockwise winding of V0, V1, V2.
type Triangle struct {
	V0, V1, V2 core.Vec3
	mat        *material.Material
	edge1      core.Vec3 // Cached V1 - V0
	edge2      core.Vec3 // Cached V2 - V0
	normal     core.Vec3 // Cached unit normal
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		mat:    mat,
		edge1:  edge1,
		edge2:  edge2,
		normal: edge1.Cross(edge2).Normalize(),
	}
}

// Material returns the triangle's material
func (t *Triangle) Material() *material.Material {
	return t.mat
}

// Normal returns the triangle's unit normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Intersect tests the ray against the triangle using the Möller-Trumbore
// algorithm. Rays parallel to the triangle plane miss.
func (t *Triangle) Intersect(ray core.Ray) (*SurfaceHit, bool) {
	h := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(h)

	// Near-zero determinant: ray lies in the plane of the triangle
	if math.Abs(det) < triangleEpsilon {
		return nil, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(t.edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	tParam := invDet * t.edge2.Dot(q)
	if tParam < triangleEpsilon {
		// Intersection behind the ray origin
		return nil, false
	}

	return NewSurfaceHit(ray.At(tParam), t.normal, ray.Direction), true
}
