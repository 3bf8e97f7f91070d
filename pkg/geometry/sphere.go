package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Near-tangent intersections are treated as misses to avoid surface acne
const sphereDiscriminantEpsilon = 1e-6

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	mat    *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, mat: mat}
}

// Material returns the sphere's material
func (s *Sphere) Material() *material.Material {
	return s.mat
}

// Intersect tests the ray against the sphere by solving the quadratic
// |O + tD - C|² = r²
func (s *Sphere) Intersect(ray core.Ray) (*SurfaceHit, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < sphereDiscriminantEpsilon {
		return nil, false
	}

	// Prefer the closer root; fall back to the farther one when the origin
	// is inside the sphere
	sqrtD := math.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if t <= 0 {
		t = (-b + sqrtD) / (2 * a)
		if t <= 0 {
			return nil, false
		}
	}

	position := ray.At(t)
	normal := position.Subtract(s.Center).Normalize()
	return NewSurfaceHit(position, normal, ray.Direction), true
}
