package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const planeEpsilon = 1e-8

// Plane represents an infinite plane through a point with a fixed outward
// normal
type Plane struct {
	Point  core.Vec3
	normal core.Vec3
	mat    *material.Material
}

// NewPlane creates a new plane; the normal is normalized on construction
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	return &Plane{Point: point, normal: normal.Normalize(), mat: mat}
}

// Material returns the plane's material
func (p *Plane) Material() *material.Material {
	return p.mat
}

// Intersect tests the ray against the plane. Rays parallel to the plane miss.
func (p *Plane) Intersect(ray core.Ray) (*SurfaceHit, bool) {
	denom := ray.Direction.Dot(p.normal)
	if math.Abs(denom) < planeEpsilon {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.normal) / denom
	if t < planeEpsilon {
		return nil, false
	}

	return NewSurfaceHit(ray.At(t), p.normal, ray.Direction), true
}
