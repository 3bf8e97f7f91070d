package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SurfaceHit is an immutable snapshot of a ray-surface intersection. Normal
// always faces outward per the primitive's own convention; callers test
// sidedness via Incident·Normal. Reflection is derived at construction and
// never set independently.
type SurfaceHit struct {
	Position   core.Vec3 // Point of intersection
	Normal     core.Vec3 // Outward unit surface normal
	Incident   core.Vec3 // Unit direction of the ray that produced the hit
	Reflection core.Vec3 // Mirror direction: I - 2*(I·N)*N
}

// NewSurfaceHit creates a hit record, precomputing the reflection direction
func NewSurfaceHit(position, normal, incident core.Vec3) *SurfaceHit {
	return &SurfaceHit{
		Position:   position,
		Normal:     normal,
		Incident:   incident,
		Reflection: material.Reflect(incident, normal),
	}
}

// FromOutside reports whether the incident ray entered from the outward side
func (h *SurfaceHit) FromOutside() bool {
	return h.Incident.Dot(h.Normal) < 0
}

// Primitive is any shape that can be intersected by a ray. New shapes extend
// the renderer without touching the shading kernel.
type Primitive interface {
	// Intersect returns the surface hit closest to the ray origin, or false
	// when the ray misses. Geometric degeneracies (grazing rays, near-zero
	// determinants) report a miss, never an error.
	Intersect(ray core.Ray) (*SurfaceHit, bool)

	// Material returns the material shared by this primitive
	Material() *material.Material
}
