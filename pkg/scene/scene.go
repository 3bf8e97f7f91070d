package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene owns the primitives and lights to render plus the immutable render
// options. It is populated via the Add methods and then used strictly
// read-only for the duration of a render pass, which is what makes per-pixel
// work independent.
type Scene struct {
	Options    Options
	primitives []geometry.Primitive
	lights     []PointLight
}

// NewScene creates an empty scene with the given options, validating the
// configuration contract up front.
func NewScene(options Options) (*Scene, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene options: %w", err)
	}
	return &Scene{Options: options}, nil
}

// AddEntity adds a primitive to the scene. Adding the same primitive twice
// is a no-op, so the primitive set has set semantics. Insertion order is
// preserved and fixes the closest-hit tie-breaking order.
func (s *Scene) AddEntity(p geometry.Primitive) {
	for _, existing := range s.primitives {
		if existing == p {
			return
		}
	}
	s.primitives = append(s.primitives, p)
}

// AddPointLight adds a light to the scene. Adding an identical light twice
// is a no-op.
func (s *Scene) AddPointLight(light PointLight) {
	for _, existing := range s.lights {
		if existing == light {
			return
		}
	}
	s.lights = append(s.lights, light)
}

// Primitives returns the scene's primitives in insertion order
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// Lights returns the scene's point lights in insertion order
func (s *Scene) Lights() []PointLight {
	return s.lights
}

// ClosestHit scans every primitive and returns the hit with the minimum
// strictly-positive squared distance from the ray origin. Ties keep the
// earlier primitive, so renders are reproducible for a fixed scene.
func (s *Scene) ClosestHit(ray core.Ray) (geometry.Primitive, *geometry.SurfaceHit, bool) {
	var closest *geometry.SurfaceHit
	var closestPrim geometry.Primitive
	closestDistSq := 0.0

	for _, prim := range s.primitives {
		hit, ok := prim.Intersect(ray)
		if !ok {
			continue
		}
		distSq := hit.Position.Subtract(ray.Origin).LengthSquared()
		if distSq <= 0 {
			continue
		}
		if closest == nil || distSq < closestDistSq {
			closest = hit
			closestPrim = prim
			closestDistSq = distSq
		}
	}

	return closestPrim, closest, closest != nil
}

// Occluded reports whether any primitive other than self blocks the segment
// from point to lightPos. The caller is responsible for offsetting point
// away from the shaded surface to avoid self-occlusion.
func (s *Scene) Occluded(point, lightPos core.Vec3, self geometry.Primitive) bool {
	toLight := lightPos.Subtract(point)
	lightDistSq := toLight.LengthSquared()
	shadowRay := core.NewRay(point, toLight.Normalize())

	for _, prim := range s.primitives {
		if prim == self {
			continue
		}
		hit, ok := prim.Intersect(shadowRay)
		if !ok {
			continue
		}
		if hit.Position.Subtract(point).LengthSquared() < lightDistSq {
			return true
		}
	}
	return false
}
