package tracer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// MaxDepth bounds the recursion so mirror boxes terminate
	MaxDepth = 4

	// ShadowBias offsets secondary-ray origins along the surface normal,
	// large enough to clear floating-point round-off at the hit position
	// without visibly detaching shadows from contact points
	ShadowBias = 1e-4

	// IndirectSamples is the hemisphere sample count for ambient lighting
	IndirectSamples = 8
)

// Tracer evaluates light transport for a single ray. Each concurrent worker
// owns its own Tracer so the injected sampler is never shared across
// goroutines.
type Tracer struct {
	scene   *scene.Scene
	sampler core.Sampler
}

// New creates a tracer over a read-only scene with the given sample source
func New(s *scene.Scene, sampler core.Sampler) *Tracer {
	return &Tracer{scene: s, sampler: sampler}
}

// Trace returns the color carried back along the ray. Depth counts how many
// bounces led to this ray; at MaxDepth the result is black. Misses and full
// occlusion are ordinary values, never errors.
func (t *Tracer) Trace(ray core.Ray, depth int) core.Vec3 {
	if depth >= MaxDepth {
		return core.Vec3{}
	}

	prim, hit, ok := t.scene.ClosestHit(ray)
	if !ok {
		return core.Vec3{}
	}

	mat := prim.Material()
	switch mat.Kind {
	case material.Diffuse:
		if t.scene.Options.AmbientLight {
			return t.shadeGlobal(prim, hit, mat, depth)
		}
		return t.shadeDirect(prim, hit, mat)
	case material.Reflective:
		return t.shadeReflective(hit, depth)
	case material.Refractive:
		return t.shadeRefractive(hit, mat, depth)
	case material.Emissive:
		return t.shadeEmissive(prim, hit, mat)
	default:
		return core.Vec3{}
	}
}

// shadeDirect applies Lambertian shading summed over all unoccluded lights.
// There is no distance attenuation in this lighting model.
func (t *Tracer) shadeDirect(prim geometry.Primitive, hit *geometry.SurfaceHit, mat *material.Material) core.Vec3 {
	var result core.Vec3
	shadowOrigin := hit.Position.Add(hit.Normal.Multiply(ShadowBias))

	for _, light := range t.scene.Lights() {
		toLight := light.Position.Subtract(hit.Position).Normalize()
		nDotL := hit.Normal.Dot(toLight)
		if nDotL < 0 {
			// Light behind the surface
			continue
		}
		if t.scene.Occluded(shadowOrigin, light.Position, prim) {
			continue
		}
		result = result.Add(mat.Color.MultiplyVec(light.Color).Multiply(nDotL))
	}
	return result
}

// shadeGlobal adds Monte-Carlo indirect lighting to the direct term by
// sampling the hemisphere above the hit point. Each sample is divided by the
// uniform hemisphere pdf 1/(2π); the combined result carries the Lambertian
// cosine normalization 1/π.
func (t *Tracer) shadeGlobal(prim geometry.Primitive, hit *geometry.SurfaceHit, mat *material.Material, depth int) core.Vec3 {
	var direct core.Vec3
	shadowOrigin := hit.Position.Add(hit.Normal.Multiply(ShadowBias))

	for _, light := range t.scene.Lights() {
		toLight := light.Position.Subtract(hit.Position).Normalize()
		nDotL := hit.Normal.Dot(toLight)
		if nDotL < 0 {
			continue
		}
		if t.scene.Occluded(shadowOrigin, light.Position, prim) {
			continue
		}
		direct = direct.Add(light.Color.Multiply(nDotL))
	}

	bounceOrigin := t.offsetOrigin(hit)
	var indirect core.Vec3
	for i := 0; i < IndirectSamples; i++ {
		dir := core.SampleUniformHemisphere(hit.Normal, t.sampler.Get2D())
		sample := t.Trace(core.NewRay(bounceOrigin, dir), depth+1)
		indirect = indirect.Add(sample.Multiply(2 * math.Pi))
	}
	indirect = indirect.Multiply(1.0 / IndirectSamples)

	return direct.Add(indirect).MultiplyVec(mat.Color).Multiply(1.0 / math.Pi)
}

// shadeReflective bounces the precomputed mirror direction. The reflected
// color is returned untinted.
func (t *Tracer) shadeReflective(hit *geometry.SurfaceHit, depth int) core.Vec3 {
	reflected := core.NewRay(t.offsetOrigin(hit), hit.Reflection.Normalize())
	return t.Trace(reflected, depth+1)
}

// shadeRefractive blends reflected and refracted contributions by the
// Fresnel reflectance. Under total internal reflection only the reflected
// ray is traced.
func (t *Tracer) shadeRefractive(hit *geometry.SurfaceHit, mat *material.Material, depth int) core.Vec3 {
	kr := material.Fresnel(hit.Incident, hit.Normal, mat.RefractiveIndex)
	outside := hit.FromOutside()
	bias := hit.Normal.Multiply(ShadowBias)

	var refractedColor core.Vec3
	if kr < 1 {
		refractionDir := material.Refract(hit.Incident, hit.Normal, mat.RefractiveIndex).Normalize()
		refractionOrigin := hit.Position.Add(bias)
		if outside {
			refractionOrigin = hit.Position.Subtract(bias)
		}
		refractedColor = t.Trace(core.NewRay(refractionOrigin, refractionDir), depth+1)
	}

	reflectionOrigin := hit.Position.Add(bias)
	if !outside {
		reflectionOrigin = hit.Position.Subtract(bias)
	}
	reflectedColor := t.Trace(core.NewRay(reflectionOrigin, hit.Reflection.Normalize()), depth+1)

	return refractedColor.Multiply(1 - kr).Add(reflectedColor.Multiply(kr))
}

// shadeEmissive lights the surface by its own color: the per-light term uses
// the material color in place of the light color.
func (t *Tracer) shadeEmissive(prim geometry.Primitive, hit *geometry.SurfaceHit, mat *material.Material) core.Vec3 {
	var result core.Vec3
	shadowOrigin := hit.Position.Add(hit.Normal.Multiply(ShadowBias))

	for _, light := range t.scene.Lights() {
		toLight := light.Position.Subtract(hit.Position).Normalize()
		nDotL := hit.Normal.Dot(toLight)
		if nDotL < 0 {
			continue
		}
		if t.scene.Occluded(shadowOrigin, light.Position, prim) {
			continue
		}
		result = result.Add(mat.Color.Multiply(nDotL))
	}
	return result
}

// offsetOrigin nudges a secondary-ray origin off the surface on the side the
// incident ray arrived from, avoiding immediate self-re-intersection.
func (t *Tracer) offsetOrigin(hit *geometry.SurfaceHit) core.Vec3 {
	bias := hit.Normal.Multiply(ShadowBias)
	if hit.FromOutside() {
		return hit.Position.Add(bias)
	}
	return hit.Position.Subtract(bias)
}
