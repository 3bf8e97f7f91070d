package tracer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func newTracer(t *testing.T, build func(*scene.Scene), optionMutators ...func(*scene.Options)) *Tracer {
	t.Helper()
	options := scene.DefaultOptions()
	for _, mutate := range optionMutators {
		mutate(&options)
	}
	s, err := scene.NewScene(options)
	if err != nil {
		t.Fatalf("Unexpected error creating scene: %v", err)
	}
	build(s)
	return New(s, core.NewRandomSampler(rand.New(rand.NewSource(42))))
}

func isFinite(v core.Vec3) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

func TestTrace_DepthCutoffReturnsBlack(t *testing.T) {
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewDiffuse(core.NewVec3(1, 1, 1))))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1)))
	})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if got := tr.Trace(ray, MaxDepth); got != (core.Vec3{}) {
		t.Errorf("Expected black at the recursion bound, got %v", got)
	}
}

func TestTrace_MissReturnsBackground(t *testing.T) {
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewDiffuse(core.NewVec3(1, 1, 1))))
	})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if got := tr.Trace(ray, 0); got != (core.Vec3{}) {
		t.Errorf("Expected black background, got %v", got)
	}
}

func TestTrace_MirrorBoxTerminates(t *testing.T) {
	// Two parallel mirror planes facing each other: recursion must stop at
	// the depth bound with a finite, non-negative color
	mirror := material.NewReflective(core.NewVec3(0.95, 0.95, 0.95))
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), mirror))
		s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1), mirror))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1)))
	})

	got := tr.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0)
	if !isFinite(got) {
		t.Fatalf("Expected finite color from mirror box, got %v", got)
	}
	clamped := got.Clamp(0, 1)
	if !isFinite(clamped) || clamped.X < 0 || clamped.X > 1 {
		t.Errorf("Expected clamped finite color, got %v", clamped)
	}
}

func TestTrace_DiffuseLitVersusShadowed(t *testing.T) {
	// A diffuse sphere lit by one light directly above: the lit hemisphere
	// must be strictly brighter than the shadowed hemisphere
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1)))
	})

	top := tr.Trace(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), 0)
	bottom := tr.Trace(core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0)), 0)

	if top.Luminance() <= bottom.Luminance() {
		t.Errorf("Expected lit hemisphere brighter than shadowed: top %v, bottom %v", top, bottom)
	}
	if bottom != (core.Vec3{}) {
		t.Errorf("Expected zero light on the far hemisphere, got %v", bottom)
	}
}

func TestTrace_OccluderBlocksDirectLight(t *testing.T) {
	build := func(withBlocker bool) func(*scene.Scene) {
		return func(s *scene.Scene) {
			s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))))
			if withBlocker {
				s.AddEntity(geometry.NewSphere(core.NewVec3(0, 3, 0), 1, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))))
			}
			s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1)))
		}
	}

	// Approach the same surface point from the side so the blocker never
	// intercepts the camera ray, only the shadow ray
	ray := core.NewRay(core.NewVec3(5, 0.9, 0), core.NewVec3(-1, 0, 0))

	unblocked := newTracer(t, build(false)).Trace(ray, 0)
	if unblocked.Luminance() <= 0 {
		t.Fatalf("Expected light without blocker, got %v", unblocked)
	}

	blocked := newTracer(t, build(true)).Trace(ray, 0)
	if blocked != (core.Vec3{}) {
		t.Errorf("Expected zero direct light behind the blocker, got %v", blocked)
	}
}

func TestTrace_FullyOccludedPointIsBlack(t *testing.T) {
	// Second identical sphere between the light and the first: the point at
	// the top of the lower sphere is fully occluded
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))))
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 4, 0), 1, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 8, 0), core.NewVec3(1, 1, 1)))
	})

	// Approach the lower sphere's top from the side so the ray does not hit
	// the blocker first
	ray := core.NewRay(core.NewVec3(5, 0.5, 0), core.NewVec3(-1, 0.05, 0).Normalize())
	got := tr.Trace(ray, 0)
	if got != (core.Vec3{}) {
		t.Errorf("Expected zero direct light at the occluded point, got %v", got)
	}
}

func TestTrace_EmissiveIgnoresLightColor(t *testing.T) {
	// The emissive surface's own color stands in for emission: a red light
	// must not tint an emissive white surface
	emissive := material.NewEmissive(core.NewVec3(1, 1, 1))
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, emissive))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 0, 0)))
	})

	got := tr.Trace(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), 0)
	if got.X <= 0 {
		t.Fatal("Expected emissive contribution")
	}
	if math.Abs(got.X-got.Y) > 1e-9 || math.Abs(got.X-got.Z) > 1e-9 {
		t.Errorf("Expected untinted emission, got %v", got)
	}
}

func TestTrace_ReflectiveReturnsBounceUnmodified(t *testing.T) {
	// A mirror plane in front of an emissive wall: the mirror must return
	// the bounced color without tinting it
	mirror := material.NewReflective(core.NewVec3(0.1, 0.1, 0.1)) // tint would darken if applied
	emissive := material.NewEmissive(core.NewVec3(0.5, 0.5, 0.5))
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), mirror))
		s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1), emissive))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)))
	})

	direct := tr.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0)
	viaMirror := tr.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0)

	if direct == (core.Vec3{}) {
		t.Fatal("Expected emissive wall to be visible directly")
	}
	if math.Abs(viaMirror.X-direct.X) > 1e-6 {
		t.Errorf("Expected untinted mirror bounce %v, got %v", direct, viaMirror)
	}
}

func TestTrace_RefractiveEnergyStaysBounded(t *testing.T) {
	glass, err := material.NewRefractive(core.NewVec3(1, 1, 1), 1.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	tr := newTracer(t, func(s *scene.Scene) {
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, glass))
		s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1), material.NewEmissive(core.NewVec3(1, 1, 1))))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1)))
	})

	got := tr.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0)
	if !isFinite(got) {
		t.Fatalf("Expected finite color through glass, got %v", got)
	}
	// Fresnel blend is a convex combination, so it cannot exceed its inputs
	if got.X > 1.0+1e-9 || got.Y > 1.0+1e-9 || got.Z > 1.0+1e-9 {
		t.Errorf("Expected bounded energy, got %v", got)
	}
}

func TestTrace_AmbientBranchIsFiniteAndBrighter(t *testing.T) {
	build := func(s *scene.Scene) {
		s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7))))
		s.AddEntity(geometry.NewSphere(core.NewVec3(0, 2, 5), 1, material.NewEmissive(core.NewVec3(1, 1, 1))))
		s.AddPointLight(scene.NewPointLight(core.NewVec3(0, 10, 5), core.NewVec3(1, 1, 1)))
	}

	ray := core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 1).Normalize())

	directOnly := newTracer(t, build).Trace(ray, 0)
	withAmbient := newTracer(t, build, func(o *scene.Options) { o.AmbientLight = true }).Trace(ray, 0)

	if !isFinite(withAmbient) {
		t.Fatalf("Expected finite ambient result, got %v", withAmbient)
	}
	if !isFinite(directOnly) {
		t.Fatalf("Expected finite direct result, got %v", directOnly)
	}
	// With an emissive sphere overhead, indirect sampling can only add light
	if withAmbient.Luminance() <= 0 {
		t.Error("Expected some light in the ambient branch")
	}
}
