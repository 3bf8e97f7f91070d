package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the default demo scene: diffuse, mirror and glass
// spheres over a ground plane, lit by two point lights.
func NewDefaultScene(optionOverrides ...Options) (*Scene, error) {
	options := Options{
		CameraPosition: core.NewVec3(0, 1, -4),
		CameraAxis:     core.NewVec3(0, 0, 1),
		AntiAliasing:   2,
		AmbientLight:   true,
	}
	if len(optionOverrides) > 0 {
		options = optionOverrides[0]
	}

	s, err := NewScene(options)
	if err != nil {
		return nil, err
	}

	// Materials, shared across primitives
	diffuseRed := material.NewDiffuse(core.NewVec3(0.9, 0.2, 0.2))
	diffuseBlue := material.NewDiffuse(core.NewVec3(0.2, 0.3, 0.9))
	diffuseGray := material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6))
	mirror := material.NewReflective(core.NewVec3(0.95, 0.95, 0.95))
	glass, err := material.NewRefractive(core.NewVec3(1, 1, 1), 1.5)
	if err != nil {
		return nil, err
	}
	glow := material.NewEmissive(core.NewVec3(1.0, 0.85, 0.4))

	s.AddEntity(geometry.NewSphere(core.NewVec3(-1.6, 1, 4), 1.0, diffuseRed))
	s.AddEntity(geometry.NewSphere(core.NewVec3(1.6, 1, 4.5), 1.0, mirror))
	s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0.75, 2.5), 0.75, glass))
	s.AddEntity(geometry.NewSphere(core.NewVec3(0.4, 0.35, 1.2), 0.35, diffuseBlue))
	s.AddEntity(geometry.NewSphere(core.NewVec3(-2.8, 0.5, 2), 0.5, glow))
	s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), diffuseGray))

	s.AddPointLight(NewPointLight(core.NewVec3(-3, 6, -1), core.NewVec3(1, 1, 1)))
	s.AddPointLight(NewPointLight(core.NewVec3(4, 5, 0), core.NewVec3(0.5, 0.5, 0.6)))

	return s, nil
}
