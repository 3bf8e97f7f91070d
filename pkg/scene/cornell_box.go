package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellBoxScene creates a Cornell-style box built from triangle pairs:
// red and green side walls, white floor/ceiling/back, a mirror sphere and a
// glass sphere inside, lit by a single point light under the ceiling.
func NewCornellBoxScene(optionOverrides ...Options) (*Scene, error) {
	options := Options{
		CameraPosition: core.NewVec3(0, 2.5, -7),
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

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewReflective(core.NewVec3(0.95, 0.95, 0.95))
	glass, err := material.NewRefractive(core.NewVec3(1, 1, 1), 1.5)
	if err != nil {
		return nil, err
	}

	// Box interior spans x,y in [-2.5, 2.5]x[0, 5], back wall at z = 2.5
	const half, height, back, front = 2.5, 5.0, 2.5, -7.5
	addWall := func(a, b, c, d core.Vec3, mat *material.Material) {
		s.AddEntity(geometry.NewTriangle(a, b, c, mat))
		s.AddEntity(geometry.NewTriangle(a, c, d, mat))
	}

	// Vertices wound so the cached normals face the box interior
	addWall( // floor
		core.NewVec3(-half, 0, front), core.NewVec3(-half, 0, back),
		core.NewVec3(half, 0, back), core.NewVec3(half, 0, front), white)
	addWall( // ceiling
		core.NewVec3(-half, height, back), core.NewVec3(-half, height, front),
		core.NewVec3(half, height, front), core.NewVec3(half, height, back), white)
	addWall( // back wall
		core.NewVec3(half, 0, back), core.NewVec3(-half, 0, back),
		core.NewVec3(-half, height, back), core.NewVec3(half, height, back), white)
	addWall( // left wall
		core.NewVec3(-half, 0, back), core.NewVec3(-half, 0, front),
		core.NewVec3(-half, height, front), core.NewVec3(-half, height, back), red)
	addWall( // right wall
		core.NewVec3(half, 0, front), core.NewVec3(half, 0, back),
		core.NewVec3(half, height, back), core.NewVec3(half, height, front), green)

	s.AddEntity(geometry.NewSphere(core.NewVec3(-1.1, 1, 1.2), 1.0, mirror))
	s.AddEntity(geometry.NewSphere(core.NewVec3(1.2, 0.8, 0), 0.8, glass))

	s.AddPointLight(NewPointLight(core.NewVec3(0, height-0.5, 0), core.NewVec3(1, 1, 1)))

	return s, nil
}
