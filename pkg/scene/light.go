package scene

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is a positional light with no falloff model beyond the Lambert
// term applied at the shaded surface. Immutable.
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3) PointLight {
	return PointLight{Position: position, Color: color}
}
