package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Options holds the immutable render configuration for a scene. It is
// constructed once before rendering and never mutated during a pass.
type Options struct {
	CameraPosition core.Vec3 // World-space camera origin
	CameraAxis     core.Vec3 // Added to the camera-space ray direction before normalization
	// CameraAngle, when positive, scales the vertical camera-space
	// coordinate by its raw value. This is not a true axis-angle rotation;
	// the behavior is kept literally because existing scenes depend on it.
	CameraAngle    float64
	AntiAliasing   int     // N gives N×N sub-samples per pixel
	ApertureRadius float64 // Lens radius for depth of field; 0 disables the effect
	FocalLength    float64 // Distance to the focal plane; required when ApertureRadius > 0
	AmbientLight   bool    // Enables Monte-Carlo indirect lighting on diffuse surfaces
}

// DefaultOptions returns the baseline configuration: camera at the origin
// looking down +z, no anti-aliasing, no depth of field, direct lighting only.
func DefaultOptions() Options {
	return Options{
		CameraPosition: core.NewVec3(0, 0, 0),
		CameraAxis:     core.NewVec3(0, 0, 1),
		CameraAngle:    0,
		AntiAliasing:   1,
		ApertureRadius: 0,
		FocalLength:    0,
		AmbientLight:   false,
	}
}

// Validate reports configuration contract violations. Construction fails
// fast here rather than propagating silently wrong renders.
func (o Options) Validate() error {
	if o.AntiAliasing < 1 {
		return fmt.Errorf("anti-aliasing factor must be at least 1, got %d", o.AntiAliasing)
	}
	if o.CameraAxis.LengthSquared() == 0 {
		return fmt.Errorf("camera axis must be non-zero")
	}
	if o.ApertureRadius < 0 {
		return fmt.Errorf("aperture radius must be non-negative, got %g", o.ApertureRadius)
	}
	if o.ApertureRadius > 0 && o.FocalLength <= 0 {
		return fmt.Errorf("depth of field requires a positive focal length, got %g", o.FocalLength)
	}
	if o.CameraAngle < 0 {
		return fmt.Errorf("camera angle must be non-negative, got %g", o.CameraAngle)
	}
	return nil
}
