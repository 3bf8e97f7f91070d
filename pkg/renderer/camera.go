package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// The horizontal field of view is fixed; the narrower image dimension keeps
// this scale and the wider dimension is stretched proportionally
const fieldOfViewDegrees = 60.0

// Camera maps pixel coordinates and sub-sample offsets to world-space rays.
// It is immutable after construction and safe to share across workers.
type Camera struct {
	width, height int
	options       scene.Options
	scale         float64 // tan(fov/2)
	aspect        float64 // width / height
}

// NewCamera creates a camera for the given image dimensions and scene options
func NewCamera(width, height int, options scene.Options) *Camera {
	return &Camera{
		width:   width,
		height:  height,
		options: options,
		scale:   math.Tan(fieldOfViewDegrees / 2 * math.Pi / 180),
		aspect:  float64(width) / float64(height),
	}
}

// GetRay generates the ray for pixel (x, y) and sub-sample (i, j), where
// i and j run over [1, AntiAliasing]. The sampler is consulted only for the
// aperture jitter when depth of field is enabled. The returned direction is
// always unit length.
func (c *Camera) GetRay(x, y, i, j int, sampler core.Sampler) core.Ray {
	aa := float64(c.options.AntiAliasing)

	// Sub-pixel offsets center each sample within its sub-cell
	u := (float64(x) + (float64(i)-0.5)/aa) / float64(c.width)
	v := (float64(y) + (float64(j)-0.5)/aa) / float64(c.height)

	px := (2*u - 1) * c.scale
	py := (1 - 2*v) * c.scale
	if c.width >= c.height {
		px *= c.aspect
	} else {
		py /= c.aspect
	}

	// Historical behavior: a positive camera angle scales the vertical
	// coordinate by its raw value rather than rotating the camera. Scenes
	// depend on the literal effect, so it is preserved as-is.
	if c.options.CameraAngle > 0 {
		py *= c.options.CameraAngle
	}

	origin := c.options.CameraPosition
	direction := core.NewVec3(px, py, 0).Add(c.options.CameraAxis).Normalize()

	if c.options.ApertureRadius > 0 {
		// Jitter the origin within the lens disk and aim the ray back
		// through the point the unperturbed ray focuses on
		focalPoint := origin.Add(direction.Multiply(c.options.FocalLength))
		lens := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = origin.Add(core.NewVec3(
			lens.X*c.options.ApertureRadius,
			lens.Y*c.options.ApertureRadius,
			0,
		))
		direction = focalPoint.Subtract(origin).Normalize()
	}

	return core.NewRay(origin, direction)
}
