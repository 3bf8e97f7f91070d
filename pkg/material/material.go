package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Kind identifies how a surface responds to light. The shading kernel
// switches exhaustively over these values, so adding a kind means extending
// that switch.
type Kind int

const (
	Diffuse Kind = iota
	Reflective
	Refractive
	Emissive
)

// String returns a human-readable name for the material kind
func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Reflective:
		return "reflective"
	case Refractive:
		return "refractive"
	case Emissive:
		return "emissive"
	default:
		return "unknown"
	}
}

// Material describes a surface's response to light. Materials are immutable
// and shared by pointer among every primitive that uses them.
type Material struct {
	Kind            Kind
	Color           core.Vec3
	RefractiveIndex float64 // Meaningful only when Kind == Refractive
}

// NewDiffuse creates a Lambertian material with the given base color
func NewDiffuse(color core.Vec3) *Material {
	return &Material{Kind: Diffuse, Color: color}
}

// NewReflective creates a perfect-mirror material
func NewReflective(color core.Vec3) *Material {
	return &Material{Kind: Reflective, Color: color}
}

// NewEmissive creates a light-emitting material
func NewEmissive(color core.Vec3) *Material {
	return &Material{Kind: Emissive, Color: color}
}

// NewRefractive creates a dielectric material like glass. The refractive
// index must be positive (e.g. 1.5 for glass).
func NewRefractive(color core.Vec3, refractiveIndex float64) (*Material, error) {
	if refractiveIndex <= 0 {
		return nil, fmt.Errorf("refractive index must be positive, got %g", refractiveIndex)
	}
	return &Material{Kind: Refractive, Color: color, RefractiveIndex: refractiveIndex}, nil
}

// Reflect calculates the mirror reflection of incident off a surface with normal n
// r = i - 2*dot(i,n)*n
func Reflect(incident, n core.Vec3) core.Vec3 {
	return incident.Subtract(n.Multiply(2 * incident.Dot(n)))
}

// Refract calculates the transmitted direction through a dielectric boundary
// using Snell's law. The incident direction must be unit length; the normal
// points outward. Returns the zero vector under total internal reflection.
func Refract(incident, normal core.Vec3, refractiveIndex float64) core.Vec3 {
	cosi := clamp(incident.Dot(normal), -1, 1)
	etai, etat := 1.0, refractiveIndex
	n := normal
	if cosi < 0 {
		// Entering the material
		cosi = -cosi
	} else {
		// Exiting: swap the indices and flip the normal to the inside
		etai, etat = etat, etai
		n = normal.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}
	}
	return incident.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(k)))
}

// Fresnel computes the reflectance at a dielectric boundary from the exact
// polarized Fresnel equations. Returns 1 under total internal reflection.
func Fresnel(incident, normal core.Vec3, refractiveIndex float64) float64 {
	cosi := clamp(incident.Dot(normal), -1, 1)
	etai, etat := 1.0, refractiveIndex
	if cosi > 0 {
		etai, etat = etat, etai
	}

	// Snell's law gives the sine of the transmitted angle
	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		// Total internal reflection
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
