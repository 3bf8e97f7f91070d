package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleUniformHemisphere generates a uniformly distributed direction in the
// hemisphere around normal. sample.X is the cosine of the polar angle, so the
// pdf of every returned direction is 1/(2π).
func SampleUniformHemisphere(normal Vec3, sample Vec2) Vec3 {
	tangent, bitangent := coordinateSystem(normal)

	r1 := sample.X
	sinTheta := math.Sqrt(math.Max(0, 1.0-r1*r1))
	phi := 2.0 * math.Pi * sample.Y

	// Local direction with the normal along the y axis
	x := sinTheta * math.Cos(phi)
	y := r1
	z := sinTheta * math.Sin(phi)

	// Transform to world space
	return bitangent.Multiply(x).Add(normal.Multiply(y)).Add(tangent.Multiply(z))
}

// coordinateSystem builds an orthonormal tangent frame around n. The branch
// on |n.X| vs |n.Y| keeps the constructed tangent away from near-degenerate
// cross products.
func coordinateSystem(n Vec3) (tangent, bitangent Vec3) {
	if math.Abs(n.X) > math.Abs(n.Y) {
		invLen := 1.0 / math.Sqrt(n.X*n.X+n.Z*n.Z)
		tangent = NewVec3(n.Z*invLen, 0, -n.X*invLen)
	} else {
		invLen := 1.0 / math.Sqrt(n.Y*n.Y+n.Z*n.Z)
		tangent = NewVec3(0, -n.Z*invLen, n.Y*invLen)
	}
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec2(0, 0)
	}

	// Apply concentric mapping to point
	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}
