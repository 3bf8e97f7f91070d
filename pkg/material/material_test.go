package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewRefractive_Validation(t *testing.T) {
	tests := []struct {
		name    string
		ior     float64
		wantErr bool
	}{
		{"glass", 1.5, false},
		{"diamond", 2.42, false},
		{"zero", 0, true},
		{"negative", -1.3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mat, err := NewRefractive(core.NewVec3(1, 1, 1), tt.ior)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected construction error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mat.Kind != Refractive {
				t.Errorf("Expected refractive kind, got %v", mat.Kind)
			}
		})
	}
}

func TestReflect_LawOfReflection(t *testing.T) {
	tests := []struct {
		name     string
		incident core.Vec3
		normal   core.Vec3
	}{
		{"head on", core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)},
		{"45 degrees", core.NewVec3(1, -1, 0).Normalize(), core.NewVec3(0, 1, 0)},
		{"oblique", core.NewVec3(0.3, -0.8, 0.5).Normalize(), core.NewVec3(0, 1, 0)},
		{"tilted normal", core.NewVec3(0, 0, -1), core.NewVec3(1, 1, 1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reflect(tt.incident, tt.normal)

			// Angle of incidence equals angle of reflection: R·N == -I·N
			if math.Abs(r.Dot(tt.normal)+tt.incident.Dot(tt.normal)) > 1e-9 {
				t.Errorf("Expected R·N == -I·N, got %f vs %f", r.Dot(tt.normal), tt.incident.Dot(tt.normal))
			}
			if math.Abs(r.Length()-1.0) > 1e-9 {
				t.Errorf("Expected unit reflection, got length %f", r.Length())
			}
		})
	}
}

func TestFresnel_NormalIncidence(t *testing.T) {
	// At normal incidence the reflectance degenerates to ((etat-etai)/(etat+etai))²
	tests := []struct {
		name string
		ior  float64
	}{
		{"glass", 1.5},
		{"water", 1.33},
		{"diamond", 2.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incident := core.NewVec3(0, -1, 0)
			normal := core.NewVec3(0, 1, 0)

			expected := (tt.ior - 1) / (tt.ior + 1)
			expected *= expected

			if got := Fresnel(incident, normal, tt.ior); math.Abs(got-expected) > 1e-9 {
				t.Errorf("Expected reflectance %f, got %f", expected, got)
			}
		})
	}
}

func TestFresnel_TotalInternalReflection(t *testing.T) {
	// Exiting glass (etai=1.5 > etat=1) beyond the critical angle asin(1/1.5)
	ior := 1.5
	critical := math.Asin(1 / ior)
	angle := critical + 0.1

	// Incident direction inside the material, aligned with the outward normal
	normal := core.NewVec3(0, 1, 0)
	incident := core.NewVec3(math.Sin(angle), math.Cos(angle), 0)

	if got := Fresnel(incident, normal, ior); got != 1 {
		t.Errorf("Expected reflectance 1 beyond critical angle, got %f", got)
	}

	// No refracted direction exists in this regime
	if refr := Refract(incident, normal, ior); refr != (core.Vec3{}) {
		t.Errorf("Expected zero refraction vector, got %v", refr)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	// Entering glass at 45 degrees: sin(theta_t) = sin(45°)/1.5
	ior := 1.5
	normal := core.NewVec3(0, 1, 0)
	incident := core.NewVec3(1, -1, 0).Normalize()

	refr := Refract(incident, normal, ior)
	if math.Abs(refr.Length()-1.0) > 1e-9 {
		t.Fatalf("Expected unit refraction direction, got length %f", refr.Length())
	}

	sinIncident := math.Sqrt(0.5)
	expectedSin := sinIncident / ior
	gotSin := math.Abs(refr.X) // transverse component of a unit vector

	if math.Abs(gotSin-expectedSin) > 1e-9 {
		t.Errorf("Expected sin(theta_t)=%f, got %f", expectedSin, gotSin)
	}
	if refr.Y >= 0 {
		t.Errorf("Expected transmitted ray to continue into the surface, got %v", refr)
	}
}

func TestKind_String(t *testing.T) {
	if Diffuse.String() != "diffuse" || Refractive.String() != "refractive" {
		t.Error("Unexpected kind names")
	}
	if Kind(99).String() != "unknown" {
		t.Error("Expected unknown for out-of-range kind")
	}
}
