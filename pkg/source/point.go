package source

import (
	"fmt"
	"math"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// PointSource emits rays from a single point into a cone around the beam
// direction. Deterministic: bulk directions cover the cone's solid angle on
// a spiral, and the display header holds the chief ray plus 12 rays on the
// cone edge.
type PointSource struct {
	Origin     core.Vec3
	Direction  core.Vec3
	HalfAngle  float64 // radians, in (0, pi/2)
	Wavelength float64
	Power      float64
}

// NewPointSource creates a point source fanning into the given half angle
func NewPointSource(origin, direction core.Vec3, halfAngle, wavelength, power float64) *PointSource {
	return &PointSource{
		Origin:     origin,
		Direction:  direction,
		HalfAngle:  halfAngle,
		Wavelength: wavelength,
		Power:      power,
	}
}

// Generate emits nRays bulk rays plus the display header, in the global
// frame with unit directions. Display rays carry zero power.
func (s *PointSource) Generate(nRays int) (*core.RayBundle, error) {
	if nRays <= 0 {
		return nil, fmt.Errorf("ray count must be positive, got %d", nRays)
	}
	if s.HalfAngle <= 0 || s.HalfAngle >= math.Pi/2 {
		return nil, fmt.Errorf("half angle must be in (0, pi/2), got %g", s.HalfAngle)
	}
	if s.Wavelength <= 0 {
		return nil, fmt.Errorf("wavelength must be positive, got %g", s.Wavelength)
	}
	frame, err := core.LookAlong(s.Direction)
	if err != nil {
		return nil, err
	}

	rb := core.NewRayBundle(1 + ringRays + nRays)

	rb.Directions[0] = core.NewVec3(0, 0, 1)
	sinA, cosA := math.Sin(s.HalfAngle), math.Cos(s.HalfAngle)
	for k := 0; k < ringRays; k++ {
		theta := ringAngle(k)
		rb.Directions[1+k] = core.NewVec3(sinA*math.Cos(theta), sinA*math.Sin(theta), cosA)
	}
	rb.Display = make([]int, 1+ringRays)
	for i := range rb.Display {
		rb.Display[i] = i
	}

	perRay := s.Power / float64(nRays)
	for k, d := range capSpiral(nRays, s.HalfAngle) {
		i := 1 + ringRays + k
		rb.Directions[i] = d
		rb.Powers[i] = perRay
	}

	for i := range rb.Wavelengths {
		rb.Wavelengths[i] = s.Wavelength
	}

	rb.TransformToGlobal(s.Origin, frame)
	if err := rb.Normalize(); err != nil {
		return nil, err
	}
	return rb, nil
}
