package source

import (
	"fmt"
	"math"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// CollimatedBeamSource emits parallel rays filling a disc perpendicular to
// the beam direction. Deterministic: the bulk covers the disc on a spiral,
// and the first 13 rows are display rays (chief ray plus a 12-point marginal
// ring on the rim).
type CollimatedBeamSource struct {
	Origin     core.Vec3
	Direction  core.Vec3
	Radius     float64
	Wavelength float64 // meters
	Power      float64 // watts, split evenly over the bulk rays
}

// NewCollimatedBeamSource creates a collimated source aimed along direction
func NewCollimatedBeamSource(origin, direction core.Vec3, radius, wavelength, power float64) *CollimatedBeamSource {
	return &CollimatedBeamSource{
		Origin:     origin,
		Direction:  direction,
		Radius:     radius,
		Wavelength: wavelength,
		Power:      power,
	}
}

// Generate emits nRays bulk rays plus the display header, in the global
// frame with unit directions. Display rays carry zero power.
func (s *CollimatedBeamSource) Generate(nRays int) (*core.RayBundle, error) {
	if nRays <= 0 {
		return nil, fmt.Errorf("ray count must be positive, got %d", nRays)
	}
	if s.Radius <= 0 {
		return nil, fmt.Errorf("beam radius must be positive, got %g", s.Radius)
	}
	if s.Wavelength <= 0 {
		return nil, fmt.Errorf("wavelength must be positive, got %g", s.Wavelength)
	}
	frame, err := core.LookAlong(s.Direction)
	if err != nil {
		return nil, err
	}

	rb := core.NewRayBundle(1 + ringRays + nRays)
	axis := core.NewVec3(0, 0, 1)

	// Chief ray and the marginal ring
	rb.Origins[0] = core.NewVec3(0, 0, 0)
	rb.Directions[0] = axis
	for k := 0; k < ringRays; k++ {
		theta := ringAngle(k)
		rb.Origins[1+k] = core.NewVec3(s.Radius*math.Cos(theta), s.Radius*math.Sin(theta), 0)
		rb.Directions[1+k] = axis
	}
	rb.Display = make([]int, 1+ringRays)
	for i := range rb.Display {
		rb.Display[i] = i
	}

	// Bulk fill
	perRay := s.Power / float64(nRays)
	for k, p := range discSpiral(nRays) {
		i := 1 + ringRays + k
		rb.Origins[i] = core.NewVec3(s.Radius*p.X, s.Radius*p.Y, 0)
		rb.Directions[i] = axis
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
