package source

import (
	"fmt"
	"math"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// GaussianBeamSource emits rays tracing the geometric envelope of an
// elliptical Gaussian beam launched at its waist. Every ray starts on the
// waist ellipse and aims at the matching point of the beam envelope one
// meter downstream, so the bundle diverges the way the beam would.
// Deterministic: display header (chief ray plus the 12-point waist ellipse),
// then a spiral bulk fill of the ellipse.
type GaussianBeamSource struct {
	Origin     core.Vec3
	Direction  core.Vec3
	WaistX     float64 // 1/e^2 radius along local x, meters
	WaistY     float64 // 1/e^2 radius along local y, meters
	Wavelength float64
	Power      float64
}

// NewGaussianBeamSource creates a Gaussian beam source at its waist
func NewGaussianBeamSource(origin, direction core.Vec3, waistX, waistY, wavelength, power float64) *GaussianBeamSource {
	return &GaussianBeamSource{
		Origin:     origin,
		Direction:  direction,
		WaistX:     waistX,
		WaistY:     waistY,
		Wavelength: wavelength,
		Power:      power,
	}
}

// envelopeAt1m returns the beam radius one meter from the waist for a given
// waist radius: w(z) = w0*sqrt(1 + (z/zr)^2) with the Rayleigh range
// zr = pi*w0^2/lambda.
func (s *GaussianBeamSource) envelopeAt1m(waist float64) float64 {
	zr := math.Pi * waist * waist / s.Wavelength
	return waist * math.Sqrt(1+1/(zr*zr))
}

// Generate emits nRays bulk rays plus the display header, in the global
// frame with unit directions. Display rays carry zero power.
func (s *GaussianBeamSource) Generate(nRays int) (*core.RayBundle, error) {
	if nRays <= 0 {
		return nil, fmt.Errorf("ray count must be positive, got %d", nRays)
	}
	if s.WaistX <= 0 || s.WaistY <= 0 {
		return nil, fmt.Errorf("waists must be positive, got %g x %g", s.WaistX, s.WaistY)
	}
	if s.Wavelength <= 0 {
		return nil, fmt.Errorf("wavelength must be positive, got %g", s.Wavelength)
	}
	frame, err := core.LookAlong(s.Direction)
	if err != nil {
		return nil, err
	}

	size1mX := s.envelopeAt1m(s.WaistX)
	size1mY := s.envelopeAt1m(s.WaistY)

	rb := core.NewRayBundle(1 + ringRays + nRays)

	// Chief ray, then the waist ellipse aimed at the 1 m envelope
	rb.Directions[0] = core.NewVec3(0, 0, 1)
	for k := 0; k < ringRays; k++ {
		cosT := math.Cos(ringAngle(k))
		sinT := math.Sin(ringAngle(k))
		ox := s.WaistX * cosT
		oy := s.WaistY * sinT
		rb.Origins[1+k] = core.NewVec3(ox, oy, 0)
		rb.Directions[1+k] = core.NewVec3(size1mX*cosT-ox, size1mY*sinT-oy, 1)
	}
	rb.Display = make([]int, 1+ringRays)
	for i := range rb.Display {
		rb.Display[i] = i
	}

	// Bulk fill: same envelope rule applied across the ellipse interior
	perRay := s.Power / float64(nRays)
	for k, p := range discSpiral(nRays) {
		i := 1 + ringRays + k
		ox := s.WaistX * p.X
		oy := s.WaistY * p.Y
		rb.Origins[i] = core.NewVec3(ox, oy, 0)
		rb.Directions[i] = core.NewVec3(size1mX*p.X-ox, size1mY*p.Y-oy, 1)
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
