package surface

import "math"

// Profile is a surface height field over the local tangent plane: Sag
// returns the local z of the surface at transverse (x,y), with Sag(0,0) = 0.
// Points outside a profile's domain return NaN; the intersection solver
// turns those into per-ray misses.
type Profile interface {
	Sag(x, y float64) float64
}

// Spherical is a spherical cap. Radius is the signed radius of curvature:
// positive puts the center of curvature on the local +z side of the vertex,
// negative on the -z side. Radius must be nonzero.
type Spherical struct {
	Radius float64
}

// NewSpherical creates a spherical profile with the given signed radius
func NewSpherical(radius float64) *Spherical {
	return &Spherical{Radius: radius}
}

// Sag returns R - sign(R)*sqrt(R^2 - x^2 - y^2), NaN beyond the equator
func (s *Spherical) Sag(x, y float64) float64 {
	r2 := x*x + y*y
	rad2 := s.Radius * s.Radius
	if r2 > rad2 {
		return math.NaN()
	}
	return s.Radius - math.Copysign(math.Sqrt(rad2-r2), s.Radius)
}

// Conic is a conic-section profile with vertex radius of curvature Radius
// and conic constant K: sag = c*r^2 / (1 + sqrt(1 - (1+K)*c^2*r^2)) with
// c = 1/Radius. K = 0 is a sphere, K = -1 a paraboloid, K < -1 hyperboloids.
type Conic struct {
	Radius float64
	K      float64
}

// NewConic creates a conic profile from a vertex radius and conic constant
func NewConic(radius, k float64) *Conic {
	return &Conic{Radius: radius, K: k}
}

// Sag evaluates the conic sag, NaN where the section root goes negative
func (c *Conic) Sag(x, y float64) float64 {
	r2 := x*x + y*y
	curv := 1 / c.Radius
	disc := 1 - (1+c.K)*curv*curv*r2
	if disc < 0 {
		return math.NaN()
	}
	return curv * r2 / (1 + math.Sqrt(disc))
}

// Flat is the planar profile: sag is identically zero
type Flat struct{}

// NewFlat creates a flat profile
func NewFlat() *Flat {
	return &Flat{}
}

// Sag returns 0 for every point
func (f *Flat) Sag(x, y float64) float64 {
	return 0
}
