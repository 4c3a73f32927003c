package surface

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// Numerical tuning for the generic sag-based engine. The gradient step sits
// near the wavelength of light: small enough to resolve surface curvature,
// large enough to stay clear of floating-point cancellation.
const (
	gradientStep   = 100e-9
	convergenceTol = 1e-12
	maxIterations  = 16
	parallelLimit  = 1e-9 // |d.z| below this cannot seed the tangent-plane solve
	orthonormalTol = 1e-9
)

// TIRPolicy selects what happens to a ray past the critical angle
type TIRPolicy int

const (
	// TIRReflect bounces totally internally reflected rays like a mirror
	TIRReflect TIRPolicy = iota
	// TIRAbsorb terminates totally internally reflected rays and zeroes
	// their power
	TIRAbsorb
)

// Surface is an optical boundary between two media, placed in the global
// frame by Origin and Rotation (local to global). Its shape is the Profile's
// sag over the local tangent plane, clipped by the Aperture. IndexAfter == 0
// marks a mirror.
//
// All Surface behavior derives from the profile's sag alone: normals come
// from its numerical gradient and intersections from a per-ray
// Newton-Raphson solve seeded at the tangent plane.
type Surface struct {
	Origin      core.Vec3
	Rotation    core.Rotation
	Aperture    core.Aperture
	IndexBefore float64
	IndexAfter  float64
	Profile     Profile
	TIR         TIRPolicy
}

// NewSurface creates a refracting or reflecting surface. indexAfter == 0
// makes it a mirror. The default TIR policy reflects.
func NewSurface(origin core.Vec3, rotation core.Rotation, ap core.Aperture, indexBefore, indexAfter float64, profile Profile) *Surface {
	return &Surface{
		Origin:      origin,
		Rotation:    rotation,
		Aperture:    ap,
		IndexBefore: indexBefore,
		IndexAfter:  indexAfter,
		Profile:     profile,
	}
}

// Validate reports configuration errors: missing collaborators, a
// non-orthonormal rotation, or degenerate refraction indices.
func (s *Surface) Validate() error {
	if s.Profile == nil {
		return errors.New("surface has no profile")
	}
	if s.Aperture == nil {
		return errors.New("surface has no aperture")
	}
	if !s.Rotation.IsOrthonormal(orthonormalTol) {
		return core.ErrNotOrthonormal
	}
	if s.IndexBefore <= 0 {
		return fmt.Errorf("index before surface must be positive, got %g", s.IndexBefore)
	}
	if s.IndexAfter < 0 {
		return fmt.Errorf("index after surface must be positive or 0 for a mirror, got %g", s.IndexAfter)
	}
	return nil
}

// IsMirror reports whether the surface reflects instead of refracting
func (s *Surface) IsMirror() bool {
	return s.IndexAfter == 0
}

// Propagate intersects every active ray of the bundle with the surface and
// emits the bent successor bundle, both in the global frame. Rows stay 1:1
// with the input: rays that fail (parallel to the surface, no forward
// intersection, outside the aperture, absorbed) keep their row and last
// geometry under a non-active status and take no further part in physics.
//
// Side effect on the input: rays that geometrically reach the surface (hits
// and vignetted rays) get their Lengths entry set to the solved flight
// distance, so the per-stage history records the full path. Successors of
// hits restart semi-infinite: origin at the intersection point, unit bent
// direction, length 0.
//
// workers bounds the goroutines used for the per-ray solve; 0 means one per
// CPU, 1 runs serially.
func (s *Surface) Propagate(in *core.RayBundle, workers int) (*core.RayBundle, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	local := in.Clone()
	local.TransformToLocal(s.Origin, s.Rotation)

	out := in.Clone()
	core.ParallelFor(in.Len(), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if in.Status[i] != core.RayActive {
				continue
			}
			s.propagateRay(in, local, out, i)
		}
	})
	return out, nil
}

// propagateRay solves ray i in the local frame and writes its global-frame
// successor into out. Writes touch only row i, so disjoint chunks are safe
// to run concurrently.
func (s *Surface) propagateRay(in, local, out *core.RayBundle, i int) {
	o := local.Origins[i]
	d := local.Directions[i]

	res := intersectRay(s.Profile, o, d)
	if res.status != core.RayActive {
		out.Status[i] = res.status
		return
	}

	hit := o.Add(d.Multiply(res.t))
	in.Lengths[i] = res.t
	if !s.Aperture.Contains(hit.X, hit.Y) {
		out.Status[i] = core.RayVignetted
		return
	}

	n := normalAt(s.Profile, hit.X, hit.Y)
	if n.Dot(d) > 0 {
		n = n.Negate()
	}

	bent, status := s.bend(d, n)
	out.Origins[i] = s.Rotation.Apply(hit).Add(s.Origin)
	out.Directions[i] = s.Rotation.Apply(bent)
	out.Lengths[i] = 0
	out.Status[i] = status
	if status == core.RayAbsorbed {
		out.Powers[i] = 0
	}
}

// bend applies the surface's optical action to unit incident direction d
// with unit normal n oriented against the ray (n.Dot(d) < 0). Mirrors
// reflect; refracting boundaries apply the vector form of Snell's law, with
// the configured policy past the critical angle. Never returns NaN.
func (s *Surface) bend(d, n core.Vec3) (core.Vec3, core.RayStatus) {
	if s.IsMirror() {
		return reflect(d, n), core.RayActive
	}
	bent, ok := refract(d, n, s.IndexBefore, s.IndexAfter)
	if ok {
		return bent, core.RayActive
	}
	if s.TIR == TIRAbsorb {
		return d, core.RayAbsorbed
	}
	return reflect(d, n), core.RayActive
}

// Mesh tessellates the surface over its aperture grid, evaluates the sag at
// every sample and returns the points in the global frame. Samples outside
// the profile's domain fall back to the tangent plane.
func (s *Surface) Mesh() *core.MeshGrid {
	grid := s.Aperture.Mesh()
	for k := range grid.X {
		z := s.Profile.Sag(grid.X[k], grid.Y[k])
		if math.IsNaN(z) {
			z = 0
		}
		grid.Z[k] = z
	}
	grid.Transform(s.Origin, s.Rotation)
	return grid
}

// hitResult is the outcome of one ray's intersection solve
type hitResult struct {
	t      float64
	iters  int
	status core.RayStatus
}

// intersectRay finds the forward crossing of a local-frame ray with the
// profile by Newton-Raphson on f(t) = o.z + t*d.z - sag(x(t), y(t)), seeded
// at the tangent-plane crossing t0 = -o.z/d.z. Each iteration re-evaluates f
// and a finite-difference slope along the ray. Rays nearly parallel to the
// tangent plane are flagged without dividing; NaN sag (outside the profile
// domain), a behind-the-ray solution, or hitting the iteration cap all flag
// a miss.
func intersectRay(p Profile, o, d core.Vec3) hitResult {
	if math.Abs(d.Z) < parallelLimit {
		return hitResult{status: core.RayParallel}
	}

	f := func(t float64) float64 {
		return o.Z + t*d.Z - p.Sag(o.X+t*d.X, o.Y+t*d.Y)
	}

	t := -o.Z / d.Z
	for iter := 1; iter <= maxIterations; iter++ {
		ft := f(t)
		if math.IsNaN(ft) {
			return hitResult{status: core.RayMissed}
		}
		if math.Abs(ft) < convergenceTol {
			if t < 0 {
				return hitResult{status: core.RayMissed}
			}
			return hitResult{t: t, iters: iter, status: core.RayActive}
		}
		slope := (f(t+gradientStep) - ft) / gradientStep
		if slope == 0 || math.IsNaN(slope) {
			return hitResult{status: core.RayMissed}
		}
		t -= ft / slope
	}
	return hitResult{status: core.RayMissed}
}

// normalAt estimates the unit outward normal at local (x,y) from the sag
// gradient. The two tangent vectors at the point are (eps,0,dx*eps) and
// (0,eps,dy*eps); their cross product is proportional to (-dx,-dy,1), so the
// eps^2 term never needs evaluating.
func normalAt(p Profile, x, y float64) core.Vec3 {
	s0 := p.Sag(x, y)
	dx := (p.Sag(x+gradientStep, y) - s0) / gradientStep
	dy := (p.Sag(x, y+gradientStep) - s0) / gradientStep
	norm := math.Sqrt(dx*dx + dy*dy + 1)
	return core.NewVec3(-dx/norm, -dy/norm, 1/norm)
}

// reflect mirrors unit direction d about the plane with unit normal n
func reflect(d, n core.Vec3) core.Vec3 {
	return d.Subtract(n.Multiply(2 * d.Dot(n)))
}

// refract bends unit direction d across a boundary with unit normal n
// oriented against the ray, from index n1 into n2. Returns false past the
// critical angle, where no refracted direction exists.
func refract(d, n core.Vec3, n1, n2 float64) (core.Vec3, bool) {
	mu := n1 / n2
	c1 := -n.Dot(d)
	c2sq := 1 - mu*mu*(1-c1*c1)
	if c2sq < 0 {
		return core.Vec3{}, false
	}
	return d.Multiply(mu).Add(n.Multiply(mu*c1 - math.Sqrt(c2sq))), true
}
