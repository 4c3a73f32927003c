package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// RayStatus flags the per-ray outcome of a propagation stage. Rays are never
// dropped from a bundle: a ray that fails at some surface keeps its row (and
// its last-known geometry) with a non-active status, and later stages skip it.
type RayStatus uint8

const (
	// RayActive rays participate in intersection, bending and capture
	RayActive RayStatus = iota
	// RayParallel rays travel nearly parallel to a surface's tangent plane
	// and were not intersected with it
	RayParallel
	// RayMissed rays had no forward intersection with a surface (including
	// Newton-Raphson non-convergence and sag-domain overruns)
	RayMissed
	// RayVignetted rays intersected a surface outside its aperture
	RayVignetted
	// RayAbsorbed rays were terminated at a surface (total internal
	// reflection under the absorb policy); their power is zeroed
	RayAbsorbed
)

// String returns a short human-readable status name
func (s RayStatus) String() string {
	switch s {
	case RayActive:
		return "active"
	case RayParallel:
		return "parallel"
	case RayMissed:
		return "missed"
	case RayVignetted:
		return "vignetted"
	case RayAbsorbed:
		return "absorbed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// RayBundle is a fixed-size batch of rays stored column-wise. All columns are
// co-indexed: row i of every column describes the same ray, and stage outputs
// keep a 1:1 row correspondence with their inputs.
//
// Lengths uses 0 as the semi-infinite sentinel: a ray with length 0 has not
// been bound by an intersection yet; a positive length terminates the ray at
// Origins[i] + Lengths[i]*Directions[i].
type RayBundle struct {
	Origins     []Vec3
	Directions  []Vec3
	Lengths     []float64
	Wavelengths []float64 // meters
	Powers      []float64 // watts
	Display     []int     // row indices of the display-ray subset
	Status      []RayStatus
}

// NewRayBundle allocates a zeroed bundle of n rays with no display rays
func NewRayBundle(n int) *RayBundle {
	return &RayBundle{
		Origins:     make([]Vec3, n),
		Directions:  make([]Vec3, n),
		Lengths:     make([]float64, n),
		Wavelengths: make([]float64, n),
		Powers:      make([]float64, n),
		Status:      make([]RayStatus, n),
	}
}

// Len returns the number of rays in the bundle
func (rb *RayBundle) Len() int {
	return len(rb.Origins)
}

// Ray returns a single-ray view of row i
func (rb *RayBundle) Ray(i int) Ray {
	return Ray{Origin: rb.Origins[i], Direction: rb.Directions[i]}
}

// Validate checks the columnar invariants: at least one ray, co-indexed
// columns of equal length, and display indices in range. Violations are
// configuration errors.
func (rb *RayBundle) Validate() error {
	n := rb.Len()
	if n == 0 {
		return ErrEmptyBundle
	}
	if len(rb.Directions) != n || len(rb.Lengths) != n ||
		len(rb.Wavelengths) != n || len(rb.Powers) != n || len(rb.Status) != n {
		return ErrColumnMismatch
	}
	for _, idx := range rb.Display {
		if idx < 0 || idx >= n {
			return fmt.Errorf("display ray index %d out of range [0,%d): %w", idx, n, ErrColumnMismatch)
		}
	}
	return nil
}

// Clone returns a deep copy of the bundle. A nil display set stays nil.
func (rb *RayBundle) Clone() *RayBundle {
	out := &RayBundle{
		Origins:     make([]Vec3, len(rb.Origins)),
		Directions:  make([]Vec3, len(rb.Directions)),
		Lengths:     make([]float64, len(rb.Lengths)),
		Wavelengths: make([]float64, len(rb.Wavelengths)),
		Powers:      make([]float64, len(rb.Powers)),
		Status:      make([]RayStatus, len(rb.Status)),
	}
	copy(out.Origins, rb.Origins)
	copy(out.Directions, rb.Directions)
	copy(out.Lengths, rb.Lengths)
	copy(out.Wavelengths, rb.Wavelengths)
	copy(out.Powers, rb.Powers)
	copy(out.Status, rb.Status)
	if rb.Display != nil {
		out.Display = make([]int, len(rb.Display))
		copy(out.Display, rb.Display)
	}
	return out
}

// Normalize rescales every direction to unit length in place. A zero-length
// direction is a configuration error: callers must guarantee non-degenerate
// directions before propagating.
func (rb *RayBundle) Normalize() error {
	for i, d := range rb.Directions {
		length := d.Length()
		if length == 0 {
			return fmt.Errorf("ray %d: %w", i, ErrZeroDirection)
		}
		rb.Directions[i] = Vec3{X: d.X / length, Y: d.Y / length, Z: d.Z / length}
	}
	return nil
}

// TransformToGlobal re-expresses the bundle in the global frame, given the
// element frame it is currently local to. Only origins and directions change:
// lengths, wavelengths, powers, statuses and the display set are
// frame-invariant.
func (rb *RayBundle) TransformToGlobal(origin Vec3, rotation Rotation) {
	for i := range rb.Origins {
		rb.Origins[i] = rotation.Apply(rb.Origins[i]).Add(origin)
		rb.Directions[i] = rotation.Apply(rb.Directions[i])
	}
}

// TransformToLocal re-expresses the bundle in an element's local frame.
// Exact inverse of TransformToGlobal for orthonormal rotations.
func (rb *RayBundle) TransformToLocal(origin Vec3, rotation Rotation) {
	for i := range rb.Origins {
		rb.Origins[i] = rotation.ApplyTranspose(rb.Origins[i].Subtract(origin))
		rb.Directions[i] = rotation.ApplyTranspose(rb.Directions[i])
	}
}

// DisplaySet returns the display-ray indices as a set for O(1) membership
// tests in aggregation loops.
func (rb *RayBundle) DisplaySet() map[int]bool {
	set := make(map[int]bool, len(rb.Display))
	for _, idx := range rb.Display {
		set[idx] = true
	}
	return set
}

// CountByStatus tallies rays per status
func (rb *RayBundle) CountByStatus() map[RayStatus]int {
	counts := make(map[RayStatus]int)
	for _, s := range rb.Status {
		counts[s]++
	}
	return counts
}

// ActiveCount returns the number of rays still participating in physics
func (rb *RayBundle) ActiveCount() int {
	n := 0
	for _, s := range rb.Status {
		if s == RayActive {
			n++
		}
	}
	return n
}

// TotalPower sums the power of the bulk (non-display) rays regardless of
// status. Display rays are excluded from all aggregates so the deterministic
// visualization subset cannot bias the statistics.
func (rb *RayBundle) TotalPower() float64 {
	display := rb.DisplaySet()
	sum := 0.0
	for i, p := range rb.Powers {
		if display[i] {
			continue
		}
		sum += p
	}
	return sum
}

// ActivePower sums the power of the bulk rays that are still active
func (rb *RayBundle) ActivePower() float64 {
	display := rb.DisplaySet()
	sum := 0.0
	for i, p := range rb.Powers {
		if display[i] || rb.Status[i] != RayActive {
			continue
		}
		sum += p
	}
	return sum
}

// MeanBoundLength returns the mean length of the bound (length > 0) rays,
// or 0 when every ray is still semi-infinite.
func (rb *RayBundle) MeanBoundLength() float64 {
	bound := make([]float64, 0, len(rb.Lengths))
	for _, l := range rb.Lengths {
		if l > 0 {
			bound = append(bound, l)
		}
	}
	if len(bound) == 0 {
		return 0
	}
	return stat.Mean(bound, nil)
}

// BoundingDiagonal returns the diagonal length of the axis-aligned bounding
// box of the ray origins.
func (rb *RayBundle) BoundingDiagonal() float64 {
	if rb.Len() == 0 {
		return 0
	}
	lo, hi := rb.Origins[0], rb.Origins[0]
	for _, o := range rb.Origins[1:] {
		lo.X = math.Min(lo.X, o.X)
		lo.Y = math.Min(lo.Y, o.Y)
		lo.Z = math.Min(lo.Z, o.Z)
		hi.X = math.Max(hi.X, o.X)
		hi.Y = math.Max(hi.Y, o.Y)
		hi.Z = math.Max(hi.Z, o.Z)
	}
	return hi.Subtract(lo).Length()
}

// DisplayLength returns the finite length used to draw semi-infinite rays:
// the mean bound length when any ray is bound, otherwise the origin
// bounding-box diagonal, otherwise 1 (a point source with nothing bound yet).
func (rb *RayBundle) DisplayLength() float64 {
	if l := rb.MeanBoundLength(); l > 0 {
		return l
	}
	if d := rb.BoundingDiagonal(); d > 0 {
		return d
	}
	return 1
}

// EndPoint returns the terminal point of ray i for display purposes: the
// bound endpoint when the ray has a length, otherwise the origin advanced by
// the given fallback length.
func (rb *RayBundle) EndPoint(i int, fallback float64) Vec3 {
	t := rb.Lengths[i]
	if t == 0 {
		t = fallback
	}
	return rb.Origins[i].Add(rb.Directions[i].Multiply(t))
}
