package surface

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// Rays steeper than this against the screen plane record a crossing; the
// rest record no intersection.
const screenParallelLimit = 1e-6

// CaptureRecord is one ray's crossing of a screen plane, in the screen's
// local coordinates. Hit is false for rays parallel to the plane and for
// rays already flagged dead upstream.
type CaptureRecord struct {
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	T          float64 `json:"t,omitempty"` // flight distance to the plane
	Hit        bool    `json:"hit"`
	Inside     bool    `json:"inside"` // within the screen aperture
	Wavelength float64 `json:"wavelength"`
	Power      float64 `json:"power"`
	Display    bool    `json:"display,omitempty"`
}

// SpotStats aggregates a screen's in-aperture bulk hits
type SpotStats struct {
	Count      int     `json:"count"`
	CentroidX  float64 `json:"centroidX"`
	CentroidY  float64 `json:"centroidY"`
	RMSRadius  float64 `json:"rmsRadius"` // RMS distance from the centroid
	TotalPower float64 `json:"totalPower"`
}

// Screen is a planar capture target: it records where rays cross its local
// z=0 plane without ever altering the bundle. Captures accumulate across
// Capture calls until Reset; a propagation run resets its screens first, so
// accumulation only happens when a caller asks for it.
type Screen struct {
	Origin   core.Vec3
	Rotation core.Rotation
	Aperture core.Aperture

	captures []CaptureRecord
}

// NewScreen creates a screen spanning the aperture on the plane at origin
func NewScreen(origin core.Vec3, rotation core.Rotation, ap core.Aperture) *Screen {
	return &Screen{Origin: origin, Rotation: rotation, Aperture: ap}
}

// Validate reports configuration errors
func (s *Screen) Validate() error {
	if s.Aperture == nil {
		return errors.New("screen has no aperture")
	}
	if !s.Rotation.IsOrthonormal(orthonormalTol) {
		return core.ErrNotOrthonormal
	}
	return nil
}

// Capture records where each ray of the bundle crosses the screen plane,
// one record per bundle row. The plane is solved linearly (screens are
// flat), and a crossing behind the ray records its negative flight distance
// rather than being dropped. The bundle itself is read-only to the screen.
func (s *Screen) Capture(rb *core.RayBundle) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := rb.Validate(); err != nil {
		return err
	}

	local := rb.Clone()
	local.TransformToLocal(s.Origin, s.Rotation)
	display := rb.DisplaySet()

	for i := 0; i < local.Len(); i++ {
		rec := CaptureRecord{
			Wavelength: rb.Wavelengths[i],
			Power:      rb.Powers[i],
			Display:    display[i],
		}
		o := local.Origins[i]
		d := local.Directions[i]
		if rb.Status[i] == core.RayActive && math.Abs(d.Z) > screenParallelLimit {
			t := -o.Z / d.Z
			rec.T = t
			rec.X = o.X + t*d.X
			rec.Y = o.Y + t*d.Y
			rec.Hit = true
			rec.Inside = s.Aperture.Contains(rec.X, rec.Y)
		}
		s.captures = append(s.captures, rec)
	}
	return nil
}

// Reset clears the accumulated captures
func (s *Screen) Reset() {
	s.captures = nil
}

// Captures returns the accumulated records. The slice is owned by the
// screen and valid until the next Reset.
func (s *Screen) Captures() []CaptureRecord {
	return s.captures
}

// Stats computes spot statistics over the in-aperture bulk hits. Display
// rays and out-of-aperture crossings never contribute, so the deterministic
// display subset cannot bias the spot.
func (s *Screen) Stats() SpotStats {
	xs := make([]float64, 0, len(s.captures))
	ys := make([]float64, 0, len(s.captures))
	powers := make([]float64, 0, len(s.captures))
	for _, rec := range s.captures {
		if !rec.Hit || !rec.Inside || rec.Display {
			continue
		}
		xs = append(xs, rec.X)
		ys = append(ys, rec.Y)
		powers = append(powers, rec.Power)
	}
	if len(xs) == 0 {
		return SpotStats{}
	}

	cx := stat.Mean(xs, nil)
	cy := stat.Mean(ys, nil)
	sum := 0.0
	for k := range xs {
		dx := xs[k] - cx
		dy := ys[k] - cy
		sum += dx*dx + dy*dy
	}
	return SpotStats{
		Count:      len(xs),
		CentroidX:  cx,
		CentroidY:  cy,
		RMSRadius:  math.Sqrt(sum / float64(len(xs))),
		TotalPower: floats.Sum(powers),
	}
}

// Mesh returns the screen plane sampled over its aperture grid in the
// global frame.
func (s *Screen) Mesh() *core.MeshGrid {
	grid := s.Aperture.Mesh()
	grid.Transform(s.Origin, s.Rotation)
	return grid
}
