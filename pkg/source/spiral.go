package source

import (
	"math"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// Display rays: one chief ray plus a ring of marginal rays around the beam
// edge. They draw the beam outline and are excluded from power statistics.
const ringRays = 12

// goldenAngle spaces consecutive spiral samples so the fill stays even at
// any count
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// discSpiral returns n deterministic samples covering the unit disc with
// near-uniform density.
func discSpiral(n int) []core.Vec2 {
	pts := make([]core.Vec2, n)
	for k := 0; k < n; k++ {
		r := math.Sqrt((float64(k) + 0.5) / float64(n))
		theta := float64(k) * goldenAngle
		pts[k] = core.NewVec2(r*math.Cos(theta), r*math.Sin(theta))
	}
	return pts
}

// capSpiral returns n deterministic unit directions covering the spherical
// cap of the given half angle around +z, uniform per solid angle.
func capSpiral(n int, halfAngle float64) []core.Vec3 {
	dirs := make([]core.Vec3, n)
	capDepth := 1 - math.Cos(halfAngle)
	for k := 0; k < n; k++ {
		cosA := 1 - capDepth*(float64(k)+0.5)/float64(n)
		sinA := math.Sqrt(1 - cosA*cosA)
		theta := float64(k) * goldenAngle
		dirs[k] = core.NewVec3(sinA*math.Cos(theta), sinA*math.Sin(theta), cosA)
	}
	return dirs
}

// ringAngle returns the angle of display ring slot k, matching a linspace
// over [0, 2pi) without the endpoint.
func ringAngle(k int) float64 {
	return 2 * math.Pi * float64(k) / ringRays
}
