package tracer

import "github.com/df07/go-sequential-raytracer/pkg/core"

// Polyline is one ray's path through the stages as a chain of global points:
// the source origin, every intersection point, and a finite end segment for
// the last semi-infinite leg.
type Polyline struct {
	Ray     int         `json:"ray"`
	Display bool        `json:"display"`
	Points  []core.Vec3 `json:"points"`
}

// Polylines reconstructs the paths of the given ray rows through the stage
// history. Bound legs end at origin + length*direction; the final unbound
// leg of a live ray is drawn with the stage's display length (mean bound
// length, or the origin bounding box diagonal when nothing is bound). A ray
// that dies at some surface ends at its last recorded point: legs past the
// death are carried copies, not flight.
func Polylines(stages []*core.RayBundle, rays []int) []Polyline {
	if len(stages) == 0 {
		return nil
	}

	fallbacks := make([]float64, len(stages))
	for k, rb := range stages {
		fallbacks[k] = rb.DisplayLength()
	}
	display := stages[0].DisplaySet()

	lines := make([]Polyline, 0, len(rays))
	for _, i := range rays {
		pts := []core.Vec3{stages[0].Origins[i]}
		for k, rb := range stages {
			if rb.Status[i] != core.RayActive {
				break
			}
			pts = append(pts, rb.EndPoint(i, fallbacks[k]))
		}
		lines = append(lines, Polyline{Ray: i, Display: display[i], Points: pts})
	}
	return lines
}

// DisplayPolylines reconstructs only the display-ray subset
func DisplayPolylines(stages []*core.RayBundle) []Polyline {
	if len(stages) == 0 {
		return nil
	}
	return Polylines(stages, stages[0].Display)
}
