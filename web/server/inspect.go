package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-sequential-raytracer/pkg/aperture"
	"github.com/df07/go-sequential-raytracer/pkg/bench"
	"github.com/df07/go-sequential-raytracer/pkg/core"
	"github.com/df07/go-sequential-raytracer/pkg/surface"
	"github.com/df07/go-sequential-raytracer/pkg/tracer"
)

// ElementInfo describes one element of a bench for the UI: its kind, global
// position, a display mesh in global coordinates and type-specific properties
type ElementInfo struct {
	Type       string                 `json:"type"` // "surface" or "screen"
	Origin     [3]float64             `json:"origin"`
	Mesh       *core.MeshGrid         `json:"mesh"`
	Properties map[string]interface{} `json:"properties"`
}

// SystemResponse represents the JSON response for bench inspection
type SystemResponse struct {
	Bench    string        `json:"bench"`
	Elements []ElementInfo `json:"elements"`
}

// handleSystem returns the element layout of a bench so the UI can draw it
// before any rays are traced
func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	benchName := r.URL.Query().Get("bench")
	if benchName == "" {
		benchName = "singlet" // Default bench
	}

	sys, err := bench.Create(benchName)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	elements := make([]ElementInfo, 0, len(sys.Elements()))
	for _, el := range sys.Elements() {
		info, err := describeElement(el)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		elements = append(elements, info)
	}

	s.writeJSON(w, http.StatusOK, SystemResponse{Bench: benchName, Elements: elements})
}

// describeElement extracts detailed element information with type assertions
func describeElement(el tracer.Element) (ElementInfo, error) {
	switch e := el.(type) {
	case *surface.Surface:
		profileType, profileProps := describeProfile(e.Profile)
		apertureType, apertureProps := describeAperture(e.Aperture)

		properties := map[string]interface{}{
			"profile":     map[string]interface{}{"type": profileType, "properties": profileProps},
			"aperture":    map[string]interface{}{"type": apertureType, "properties": apertureProps},
			"indexBefore": e.IndexBefore,
			"indexAfter":  e.IndexAfter,
			"mirror":      e.IsMirror(),
		}
		return ElementInfo{
			Type:       "surface",
			Origin:     [3]float64{e.Origin.X, e.Origin.Y, e.Origin.Z},
			Mesh:       e.Mesh(),
			Properties: properties,
		}, nil

	case *surface.Screen:
		apertureType, apertureProps := describeAperture(e.Aperture)

		properties := map[string]interface{}{
			"aperture": map[string]interface{}{"type": apertureType, "properties": apertureProps},
		}
		return ElementInfo{
			Type:       "screen",
			Origin:     [3]float64{e.Origin.X, e.Origin.Y, e.Origin.Z},
			Mesh:       e.Mesh(),
			Properties: properties,
		}, nil

	default:
		return ElementInfo{}, fmt.Errorf("unsupported element type %T", el)
	}
}

// describeProfile extracts profile information with type assertions
func describeProfile(p surface.Profile) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch prof := p.(type) {
	case *surface.Spherical:
		properties["radius"] = prof.Radius
		return "spherical", properties

	case *surface.Conic:
		properties["radius"] = prof.Radius
		properties["conic"] = prof.K
		return "conic", properties

	case *surface.Flat:
		return "flat", properties

	default:
		return "unknown", properties
	}
}

// describeAperture extracts aperture information with type assertions
func describeAperture(a core.Aperture) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch ap := a.(type) {
	case *aperture.Circular:
		properties["radius"] = ap.Radius
		return "circular", properties

	case *aperture.Rectangular:
		properties["halfWidth"] = ap.HalfWidth
		properties["halfHeight"] = ap.HalfHeight
		return "rectangular", properties

	case *aperture.Annular:
		properties["innerRadius"] = ap.InnerRadius
		properties["outerRadius"] = ap.OuterRadius
		return "annular", properties

	default:
		return "unknown", properties
	}
}
