package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-sequential-raytracer/pkg/bench"
	"github.com/df07/go-sequential-raytracer/pkg/surface"
	"github.com/df07/go-sequential-raytracer/pkg/tracer"
)

// maxPolylines caps the per-ray line count of an all=true response; the
// bulk beyond the cap is still traced and counted in the stats
const maxPolylines = 2000

// PropagateRequest represents a propagation request from the client
type PropagateRequest struct {
	Bench   string `json:"bench"`   // Bench name (e.g., "singlet")
	Rays    int    `json:"rays"`    // Number of bulk rays to trace
	Workers int    `json:"workers"` // Worker goroutines per surface (0 = auto)
	All     bool   `json:"all"`     // Return polylines for every ray, not just display rays
}

// ScreenResult carries one screen's captures and spot statistics
type ScreenResult struct {
	Index    int                     `json:"index"`
	Origin   [3]float64              `json:"origin"`
	Stats    surface.SpotStats       `json:"stats"`
	Captures []surface.CaptureRecord `json:"captures"`
}

// PropagateResponse represents the JSON response for a propagation run
type PropagateResponse struct {
	Bench     string            `json:"bench"`
	Rays      int               `json:"rays"`
	Stats     tracer.RunStats   `json:"stats"`
	Screens   []ScreenResult    `json:"screens"`
	Polylines []tracer.Polyline `json:"polylines"`
	Console   []ConsoleMessage  `json:"console"`
	ElapsedMs int64             `json:"elapsedMs"`
}

// handlePropagate traces a bench and returns stats, screen captures and ray
// polylines in one JSON response. Runs are short enough that no streaming
// is needed.
func (s *Server) handlePropagate(w http.ResponseWriter, r *http.Request) {
	req, err := s.parsePropagateRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sys, err := bench.Create(req.Bench)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	console := NewRunConsole(s.log)
	sys.Workers = req.Workers
	sys.Logger = console

	startTime := time.Now()
	if err := sys.Propagate(req.Rays); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Propagation failed: %v", err))
		return
	}
	elapsed := time.Since(startTime)

	stages := sys.Stages()
	var lines []tracer.Polyline
	if req.All {
		n := stages[0].Len()
		if n > maxPolylines {
			n = maxPolylines
		}
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		lines = tracer.Polylines(stages, indices)
	} else {
		lines = tracer.DisplayPolylines(stages)
	}

	screens := sys.Screens()
	results := make([]ScreenResult, 0, len(screens))
	for i, screen := range screens {
		results = append(results, ScreenResult{
			Index:    i,
			Origin:   [3]float64{screen.Origin.X, screen.Origin.Y, screen.Origin.Z},
			Stats:    screen.Stats(),
			Captures: screen.Captures(),
		})
	}

	s.writeJSON(w, http.StatusOK, PropagateResponse{
		Bench:     req.Bench,
		Rays:      req.Rays,
		Stats:     sys.Stats(),
		Screens:   results,
		Polylines: lines,
		Console:   console.Messages(),
		ElapsedMs: elapsed.Milliseconds(),
	})
}

// parsePropagateRequest parses request parameters
func (s *Server) parsePropagateRequest(r *http.Request) (*PropagateRequest, error) {
	req := &PropagateRequest{}

	// Parse bench name (string parameter, validated by bench.Create)
	if name := r.URL.Query().Get("bench"); name != "" {
		req.Bench = name
	} else {
		req.Bench = "singlet" // Default bench
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Rays, err = parseIntParam(r.URL.Query(), "rays", 200, 1, 100000); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(r.URL.Query(), "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	req.All = parseBoolParam(r.URL.Query(), "all", false)

	return req, nil
}
