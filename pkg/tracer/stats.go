package tracer

import "github.com/df07/go-sequential-raytracer/pkg/core"

// RunStats summarizes one propagation run. Power figures count bulk rays
// only: the display subset carries no power so it cannot bias the totals.
type RunStats struct {
	Rays        int `json:"rays"`
	DisplayRays int `json:"displayRays"`
	Stages      int `json:"stages"`

	Active    int `json:"active"`
	Parallel  int `json:"parallel"`
	Missed    int `json:"missed"`
	Vignetted int `json:"vignetted"`
	Absorbed  int `json:"absorbed"`

	GeneratedPower float64 `json:"generatedPower"` // watts leaving the source
	DeliveredPower float64 `json:"deliveredPower"` // watts still active after the last stage
}

// Stats summarizes the last run; zero value when the system is idle
func (s *System) Stats() RunStats {
	if !s.Propagated() {
		return RunStats{}
	}
	first := s.stages[0]
	last := s.stages[len(s.stages)-1]
	counts := last.CountByStatus()
	return RunStats{
		Rays:           last.Len(),
		DisplayRays:    len(last.Display),
		Stages:         len(s.stages),
		Active:         counts[core.RayActive],
		Parallel:       counts[core.RayParallel],
		Missed:         counts[core.RayMissed],
		Vignetted:      counts[core.RayVignetted],
		Absorbed:       counts[core.RayAbsorbed],
		GeneratedPower: first.TotalPower(),
		DeliveredPower: last.ActivePower(),
	}
}
