package tracer

import (
	"fmt"

	"github.com/df07/go-sequential-raytracer/pkg/core"
	"github.com/df07/go-sequential-raytracer/pkg/surface"
)

// Element is one station of an optical train: a surface that bends the
// bundle or a screen that records it in flight.
type Element interface {
	Validate() error
}

// System owns a source and an ordered train of elements, and runs the
// sequential propagation over them. Two states: idle and propagated; a
// successful Propagate retains the full per-stage bundle history (the source
// bundle plus every surface's output) so diagnostics can reconstruct each
// ray's path. A System is single-owner: no concurrent propagation on the
// same instance.
type System struct {
	// Workers bounds the goroutines used per surface stage. 0 uses one per
	// CPU, 1 runs serially.
	Workers int
	// Logger, when set, receives run summaries
	Logger core.Logger

	source   core.Source
	elements []Element
	stages   []*core.RayBundle
}

// NewSystem creates an empty system
func NewSystem() *System {
	return &System{}
}

// SetSource installs the ray source. Sources generate in the global frame.
func (s *System) SetSource(src core.Source) {
	s.source = src
}

// AddSurface appends a refracting or reflecting surface to the train
func (s *System) AddSurface(sf *surface.Surface) {
	s.elements = append(s.elements, sf)
}

// AddScreen appends a capture screen to the train. Screens record the
// bundle passing their position without altering it.
func (s *System) AddScreen(sc *surface.Screen) {
	s.elements = append(s.elements, sc)
}

// Elements returns the train in registration order
func (s *System) Elements() []Element {
	return s.elements
}

// Screens returns the registered screens in train order
func (s *System) Screens() []*surface.Screen {
	var screens []*surface.Screen
	for _, el := range s.elements {
		if sc, ok := el.(*surface.Screen); ok {
			screens = append(screens, sc)
		}
	}
	return screens
}

// Validate checks the whole configuration: a source must be present and
// every element must be well formed. Configuration errors are fatal and
// reported before any rays fly.
func (s *System) Validate() error {
	if s.source == nil {
		return core.ErrNoSource
	}
	for i, el := range s.elements {
		if err := el.Validate(); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Propagate generates nRays from the source and runs the full chain: each
// surface's output bundle becomes the next stage's input, and screens
// capture whatever is in flight at their slot. All screens are reset first,
// so one run means one capture per screen.
//
// Propagation either fully succeeds, leaving the per-stage history
// available through Stages, or fails fast on a configuration error with no
// partial state left behind.
func (s *System) Propagate(nRays int) error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.stages = nil
	for _, sc := range s.Screens() {
		sc.Reset()
	}

	bundle, err := s.source.Generate(nRays)
	if err != nil {
		return fmt.Errorf("generate rays: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return fmt.Errorf("generate rays: %w", err)
	}
	if err := bundle.Normalize(); err != nil {
		return fmt.Errorf("generate rays: %w", err)
	}

	stages := []*core.RayBundle{bundle}
	current := bundle
	for i, el := range s.elements {
		switch v := el.(type) {
		case *surface.Surface:
			next, perr := v.Propagate(current, s.Workers)
			if perr != nil {
				return s.fail(fmt.Errorf("element %d: %w", i, perr))
			}
			stages = append(stages, next)
			current = next
		case *surface.Screen:
			if cerr := v.Capture(current); cerr != nil {
				return s.fail(fmt.Errorf("element %d: %w", i, cerr))
			}
		default:
			return s.fail(fmt.Errorf("element %d: unsupported element type %T", i, el))
		}
	}

	s.stages = stages
	s.logf("propagated %d rays through %d elements in %d stages",
		current.Len(), len(s.elements), len(stages))
	return nil
}

// fail clears any screen captures taken before the error so a failed run
// leaves no partial results.
func (s *System) fail(err error) error {
	for _, sc := range s.Screens() {
		sc.Reset()
	}
	return err
}

// Propagated reports whether the system holds a completed run
func (s *System) Propagated() bool {
	return len(s.stages) > 0
}

// Stages returns the per-stage bundle history of the last run: the source
// bundle first, then each surface's output in train order. Nil before the
// first run.
func (s *System) Stages() []*core.RayBundle {
	return s.stages
}

// Final returns the bundle leaving the last surface, or nil when idle
func (s *System) Final() *core.RayBundle {
	if !s.Propagated() {
		return nil
	}
	return s.stages[len(s.stages)-1]
}

func (s *System) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
