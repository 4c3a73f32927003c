// Package bench provides prebuilt optical systems for the CLI, the web
// inspector and integration tests.
package bench

import (
	"fmt"

	"github.com/df07/go-sequential-raytracer/pkg/aperture"
	"github.com/df07/go-sequential-raytracer/pkg/core"
	"github.com/df07/go-sequential-raytracer/pkg/source"
	"github.com/df07/go-sequential-raytracer/pkg/surface"
	"github.com/df07/go-sequential-raytracer/pkg/tracer"
)

const wavelength = 633e-9

// Create builds a named bench. Unknown names are an error; List has the
// valid ones.
func Create(name string) (*tracer.System, error) {
	switch name {
	case "singlet":
		return NewSingletBench()
	case "mirror":
		return NewMirrorBench()
	case "relay":
		return NewRelayBench()
	case "tir":
		return NewTIRBench()
	default:
		return nil, fmt.Errorf("unknown bench: %s", name)
	}
}

// List returns the available bench names
func List() []string {
	return []string{"singlet", "mirror", "relay", "tir"}
}

// NewSingletBench builds a collimated beam refracting through a single
// spherical air-glass surface, with a screen at the paraxial focus: power
// (n2-n1)/R = 2.5 diopters puts the rear focal point n2/2.5 = 0.6 m behind
// the vertex.
func NewSingletBench() (*tracer.System, error) {
	axis, err := core.LookAlong(core.NewVec3(1, 0, 0))
	if err != nil {
		return nil, err
	}

	sys := tracer.NewSystem()
	sys.SetSource(source.NewCollimatedBeamSource(
		core.NewVec3(-0.1, 0, 0), core.NewVec3(1, 0, 0), 0.04, wavelength, 1.0))
	sys.AddSurface(surface.NewSurface(
		core.NewVec3(0.1, 0, 0), axis, aperture.NewCircular(0.05),
		1.0, 1.5, surface.NewSpherical(0.2)))
	sys.AddScreen(surface.NewScreen(
		core.NewVec3(0.7, 0, 0), axis, aperture.NewCircular(0.05)))
	return sys, nil
}

// NewMirrorBench builds a 45 degree flat fold: a narrow collimated beam
// along +x reflects up +y onto a screen.
func NewMirrorBench() (*tracer.System, error) {
	fold, err := core.LookAlong(core.NewVec3(-1, 1, 0))
	if err != nil {
		return nil, err
	}
	up, err := core.LookAlong(core.NewVec3(0, 1, 0))
	if err != nil {
		return nil, err
	}

	sys := tracer.NewSystem()
	sys.SetSource(source.NewCollimatedBeamSource(
		core.NewVec3(-0.2, 0, 0), core.NewVec3(1, 0, 0), 0.01, wavelength, 1.0))
	sys.AddSurface(surface.NewSurface(
		core.NewVec3(0, 0, 0), fold, aperture.NewCircular(0.05),
		1.0, 0, surface.NewFlat()))
	sys.AddScreen(surface.NewScreen(
		core.NewVec3(0, 0.3, 0), up, aperture.NewCircular(0.05)))
	return sys, nil
}

// NewRelayBench builds an equiconvex relay lens (R = +/-0.1, 10 mm thick)
// focusing a collimated beam, screen near the back focal plane.
func NewRelayBench() (*tracer.System, error) {
	axis, err := core.LookAlong(core.NewVec3(1, 0, 0))
	if err != nil {
		return nil, err
	}

	sys := tracer.NewSystem()
	sys.SetSource(source.NewCollimatedBeamSource(
		core.NewVec3(-0.1, 0, 0), core.NewVec3(1, 0, 0), 0.02, wavelength, 1.0))
	sys.AddSurface(surface.NewSurface(
		core.NewVec3(0.2, 0, 0), axis, aperture.NewCircular(0.03),
		1.0, 1.5, surface.NewSpherical(0.1)))
	sys.AddSurface(surface.NewSurface(
		core.NewVec3(0.21, 0, 0), axis, aperture.NewCircular(0.03),
		1.5, 1.0, surface.NewSpherical(-0.1)))
	sys.AddScreen(surface.NewScreen(
		core.NewVec3(0.308, 0, 0), axis, aperture.NewCircular(0.03)))
	return sys, nil
}

// NewTIRBench sends a beam inside glass onto a 45 degree glass-air
// interface, past the ~41.8 degree critical angle: with the default policy
// the whole beam folds up +y by total internal reflection.
func NewTIRBench() (*tracer.System, error) {
	fold, err := core.LookAlong(core.NewVec3(-1, 1, 0))
	if err != nil {
		return nil, err
	}
	up, err := core.LookAlong(core.NewVec3(0, 1, 0))
	if err != nil {
		return nil, err
	}

	sys := tracer.NewSystem()
	sys.SetSource(source.NewCollimatedBeamSource(
		core.NewVec3(-0.1, 0, 0), core.NewVec3(1, 0, 0), 0.005, wavelength, 1.0))
	sys.AddSurface(surface.NewSurface(
		core.NewVec3(0, 0, 0), fold, aperture.NewCircular(0.05),
		1.5, 1.0, surface.NewFlat()))
	sys.AddScreen(surface.NewScreen(
		core.NewVec3(0, 0.3, 0), up, aperture.NewCircular(0.05)))
	return sys, nil
}
