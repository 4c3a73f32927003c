package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Aperture is the transverse clear-opening test of a surface or screen,
// expressed in the element's local (x, y) coordinates. Containment is strict:
// a point exactly on the boundary is outside (a miss).
type Aperture interface {
	// Contains reports whether the local point (x, y) is inside the opening
	Contains(x, y float64) bool

	// Mesh samples the opening as a parameter-space grid (z left at zero),
	// used by elements to build their display meshes
	Mesh() *MeshGrid
}

// Source generates the initial ray bundle of a propagation run, already
// expressed in global coordinates (positioning the beam is the source's job).
// nRays is a target: a source may return more rows when it injects its fixed
// display rays on top of the bulk sample.
type Source interface {
	Generate(nRays int) (*RayBundle, error)
}
