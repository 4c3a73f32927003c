package aperture

import (
	"math"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// Mesh sampling densities for display tessellation
const (
	radialSteps  = 15
	angularSteps = 30
	linearSteps  = 30
)

// Circular is a disc aperture of the given radius centered on the local axis.
// Containment is strict: a point exactly on the rim is outside.
type Circular struct {
	Radius float64
}

// NewCircular creates a circular aperture with the given radius
func NewCircular(radius float64) *Circular {
	return &Circular{Radius: radius}
}

// Contains reports whether local point (x,y) falls strictly inside the disc
func (c *Circular) Contains(x, y float64) bool {
	return x*x+y*y < c.Radius*c.Radius
}

// Mesh samples the disc on a polar grid: rows sweep radius from center to
// rim, columns sweep the full angle.
func (c *Circular) Mesh() *core.MeshGrid {
	grid := core.NewMeshGrid(radialSteps, angularSteps)
	for i := 0; i < radialSteps; i++ {
		r := c.Radius * float64(i) / float64(radialSteps-1)
		for j := 0; j < angularSteps; j++ {
			theta := 2 * math.Pi * float64(j) / float64(angularSteps-1)
			grid.Set(i, j, core.NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0))
		}
	}
	return grid
}

// Rectangular is an axis-aligned rectangular aperture given by half-widths.
// Containment is strict on all four edges.
type Rectangular struct {
	HalfWidth  float64 // half extent along local x
	HalfHeight float64 // half extent along local y
}

// NewRectangular creates a rectangular aperture from half extents
func NewRectangular(halfWidth, halfHeight float64) *Rectangular {
	return &Rectangular{HalfWidth: halfWidth, HalfHeight: halfHeight}
}

// Contains reports whether local point (x,y) falls strictly inside the rectangle
func (r *Rectangular) Contains(x, y float64) bool {
	return math.Abs(x) < r.HalfWidth && math.Abs(y) < r.HalfHeight
}

// Mesh samples the rectangle on a uniform cartesian grid
func (r *Rectangular) Mesh() *core.MeshGrid {
	grid := core.NewMeshGrid(linearSteps, linearSteps)
	for i := 0; i < linearSteps; i++ {
		y := -r.HalfHeight + 2*r.HalfHeight*float64(i)/float64(linearSteps-1)
		for j := 0; j < linearSteps; j++ {
			x := -r.HalfWidth + 2*r.HalfWidth*float64(j)/float64(linearSteps-1)
			grid.Set(i, j, core.NewVec3(x, y, 0))
		}
	}
	return grid
}

// Annular is a ring aperture between two radii, used for elements with a
// central obscuration. Containment is strict at both rims.
type Annular struct {
	InnerRadius float64
	OuterRadius float64
}

// NewAnnular creates an annular aperture between inner and outer radii
func NewAnnular(innerRadius, outerRadius float64) *Annular {
	return &Annular{InnerRadius: innerRadius, OuterRadius: outerRadius}
}

// Contains reports whether local point (x,y) falls strictly inside the ring
func (a *Annular) Contains(x, y float64) bool {
	r2 := x*x + y*y
	return r2 > a.InnerRadius*a.InnerRadius && r2 < a.OuterRadius*a.OuterRadius
}

// Mesh samples the ring on a polar grid spanning inner to outer radius
func (a *Annular) Mesh() *core.MeshGrid {
	grid := core.NewMeshGrid(radialSteps, angularSteps)
	for i := 0; i < radialSteps; i++ {
		r := a.InnerRadius + (a.OuterRadius-a.InnerRadius)*float64(i)/float64(radialSteps-1)
		for j := 0; j < angularSteps; j++ {
			theta := 2 * math.Pi * float64(j) / float64(angularSteps-1)
			grid.Set(i, j, core.NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0))
		}
	}
	return grid
}
