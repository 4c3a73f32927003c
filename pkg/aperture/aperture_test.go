package aperture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircular_Contains(t *testing.T) {
	ap := NewCircular(0.05)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{name: "Center", x: 0, y: 0, expected: true},
		{name: "Inside", x: 0.03, y: 0.02, expected: true},
		{name: "Just inside rim", x: 0.05 - 1e-12, y: 0, expected: true},
		{name: "Exactly on rim", x: 0.05, y: 0, expected: false},
		{name: "On rim diagonal", x: 0.05 / math.Sqrt2, y: 0.05 / math.Sqrt2, expected: false},
		{name: "Outside", x: 0.06, y: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ap.Contains(tt.x, tt.y))
		})
	}
}

func TestRectangular_Contains(t *testing.T) {
	ap := NewRectangular(0.04, 0.02)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{name: "Center", x: 0, y: 0, expected: true},
		{name: "Inside", x: 0.039, y: -0.019, expected: true},
		{name: "On right edge", x: 0.04, y: 0, expected: false},
		{name: "On top edge", x: 0, y: 0.02, expected: false},
		{name: "Corner", x: 0.04, y: 0.02, expected: false},
		{name: "Outside x", x: 0.05, y: 0, expected: false},
		{name: "Outside y", x: 0, y: -0.03, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ap.Contains(tt.x, tt.y))
		})
	}
}

func TestAnnular_Contains(t *testing.T) {
	ap := NewAnnular(0.01, 0.05)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{name: "Center obscured", x: 0, y: 0, expected: false},
		{name: "Inside hole", x: 0.005, y: 0, expected: false},
		{name: "On inner rim", x: 0.01, y: 0, expected: false},
		{name: "In the ring", x: 0.03, y: 0, expected: true},
		{name: "On outer rim", x: 0, y: 0.05, expected: false},
		{name: "Outside", x: 0.06, y: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ap.Contains(tt.x, tt.y))
		})
	}
}

func TestCircular_Mesh(t *testing.T) {
	ap := NewCircular(0.05)
	grid := ap.Mesh()

	assert.Equal(t, radialSteps, grid.Rows)
	assert.Equal(t, angularSteps, grid.Cols)
	assert.Len(t, grid.X, radialSteps*angularSteps)

	// All sample points lie on the closed disc, none beyond the rim
	for k := range grid.X {
		r := math.Hypot(grid.X[k], grid.Y[k])
		assert.LessOrEqual(t, r, ap.Radius+1e-12)
		assert.Zero(t, grid.Z[k])
	}

	// First row is the center, last row the rim
	assert.InDelta(t, 0, math.Hypot(grid.At(0, 0).X, grid.At(0, 0).Y), 1e-15)
	rim := grid.At(radialSteps-1, 0)
	assert.InDelta(t, ap.Radius, math.Hypot(rim.X, rim.Y), 1e-12)
}

func TestRectangular_Mesh(t *testing.T) {
	ap := NewRectangular(0.04, 0.02)
	grid := ap.Mesh()

	assert.Equal(t, linearSteps, grid.Rows)
	assert.Equal(t, linearSteps, grid.Cols)

	for k := range grid.X {
		assert.LessOrEqual(t, math.Abs(grid.X[k]), ap.HalfWidth+1e-12)
		assert.LessOrEqual(t, math.Abs(grid.Y[k]), ap.HalfHeight+1e-12)
	}

	corner := grid.At(0, 0)
	assert.InDelta(t, -ap.HalfWidth, corner.X, 1e-12)
	assert.InDelta(t, -ap.HalfHeight, corner.Y, 1e-12)
}

func TestAnnular_Mesh(t *testing.T) {
	ap := NewAnnular(0.01, 0.05)
	grid := ap.Mesh()

	for k := range grid.X {
		r := math.Hypot(grid.X[k], grid.Y[k])
		assert.GreaterOrEqual(t, r, ap.InnerRadius-1e-12)
		assert.LessOrEqual(t, r, ap.OuterRadius+1e-12)
	}
}
