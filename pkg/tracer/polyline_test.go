package tracer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-sequential-raytracer/pkg/core"
)

// twoStageHistory builds a hand-made run: ray 0 and 1 reach the surface
// (bound lengths 0.2 and 0.15), ray 2 misses it.
func twoStageHistory() []*core.RayBundle {
	stage0 := core.NewRayBundle(3)
	stage0.Origins[0] = core.NewVec3(0, 0, 0)
	stage0.Origins[1] = core.NewVec3(0.01, 0, 0)
	stage0.Origins[2] = core.NewVec3(0.02, 0, 0)
	for i := range stage0.Directions {
		stage0.Directions[i] = core.NewVec3(0, 0, 1)
		stage0.Wavelengths[i] = 633e-9
		stage0.Powers[i] = 1
	}
	stage0.Lengths[0] = 0.2
	stage0.Lengths[1] = 0.15
	stage0.Display = []int{0}

	stage1 := stage0.Clone()
	stage1.Origins[0] = core.NewVec3(0, 0, 0.2)
	stage1.Origins[1] = core.NewVec3(0.01, 0, 0.15)
	stage1.Lengths[0] = 0
	stage1.Lengths[1] = 0
	stage1.Lengths[2] = 0
	stage1.Status[2] = core.RayMissed
	return []*core.RayBundle{stage0, stage1}
}

func TestPolylines(t *testing.T) {
	stages := twoStageHistory()
	lines := Polylines(stages, []int{0, 1, 2})
	require.Len(t, lines, 3)

	// Stage fallbacks: mean bound length 0.175 for stage 0; stage 1 has no
	// bound rays, so the origin bounding-box diagonal applies.
	diag := math.Sqrt(0.02*0.02 + 0.2*0.2)

	// Ray 0: source origin, surface hit, then the unbound final leg
	require.Len(t, lines[0].Points, 3)
	assert.True(t, lines[0].Display)
	assert.Equal(t, core.NewVec3(0, 0, 0), lines[0].Points[0])
	assert.Equal(t, core.NewVec3(0, 0, 0.2), lines[0].Points[1])
	assert.InDelta(t, 0.2+diag, lines[0].Points[2].Z, 1e-12)

	require.Len(t, lines[1].Points, 3)
	assert.False(t, lines[1].Display)
	assert.Equal(t, core.NewVec3(0.01, 0, 0.15), lines[1].Points[1])

	// Ray 2 died at the surface: its unbound first leg is drawn with the
	// stage's mean bound length and nothing follows.
	require.Len(t, lines[2].Points, 2)
	assert.Equal(t, core.NewVec3(0.02, 0, 0), lines[2].Points[0])
	assert.InDelta(t, 0.175, lines[2].Points[1].Z, 1e-12)
}

func TestDisplayPolylines(t *testing.T) {
	stages := twoStageHistory()
	lines := DisplayPolylines(stages)
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].Ray)
	assert.True(t, lines[0].Display)
}

func TestPolylines_Empty(t *testing.T) {
	assert.Nil(t, Polylines(nil, []int{0}))
	assert.Nil(t, DisplayPolylines(nil))
}

func TestPolylines_EndToEnd(t *testing.T) {
	sys := singletSystem(0.04, 0.05)
	require.NoError(t, sys.Propagate(100))

	lines := DisplayPolylines(sys.Stages())
	require.Len(t, lines, 13)

	for _, line := range lines {
		require.Len(t, line.Points, 3, "source origin, surface hit, final leg")
		assert.InDelta(t, -0.1, line.Points[0].X, 1e-12)
	}

	// The chief ray pierces the surface vertex and keeps flying down +x
	chief := lines[0]
	assert.InDelta(t, 0.1, chief.Points[1].X, 1e-9)
	assert.InDelta(t, 0, chief.Points[1].Y, 1e-9)
	assert.Greater(t, chief.Points[2].X, chief.Points[1].X)
}
