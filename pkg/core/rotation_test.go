package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotation_AxisRotations(t *testing.T) {
	tests := []struct {
		name     string
		rotation Rotation
		vector   Vec3
		expected Vec3
	}{
		{
			name:     "Identity",
			rotation: IdentityRotation(),
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "90 degree rotation around Z axis",
			rotation: RotationAboutZ(math.Pi / 2),
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "90 degree rotation around Y axis",
			rotation: RotationAboutY(math.Pi / 2),
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "90 degree rotation around X axis",
			rotation: RotationAboutX(math.Pi / 2),
			vector:   NewVec3(0, 1, 0),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "180 degree rotation around Y axis",
			rotation: RotationAboutY(math.Pi),
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(-1, 0, 0),
		},
		{
			name:     "Axis-angle matches about-Z",
			rotation: RotationFromAxisAngle(NewVec3(0, 0, 1), math.Pi/2),
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.rotation.Apply(tt.vector)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestRotation_RoundTrip(t *testing.T) {
	rotation := RotationAboutY(math.Pi / 2).Mul(RotationAboutZ(0.3)).Mul(RotationAboutX(-1.1))
	points := []Vec3{
		NewVec3(0.1, -0.2, 0.05),
		NewVec3(0, 0, 1),
		NewVec3(-3, 2, 7),
	}

	for _, p := range points {
		back := rotation.ApplyTranspose(rotation.Apply(p))
		assert.InDelta(t, p.X, back.X, 1e-12)
		assert.InDelta(t, p.Y, back.Y, 1e-12)
		assert.InDelta(t, p.Z, back.Z, 1e-12)
	}
}

// The standard bench orientation points a surface's local +z axis down the
// global +x axis.
func TestRotation_BenchFrame(t *testing.T) {
	bench := Rotation{M: [3][3]float64{
		{0, 0, 1},
		{0, -1, 0},
		{1, 0, 0},
	}}

	require.True(t, bench.IsOrthonormal(1e-12))

	mapped := bench.Apply(NewVec3(0, 0, 1))
	assert.InDelta(t, 1, mapped.X, 1e-12)
	assert.InDelta(t, 0, mapped.Y, 1e-12)
	assert.InDelta(t, 0, mapped.Z, 1e-12)

	// A point 1m in front of a frame at the global origin sits at x = 1
	global := bench.Apply(NewVec3(0, 0, 1)).Add(NewVec3(0, 0, 0))
	assert.InDelta(t, 1, global.X, 1e-12)
}

func TestLookAlong(t *testing.T) {
	tests := []struct {
		name      string
		direction Vec3
	}{
		{name: "Along +x", direction: NewVec3(1, 0, 0)},
		{name: "Along -z", direction: NewVec3(0, 0, -1)},
		{name: "Along +y", direction: NewVec3(0, 1, 0)},
		{name: "Oblique", direction: NewVec3(1, 2, -0.5)},
		{name: "Not unit", direction: NewVec3(0, 0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotation, err := LookAlong(tt.direction)
			require.NoError(t, err)
			require.True(t, rotation.IsOrthonormal(1e-9), "LookAlong must return an orthonormal rotation")

			mapped := rotation.Apply(NewVec3(0, 0, 1))
			want := tt.direction.Normalize()
			assert.InDelta(t, want.X, mapped.X, 1e-9)
			assert.InDelta(t, want.Y, mapped.Y, 1e-9)
			assert.InDelta(t, want.Z, mapped.Z, 1e-9)
		})
	}

	_, err := LookAlong(NewVec3(0, 0, 0))
	assert.ErrorIs(t, err, ErrZeroDirection)
}

func TestRotation_IsOrthonormal(t *testing.T) {
	assert.True(t, IdentityRotation().IsOrthonormal(1e-12))
	assert.True(t, RotationAboutX(0.7).IsOrthonormal(1e-12))

	scaled := Rotation{M: [3][3]float64{
		{2, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
	assert.False(t, scaled.IsOrthonormal(1e-9))

	sheared := Rotation{M: [3][3]float64{
		{1, 0.1, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
	assert.False(t, sheared.IsOrthonormal(1e-9))
}
