package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{
			name:     "Already unit",
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "Scaled axis",
			vector:   NewVec3(0, 0, 5),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "Diagonal",
			vector:   NewVec3(1, 1, 1),
			expected: NewVec3(1/math.Sqrt(3), 1/math.Sqrt(3), 1/math.Sqrt(3)),
		},
		{
			name:     "Zero vector unchanged",
			vector:   NewVec3(0, 0, 0),
			expected: NewVec3(0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_DotCross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)

	if dot := a.Dot(b); dot != 0 {
		t.Errorf("Expected orthogonal dot product 0, got %v", dot)
	}

	cross := a.Cross(b)
	expected := NewVec3(0, 0, 1)
	if cross.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected cross product %v, got %v", expected, cross)
	}

	// Anti-commutativity
	reversed := b.Cross(a)
	if reversed.Add(expected).Length() > 1e-12 {
		t.Errorf("Expected reversed cross product %v, got %v", expected.Negate(), reversed)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, 1))

	tests := []struct {
		name     string
		t        float64
		expected Vec3
	}{
		{name: "At origin", t: 0, expected: NewVec3(1, 2, 3)},
		{name: "Forward", t: 2.5, expected: NewVec3(1, 2, 5.5)},
		{name: "Backward", t: -1, expected: NewVec3(1, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ray.At(tt.t)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec2_Length(t *testing.T) {
	v := NewVec2(3, 4)
	if v.Length() != 5 {
		t.Errorf("Expected length 5, got %v", v.Length())
	}
	if v.LengthSquared() != 25 {
		t.Errorf("Expected squared length 25, got %v", v.LengthSquared())
	}
}
