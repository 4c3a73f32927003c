package core

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rotation is a 3x3 rotation matrix (row-major) mapping local element
// coordinates to global coordinates. It must be orthonormal: its transpose
// is its inverse, which is what makes the local/global round trip exact.
type Rotation struct {
	M [3][3]float64
}

// IdentityRotation returns the identity rotation (local frame == global frame)
func IdentityRotation() Rotation {
	return Rotation{M: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// RotationAboutX returns the rotation by angle (radians) about the x axis
func RotationAboutX(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{M: [3][3]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}}
}

// RotationAboutY returns the rotation by angle (radians) about the y axis
func RotationAboutY(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{M: [3][3]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}}
}

// RotationAboutZ returns the rotation by angle (radians) about the z axis
func RotationAboutZ(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{M: [3][3]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}}
}

// RotationFromAxisAngle returns the rotation by angle (radians) about an
// arbitrary axis, via the Rodrigues formula. The axis need not be unit length.
func RotationFromAxisAngle(axis Vec3, angle float64) Rotation {
	u := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	ic := 1 - c
	return Rotation{M: [3][3]float64{
		{c + u.X*u.X*ic, u.X*u.Y*ic - u.Z*s, u.X*u.Z*ic + u.Y*s},
		{u.Y*u.X*ic + u.Z*s, c + u.Y*u.Y*ic, u.Y*u.Z*ic - u.X*s},
		{u.Z*u.X*ic - u.Y*s, u.Z*u.Y*ic + u.X*s, c + u.Z*u.Z*ic},
	}}
}

// LookAlong builds an orthonormal frame whose local +z axis maps to the given
// global direction. The transverse axes are chosen deterministically from the
// direction, so two elements aimed the same way share the same frame.
func LookAlong(direction Vec3) (Rotation, error) {
	if direction.IsZero() {
		return IdentityRotation(), ErrZeroDirection
	}
	w := direction.Normalize()

	// Pick a helper axis not parallel to w, strip its w component and
	// complete the right-handed basis. Aiming along +z keeps the identity
	// frame, so transverse x/y offsets land where callers expect.
	var helper Vec3
	if math.Abs(w.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}
	u := helper.Subtract(w.Multiply(helper.Dot(w))).Normalize()
	v := w.Cross(u)

	// Columns are the images of the local basis vectors
	return Rotation{M: [3][3]float64{
		{u.X, v.X, w.X},
		{u.Y, v.Y, w.Y},
		{u.Z, v.Z, w.Z},
	}}, nil
}

// Apply maps a local-frame vector to the global frame (rotation only,
// no translation — suitable for directions; add the element origin for points)
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		X: r.M[0][0]*v.X + r.M[0][1]*v.Y + r.M[0][2]*v.Z,
		Y: r.M[1][0]*v.X + r.M[1][1]*v.Y + r.M[1][2]*v.Z,
		Z: r.M[2][0]*v.X + r.M[2][1]*v.Y + r.M[2][2]*v.Z,
	}
}

// ApplyTranspose maps a global-frame vector to the local frame. For an
// orthonormal rotation the transpose is the inverse, so this exactly undoes Apply.
func (r Rotation) ApplyTranspose(v Vec3) Vec3 {
	return Vec3{
		X: r.M[0][0]*v.X + r.M[1][0]*v.Y + r.M[2][0]*v.Z,
		Y: r.M[0][1]*v.X + r.M[1][1]*v.Y + r.M[2][1]*v.Z,
		Z: r.M[0][2]*v.X + r.M[1][2]*v.Y + r.M[2][2]*v.Z,
	}
}

// Transposed returns the transpose (the inverse rotation)
func (r Rotation) Transposed() Rotation {
	var t Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.M[i][j] = r.M[j][i]
		}
	}
	return t
}

// Mul returns the composition r·other (apply other first, then r)
func (r Rotation) Mul(other Rotation) Rotation {
	var p Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += r.M[i][k] * other.M[k][j]
			}
			p.M[i][j] = sum
		}
	}
	return p
}

// IsOrthonormal reports whether RᵀR is the identity within tol.
// Elements with non-orthonormal rotations are misconfigured: the local/global
// round trip would not be exact.
func (r Rotation) IsOrthonormal(tol float64) bool {
	m := mat.NewDense(3, 3, r.flat())
	var prod mat.Dense
	prod.Mul(m.T(), m)
	return mat.EqualApprox(&prod, mat.NewDiagDense(3, []float64{1, 1, 1}), tol)
}

func (r Rotation) flat() []float64 {
	return []float64{
		r.M[0][0], r.M[0][1], r.M[0][2],
		r.M[1][0], r.M[1][1], r.M[1][2],
		r.M[2][0], r.M[2][1], r.M[2][2],
	}
}
