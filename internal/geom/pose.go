package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Pose is a rigid transform: a 3x3 rotation followed by a translation.
//
// As a 4x4 homogeneous matrix it reads
//
//	| R[0][0] R[0][1] R[0][2] T.X |
//	| R[1][0] R[1][1] R[1][2] T.Y |
//	| R[2][0] R[2][1] R[2][2] T.Z |
//	|    0       0       0     1  |
//
// The columns of R are the transformed X, Y and Z axes.
type Pose struct {
	R [3][3]float64
	T r3.Vector
}

// Identity returns the transform that leaves every point unchanged.
func Identity() Pose {
	return Pose{R: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Translation returns a pure translation by v.
func Translation(v r3.Vector) Pose {
	p := Identity()
	p.T = v
	return p
}

// RotationZ returns a rotation about the world Z axis through the origin.
func RotationZ(angle float64) Pose {
	c, s := math.Cos(angle), math.Sin(angle)
	return Pose{R: [3][3]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}}
}

// Rotation returns a rotation of angle radians about axis, passing through center.
// A zero axis yields the identity.
func Rotation(angle float64, axis, center r3.Vector) Pose {
	n := axis.Norm()
	if n == 0 {
		return Identity()
	}
	u := axis.Mul(1 / n)
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c

	p := Pose{R: [3][3]float64{
		{t*u.X*u.X + c, t*u.X*u.Y - s*u.Z, t*u.X*u.Z + s*u.Y},
		{t*u.X*u.Y + s*u.Z, t*u.Y*u.Y + c, t*u.Y*u.Z - s*u.X},
		{t*u.X*u.Z - s*u.Y, t*u.Y*u.Z + s*u.X, t*u.Z*u.Z + c},
	}}
	// Keep center fixed: x' = R(x - c) + c.
	p.T = center.Sub(p.ApplyVector(center))
	return p
}

// Mul returns the product p·o. Applied to a point, o acts first.
func (p Pose) Mul(o Pose) Pose {
	var out Pose
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.R[i][j] = p.R[i][0]*o.R[0][j] + p.R[i][1]*o.R[1][j] + p.R[i][2]*o.R[2][j]
		}
	}
	out.T = p.Apply(o.T)
	return out
}

// Inverse returns the transform that undoes p. The rotation part is assumed
// orthonormal, so its inverse is its transpose.
func (p Pose) Inverse() Pose {
	var out Pose
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.R[i][j] = p.R[j][i]
		}
	}
	out.T = out.ApplyVector(p.T).Mul(-1)
	return out
}

// Apply transforms a point (rotation and translation).
func (p Pose) Apply(v r3.Vector) r3.Vector {
	return p.ApplyVector(v).Add(p.T)
}

// ApplyVector transforms a direction (rotation only).
func (p Pose) ApplyVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: p.R[0][0]*v.X + p.R[0][1]*v.Y + p.R[0][2]*v.Z,
		Y: p.R[1][0]*v.X + p.R[1][1]*v.Y + p.R[1][2]*v.Z,
		Z: p.R[2][0]*v.X + p.R[2][1]*v.Y + p.R[2][2]*v.Z,
	}
}

// At returns entry (row, col) of the homogeneous 4x4 matrix.
// Column 3 holds the translation and row 3 is (0, 0, 0, 1).
func (p Pose) At(row, col int) float64 {
	if row == 3 {
		if col == 3 {
			return 1
		}
		return 0
	}
	if col == 3 {
		switch row {
		case 0:
			return p.T.X
		case 1:
			return p.T.Y
		default:
			return p.T.Z
		}
	}
	return p.R[row][col]
}

// Column returns rotation column i (0 = X axis, 1 = Y axis, 2 = Z axis).
func (p Pose) Column(i int) r3.Vector {
	return r3.Vector{X: p.R[0][i], Y: p.R[1][i], Z: p.R[2][i]}
}

// IsOrthonormal reports whether the rotation part is orthonormal and
// right-handed within tol.
func (p Pose) IsOrthonormal(tol float64) bool {
	x, y, z := p.Column(0), p.Column(1), p.Column(2)
	if math.Abs(x.Norm()-1) > tol || math.Abs(y.Norm()-1) > tol || math.Abs(z.Norm()-1) > tol {
		return false
	}
	if math.Abs(x.Dot(y)) > tol || math.Abs(y.Dot(z)) > tol || math.Abs(z.Dot(x)) > tol {
		return false
	}
	return x.Cross(y).Sub(z).Norm() <= tol
}

// ApproxEqual reports whether every matrix entry of p and o differs by at most tol.
func (p Pose) ApproxEqual(o Pose, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(p.At(i, j)-o.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}
