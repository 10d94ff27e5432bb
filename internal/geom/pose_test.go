package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func TestIdentity(t *testing.T) {
	p := Identity()
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	assert.Equal(t, v, p.Apply(v))
	assert.True(t, p.IsOrthonormal(tol))
	assert.Equal(t, 1.0, p.At(3, 3))
	assert.Equal(t, 0.0, p.At(3, 0))
}

func TestTranslation(t *testing.T) {
	p := Translation(r3.Vector{X: 10, Y: -5})
	got := p.Apply(r3.Vector{X: 1, Y: 1, Z: 1})
	assert.Equal(t, r3.Vector{X: 11, Y: -4, Z: 1}, got)

	// Directions are not translated.
	assert.Equal(t, r3.Vector{X: 1}, p.ApplyVector(r3.Vector{X: 1}))
	assert.Equal(t, 10.0, p.At(0, 3))
	assert.Equal(t, -5.0, p.At(1, 3))
}

func TestRotationZ(t *testing.T) {
	p := RotationZ(math.Pi / 2)
	got := p.Apply(r3.Vector{X: 1})
	assert.InDelta(t, 0, got.X, tol)
	assert.InDelta(t, 1, got.Y, tol)
	assert.InDelta(t, 0, got.Z, tol)
}

func TestRotationMatchesRotationZ(t *testing.T) {
	a := Rotation(0.7, r3.Vector{Z: 2}, r3.Vector{})
	b := RotationZ(0.7)
	assert.True(t, a.ApproxEqual(b, tol))
}

func TestRotationAboutCenterKeepsCenterFixed(t *testing.T) {
	center := r3.Vector{X: 3, Y: 4, Z: 5}
	p := Rotation(1.1, r3.Vector{X: 1, Y: 1}, center)

	got := p.Apply(center)
	assert.InDelta(t, center.X, got.X, 1e-9)
	assert.InDelta(t, center.Y, got.Y, 1e-9)
	assert.InDelta(t, center.Z, got.Z, 1e-9)
	assert.True(t, p.IsOrthonormal(1e-9))
}

func TestRotationZeroAxis(t *testing.T) {
	assert.Equal(t, Identity(), Rotation(1, r3.Vector{}, r3.Vector{X: 1}))
}

func TestMulOrder(t *testing.T) {
	// Rotate first, then translate.
	p := Translation(r3.Vector{X: 10}).Mul(RotationZ(math.Pi / 2))
	got := p.Apply(r3.Vector{X: 1})
	assert.InDelta(t, 10, got.X, tol)
	assert.InDelta(t, 1, got.Y, tol)
}

func TestInverse(t *testing.T) {
	p := Translation(r3.Vector{X: 1, Y: 2, Z: 3}).Mul(Rotation(0.3, r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{}))
	got := p.Mul(p.Inverse())
	assert.True(t, got.ApproxEqual(Identity(), 1e-12))

	got = p.Inverse().Mul(p)
	assert.True(t, got.ApproxEqual(Identity(), 1e-12))
}

func TestIsOrthonormalRejectsScaledAndMirrored(t *testing.T) {
	scaled := Identity()
	scaled.R[0][0] = 2
	assert.False(t, scaled.IsOrthonormal(1e-9))

	mirrored := Identity()
	mirrored.R[2][2] = -1
	assert.False(t, mirrored.IsOrthonormal(1e-9))
}

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{1.23456, 3, 1.235},
		{math.Pi / 2, 4, 1.5708},
		{-0.0001, 3, 0},
		{2.5, 0, 2},
		{3.5, 0, 4},
		{500, 3, 500},
	}

	for _, tt := range tests {
		got := Round(tt.v, tt.places)
		assert.Equal(t, tt.want, got)
		assert.False(t, math.Signbit(got) && got == 0, "negative zero for %v", tt.v)
	}
}

func TestUnits(t *testing.T) {
	assert.InDelta(t, 180, Degrees(math.Pi), tol)
	assert.InDelta(t, math.Pi/2, Radians(90), tol)
	require.Equal(t, 0.5, MillimetersToMeters(500))
	require.Equal(t, 500.0, MetersToMillimeters(0.5))
}
