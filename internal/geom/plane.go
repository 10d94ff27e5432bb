package geom

import (
	"errors"

	"github.com/golang/geo/r3"
)

// ErrDegeneratePlane is returned when the axes given to NewPlane are zero
// length or parallel.
var ErrDegeneratePlane = errors.New("degenerate plane: axes are zero or parallel")

// Plane is an oriented frame: an origin and three orthonormal axes.
// ZAxis is always XAxis × YAxis.
type Plane struct {
	Origin r3.Vector `json:"origin"`
	XAxis  r3.Vector `json:"x_axis"`
	YAxis  r3.Vector `json:"y_axis"`
	ZAxis  r3.Vector `json:"z_axis"`
}

// WorldXY is the world frame.
var WorldXY = Plane{
	XAxis: r3.Vector{X: 1},
	YAxis: r3.Vector{Y: 1},
	ZAxis: r3.Vector{Z: 1},
}

const planeEpsilon = 1e-12

// NewPlane builds a plane from an origin and two in-plane directions.
// x is normalised; y is made orthogonal to x before normalising.
func NewPlane(origin, x, y r3.Vector) (Plane, error) {
	if x.Norm() < planeEpsilon {
		return Plane{}, ErrDegeneratePlane
	}
	xu := x.Normalize()
	yo := y.Sub(xu.Mul(y.Dot(xu)))
	if yo.Norm() < planeEpsilon {
		return Plane{}, ErrDegeneratePlane
	}
	yu := yo.Normalize()
	return Plane{
		Origin: origin,
		XAxis:  xu,
		YAxis:  yu,
		ZAxis:  xu.Cross(yu),
	}, nil
}

// PlaneAt returns WorldXY moved to origin.
func PlaneAt(origin r3.Vector) Plane {
	p := WorldXY
	p.Origin = origin
	return p
}

// PlaneFromPose returns the frame a pose maps WorldXY to.
func PlaneFromPose(p Pose) Plane {
	return Plane{
		Origin: p.T,
		XAxis:  p.Column(0),
		YAxis:  p.Column(1),
		ZAxis:  p.Column(2),
	}
}

// Pose returns the transform mapping WorldXY onto p.
func (p Plane) Pose() Pose {
	return Pose{
		R: [3][3]float64{
			{p.XAxis.X, p.YAxis.X, p.ZAxis.X},
			{p.XAxis.Y, p.YAxis.Y, p.ZAxis.Y},
			{p.XAxis.Z, p.YAxis.Z, p.ZAxis.Z},
		},
		T: p.Origin,
	}
}

// Transform returns p moved by x.
func (p Plane) Transform(x Pose) Plane {
	return Plane{
		Origin: x.Apply(p.Origin),
		XAxis:  x.ApplyVector(p.XAxis),
		YAxis:  x.ApplyVector(p.YAxis),
		ZAxis:  x.ApplyVector(p.ZAxis),
	}
}

// Flip turns the plane over about its Y axis: the X and Z axes reverse.
// This is the usual correction for targets authored with Z pointing out of a
// surface when the tool must approach into it.
func (p Plane) Flip() Plane {
	return Plane{
		Origin: p.Origin,
		XAxis:  p.XAxis.Mul(-1),
		YAxis:  p.YAxis,
		ZAxis:  p.ZAxis.Mul(-1),
	}
}

// PlaneToPlane returns the transform that carries frame from onto frame to.
// PlaneToPlane(wobj, WorldXY) re-expresses a world plane in wobj coordinates.
func PlaneToPlane(from, to Plane) Pose {
	return to.Pose().Mul(from.Pose().Inverse())
}
