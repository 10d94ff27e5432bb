package kinematics

import (
	"math"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/robot"
)

// Diagnostic messages reported by Solve.
const (
	MsgOverhead   = "Overhead singularity."
	MsgOverhead2  = "Overhead singularity 2."
	MsgOutOfReach = "Target out of reach."
)

// Solve returns the joint angles placing the flange of model at pose, along
// with any diagnostics. It never fails: at a singularity the affected joint
// falls back to a fixed angle and a message is recorded, so the result is
// always usable for preview. "Target out of reach." is reported at most once.
//
// The pose translation must be in the same unit as the model lengths.
func Solve(pose geom.Pose, model robot.Model) (robot.JointSet, []string) {
	var (
		q           robot.JointSet
		diagnostics []string
		unreachable bool
	)

	a, d := model.A, model.D
	shoulder, elbow, wrist := model.Config.Shoulder, model.Config.Elbow, model.Config.Wrist

	t := pose.Mul(geom.RotationZ(robot.BaseCorrection))
	T := t.At

	// Waist.
	{
		A := d[5]*T(1, 2) - T(1, 3)
		B := d[5]*T(0, 2) - T(0, 3)
		R := A*A + B*B

		arccos := math.Acos(d[3] / math.Sqrt(R))
		if math.IsNaN(arccos) {
			diagnostics = append(diagnostics, MsgOverhead)
			arccos = 0
		}
		arctan := math.Atan2(-B, A)

		if !shoulder {
			q[0] = arccos + arctan
		} else {
			q[0] = -arccos + arctan
		}
	}

	// Wrist bend.
	{
		numer := T(0, 3)*math.Sin(q[0]) - T(1, 3)*math.Cos(q[0]) - d[3]
		div := numer / d[5]

		arccos := math.Acos(div)
		if math.IsNaN(arccos) {
			diagnostics = append(diagnostics, MsgOverhead2)
			arccos = math.Pi
			unreachable = true
		}

		if !wrist {
			q[4] = arccos
		} else {
			q[4] = 2*math.Pi - arccos
		}
	}

	// Wrist roll, elbow, shoulder pitch, forearm roll.
	{
		c1, s1 := math.Cos(q[0]), math.Sin(q[0])
		c5, s5 := math.Cos(q[4]), math.Sin(q[4])
		sign5 := sign(s5)

		q[5] = math.Atan2(
			sign5*-(T(0, 1)*s1-T(1, 1)*c1),
			sign5*(T(0, 0)*s1-T(1, 0)*c1),
		)

		c6, s6 := math.Cos(q[5]), math.Sin(q[5])
		x04x := -s5*(T(0, 2)*c1+T(1, 2)*s1) - c5*(s6*(T(0, 1)*c1+T(1, 1)*s1)-c6*(T(0, 0)*c1+T(1, 0)*s1))
		x04y := c5*(T(2, 0)*c6-T(2, 1)*s6) - T(2, 2)*s5
		p13x := d[4]*(s6*(T(0, 0)*c1+T(1, 0)*s1)+c6*(T(0, 1)*c1+T(1, 1)*s1)) - d[5]*(T(0, 2)*c1+T(1, 2)*s1) + T(0, 3)*c1 + T(1, 3)*s1
		p13y := T(2, 3) - d[0] - d[5]*T(2, 2) + d[4]*(T(2, 1)*c6+T(2, 0)*s6)
		c3 := (p13x*p13x + p13y*p13y - a[1]*a[1] - a[2]*a[2]) / (2 * a[1] * a[2])

		arccos := math.Acos(c3)
		if math.IsNaN(arccos) {
			arccos = 0
			unreachable = true
		}

		if !elbow {
			q[2] = arccos
		} else {
			q[2] = 2*math.Pi - arccos
		}

		denom := a[1]*a[1] + a[2]*a[2] + 2*a[1]*a[2]*c3
		s3 := math.Sin(arccos)
		A := a[1] + a[2]*c3
		B := a[2] * s3

		if !elbow {
			q[1] = math.Atan2((A*p13y-B*p13x)/denom, (A*p13x+B*p13y)/denom)
		} else {
			q[1] = math.Atan2((A*p13y+B*p13x)/denom, (A*p13x-B*p13y)/denom)
		}

		c23, s23 := math.Cos(q[1]+q[2]), math.Sin(q[1]+q[2])
		q[3] = math.Atan2(c23*x04y-s23*x04x, x04x*c23+x04y*s23)
	}

	if unreachable {
		diagnostics = append(diagnostics, MsgOutOfReach)
	}

	return q.Normalize(), diagnostics
}

// sign mirrors the three-valued sign function: 0 stays 0.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
