package robot

import (
	"math"

	"github.com/roach88/axis/internal/geom"
)

// JointSet holds six joint angles in radians, base to flange.
type JointSet [6]float64

// JointSetFromDegrees converts six angles in degrees.
func JointSetFromDegrees(deg [6]float64) JointSet {
	var j JointSet
	for i, d := range deg {
		j[i] = geom.Radians(d)
	}
	return j
}

// Normalize wraps every angle into (−π, π] with a single ±2π step. Inputs
// are expected to lie within (−3π, 3π], which covers every solver output.
func (j JointSet) Normalize() JointSet {
	for i := range j {
		if j[i] > math.Pi {
			j[i] -= 2 * math.Pi
		}
		if j[i] <= -math.Pi {
			j[i] += 2 * math.Pi
		}
	}
	return j
}

// Degrees returns the angles in degrees.
func (j JointSet) Degrees() [6]float64 {
	var out [6]float64
	for i, r := range j {
		out[i] = geom.Degrees(r)
	}
	return out
}

// Slice returns the angles as a slice, for callers that need list output.
func (j JointSet) Slice() []float64 {
	out := make([]float64, 6)
	copy(out, j[:])
	return out
}
