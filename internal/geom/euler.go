package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are intrinsic Z-Y'-X'' angles in radians: yaw about Z, then
// pitch about the new Y, then roll about the new X.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// QuaternionToEuler converts a unit quaternion to Euler angles.
// At gimbal lock pitch is clamped to ±π/2.
func QuaternionToEuler(q quat.Number) EulerAngles {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	var e EulerAngles
	e.Roll = math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))

	sinp := 2 * (w*y - z*x)
	if math.Abs(sinp) >= 1 {
		e.Pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		e.Pitch = math.Asin(sinp)
	}

	e.Yaw = math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return e
}

// Slice returns the angles in [roll, pitch, yaw] order.
func (e EulerAngles) Slice() []float64 {
	return []float64{e.Roll, e.Pitch, e.Yaw}
}

// Degrees returns e with every angle converted to degrees.
func (e EulerAngles) Degrees() EulerAngles {
	return EulerAngles{Roll: Degrees(e.Roll), Pitch: Degrees(e.Pitch), Yaw: Degrees(e.Yaw)}
}
