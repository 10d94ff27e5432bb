package motion

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/roach88/axis/internal/geom"
)

// Rounding applied to instruction values.
const (
	positionPlaces   = 3
	quaternionPlaces = 6
	eulerPlaces      = 3
	jointPlaces      = 4
	extRotPlaces     = 2
	extLinPlaces     = 4
)

// formatNumber prints v the way controllers expect literals: the shortest
// decimal that round-trips, no trailing zeros, and exponent notation only for
// very small or very large magnitudes (1E-05, 1E+15).
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs < 1e-4 || abs >= 1e15 {
		return strconv.FormatFloat(v, 'E', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinNumbers(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ", ")
}

// abbPosition renders "x, y, z".
func abbPosition(p r3.Vector) string {
	return joinNumbers(
		geom.Round(p.X, positionPlaces),
		geom.Round(p.Y, positionPlaces),
		geom.Round(p.Z, positionPlaces),
	)
}

// abbQuaternion renders "qw, qx, qy, qz".
func abbQuaternion(q quat.Number) string {
	return joinNumbers(
		geom.Round(q.Real, quaternionPlaces),
		geom.Round(q.Imag, quaternionPlaces),
		geom.Round(q.Jmag, quaternionPlaces),
		geom.Round(q.Kmag, quaternionPlaces),
	)
}

// abbPose renders a RAPID pose literal "[[x, y, z],[qw, qx, qy, qz]]".
func abbPose(p r3.Vector, q quat.Number) string {
	return "[[" + abbPosition(p) + "],[" + abbQuaternion(q) + "]]"
}

// kukaFrame renders the "X x, Y y, Z z, A yaw, B pitch, C roll" body of a KRL
// frame. KRL rotates about Z first, so yaw leads.
func kukaFrame(p r3.Vector, q quat.Number) string {
	e := geom.QuaternionToEuler(q).Degrees()
	return "X " + formatNumber(geom.Round(p.X, positionPlaces)) +
		", Y " + formatNumber(geom.Round(p.Y, positionPlaces)) +
		", Z " + formatNumber(geom.Round(p.Z, positionPlaces)) +
		", A " + formatNumber(geom.Round(e.Yaw, eulerPlaces)) +
		", B " + formatNumber(geom.Round(e.Pitch, eulerPlaces)) +
		", C " + formatNumber(geom.Round(e.Roll, eulerPlaces))
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
