package geom

import "math"

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// MillimetersToMeters converts a length from millimetres to metres.
func MillimetersToMeters(mm float64) float64 { return mm / 1000 }

// MetersToMillimeters converts a length from metres to millimetres.
func MetersToMillimeters(m float64) float64 { return m * 1000 }

// Round rounds v to the given number of decimal places, resolving ties to the
// even neighbour. Negative zero comes back as zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.RoundToEven(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
