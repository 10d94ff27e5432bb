package motion

import (
	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/robot"
)

// Acceleration override defaults, in percent of the controller maximum.
const (
	DefaultAcceleration = 35
	DefaultDeceleration = 60
)

// RAPID speeddata external axis speeds, as in the predefined v-speeds.
const (
	linearExternalSpeed = 5000 // mm/s
	rotaryExternalSpeed = 1000 // deg/s
)

// AccSet renders a RAPID acceleration override, for example "AccSet 35, 60;".
func AccSet(acc, dec float64) string {
	return "AccSet " + formatNumber(acc) + ", " + formatNumber(dec) + ";"
}

// Declaration renders the speed as data in dialect m.
//
//	PERS speeddata Fast := [250, 30, 5000, 1000];
//	$VEL.CP = 0.25
//	$VEL.ORI1 = 30
//
// KRL has no named speeds, so the KUKA form sets the system variables.
func (s Speed) Declaration(m robot.Manufacturer) string {
	if m == robot.KUKA {
		return "$VEL.CP = " + formatNumber(geom.Round(geom.MillimetersToMeters(s.TranslationSpeed), 4)) + "\n" +
			"$VEL.ORI1 = " + formatNumber(s.RotationSpeed)
	}
	return "PERS speeddata " + s.Name + " := [" +
		joinNumbers(s.TranslationSpeed, s.RotationSpeed, linearExternalSpeed, rotaryExternalSpeed) + "];"
}

// Declaration renders the zone as data in dialect m.
//
//	PERS zonedata DefaultZone := [FALSE, 5, 25, 25, 15, 35, 5];
//	$APO.CDIS = 5
//	$APO.CORI = 15
func (z Zone) Declaration(m robot.Manufacturer) string {
	if m == robot.KUKA {
		return "$APO.CDIS = " + formatNumber(z.PathRadius) + "\n" +
			"$APO.CORI = " + formatNumber(z.Orientation)
	}
	return "PERS zonedata " + z.Name + " := [" + formatBool(z.StopPoint) + ", " +
		joinNumbers(z.PathRadius, z.PathOrient, z.PathExternal, z.Orientation, z.LinearExternal, z.RotaryExternal) + "];"
}

// Declaration renders the work object frame in dialect m.
//
//	PERS wobjdata Table := [FALSE, TRUE, "", [[400, 0, 0],[1, 0, 0, 0]], [[0, 0, 0],[1, 0, 0, 0]]];
//	DECL FRAME Table = {X 400, Y 0, Z 0, A 0, B 0, C 0}
func (c CSystem) Declaration(m robot.Manufacturer) string {
	q := geom.QuaternionFromPlane(c.Plane)
	if m == robot.KUKA {
		return "DECL FRAME " + c.Name + " = {" + kukaFrame(c.Plane.Origin, q) + "}"
	}
	return "PERS wobjdata " + c.Name + ` := [FALSE, TRUE, "", ` + abbPose(c.Plane.Origin, q) +
		", [[0, 0, 0],[1, 0, 0, 0]]];"
}

// BaseAssignment renders the KRL statement that makes c the base frame
// following moves are written in. A declared frame is referenced by name,
// any other is written inline.
//
//	$BASE = Table
//	$BASE = {X 0, Y 0, Z 0, A 0, B 0, C 0}
func (c CSystem) BaseAssignment(declared bool) string {
	if declared {
		return "$BASE = " + c.Name
	}
	return "$BASE = {" + kukaFrame(c.Plane.Origin, geom.QuaternionFromPlane(c.Plane)) + "}"
}

// ToolAssignment renders the KRL statement that makes t the active tool,
// by name when the tool is declared and inline otherwise.
//
//	$TOOL = Gripper
//	$TOOL = {X 0, Y 0, Z 0, A 0, B 0, C 0}
func ToolAssignment(t robot.Tool) string {
	if t.Declare {
		return "$TOOL = " + t.Name
	}
	return "$TOOL = {" + kukaFrame(t.TCP.Origin, geom.QuaternionFromPlane(t.TCP)) + "}"
}

// ToolDeclaration renders tool data in the tool's own dialect.
//
//	PERS tooldata Gripper := [TRUE, [[0, 0, 150],[1, 0, 0, 0]], [2.5, [0, 0, 0], [1, 0, 0, 0], 0, 0, 0]];
//	DECL FRAME Gripper = {X 0, Y 0, Z 150, A 0, B 0, C 0}
//
// The KRL frame carries no load; KUKA loads are configured on the controller.
func ToolDeclaration(t robot.Tool) string {
	q := geom.QuaternionFromPlane(t.TCP)
	if t.Manufacturer == robot.KUKA {
		return "DECL FRAME " + t.Name + " = {" + kukaFrame(t.TCP.Origin, q) + "}"
	}
	return "PERS tooldata " + t.Name + " := [TRUE, " + abbPose(t.TCP.Origin, q) +
		", [" + formatNumber(t.Load()) + ", [0, 0, 0], [1, 0, 0, 0], 0, 0, 0]];"
}
