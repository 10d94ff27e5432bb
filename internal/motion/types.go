package motion

import (
	"fmt"
	"strings"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/robot"
)

// MotionType selects how the controller interpolates towards a target.
type MotionType int

const (
	// Linear moves the TCP along a straight line (MoveL / LIN).
	Linear MotionType = iota
	// Joint interpolates in joint space (MoveJ / PTP).
	Joint
	// AbsoluteJoint moves to explicit joint values (MoveAbsJ).
	AbsoluteJoint
	// NoMovement marks a target that is not moved to.
	NoMovement
)

// String returns the display name of the motion type.
func (m MotionType) String() string {
	switch m {
	case Linear:
		return "Linear"
	case Joint:
		return "Joint"
	case AbsoluteJoint:
		return "Absolute Joint"
	case NoMovement:
		return "No Movement"
	default:
		return fmt.Sprintf("MotionType(%d)", int(m))
	}
}

// ParseMotionType parses a motion type name. Case, spaces, dashes and
// underscores are ignored, so "Absolute Joint", "absolute_joint" and
// "AbsoluteJoint" are equivalent.
func ParseMotionType(s string) (MotionType, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	switch key {
	case "linear":
		return Linear, nil
	case "joint":
		return Joint, nil
	case "absolutejoint":
		return AbsoluteJoint, nil
	case "nomovement":
		return NoMovement, nil
	default:
		return 0, fmt.Errorf("unknown motion type %q: must be Linear, Joint, Absolute Joint or No Movement", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m MotionType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MotionType) UnmarshalText(b []byte) error {
	v, err := ParseMotionType(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// DefaultSpeedName is the literal used when no usable speed is given.
const DefaultSpeedName = "v200"

// Speed is a named TCP speed. A positive Time overrides the speed with a
// total move duration in seconds.
type Speed struct {
	Name             string  `json:"name"`
	TranslationSpeed float64 `json:"translation_speed"` // mm/s
	RotationSpeed    float64 `json:"rotation_speed"`    // deg/s
	Time             float64 `json:"time,omitempty"`    // s
}

// DefaultSpeed is 100 mm/s and 30 deg/s.
var DefaultSpeed = Speed{Name: "DefaultSpeed", TranslationSpeed: 100, RotationSpeed: 30}

// DefaultSpeedData is what a move without a speed runs at where the
// controller needs numbers rather than the v200 name: 200 mm/s, with
// DefaultSpeed's orientation speed.
var DefaultSpeedData = Speed{Name: DefaultSpeedName, TranslationSpeed: 200, RotationSpeed: DefaultSpeed.RotationSpeed}

// Zone is a named blending region around a target.
type Zone struct {
	Name           string  `json:"name"`
	StopPoint      bool    `json:"stop_point,omitempty"`
	PathRadius     float64 `json:"path_radius"`
	PathOrient     float64 `json:"path_orient"`
	PathExternal   float64 `json:"path_external"`
	Orientation    float64 `json:"orientation"`
	LinearExternal float64 `json:"linear_external"`
	RotaryExternal float64 `json:"rotary_external"`
}

// DefaultZone blends within 5 mm.
var DefaultZone = Zone{
	Name:           "DefaultZone",
	PathRadius:     5,
	PathOrient:     25,
	PathExternal:   25,
	Orientation:    15,
	LinearExternal: 35,
	RotaryExternal: 5,
}

// CSystem is a work object: a named frame targets are expressed in.
type CSystem struct {
	Name  string     `json:"name"`
	Plane geom.Plane `json:"plane"`
}

// DefaultCSystem is the world frame.
var DefaultCSystem = CSystem{Name: "Default", Plane: geom.WorldXY}

// ExAxisTol is the external axis value that means "not used". Any other
// value is written to the instruction.
const ExAxisTol = 0.00001

// unusedAxis is the controller literal for an axis that is not present.
const unusedAxis = "9E9"

// speedText renders the speed argument of an instruction.
func speedText(s *Speed) string {
	if s == nil {
		return DefaultSpeedName
	}
	name := s.Name
	if name == "" {
		name = DefaultSpeedName
	}
	if s.Time > 0 {
		return name + `\T:=` + formatNumber(s.Time)
	}
	return name
}

// externalAxes renders the RAPID external axis argument. The second result is
// false when both axes are unset and the instruction should use eAxis.
func externalAxes(extRot, extLin float64) (string, bool) {
	if extRot == ExAxisTol && extLin == ExAxisTol {
		return "[" + strings.Repeat(unusedAxis+", ", 5) + unusedAxis + "]", false
	}
	rot, lin := unusedAxis, unusedAxis
	if extRot != ExAxisTol {
		rot = formatNumber(geom.Round(extRot, extRotPlaces))
	}
	if extLin != ExAxisTol {
		lin = formatNumber(geom.Round(extLin, extLinPlaces))
	}
	return "[" + rot + ", " + lin + ", 9E9, 9E9, 9E9, 9E9]", true
}

func unsupported(m robot.Manufacturer, mt MotionType) string {
	return fmt.Sprintf("%s has no instruction for %s motion.", m, mt)
}
