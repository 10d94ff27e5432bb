package motion

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/robot"
)

// MsgNeedsJoints is reported when an absolute joint move is requested for a
// pose rather than a joint set.
const MsgNeedsJoints = "Absolute Joint motion needs joint values, not a pose."

// jointTool is the calibration tool absolute joint moves are written with.
const jointTool = "tool0"

// Target is a compiled motion target. It is built by NewTarget or
// NewJointTarget and not modified afterwards.
//
// Plane, Position and Quaternion describe the target in world coordinates;
// the instruction text is expressed in the work object's frame.
type Target struct {
	Plane        geom.Plane         `json:"plane"`
	Position     r3.Vector          `json:"position"`
	Quaternion   quat.Number        `json:"quaternion"`
	Joints       *robot.JointSet    `json:"joints,omitempty"`
	Motion       MotionType         `json:"motion"`
	Speed        *Speed             `json:"speed,omitempty"`
	Zone         Zone               `json:"zone"`
	Tool         robot.Tool         `json:"tool"`
	WorkObject   CSystem            `json:"work_object"`
	ExtRot       float64            `json:"ext_rot"`
	ExtLin       float64            `json:"ext_lin"`
	Manufacturer robot.Manufacturer `json:"manufacturer"`

	// ABB and KUKA hold the instruction in each dialect, empty where the
	// dialect has no form for the motion.
	ABB  string `json:"abb,omitempty"`
	KUKA string `json:"kuka,omitempty"`

	Diagnostics []string `json:"diagnostics,omitempty"`
}

// NewTarget compiles a Cartesian target. plane is the TCP goal in world
// coordinates. Nil zone, tool or work object select DefaultZone,
// robot.DefaultTool and DefaultCSystem; a nil speed is written as v200.
func NewTarget(
	plane geom.Plane,
	motionType MotionType,
	speed *Speed,
	zone *Zone,
	tool *robot.Tool,
	wobj *CSystem,
	extRot, extLin float64,
	manufacturer robot.Manufacturer,
) *Target {
	t := &Target{
		Plane:        plane,
		Position:     plane.Origin,
		Quaternion:   geom.QuaternionFromPlane(plane),
		Motion:       motionType,
		Speed:        speed,
		Zone:         orDefault(zone, DefaultZone),
		Tool:         orDefault(tool, robot.DefaultTool),
		WorkObject:   orDefault(wobj, DefaultCSystem),
		ExtRot:       extRot,
		ExtLin:       extLin,
		Manufacturer: manufacturer,
	}

	local := plane.Transform(geom.PlaneToPlane(t.WorkObject.Plane, geom.WorldXY))
	position := local.Origin
	q := geom.QuaternionFromPlane(local)

	var abbMove, kukaMove, approx string
	switch motionType {
	case Linear:
		abbMove, kukaMove, approx = "MoveL", "LIN", "C_VEL"
	case Joint:
		abbMove, kukaMove, approx = "MoveJ", "PTP", "C_PTP"
	case AbsoluteJoint:
		t.Diagnostics = append(t.Diagnostics, MsgNeedsJoints)
		return t
	default:
		t.Diagnostics = append(t.Diagnostics, unsupported(manufacturer, motionType))
		return t
	}

	axes, explicit := externalAxes(extRot, extLin)
	if !explicit {
		axes = "eAxis"
	}
	t.ABB = abbMove + " [[" + abbPosition(position) + "],[" + abbQuaternion(q) + "], cData, " + axes + "], " +
		speedText(speed) + ", " + t.Zone.Name + ", " + t.Tool.Name + ` \Wobj:=` + t.WorkObject.Name + ";"

	t.KUKA = kukaMove + " {E6POS: " + kukaFrame(position, q) + ", E1 0, E2 0, E3 0, E4 0}"
	if !t.Zone.StopPoint {
		t.KUKA += " " + approx
	}
	return t
}

// NewJointTarget compiles an absolute joint move to joints, in radians.
// The move is written with the calibration tool; only ABB has a form for it.
func NewJointTarget(
	joints robot.JointSet,
	speed *Speed,
	zone *Zone,
	extRot, extLin float64,
	manufacturer robot.Manufacturer,
) *Target {
	j := joints
	t := &Target{
		Plane:        geom.WorldXY,
		Quaternion:   quat.Number{Real: 1},
		Joints:       &j,
		Motion:       AbsoluteJoint,
		Speed:        speed,
		Zone:         orDefault(zone, DefaultZone),
		Tool:         robot.DefaultTool,
		WorkObject:   DefaultCSystem,
		ExtRot:       extRot,
		ExtLin:       extLin,
		Manufacturer: manufacturer,
	}

	rounded := make([]float64, len(joints))
	for i, v := range joints {
		rounded[i] = geom.Round(v, jointPlaces)
	}
	axes, _ := externalAxes(extRot, extLin)

	t.ABB = "MoveAbsJ [[" + joinNumbers(rounded...) + "], " + axes + "], " +
		speedText(speed) + ", " + t.Zone.Name + ", " + jointTool + ";"

	if manufacturer == robot.KUKA {
		t.Diagnostics = append(t.Diagnostics, unsupported(manufacturer, AbsoluteJoint))
	}
	return t
}

// Code returns the instruction in the target's own dialect.
func (t *Target) Code() string {
	if t.Manufacturer == robot.KUKA {
		return t.KUKA
	}
	return t.ABB
}

// SpeedData returns the speed the target moves at, DefaultSpeedData when it
// was given none.
func (t *Target) SpeedData() Speed {
	if t.Speed == nil {
		return DefaultSpeedData
	}
	return *t.Speed
}

// String implements fmt.Stringer.
func (t *Target) String() string {
	return "Target (" + t.Motion.String() + ")"
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
