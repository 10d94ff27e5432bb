package compiler

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/ir"
	"github.com/roach88/axis/internal/motion"
	"github.com/roach88/axis/internal/robot"
)

// Validation error codes (E100-E199)
const (
	ErrNoMoves             = "E101" // at least one move required
	ErrUnknownRobot        = "E102" // robot is not a known preset
	ErrUnknownManufacturer = "E103" // manufacturer is not ABB or KUKA
	ErrDanglingReference   = "E104" // move references an undeclared record
	ErrJointCount          = "E105" // joint moves need exactly six values
	ErrInvalidMotionType   = "E106" // unknown motion type or wrong target kind
	ErrDuplicateName       = "E107" // record names share one namespace
	ErrDegeneratePlane     = "E108" // plane axes are zero or parallel
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled job against semantic rules.
// Returns all errors found (does not fail-fast).
func Validate(job *ir.Job) []ValidationError {
	var errs []ValidationError
	add := func(code, field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Code: code})
	}

	// E102: robot preset
	if _, err := robot.Preset(job.Robot); err != nil {
		add(ErrUnknownRobot, "robot", "unknown robot %q, must be one of: %s", job.Robot, strings.Join(robot.PresetNames(), ", "))
	}

	// E103: manufacturer
	if _, err := robot.ParseManufacturer(job.Manufacturer); err != nil {
		add(ErrUnknownManufacturer, "manufacturer", "unknown manufacturer %q, must be ABB or KUKA", job.Manufacturer)
	}

	// E107: names are emitted as controller identifiers and must not collide
	seen := make(map[string]string)
	declare := func(kind, name string) {
		field := kind + "." + name
		if prev, ok := seen[name]; ok {
			add(ErrDuplicateName, field, "name %q is already used by %s", name, prev)
			return
		}
		seen[name] = field
	}

	tools := make(map[string]bool)
	for _, t := range job.Tools {
		declare("tools", t.Name)
		tools[t.Name] = true
		checkPlane(t.TCP, "tools."+t.Name+".tcp", add)
	}
	speeds := make(map[string]bool)
	for _, s := range job.Speeds {
		declare("speeds", s.Name)
		speeds[s.Name] = true
	}
	zones := make(map[string]bool)
	for _, z := range job.Zones {
		declare("zones", z.Name)
		zones[z.Name] = true
	}
	wobjs := make(map[string]bool)
	for _, w := range job.WorkObjects {
		declare("work_objects", w.Name)
		wobjs[w.Name] = true
		checkPlane(w.Plane, "work_objects."+w.Name+".plane", add)
	}

	// E101: moves
	if len(job.Moves) == 0 {
		add(ErrNoMoves, "moves", "at least one move is required")
	}

	for i, m := range job.Moves {
		field := fmt.Sprintf("moves[%d]", i)

		// E104: references; the built-in defaults are always available
		checkRef := func(kind, name, builtin string, declared map[string]bool) {
			if name == "" || name == builtin || declared[name] {
				return
			}
			add(ErrDanglingReference, field+"."+kind, "%s %q is not declared", kind, name)
		}
		checkRef("speed", m.Speed, motion.DefaultSpeed.Name, speeds)
		checkRef("zone", m.Zone, motion.DefaultZone.Name, zones)
		checkRef("tool", m.Tool, robot.DefaultToolName, tools)
		checkRef("work_object", m.WorkObject, motion.DefaultCSystem.Name, wobjs)

		// E106: motion type and target kind
		mt, err := motion.ParseMotionType(m.Type)
		if err != nil {
			add(ErrInvalidMotionType, field+".type", "%v", err)
			continue
		}
		switch {
		case m.Target != nil && len(m.Joints) > 0:
			add(ErrInvalidMotionType, field, "a move has either a target or joints, not both")
		case mt == motion.AbsoluteJoint && len(m.Joints) == 0:
			add(ErrInvalidMotionType, field+".joints", "%s motion needs joint values", mt)
		case mt != motion.AbsoluteJoint && m.Target == nil:
			add(ErrInvalidMotionType, field+".target", "%s motion needs a target plane", mt)
		}

		// E105: joint count
		if len(m.Joints) > 0 && len(m.Joints) != len(robot.JointSet{}) {
			add(ErrJointCount, field+".joints", "expected %d joint values, got %d", len(robot.JointSet{}), len(m.Joints))
		}

		// E108: target plane
		if m.Target != nil {
			checkPlane(*m.Target, field+".target", add)
		}
	}

	return errs
}

func checkPlane(p ir.PlaneSpec, field string, add func(code, field, format string, args ...any)) {
	if _, err := geom.NewPlane(vec(p.Origin), vec(p.XAxis), vec(p.YAxis)); err != nil {
		add(ErrDegeneratePlane, field, "%v", err)
	}
}

func vec(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
