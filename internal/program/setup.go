package program

import (
	"strings"

	"github.com/roach88/axis/internal/motion"
	"github.com/roach88/axis/internal/robot"
)

// krlSetup sets the Setup of every KRL instruction: base, tool, speed and
// zone assignments, written before the first move and again whenever the
// value changes. Stop points leave the approximation distances alone.
func krlSetup(ins []Instruction, declaredWobjs map[string]bool) {
	var current [4]string
	for i := range ins {
		in := &ins[i]
		if in.Code == "" {
			continue
		}
		t := in.Target
		next := [4]string{
			t.WorkObject.BaseAssignment(declaredWobjs[t.WorkObject.Name]),
			motion.ToolAssignment(t.Tool),
			t.SpeedData().Declaration(robot.KUKA),
			current[3],
		}
		if !t.Zone.StopPoint {
			next[3] = t.Zone.Declaration(robot.KUKA)
		}
		for k, stmt := range next {
			if stmt != current[k] {
				in.Setup = append(in.Setup, strings.Split(stmt, "\n")...)
				current[k] = stmt
			}
		}
	}
}

// rapidDefaults returns declarations for the built-in records RAPID
// instructions fall back to. The controller predefines none of DefaultTool,
// DefaultSpeed, DefaultZone or the Default work object, so a module that
// uses one carries its data. A job record of the same name takes precedence.
func (r *records) rapidDefaults(ins []Instruction) []string {
	var tool, speed, zone, wobj bool
	for _, in := range ins {
		if in.Code == "" {
			continue
		}
		t := in.Target
		zone = zone || t.Zone.Name == motion.DefaultZone.Name
		speed = speed || (t.Speed != nil && t.Speed.Name == motion.DefaultSpeed.Name)
		// Absolute joint moves are written with tool0 and no work object.
		if t.Motion != motion.AbsoluteJoint {
			tool = tool || t.Tool.Name == robot.DefaultToolName
			wobj = wobj || t.WorkObject.Name == motion.DefaultCSystem.Name
		}
	}

	var decls []string
	if _, ok := r.tools[robot.DefaultToolName]; tool && !ok {
		decls = append(decls, motion.ToolDeclaration(robot.DefaultTool))
	}
	if _, ok := r.speeds[motion.DefaultSpeed.Name]; speed && !ok {
		decls = append(decls, motion.DefaultSpeed.Declaration(robot.ABB))
	}
	if _, ok := r.zones[motion.DefaultZone.Name]; zone && !ok {
		decls = append(decls, motion.DefaultZone.Declaration(robot.ABB))
	}
	if _, ok := r.wobjs[motion.DefaultCSystem.Name]; wobj && !ok {
		decls = append(decls, motion.DefaultCSystem.Declaration(robot.ABB))
	}
	return decls
}
