package motion

import (
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/robot"
)

func TestAccSet(t *testing.T) {
	assert.Equal(t, "AccSet 35, 60;", AccSet(DefaultAcceleration, DefaultDeceleration))
	assert.Equal(t, "AccSet 12.5, 100;", AccSet(12.5, 100))
}

func TestSpeedDeclaration(t *testing.T) {
	assert.Equal(t, "PERS speeddata DefaultSpeed := [100, 30, 5000, 1000];", DefaultSpeed.Declaration(robot.ABB))
	assert.Equal(t, "$VEL.CP = 0.1\n$VEL.ORI1 = 30", DefaultSpeed.Declaration(robot.KUKA))
}

func TestZoneDeclaration(t *testing.T) {
	assert.Equal(t, "PERS zonedata DefaultZone := [FALSE, 5, 25, 25, 15, 35, 5];", DefaultZone.Declaration(robot.ABB))
	assert.Equal(t, "$APO.CDIS = 5\n$APO.CORI = 15", DefaultZone.Declaration(robot.KUKA))

	fine := Zone{Name: "fine", StopPoint: true}
	assert.Equal(t, "PERS zonedata fine := [TRUE, 0, 0, 0, 0, 0, 0];", fine.Declaration(robot.ABB))
}

func TestDeclarationsGolden(t *testing.T) {
	table := CSystem{Name: "Table", Plane: geom.PlaneAt(r3.Vector{X: 400})}
	gripper := robot.NewTool("Gripper", geom.PlaneAt(r3.Vector{Z: 150}), robot.ABB, robot.WithDeclaration())
	spindle := robot.NewTool("Spindle", geom.PlaneAt(r3.Vector{Z: 150}), robot.KUKA, robot.WithWeight(4.2))
	fast := Speed{Name: "Fast", TranslationSpeed: 250, RotationSpeed: 30}

	lines := []string{
		fast.Declaration(robot.ABB),
		fast.Declaration(robot.KUKA),
		DefaultZone.Declaration(robot.ABB),
		table.Declaration(robot.ABB),
		table.Declaration(robot.KUKA),
		ToolDeclaration(gripper),
		ToolDeclaration(spindle),
		AccSet(DefaultAcceleration, DefaultDeceleration),
	}

	newGolden(t).Assert(t, "declarations", []byte(strings.Join(lines, "\n")+"\n"))
}

func TestKRLFrameAssignments(t *testing.T) {
	table := CSystem{Name: "Table", Plane: geom.PlaneAt(r3.Vector{X: 400})}
	assert.Equal(t, "$BASE = Table", table.BaseAssignment(true))
	assert.Equal(t, "$BASE = {X 400, Y 0, Z 0, A 0, B 0, C 0}", table.BaseAssignment(false))
	assert.Equal(t, "$BASE = {X 0, Y 0, Z 0, A 0, B 0, C 0}", DefaultCSystem.BaseAssignment(false))

	gripper := robot.NewTool("Gripper", geom.PlaneAt(r3.Vector{Z: 150}), robot.KUKA, robot.WithDeclaration())
	spindle := robot.NewTool("Spindle", geom.PlaneAt(r3.Vector{Z: 120}), robot.KUKA)
	assert.Equal(t, "$TOOL = Gripper", ToolAssignment(gripper))
	assert.Equal(t, "$TOOL = {X 0, Y 0, Z 120, A 0, B 0, C 0}", ToolAssignment(spindle))
}

func TestTargetSpeedData(t *testing.T) {
	noSpeed := NewTarget(geom.WorldXY, Linear, nil, nil, nil, nil, ExAxisTol, ExAxisTol, robot.KUKA)
	assert.Equal(t, DefaultSpeedData, noSpeed.SpeedData())
	assert.Equal(t, "$VEL.CP = 0.2\n$VEL.ORI1 = 30", noSpeed.SpeedData().Declaration(robot.KUKA))

	fast := Speed{Name: "Fast", TranslationSpeed: 250, RotationSpeed: 30}
	withSpeed := NewTarget(geom.WorldXY, Linear, &fast, nil, nil, nil, ExAxisTol, ExAxisTol, robot.KUKA)
	assert.Equal(t, fast, withSpeed.SpeedData())
}
