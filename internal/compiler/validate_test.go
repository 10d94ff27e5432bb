package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/axis/internal/ir"
)

func validJob() *ir.Job {
	target := ir.PlaneSpec{Origin: [3]float64{500, 0, 600}, XAxis: [3]float64{1, 0, 0}, YAxis: [3]float64{0, 1, 0}}
	return &ir.Job{
		Name:         "pick",
		Robot:        "ur10",
		Manufacturer: "ABB",
		Tools:        []ir.ToolSpec{{Name: "Gripper", TCP: ir.WorldPlane}},
		Speeds:       []ir.SpeedSpec{{Name: "Fast", Translation: 250, Rotation: 30}},
		Zones:        []ir.ZoneSpec{{Name: "z10", PathRadius: 10}},
		WorkObjects:  []ir.FrameSpec{{Name: "Table", Plane: ir.WorldPlane}},
		Moves: []ir.Move{
			{Type: "Absolute Joint", Joints: []float64{0, -90, 90, 0, 90, 0}},
			{Type: "Linear", Target: &target, Speed: "Fast", Zone: "z10", Tool: "Gripper", WorkObject: "Table"},
			{Type: "Joint", Target: &target, Speed: "DefaultSpeed", Zone: "DefaultZone", Tool: "DefaultTool", WorkObject: "Default"},
		},
	}
}

func codes(errs []ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestValidateValidJob(t *testing.T) {
	errs := Validate(validJob())
	assert.Empty(t, errs, "valid job should have no errors")
}

func TestValidateNoMoves(t *testing.T) {
	job := validJob()
	job.Moves = nil

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrNoMoves, errs[0].Code)
	assert.Equal(t, "moves", errs[0].Field)
}

func TestValidateUnknownRobotAndManufacturer(t *testing.T) {
	job := validJob()
	job.Robot = "irb120"
	job.Manufacturer = "Fanuc"

	errs := Validate(job)
	assert.Equal(t, []string{ErrUnknownRobot, ErrUnknownManufacturer}, codes(errs))
	assert.Contains(t, errs[0].Message, "ur10, ur5")
}

func TestValidateDanglingReferences(t *testing.T) {
	job := validJob()
	job.Moves[1].Speed = "Warp"
	job.Moves[1].Tool = "Laser"

	errs := Validate(job)
	require.Len(t, errs, 2)
	assert.Equal(t, ErrDanglingReference, errs[0].Code)
	assert.Equal(t, "moves[1].speed", errs[0].Field)
	assert.Equal(t, `speed "Warp" is not declared`, errs[0].Message)
	assert.Equal(t, "moves[1].tool", errs[1].Field)
}

func TestValidateJointCount(t *testing.T) {
	job := validJob()
	job.Moves[0].Joints = []float64{0, 0, 0}

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrJointCount, errs[0].Code)
	assert.Equal(t, "expected 6 joint values, got 3", errs[0].Message)
}

func TestValidateMotionType(t *testing.T) {
	tests := []struct {
		name  string
		move  ir.Move
		field string
	}{
		{"unknown type", ir.Move{Type: "Circular", Target: &ir.WorldPlane}, "moves[0].type"},
		{"joint move without joints", ir.Move{Type: "Absolute Joint", Target: &ir.WorldPlane}, "moves[0].joints"},
		{"linear move without target", ir.Move{Type: "Linear", Joints: []float64{0, 0, 0, 0, 0, 0}}, "moves[0].target"},
		{"both target and joints", ir.Move{Type: "Linear", Target: &ir.WorldPlane, Joints: []float64{0, 0, 0, 0, 0, 0}}, "moves[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			job.Moves = []ir.Move{tt.move}

			errs := Validate(job)
			require.Len(t, errs, 1)
			assert.Equal(t, ErrInvalidMotionType, errs[0].Code)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestValidateDuplicateNames(t *testing.T) {
	job := validJob()
	job.Zones = append(job.Zones, ir.ZoneSpec{Name: "Fast"})

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateName, errs[0].Code)
	assert.Equal(t, "zones.Fast", errs[0].Field)
	assert.Contains(t, errs[0].Message, "speeds.Fast")
}

func TestValidateDegeneratePlanes(t *testing.T) {
	job := validJob()
	job.WorkObjects[0].Plane.YAxis = [3]float64{2, 0, 0}
	bad := ir.PlaneSpec{Origin: [3]float64{1, 2, 3}}
	job.Moves[1].Target = &bad

	errs := Validate(job)
	assert.Equal(t, []string{ErrDegeneratePlane, ErrDegeneratePlane}, codes(errs))
	assert.Equal(t, "work_objects.Table.plane", errs[0].Field)
	assert.Equal(t, "moves[1].target", errs[1].Field)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	job := validJob()
	job.Robot = "ur3"
	job.Moves[0].Joints = []float64{1}
	job.Moves[2].Zone = "missing"

	errs := Validate(job)
	assert.ElementsMatch(t, []string{ErrUnknownRobot, ErrJointCount, ErrDanglingReference}, codes(errs))
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "moves", Message: "at least one move is required", Code: ErrNoMoves}
	assert.Equal(t, "[E101] moves: at least one move is required", err.Error())
}
