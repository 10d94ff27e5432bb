package kinematics

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/robot"
)

// reachable joint sets away from wrist and elbow singularities.
var reachable = []robot.JointSet{
	{0.3, -1.2, 1.4, -0.5, 1.1, 0.7},
	{-1.0, -0.8, -1.6, 0.9, -1.3, -2.0},
	{2.0, -2.2, 0.9, 1.2, 0.6, 0.1},
	{1.2, -1.9, -1.1, 0.4, -0.9, 1.5},
}

func TestSolveRoundTrip(t *testing.T) {
	models := []robot.Model{
		robot.UR10,
		robot.UR5,
		robot.UR10.WithConfig(robot.CoupledConfig(false)),
		robot.UR5.WithConfig(robot.CoupledConfig(false)),
	}

	for _, m := range models {
		for _, q := range reachable {
			pose := m.Forward(q)

			got, diags := Solve(pose, m)
			assert.Empty(t, diags, "model %s shoulder=%v q=%v", m.Name, m.Config.Shoulder, q)

			for i, v := range got {
				assert.True(t, v > -math.Pi && v <= math.Pi, "joint %d = %v out of range", i, v)
			}

			back := m.Forward(got)
			assert.True(t, back.ApproxEqual(pose, 1e-8),
				"model %s shoulder=%v q=%v: forward(solve(p)) = %+v, want %+v", m.Name, m.Config.Shoulder, q, back, pose)
		}
	}
}

func TestSolveEveryBranchRoundTrips(t *testing.T) {
	// With independent selectors each valid branch is an exact solution.
	q := robot.JointSet{-2.5, -0.4, 0.7, -1.4, 2.2, 2.9}
	pose := robot.UR10.Forward(q)

	valid := 0
	for _, shoulder := range []bool{false, true} {
		for _, elbow := range []bool{false, true} {
			for _, wrist := range []bool{false, true} {
				m := robot.UR10.WithConfig(robot.Config{Shoulder: shoulder, Elbow: elbow, Wrist: wrist})
				got, diags := Solve(pose, m)
				if len(diags) > 0 {
					assert.Equal(t, []string{MsgOutOfReach}, diags)
					continue
				}
				valid++
				assert.True(t, m.Forward(got).ApproxEqual(pose, 1e-8), "config %+v", m.Config)
			}
		}
	}
	assert.Equal(t, 4, valid)
}

func TestSolveDeterministic(t *testing.T) {
	pose := robot.UR10.Forward(reachable[0])
	a, da := Solve(pose, robot.UR10)
	b, db := Solve(pose, robot.UR10)
	assert.Equal(t, a, b)
	assert.Equal(t, da, db)
}

func TestSolveOverheadSingularity(t *testing.T) {
	// Straight above the base: the waist angle is undefined.
	pose := geom.Translation(r3.Vector{Z: 0.8})

	q, diags := Solve(pose, robot.UR10)

	assert.Contains(t, diags, MsgOverhead)
	assert.InDelta(t, 0, q[0], 1e-12)
	for i, v := range q {
		assert.False(t, math.IsNaN(v), "joint %d is NaN", i)
	}
}

func TestSolveOverheadWristSingularityIsUnreachable(t *testing.T) {
	pose := geom.Translation(r3.Vector{Z: 0.8})

	q, diags := Solve(pose, robot.UR10)

	assert.Contains(t, diags, MsgOverhead2)
	assert.Contains(t, diags, MsgOutOfReach)
	// Wrist bend falls back to π.
	assert.InDelta(t, math.Pi, q[4], 1e-12)
}

func TestSolveOutOfReach(t *testing.T) {
	// Three metres out; the UR10 arm spans 1.18 m.
	pose := geom.Translation(r3.Vector{X: 3})

	q, diags := Solve(pose, robot.UR10)

	require.Equal(t, []string{MsgOutOfReach}, diags)
	assert.InDelta(t, 0, q[2], 1e-12)
	for i, v := range q {
		assert.False(t, math.IsNaN(v), "joint %d is NaN", i)
	}
}

func TestSolveOutOfReachReportedOnce(t *testing.T) {
	pose := geom.Translation(r3.Vector{Z: 0.8})
	_, diags := Solve(pose, robot.UR10)

	count := 0
	for _, d := range diags {
		if d == MsgOutOfReach {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSolverSolveReachable(t *testing.T) {
	s := NewSolver(robot.UR10, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	assert.Equal(t, robot.UR10, s.Model())

	sol := s.Solve(robot.UR10.Forward(reachable[1]))
	assert.True(t, sol.Reachable)
	assert.Empty(t, sol.Diagnostics)

	sol = s.Solve(geom.Translation(r3.Vector{X: 3}))
	assert.False(t, sol.Reachable)
}

func TestSolveAllPreservesOrder(t *testing.T) {
	s := NewSolver(robot.UR10, WithWorkers(3))

	var poses []geom.Pose
	for i := 0; i < 25; i++ {
		poses = append(poses, robot.UR10.Forward(reachable[i%len(reachable)]))
	}
	poses = append(poses, geom.Translation(r3.Vector{X: 3}))

	sols, err := s.SolveAll(context.Background(), poses)
	require.NoError(t, err)
	require.Len(t, sols, len(poses))

	for i, sol := range sols[:25] {
		want, _ := Solve(poses[i], robot.UR10)
		assert.Equal(t, want, sol.Joints, "pose %d", i)
		assert.True(t, sol.Reachable)
	}
	assert.False(t, sols[25].Reachable)
}

func TestSolveAllEmpty(t *testing.T) {
	sols, err := NewSolver(robot.UR5).SolveAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, sols)
}

func TestSolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	poses := []geom.Pose{robot.UR10.Forward(reachable[0])}
	_, err := NewSolver(robot.UR10).SolveAll(ctx, poses)
	assert.ErrorIs(t, err, context.Canceled)
}
