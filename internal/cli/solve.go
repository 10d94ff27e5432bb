package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/num/quat"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/kinematics"
	"github.com/roach88/axis/internal/robot"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Robot    string
	Poses    []string
	Shoulder bool
}

// SolveResult is the solution for one flange pose.
type SolveResult struct {
	Pose        string     `json:"pose"`
	Joints      [6]float64 `json:"joints"` // degrees
	Reachable   bool       `json:"reachable"`
	Diagnostics []string   `json:"diagnostics,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve inverse kinematics for flange poses",
		Long: `Solve the joint angles that put the flange at a pose.

A pose is x,y,z in millimetres in the robot base frame, optionally
followed by an orientation quaternion qw,qx,qy,qz (default 1,0,0,0).
Joint angles are printed in degrees. --pose may be repeated.

Exit codes:
  0 - Every pose is reachable
  1 - One or more poses are out of reach
  2 - Command error (unknown robot, malformed pose)

Examples:
  axis solve --robot ur10 --pose 500,0,450,0,1,0,0
  axis solve --robot ur5 --pose 300,100,400 --pose 300,-100,400 --shoulder=false`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Robot, "robot", "ur10", fmt.Sprintf("robot model (%s)", strings.Join(robot.PresetNames(), "|")))
	cmd.Flags().StringArrayVar(&opts.Poses, "pose", nil, "flange pose x,y,z[,qw,qx,qy,qz] in mm (required)")
	_ = cmd.MarkFlagRequired("pose")
	cmd.Flags().BoolVar(&opts.Shoulder, "shoulder", true, "shoulder branch; also selects the coupled elbow and wrist")

	return cmd
}

func runSolve(opts *SolveOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	model, err := robot.Preset(opts.Robot)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidArgs, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid robot", err)
	}
	if cmd.Flags().Changed("shoulder") {
		model = model.WithConfig(robot.CoupledConfig(opts.Shoulder))
	}

	poses := make([]geom.Pose, len(opts.Poses))
	for i, s := range opts.Poses {
		if poses[i], err = ParsePose(s); err != nil {
			_ = formatter.Error(ErrCodeInvalidArgs, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid pose", err)
		}
	}

	solver := kinematics.NewSolver(model, kinematics.WithLogger(opts.logger(formatter.GetErrWriter())))
	sols, err := solver.SolveAll(cmd.Context(), poses)
	if err != nil {
		return WrapExitError(ExitCommandError, "solve failed", err)
	}

	results := make([]SolveResult, len(sols))
	unreachable := 0
	for i, sol := range sols {
		results[i] = SolveResult{
			Pose:        opts.Poses[i],
			Reachable:   sol.Reachable,
			Diagnostics: sol.Diagnostics,
		}
		for j, d := range sol.Joints.Degrees() {
			results[i].Joints[j] = geom.Round(d, 4)
		}
		if !sol.Reachable {
			unreachable++
		}
	}

	if formatter.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		outputSolveText(formatter, model, results)
	}

	if unreachable > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d pose(s) out of reach", unreachable))
	}
	return nil
}

func outputSolveText(formatter *OutputFormatter, model robot.Model, results []SolveResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "%s (shoulder=%t elbow=%t wrist=%t)\n",
		model.Name, model.Config.Shoulder, model.Config.Elbow, model.Config.Wrist)

	for _, r := range results {
		mark := "✓"
		if !r.Reachable {
			mark = "✗"
		}
		parts := make([]string, len(r.Joints))
		for i, j := range r.Joints {
			parts[i] = strconv.FormatFloat(j, 'f', -1, 64)
		}
		fmt.Fprintf(w, "%s %s -> [%s]\n", mark, r.Pose, strings.Join(parts, ", "))
		for _, d := range r.Diagnostics {
			fmt.Fprintf(w, "    %s\n", d)
		}
	}
}

// ParsePose parses "x,y,z" or "x,y,z,qw,qx,qy,qz" with the position in
// millimetres, returning the pose in metres.
func ParsePose(s string) (geom.Pose, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 && len(fields) != 7 {
		return geom.Pose{}, fmt.Errorf("pose %q: want 3 or 7 comma-separated numbers, got %d", s, len(fields))
	}

	v := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return geom.Pose{}, fmt.Errorf("pose %q: field %d: %w", s, i+1, err)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return geom.Pose{}, fmt.Errorf("pose %q: field %d: not a finite number", s, i+1)
		}
		v[i] = n
	}

	q := quat.Number{Real: 1}
	if len(v) == 7 {
		q = quat.Number{Real: v[3], Imag: v[4], Jmag: v[5], Kmag: v[6]}
		if quat.Abs(q) == 0 {
			return geom.Pose{}, fmt.Errorf("pose %q: zero quaternion", s)
		}
	}

	t := r3.Vector{X: v[0], Y: v[1], Z: v[2]}.Mul(geom.MillimetersToMeters(1))
	return geom.PoseFromQuaternion(q, t), nil
}
