package program

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang/geo/r3"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/ir"
	"github.com/roach88/axis/internal/kinematics"
	"github.com/roach88/axis/internal/motion"
	"github.com/roach88/axis/internal/robot"
)

// records holds a job's named records resolved into motion values.
type records struct {
	tools  map[string]robot.Tool
	speeds map[string]motion.Speed
	zones  map[string]motion.Zone
	wobjs  map[string]motion.CSystem

	// declaredWobjs names the work objects with a declaration in the program.
	declaredWobjs map[string]bool
}

// Build compiles job into a program for its manufacturer.
//
// The job is expected to have passed compiler.Validate; Build still returns
// an error for anything it cannot resolve (unknown robot or manufacturer,
// undeclared references, degenerate planes, joint counts). Unreachable
// targets are not errors: they are compiled, flagged and reported.
//
// Cartesian targets are solved for the flange pose, the target with the tool
// TCP taken off, in metres. The only other error is ctx.Err().
func Build(ctx context.Context, job *ir.Job, opts ...Option) (*Program, error) {
	b := &builder{
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	model, err := robot.Preset(job.Robot)
	if err != nil {
		return nil, err
	}
	if job.Shoulder != nil {
		model = model.WithConfig(robot.CoupledConfig(*job.Shoulder))
	}
	m, err := robot.ParseManufacturer(job.Manufacturer)
	if err != nil {
		return nil, err
	}

	recs, decls, err := resolveRecords(job, m)
	if err != nil {
		return nil, err
	}

	prog := &Program{
		RunID:           b.ids.Generate(),
		Name:            job.Name,
		Robot:           model.Name,
		Manufacturer:    m,
		Declarations:    decls,
		CompilerVersion: ir.CompilerVersion,
		IRVersion:       ir.IRVersion,
	}
	if job.Acceleration != nil {
		if m == robot.KUKA {
			prog.Diagnostics = append(prog.Diagnostics, MsgNoAccSet)
		} else {
			prog.Acceleration = motion.AccSet(job.Acceleration.Acc, job.Acceleration.Dec)
		}
	}

	// Compile every move, collecting the flange poses of Cartesian ones.
	clock := NewClock()
	var (
		poses   []geom.Pose
		posedAt []int
	)
	for i, mv := range job.Moves {
		t, err := recs.compileMove(mv, m)
		if err != nil {
			return nil, fmt.Errorf("moves[%d]: %w", i, err)
		}
		in := Instruction{
			Seq:         clock.Next(),
			Motion:      t.Motion,
			Code:        t.Code(),
			Target:      t,
			Joints:      t.Joints,
			Reachable:   true,
			Diagnostics: append([]string(nil), t.Diagnostics...),
		}
		if t.Joints == nil {
			poses = append(poses, flangePose(t))
			posedAt = append(posedAt, i)
		}
		prog.Instructions = append(prog.Instructions, in)
	}

	solver := kinematics.NewSolver(model, kinematics.WithLogger(b.logger), kinematics.WithWorkers(b.workers))
	sols, err := solver.SolveAll(ctx, poses)
	if err != nil {
		return nil, err
	}
	for k, sol := range sols {
		in := &prog.Instructions[posedAt[k]]
		joints := sol.Joints
		in.Joints = &joints
		in.Reachable = sol.Reachable
		in.Diagnostics = append(in.Diagnostics, sol.Diagnostics...)
	}

	if m == robot.KUKA {
		krlSetup(prog.Instructions, recs.declaredWobjs)
	} else {
		prog.Declarations = append(prog.Declarations, recs.rapidDefaults(prog.Instructions)...)
	}

	prog.Hash, err = ir.ProgramHash(prog.Name, m.String(), prog.Lines())
	if err != nil {
		return nil, err
	}
	for i := range prog.Instructions {
		in := &prog.Instructions[i]
		if in.ID, err = ir.TargetID(prog.Hash, in.Seq, in.Code); err != nil {
			return nil, err
		}
	}

	b.logger.Info("program built",
		"run_id", prog.RunID,
		"name", prog.Name,
		"robot", prog.Robot,
		"manufacturer", m,
		"instructions", len(prog.Instructions),
		"unreachable", len(prog.Unreachable()),
	)
	return prog, nil
}

// flangePose returns the pose the flange must reach for t's TCP to sit on
// t's plane, with the translation in metres.
func flangePose(t *motion.Target) geom.Pose {
	p := t.Plane.Pose().Mul(t.Tool.TCP.Pose().Inverse())
	p.T = p.T.Mul(geom.MillimetersToMeters(1))
	return p
}

// resolveRecords builds the job's named records and the declarations of
// those marked for declaring, in record order: tools, speeds, zones, work
// objects. KUKA programs declare frames only.
func resolveRecords(job *ir.Job, m robot.Manufacturer) (*records, []string, error) {
	recs := &records{
		tools:  make(map[string]robot.Tool),
		speeds: make(map[string]motion.Speed),
		zones:  make(map[string]motion.Zone),
		wobjs:  make(map[string]motion.CSystem),

		declaredWobjs: make(map[string]bool),
	}
	var decls []string

	for _, ts := range job.Tools {
		tcp, err := plane(ts.TCP)
		if err != nil {
			return nil, nil, fmt.Errorf("tool %q: %w", ts.Name, err)
		}
		var opts []robot.ToolOption
		if ts.Weight != nil {
			opts = append(opts, robot.WithWeight(*ts.Weight))
		}
		if ts.Offset != nil {
			opts = append(opts, robot.WithRelativeOffset(vec(*ts.Offset)))
		}
		if ts.Declare {
			opts = append(opts, robot.WithDeclaration())
		}
		tool := robot.NewTool(ts.Name, tcp, m, opts...)
		recs.tools[ts.Name] = tool
		if tool.Declare {
			decls = append(decls, motion.ToolDeclaration(tool))
		}
	}

	for _, ss := range job.Speeds {
		s := motion.Speed{
			Name:             ss.Name,
			TranslationSpeed: ss.Translation,
			RotationSpeed:    ss.Rotation,
			Time:             ss.Time,
		}
		recs.speeds[ss.Name] = s
		// KRL speeds are set at the moves that use them.
		if ss.Declare && m != robot.KUKA {
			decls = append(decls, s.Declaration(m))
		}
	}

	for _, zs := range job.Zones {
		z := motion.Zone{
			Name:           zs.Name,
			StopPoint:      zs.StopPoint,
			PathRadius:     zs.PathRadius,
			PathOrient:     zs.PathOrient,
			PathExternal:   zs.PathExternal,
			Orientation:    zs.Orientation,
			LinearExternal: zs.LinearExternal,
			RotaryExternal: zs.RotaryExternal,
		}
		recs.zones[zs.Name] = z
		if zs.Declare && m != robot.KUKA {
			decls = append(decls, z.Declaration(m))
		}
	}

	for _, fs := range job.WorkObjects {
		p, err := plane(fs.Plane)
		if err != nil {
			return nil, nil, fmt.Errorf("work object %q: %w", fs.Name, err)
		}
		c := motion.CSystem{Name: fs.Name, Plane: p}
		recs.wobjs[fs.Name] = c
		if fs.Declare {
			recs.declaredWobjs[fs.Name] = true
			decls = append(decls, c.Declaration(m))
		}
	}

	return recs, decls, nil
}

// compileMove turns one move into a target in dialect m.
func (r *records) compileMove(mv ir.Move, m robot.Manufacturer) (*motion.Target, error) {
	mt, err := motion.ParseMotionType(mv.Type)
	if err != nil {
		return nil, err
	}
	speed, err := lookup(r.speeds, "speed", mv.Speed, motion.DefaultSpeed.Name, motion.DefaultSpeed)
	if err != nil {
		return nil, err
	}
	zone, err := lookup(r.zones, "zone", mv.Zone, motion.DefaultZone.Name, motion.DefaultZone)
	if err != nil {
		return nil, err
	}
	tool, err := lookup(r.tools, "tool", mv.Tool, robot.DefaultToolName, robot.DefaultTool)
	if err != nil {
		return nil, err
	}
	wobj, err := lookup(r.wobjs, "work object", mv.WorkObject, motion.DefaultCSystem.Name, motion.DefaultCSystem)
	if err != nil {
		return nil, err
	}
	extRot, extLin := axis(mv.ExtRot), axis(mv.ExtLin)

	if len(mv.Joints) > 0 {
		if len(mv.Joints) != len(robot.JointSet{}) {
			return nil, fmt.Errorf("expected %d joint values, got %d", len(robot.JointSet{}), len(mv.Joints))
		}
		joints := robot.JointSetFromDegrees([6]float64(mv.Joints))
		return motion.NewJointTarget(joints, speed, zone, extRot, extLin, m), nil
	}

	if mv.Target == nil {
		return nil, fmt.Errorf("%s move has neither a target nor joints", mt)
	}
	p, err := plane(*mv.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if mv.Flip {
		p = p.Flip()
	}
	return motion.NewTarget(p, mt, speed, zone, tool, wobj, extRot, extLin, m), nil
}

// lookup resolves a record reference. An empty name gives nil, which the
// motion package turns into its default; builtin answers to its own name.
func lookup[T any](declared map[string]T, kind, name, builtinName string, builtin T) (*T, error) {
	if name == "" {
		return nil, nil
	}
	if v, ok := declared[name]; ok {
		return &v, nil
	}
	if name == builtinName {
		return &builtin, nil
	}
	return nil, fmt.Errorf("%s %q is not declared", kind, name)
}

// axis maps an absent external axis value to the "unused" sentinel.
func axis(v *float64) float64 {
	if v == nil {
		return motion.ExAxisTol
	}
	return *v
}

func plane(p ir.PlaneSpec) (geom.Plane, error) {
	return geom.NewPlane(vec(p.Origin), vec(p.XAxis), vec(p.YAxis))
}

func vec(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
