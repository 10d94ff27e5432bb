package kinematics

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/robot"
)

// Solution is the outcome of solving one pose.
type Solution struct {
	Joints      robot.JointSet `json:"joints"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
	Reachable   bool           `json:"reachable"`
}

// Solver binds a manipulator model to a logger for batch use.
//
// Thread-safety: Solver holds no mutable state; all methods are safe for
// concurrent use.
type Solver struct {
	model   robot.Model
	logger  *slog.Logger
	workers int
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithLogger sets the logger diagnostics are reported to.
func WithLogger(l *slog.Logger) SolverOption {
	return func(s *Solver) {
		s.logger = l
	}
}

// WithWorkers bounds the number of goroutines SolveAll uses.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) SolverOption {
	return func(s *Solver) {
		s.workers = n
	}
}

// NewSolver creates a solver for model.
func NewSolver(model robot.Model, opts ...SolverOption) *Solver {
	s := &Solver{
		model:  model,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Model returns the model the solver was built with.
func (s *Solver) Model() robot.Model {
	return s.model
}

// Solve solves a single pose.
func (s *Solver) Solve(pose geom.Pose) Solution {
	q, diags := Solve(pose, s.model)
	sol := Solution{
		Joints:      q,
		Diagnostics: diags,
		Reachable:   !contains(diags, MsgOutOfReach),
	}
	if len(diags) > 0 {
		s.logger.Debug("ik diagnostics",
			"robot", s.model.Name,
			"x", pose.T.X, "y", pose.T.Y, "z", pose.T.Z,
			"diagnostics", diags,
		)
	}
	return sol
}

// SolveAll solves every pose of a toolpath. Poses are independent, so they are
// spread over the solver's workers; the result is in input order. The only
// error is ctx.Err() when the context ends before every pose is solved.
func (s *Solver) SolveAll(ctx context.Context, poses []geom.Pose) ([]Solution, error) {
	out := make([]Solution, len(poses))
	if len(poses) == 0 {
		return out, nil
	}

	idx := make(chan int)
	var wg sync.WaitGroup

	workers := min(s.workers, len(poses))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i] = s.Solve(poses[i])
			}
		}()
	}

	var err error
feed:
	for i := range poses {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case idx <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(idx)
	wg.Wait()

	if err != nil {
		return nil, err
	}

	unreachable := 0
	for _, sol := range out {
		if !sol.Reachable {
			unreachable++
		}
	}
	s.logger.Debug("toolpath solved", "robot", s.model.Name, "targets", len(poses), "unreachable", unreachable)
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
