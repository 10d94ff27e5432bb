package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/axis/internal/compiler"
	"github.com/roach88/axis/internal/ir"
	"github.com/roach88/axis/internal/program"
	"github.com/roach88/axis/internal/store"
	"github.com/roach88/axis/internal/testutil"
)

// Harness is the test execution engine.
// It builds one scenario's job with a fixed run ID into a private store.
type Harness struct {
	store  *store.Store
	runIDs *testutil.FixedRunIDGenerator
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Load the CUE job and validate it
// 3. Build the program and record it in the store
// 4. Compare expect clauses and evaluate assertions
// 5. Return result with pass/fail, program, and errors
//
// Scenario failures are reported on the Result; the returned error is for
// a harness that could not run at all (unloadable job, store failure).
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context for the build.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	// Create fresh in-memory SQLite database
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		runIDs: testutil.NewFixedRunIDGenerator(scenario.RunID),
		logger: testutil.DiscardLogger(), // Suppress logs in tests
	}

	job, err := compiler.LoadJob(scenario.Job)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	result := NewResult()
	for _, verr := range compiler.Validate(job) {
		result.ValidationCodes = append(result.ValidationCodes, verr.Code)
		if len(scenario.Expect.Errors) == 0 {
			result.AddError(fmt.Sprintf("validation failed: %s", verr.Error()))
		}
	}

	if len(scenario.Expect.Errors) > 0 {
		if !slices.Equal(result.ValidationCodes, scenario.Expect.Errors) {
			result.AddError(fmt.Sprintf("validation codes: expected %v, got %v",
				scenario.Expect.Errors, result.ValidationCodes))
		}
		return result, nil
	}
	if !result.Pass {
		return result, nil
	}

	prog, err := h.build(ctx, job)
	if err != nil {
		result.AddError(fmt.Sprintf("build failed: %v", err))
		return result, nil
	}
	result.Program = prog

	for _, msg := range compareExpect(prog, scenario.Expect) {
		result.AddError(msg)
	}

	// Evaluate assertions against the result
	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// build compiles job and records the program in the harness store.
func (h *Harness) build(ctx context.Context, job *ir.Job) (*program.Program, error) {
	prog, err := program.Build(ctx, job,
		program.WithRunIDGenerator(h.runIDs),
		program.WithLogger(h.logger),
	)
	if err != nil {
		return nil, err
	}
	if _, err := h.store.WriteRun(ctx, prog); err != nil {
		return nil, fmt.Errorf("failed to write run: %w", err)
	}

	h.logger.Info("scenario program recorded",
		"run_id", prog.RunID,
		"hash", prog.Hash,
		"instructions", len(prog.Instructions),
	)
	return prog, nil
}

// compareExpect returns a message for every expect clause prog violates.
func compareExpect(prog *program.Program, expect Expect) []string {
	var msgs []string

	if len(expect.Instructions) > 0 {
		codes := make([]string, len(prog.Instructions))
		for i, in := range prog.Instructions {
			codes[i] = in.Code
		}
		if len(codes) != len(expect.Instructions) {
			msgs = append(msgs, fmt.Sprintf("instructions: expected %d, got %d", len(expect.Instructions), len(codes)))
		} else {
			for i := range codes {
				if codes[i] != expect.Instructions[i] {
					msgs = append(msgs, fmt.Sprintf("instructions[%d]:\n  Expected: %s\n  Actual: %s",
						i, expect.Instructions[i], codes[i]))
				}
			}
		}
	}

	diagnostics := prog.AllDiagnostics()
	if !slices.Equal(diagnostics, expect.Diagnostics) {
		msgs = append(msgs, fmt.Sprintf("diagnostics: expected %q, got %q", expect.Diagnostics, diagnostics))
	}

	var unreachable []int64
	for _, in := range prog.Unreachable() {
		unreachable = append(unreachable, in.Seq)
	}
	if !slices.Equal(unreachable, expect.Unreachable) {
		msgs = append(msgs, fmt.Sprintf("unreachable: expected %v, got %v", expect.Unreachable, unreachable))
	}

	return msgs
}
