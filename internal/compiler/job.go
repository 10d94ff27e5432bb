package compiler

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/axis/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// CompileJob parses a CUE value into a Job.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the job struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`job: { name: "pick", ... }`)
//	job, err := CompileJob(v.LookupPath(cue.ParsePath("job")))
//
// The value is unified with the #Job schema first, so unknown fields and
// ill-typed values are reported with their source position. Semantic checks
// (references, joint counts, planes) are left to Validate.
func CompileJob(v cue.Value) (*ir.Job, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "job", Message: "job is required"}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := v.Context().CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile job schema: %w", err)
	}

	u := schema.LookupPath(cue.ParsePath("#Job")).Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	job := &ir.Job{}
	for _, f := range []struct {
		path string
		dst  any
	}{
		{"name", &job.Name},
		{"robot", &job.Robot},
		{"manufacturer", &job.Manufacturer},
		{"moves", &job.Moves},
	} {
		if err := u.LookupPath(cue.ParsePath(f.path)).Decode(f.dst); err != nil {
			return nil, formatCUEError(err)
		}
	}

	if sv := u.LookupPath(cue.ParsePath("shoulder")); sv.Exists() {
		b, err := sv.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		job.Shoulder = &b
	}

	if av := u.LookupPath(cue.ParsePath("acceleration")); av.Exists() {
		job.Acceleration = &ir.Acceleration{}
		if err := av.Decode(job.Acceleration); err != nil {
			return nil, formatCUEError(err)
		}
	}

	var err error
	if job.Tools, err = parseRecords(u, "tools", func(name string, t *ir.ToolSpec) { t.Name = name }); err != nil {
		return nil, err
	}
	if job.Speeds, err = parseRecords(u, "speeds", func(name string, s *ir.SpeedSpec) { s.Name = name }); err != nil {
		return nil, err
	}
	if job.Zones, err = parseRecords(u, "zones", func(name string, z *ir.ZoneSpec) { z.Name = name }); err != nil {
		return nil, err
	}
	if job.WorkObjects, err = parseRecords(u, "work_objects", func(name string, f *ir.FrameSpec) { f.Name = name }); err != nil {
		return nil, err
	}

	for i := range job.Moves {
		if job.Moves[i].Type == "" {
			job.Moves[i].Type = inferMotionType(job.Moves[i])
		}
	}

	return job, nil
}

// parseRecords decodes a struct of named records, keeping declaration order.
func parseRecords[T any](v cue.Value, field string, setName func(string, *T)) ([]T, error) {
	rv := v.LookupPath(cue.ParsePath(field))
	if !rv.Exists() {
		return nil, nil
	}

	iter, err := rv.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []T
	for iter.Next() {
		var rec T
		if err := iter.Value().Decode(&rec); err != nil {
			return nil, formatCUEError(err)
		}
		setName(iter.Selector().Unquoted(), &rec)
		out = append(out, rec)
	}
	return out, nil
}

// inferMotionType picks the motion type of a move that did not name one:
// joint values mean an absolute joint move, anything else a linear move.
func inferMotionType(m ir.Move) string {
	if len(m.Joints) > 0 {
		return "Absolute Joint"
	}
	return "Linear"
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
