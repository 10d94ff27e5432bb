package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/axis/internal/program"
)

// WriteRun records a built program and its instructions in one transaction.
// Returns whether a new run was inserted.
//
// Uses ON CONFLICT(run_id) DO NOTHING for idempotency: writing a run ID that
// is already stored leaves the stored copy untouched and returns false.
// Runs are numbered in write order by a store-wide logical seq.
func (s *Store) WriteRun(ctx context.Context, p *program.Program) (inserted bool, err error) {
	declsJSON, err := marshalStrings(p.Declarations)
	if err != nil {
		return false, fmt.Errorf("write run: %w", err)
	}
	diagsJSON, err := marshalStrings(p.Diagnostics)
	if err != nil {
		return false, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, seq, name, robot, manufacturer, program_hash, acceleration,
		 declarations, diagnostics, source, compiler_version, ir_version)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO NOTHING
	`,
		p.RunID,
		p.Name,
		p.Robot,
		p.Manufacturer.String(),
		p.Hash,
		p.Acceleration,
		declsJSON,
		diagsJSON,
		p.Render(),
		p.CompilerVersion,
		p.IRVersion,
	)
	if err != nil {
		return false, fmt.Errorf("write run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write run: rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	for _, in := range p.Instructions {
		if err := writeInstruction(ctx, tx, p.RunID, in); err != nil {
			return false, fmt.Errorf("write run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write run: commit: %w", err)
	}
	return true, nil
}

func writeInstruction(ctx context.Context, tx *sql.Tx, runID string, in program.Instruction) error {
	jointsJSON, err := marshalJoints(in.Joints)
	if err != nil {
		return err
	}
	diagsJSON, err := marshalStrings(in.Diagnostics)
	if err != nil {
		return err
	}

	var abb, kuka string
	if in.Target != nil {
		abb, kuka = in.Target.ABB, in.Target.KUKA
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO instructions
		(run_id, seq, id, motion, code, abb, kuka, joints, reachable, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		in.Seq,
		in.ID,
		in.Motion.String(),
		in.Code,
		abb,
		kuka,
		jointsJSON,
		in.Reachable,
		diagsJSON,
	)
	if err != nil {
		return fmt.Errorf("instruction %d: %w", in.Seq, err)
	}
	return nil
}
