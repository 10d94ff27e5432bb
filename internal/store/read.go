package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReadRuns lists every stored run in write order.
//
// Returns an empty slice (not nil) if the store holds no runs.
func (s *Store) ReadRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.seq, r.run_id, r.name, r.robot, r.manufacturer, r.program_hash,
		       COUNT(i.seq),
		       COALESCE(SUM(CASE WHEN i.reachable = 0 THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN instructions i ON i.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.seq ASC, r.run_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.Seq, &r.RunID, &r.Name, &r.Robot, &r.Manufacturer, &r.Hash, &r.Instructions, &r.Unreachable); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves one run with its instructions in program order.
// Returns ErrRunNotFound if no run has the ID.
func (s *Store) ReadRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, run_id, name, robot, manufacturer, program_hash, acceleration,
		       declarations, diagnostics, source, compiler_version, ir_version
		FROM runs
		WHERE run_id = ?
	`, runID)

	var (
		r                    Run
		declsJSON, diagsJSON string
	)
	err := row.Scan(&r.Seq, &r.RunID, &r.Name, &r.Robot, &r.Manufacturer, &r.Hash, &r.Acceleration,
		&declsJSON, &diagsJSON, &r.Source, &r.CompilerVersion, &r.IRVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}

	if r.Declarations, err = unmarshalStrings(declsJSON); err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	if r.Diagnostics, err = unmarshalStrings(diagsJSON); err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}

	if r.Instructions, err = s.ReadInstructions(ctx, runID); err != nil {
		return Run{}, err
	}
	return r, nil
}

// ReadInstructions returns a run's instructions ordered by seq.
//
// Returns an empty slice (not nil) if the run has none or does not exist.
func (s *Store) ReadInstructions(ctx context.Context, runID string) ([]Instruction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, id, motion, code, abb, kuka, joints, reachable, diagnostics
		FROM instructions
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query instructions: %w", err)
	}
	defer rows.Close()

	out := []Instruction{}
	for rows.Next() {
		in, err := scanInstruction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instructions: %w", err)
	}
	return out, nil
}

// ReadInstruction retrieves one instruction by its content-addressed ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadInstruction(ctx context.Context, id string) (Instruction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, id, motion, code, abb, kuka, joints, reachable, diagnostics
		FROM instructions
		WHERE id = ?
		ORDER BY run_id COLLATE BINARY ASC
		LIMIT 1
	`, id)
	if err != nil {
		return Instruction{}, fmt.Errorf("query instruction: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Instruction{}, fmt.Errorf("query instruction: %w", err)
		}
		return Instruction{}, sql.ErrNoRows
	}
	return scanInstruction(rows)
}

// RunsByHash returns the IDs of runs whose program hash is hash, oldest
// first. Identical jobs built twice share a hash.
func (s *Store) RunsByHash(ctx context.Context, hash string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id FROM runs
		WHERE program_hash = ?
		ORDER BY seq ASC, run_id COLLATE BINARY ASC
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("query runs by hash: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs by hash: %w", err)
	}
	return ids, nil
}

func scanInstruction(rows *sql.Rows) (Instruction, error) {
	var (
		in         Instruction
		jointsJSON sql.NullString
		diagsJSON  string
	)
	if err := rows.Scan(&in.RunID, &in.Seq, &in.ID, &in.Motion, &in.Code, &in.ABB, &in.KUKA,
		&jointsJSON, &in.Reachable, &diagsJSON); err != nil {
		return Instruction{}, fmt.Errorf("scan instruction: %w", err)
	}

	var err error
	if jointsJSON.Valid {
		if in.Joints, err = unmarshalJoints(&jointsJSON.String); err != nil {
			return Instruction{}, err
		}
	}
	if in.Diagnostics, err = unmarshalStrings(diagsJSON); err != nil {
		return Instruction{}, err
	}
	return in, nil
}
