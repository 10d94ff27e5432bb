package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/axis/internal/ir"
)

// RunCheck is the outcome of re-deriving a stored run's content hashes.
type RunCheck struct {
	RunID      string  `json:"run_id"`
	Hash       string  `json:"program_hash"`
	Recomputed string  `json:"recomputed_hash"`
	Mismatched []int64 `json:"mismatched,omitempty"` // instruction seqs whose id does not match
}

// OK reports whether every stored hash matched.
func (c RunCheck) OK() bool {
	return c.Hash == c.Recomputed && len(c.Mismatched) == 0
}

// VerifyRun recomputes a run's program hash from its stored source and each
// instruction ID from the stored program hash, seq and code. Instruction IDs
// are checked against the stored hash so that an edited instruction is
// pinpointed even when the source was edited too.
//
// Returns ErrRunNotFound if no run has the ID.
func (s *Store) VerifyRun(ctx context.Context, runID string) (RunCheck, error) {
	run, err := s.ReadRun(ctx, runID)
	if err != nil {
		return RunCheck{}, err
	}

	lines := strings.Split(strings.TrimSuffix(run.Source, "\n"), "\n")
	recomputed, err := ir.ProgramHash(run.Name, run.Manufacturer, lines)
	if err != nil {
		return RunCheck{}, fmt.Errorf("verify run: %w", err)
	}

	check := RunCheck{RunID: run.RunID, Hash: run.Hash, Recomputed: recomputed}
	for _, in := range run.Instructions {
		id, err := ir.TargetID(run.Hash, in.Seq, in.Code)
		if err != nil {
			return RunCheck{}, fmt.Errorf("verify run: %w", err)
		}
		if id != in.ID {
			check.Mismatched = append(check.Mismatched, in.Seq)
		}
	}
	return check, nil
}

// GetLastSeq returns the seq of the most recent run, or 0 for an empty store.
func (s *Store) GetLastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM runs`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq, nil
}
