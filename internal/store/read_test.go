package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestReadRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ReadRuns(context.Background())
	if err != nil {
		t.Fatalf("ReadRuns() failed: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Errorf("ReadRuns() = %v, want empty non-nil slice", runs)
	}
}

func TestReadRuns_WriteOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Written out of lexical order; listing follows write order.
	for _, id := range []string{"run-b", "run-a", "run-c"} {
		if _, err := s.WriteRun(ctx, createTestProgram(t, id)); err != nil {
			t.Fatalf("WriteRun(%s) failed: %v", id, err)
		}
	}

	runs, err := s.ReadRuns(ctx)
	if err != nil {
		t.Fatalf("ReadRuns() failed: %v", err)
	}
	want := []string{"run-b", "run-a", "run-c"}
	if len(runs) != len(want) {
		t.Fatalf("ReadRuns() returned %d runs, want %d", len(runs), len(want))
	}
	for i, r := range runs {
		if r.RunID != want[i] {
			t.Errorf("runs[%d] = %s, want %s", i, r.RunID, want[i])
		}
		if r.Seq != int64(i+1) {
			t.Errorf("runs[%d].Seq = %d, want %d", i, r.Seq, i+1)
		}
		if r.Instructions != 3 || r.Unreachable != 1 {
			t.Errorf("runs[%d] counts = %d/%d, want 3/1", i, r.Instructions, r.Unreachable)
		}
	}

	last, err := s.GetLastSeq(ctx)
	if err != nil {
		t.Fatalf("GetLastSeq() failed: %v", err)
	}
	if last != 3 {
		t.Errorf("GetLastSeq() = %d, want 3", last)
	}
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("ReadRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestReadInstruction_ByID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	p := createTestProgram(t, "run-1")
	if _, err := s.WriteRun(ctx, p); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	want := p.Instructions[1]
	got, err := s.ReadInstruction(ctx, want.ID)
	if err != nil {
		t.Fatalf("ReadInstruction() failed: %v", err)
	}
	if got.Seq != want.Seq || got.Code != want.Code || got.RunID != "run-1" {
		t.Errorf("ReadInstruction() = %+v, want seq %d code %q", got, want.Seq, want.Code)
	}

	if _, err := s.ReadInstruction(ctx, "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ReadInstruction(missing) error = %v, want sql.ErrNoRows", err)
	}
}

func TestRunsByHash(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a := createTestProgram(t, "run-1")
	b := createTestProgram(t, "run-2")
	if _, err := s.WriteRun(ctx, a); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	if _, err := s.WriteRun(ctx, b); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	ids, err := s.RunsByHash(ctx, a.Hash)
	if err != nil {
		t.Fatalf("RunsByHash() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "run-1" || ids[1] != "run-2" {
		t.Errorf("RunsByHash() = %v, want [run-1 run-2]", ids)
	}

	ids, err = s.RunsByHash(ctx, "unknown")
	if err != nil {
		t.Fatalf("RunsByHash() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("RunsByHash(unknown) = %v, want empty", ids)
	}
}
