package store

import (
	"context"
	"errors"
	"testing"
)

func TestVerifyRun_Intact(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	if _, err := s.WriteRun(ctx, createTestProgram(t, "run-1")); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	check, err := s.VerifyRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("VerifyRun() failed: %v", err)
	}
	if !check.OK() {
		t.Errorf("VerifyRun() = %+v, want OK", check)
	}
}

func TestVerifyRun_DetectsEdits(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	if _, err := s.WriteRun(ctx, createTestProgram(t, "run-1")); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	_, err := s.db.Exec(`UPDATE instructions SET code = 'MoveL tampered;' WHERE run_id = 'run-1' AND seq = 2`)
	if err != nil {
		t.Fatalf("update instruction: %v", err)
	}
	_, err = s.db.Exec(`UPDATE runs SET source = source || '! edited' WHERE run_id = 'run-1'`)
	if err != nil {
		t.Fatalf("update source: %v", err)
	}

	check, err := s.VerifyRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("VerifyRun() failed: %v", err)
	}
	if check.OK() {
		t.Fatal("VerifyRun() = OK after edits")
	}
	if check.Hash == check.Recomputed {
		t.Error("edited source not detected")
	}
	if len(check.Mismatched) != 1 || check.Mismatched[0] != 2 {
		t.Errorf("mismatched = %v, want [2]", check.Mismatched)
	}
}

func TestVerifyRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.VerifyRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("VerifyRun() error = %v, want ErrRunNotFound", err)
	}
}
