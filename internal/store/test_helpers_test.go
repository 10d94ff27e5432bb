package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/axis/internal/ir"
	"github.com/roach88/axis/internal/program"
	"github.com/roach88/axis/internal/testutil"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestProgram builds a three-move ABB program whose last target is
// out of reach.
func createTestProgram(t *testing.T, runID string) *program.Program {
	t.Helper()
	down := ir.PlaneSpec{XAxis: [3]float64{1, 0, 0}, YAxis: [3]float64{0, -1, 0}}
	near, far := down, down
	near.Origin = [3]float64{500, 0, 300}
	far.Origin = [3]float64{5000, 0, 0}

	job := &ir.Job{
		Name:         "pick",
		Robot:        "ur10",
		Manufacturer: "ABB",
		Speeds:       []ir.SpeedSpec{{Name: "Fast", Translation: 250, Rotation: 30, Declare: true}},
		Moves: []ir.Move{
			{Type: "Absolute Joint", Joints: []float64{0, -90, 90, 0, 90, 0}},
			{Type: "Linear", Target: &near, Speed: "Fast"},
			{Type: "Linear", Target: &far},
		},
	}

	p, err := program.Build(context.Background(), job,
		program.WithRunIDGenerator(testutil.NewFixedRunIDGenerator(runID)),
		program.WithLogger(testutil.DiscardLogger()),
	)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return p
}
