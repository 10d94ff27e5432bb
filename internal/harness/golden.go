package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/axis/internal/program"
)

// Snapshot renders a program for golden comparison: the controller source
// followed by a diagnostics section when the program has any.
func Snapshot(prog *program.Program) []byte {
	var buf strings.Builder
	buf.WriteString(prog.Render())

	if diags := prog.AllDiagnostics(); len(diags) > 0 {
		buf.WriteString("-- diagnostics --\n")
		for _, d := range diags {
			buf.WriteString(d + "\n")
		}
	}
	return []byte(buf.String())
}

// RunWithGolden executes a scenario and compares the program against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the program doesn't match the golden file
// or if the scenario's own expectations fail.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}
	if result.Program == nil {
		return nil
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares the given result's program against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	if result.Program == nil {
		t.Fatalf("scenario %s built no program", scenarioName)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Snapshot(result.Program))
}
