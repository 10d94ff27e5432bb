package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ResolvesJobRelativeToFile(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/pick_abb.yaml")
	require.NoError(t, err)

	assert.Equal(t, "pick_abb", s.Name)
	assert.Equal(t, "test-run-pick-abb", s.RunID)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "../../../../testdata/jobs/pick"), s.Job)
	assert.Len(t, s.Expect.Instructions, 3)
	assert.Len(t, s.Assertions, 5)
	assert.Equal(t, AssertCodeContains, s.Assertions[0].Type)
	assert.Equal(t, int64(3), s.Assertions[0].Seq)
	assert.Equal(t, `\Wobj:=Table`, s.Assertions[0].Text)
}

func TestLoadScenario_ExpectErrors(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/invalid.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"E102", "E104", "E105"}, s.Expect.Errors)
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	_, err := LoadScenario("testdata/bad/typo.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertion")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Invalid(t *testing.T) {
	jobDir, err := filepath.Abs("../../testdata/jobs/pick")
	require.NoError(t, err)

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no name", "description: d\njob: " + jobDir, "name is required"},
		{"no description", "name: n\njob: " + jobDir, "description is required"},
		{"no job", "name: n\ndescription: d", "job is required"},
		{"missing job", "name: n\ndescription: d\njob: /does/not/exist", "job directory not found"},
		{"errors with instructions", "name: n\ndescription: d\njob: " + jobDir + "\nexpect:\n  errors: [E101]\n  instructions: [x]", "cannot be combined"},
		{"bad unreachable", "name: n\ndescription: d\njob: " + jobDir + "\nexpect:\n  unreachable: [0]", "seq must be positive"},
		{"untyped assertion", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - count: 1", "type is required"},
		{"unknown assertion", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: trace_order", `unknown assertion type "trace_order"`},
		{"code_contains without seq", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: code_contains\n    text: x", "seq is required"},
		{"code_contains without text", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: code_contains\n    seq: 1", "text is required"},
		{"motion_order without motions", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: motion_order", "motions list is required"},
		{"motion_order bad motion", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: motion_order\n    motions: [Circular]", "unknown motion type"},
		{"negative count", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: instruction_count\n    count: -1", "count must be non-negative"},
		{"final_state without table", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: final_state\n    expect: {a: 1}", "table is required"},
		{"final_state without expect", "name: n\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: final_state\n    table: runs", "expect is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenarioWithBasePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	yaml := "name: n\ndescription: d\njob: jobs/pick\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	s, err := LoadScenarioWithBasePath(path, "../../testdata")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("../../testdata", "jobs/pick"), s.Job)
}
