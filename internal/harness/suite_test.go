package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverScenarios(t *testing.T) {
	paths, err := DiscoverScenarios("testdata/scenarios")
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"invalid.yaml", "pick_abb.yaml", "pick_kuka.yaml", "reach.yaml"}, names)

	paths, err = DiscoverScenarios("testdata/scenarios/reach.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/scenarios/reach.yaml"}, paths)

	_, err = DiscoverScenarios("testdata/none")
	assert.Error(t, err)
}

func TestRunSuite_AllPass(t *testing.T) {
	result, err := RunSuite(context.Background(), "testdata/scenarios")
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalScenarios)
	assert.Equal(t, 4, result.Passed)
	assert.True(t, result.OK(), "%+v", result.Failures)
}

func TestRunSuite_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	jobDir, err := filepath.Abs("../../testdata/jobs/reach")
	require.NoError(t, err)

	failing := "name: wrong\ndescription: d\njob: " + jobDir + "\nassertions:\n  - type: instruction_count\n    count: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(failing), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("name: broken\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	result, err := RunSuite(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalScenarios)
	assert.Equal(t, 2, result.Failed)
	assert.False(t, result.OK())
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "wrong", result.Failures[0].Scenario)
	assert.Contains(t, result.Failures[0].Error, "scenario assertions failed")
	assert.Contains(t, result.Failures[1].Error, "failed to load scenario")
}
