package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsDir = "../../testdata/jobs"

func writeCUE(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "job.cue"), []byte(src), 0o644))
	return dir
}

func TestLoadJobFromDirectory(t *testing.T) {
	job, err := LoadJob(filepath.Join(jobsDir, "pick"))
	require.NoError(t, err)

	assert.Equal(t, "pick", job.Name)
	assert.Equal(t, "ur10", job.Robot)
	assert.Equal(t, "ABB", job.Manufacturer)
	require.Len(t, job.Moves, 3)
	assert.Equal(t, "Absolute Joint", job.Moves[0].Type)
	assert.Equal(t, "Linear", job.Moves[1].Type)
	assert.Equal(t, "Joint", job.Moves[2].Type)

	// Hidden fields unify into the targets.
	require.NotNil(t, job.Moves[1].Target)
	assert.Equal(t, [3]float64{0, -1, 0}, job.Moves[1].Target.YAxis)
}

func TestLoadJobCompilesInvalidJob(t *testing.T) {
	// Schema-valid jobs load; semantic problems are left to Validate.
	job, err := LoadJob(filepath.Join(jobsDir, "invalid"))
	require.NoError(t, err)
	assert.Equal(t, "ur99", job.Robot)

	errs := Validate(job)
	assert.NotEmpty(t, errs)
}

func TestLoadJobMissingField(t *testing.T) {
	dir := writeCUE(t, "package job\n\nother: 1\n")

	_, err := LoadJob(dir)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "job", ce.Field)
}

func TestLoadDirErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "job directory")
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := writeCUE(t, "package job\n")
		_, err := LoadDir(filepath.Join(dir, "job.cue"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("syntax error", func(t *testing.T) {
		dir := writeCUE(t, "package job\n\njob: {\n")
		_, err := LoadDir(dir)
		require.Error(t, err)
	})
}

func TestFindCUEFiles(t *testing.T) {
	files, err := FindCUEFiles(jobsDir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		rel, err := filepath.Rel(jobsDir, f)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{
		"invalid/invalid.cue",
		"pick/pick.cue",
		"pick_kuka/pick.cue",
		"reach/reach.cue",
	}, names)

	files, err = FindCUEFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
