package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJobs = `
output_dir: out
defaults:
  min_area: 150
jobs:
  - input: images/seeds.png
    distance_threshold: 0.45
  - input: images/chocolates.jpg
    output: results/choc.png
    preset: chocolates
  - input: /abs/plain.png
    polarity: dark-on-light
    min_circularity: 0.3
`

func TestParseJobFileResolvesOverrides(t *testing.T) {
	jobs, err := ParseJobFile([]byte(sampleJobs), DefaultConfig(), "/data")
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, "/data/images/seeds.png", jobs[0].Input)
	assert.Equal(t, "/data/out/seeds_result.png", jobs[0].Output)
	assert.Equal(t, 150, jobs[0].Config.MinArea)
	assert.InDelta(t, 0.45, jobs[0].Config.DistanceThreshold, 1e-9)
	assert.Equal(t, LightOnDark, jobs[0].Config.Polarity)

	// the preset replaces the defaults wholesale
	assert.Equal(t, "/data/results/choc.png", jobs[1].Output)
	assert.Equal(t, 500, jobs[1].Config.MinArea)
	assert.Equal(t, DarkOnLight, jobs[1].Config.Polarity)

	assert.Equal(t, "/abs/plain.png", jobs[2].Input)
	assert.Equal(t, DarkOnLight, jobs[2].Config.Polarity)
	assert.InDelta(t, 0.3, jobs[2].Config.MinCircularity, 1e-9)
	assert.Equal(t, 150, jobs[2].Config.MinArea)
}

func TestParseJobFileRejectsBadEntries(t *testing.T) {
	_, err := ParseJobFile([]byte("jobs:\n  - output: x.png\n"), DefaultConfig(), "")
	assert.ErrorContains(t, err, "missing input")

	_, err = ParseJobFile([]byte("jobs:\n  - input: a.png\n    distance_threshold: 2\n"), DefaultConfig(), "")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseJobFile([]byte("jobs:\n  - input: a.png\n    polarity: sideways\n"), DefaultConfig(), "")
	assert.Error(t, err)

	_, err = ParseJobFile([]byte("jobs: [\n"), DefaultConfig(), "")
	assert.Error(t, err)
}

func TestLoadJobFileUsesFileDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - input: a.png\n"), 0o644))

	jobs, err := LoadJobFile(path, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, filepath.Join(dir, "a.png"), jobs[0].Input)
	assert.Equal(t, filepath.Join(dir, "a_result.png"), jobs[0].Output)

	_, err = LoadJobFile(filepath.Join(dir, "missing.yaml"), DefaultConfig())
	assert.Error(t, err)
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("images", "seeds_result.png"), DefaultOutputPath(filepath.Join("images", "seeds.png"), ""))
	assert.Equal(t, filepath.Join("out", "choc_result.png"), DefaultOutputPath("choc.jpg", "out"))
}
