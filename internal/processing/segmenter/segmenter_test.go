package segmenter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-counter/internal/debug"
	"object-counter/internal/models"
	"object-counter/internal/testutils"
)

func count(t *testing.T, cfg models.Config, grid *models.IntensityGrid, opts ...Option) *models.Result {
	t.Helper()
	s, err := New(cfg, opts...)
	require.NoError(t, err)

	result, err := s.Count(context.Background(), "synthetic.png", grid)
	require.NoError(t, err)
	return result
}

func TestCountAppliesMinArea(t *testing.T) {
	grid := testutils.Grid(200, 200, 30, 200,
		testutils.Disc{X: 50, Y: 50, Radius: 10},
		testutils.Disc{X: 150, Y: 150, Radius: 10},
	)

	cfg := models.DefaultConfig()
	result := count(t, cfg, grid)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 2, result.Seeds)
	for _, r := range result.Regions {
		assert.Greater(t, r.Area, 150.0)
		assert.Less(t, r.Area, 330.0)
	}

	cfg.MinArea = 1000
	result = count(t, cfg, grid)
	assert.Zero(t, result.Count)
	assert.Equal(t, 2, result.Rejected)
}

func TestCountSeparatedBlobs(t *testing.T) {
	var discs []testutils.Disc
	for i := 0; i < 5; i++ {
		discs = append(discs, testutils.Disc{X: 25 + i*40, Y: 50, Radius: 11})
	}
	grid := testutils.Grid(220, 100, 20, 180, discs...)

	result := count(t, models.DefaultConfig(), grid)
	assert.Equal(t, 5, result.Count)
	assert.Equal(t, 220, result.Width)
	assert.Equal(t, 100, result.Height)
}

func touchingPair() *models.IntensityGrid {
	return testutils.Grid(160, 120, 30, 200,
		testutils.Disc{X: 60, Y: 60, Radius: 20},
		testutils.Disc{X: 94, Y: 60, Radius: 20},
	)
}

func TestCountSplitsTouchingObjects(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.DistanceThreshold = 0.7

	result := count(t, cfg, touchingPair())
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Regions, 2)
	assert.Less(t, result.Regions[0].Bounds.Min.X, result.Regions[1].Bounds.Min.X)
}

func TestCountWithoutWatershedMergesTouchingObjects(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.DistanceThreshold = 0.7
	cfg.DisableWatershed = true

	result := count(t, cfg, touchingPair())
	assert.Equal(t, 1, result.Count)
}

func TestCountLowDistanceThresholdMergesSeeds(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.DistanceThreshold = 0.05

	result := count(t, cfg, touchingPair())
	assert.Equal(t, 1, result.Seeds)
	assert.Equal(t, 1, result.Count)
}

func TestCountDarkOnLight(t *testing.T) {
	grid := testutils.Grid(120, 60, 220, 40,
		testutils.Disc{X: 30, Y: 30, Radius: 12},
		testutils.Disc{X: 90, Y: 30, Radius: 12},
	)

	cfg := models.DefaultConfig()
	result := count(t, cfg, grid)
	assert.Equal(t, 1, result.Count, "light-on-dark sees the bright surround as one object")

	cfg.Polarity = models.DarkOnLight
	result = count(t, cfg, grid)
	assert.Equal(t, 2, result.Count)
	for _, r := range result.Regions {
		assert.InDelta(t, 40, r.MeanIntensity, 20)
	}
}

func TestCountUniformImageFindsNothing(t *testing.T) {
	for _, v := range []uint8{0, 128, 255} {
		grid := testutils.Grid(40, 30, v, v)
		result := count(t, models.DefaultConfig(), grid)
		assert.Zero(t, result.Count, "level %d", v)
	}
}

func TestCountReportsStages(t *testing.T) {
	grid := touchingPair()

	var rec debug.Recorder
	result := count(t, models.DefaultConfig(), grid, WithSink(&rec))
	assert.Equal(t, []string{StageBinarize, StageClean, StageMarkers, StageWatershed, StageCount}, rec.Stages("synthetic.png"))
	assert.Contains(t, result.StageTimes, StageWatershed)

	var disabled debug.Recorder
	cfg := models.DefaultConfig()
	cfg.DisableWatershed = true
	result = count(t, cfg, grid, WithSink(&disabled))
	assert.Equal(t, []string{StageBinarize, StageClean, StageComponents, StageCount}, disabled.Stages("synthetic.png"))
	assert.NotContains(t, result.StageTimes, StageWatershed)
}

func TestCountRejectsEmptyGrid(t *testing.T) {
	s, err := New(models.DefaultConfig())
	require.NoError(t, err)

	_, err = s.Count(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = s.Count(context.Background(), "x", models.NewIntensityGrid(0, 0))
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestCountHonoursCancellation(t *testing.T) {
	s, err := New(models.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Count(ctx, "x", touchingPair())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.DistanceThreshold = 1.5

	_, err := New(cfg)
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
}
