package markers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-counter/internal/models"
	"object-counter/internal/testutils"
)

func TestDistanceTransformExact(t *testing.T) {
	m := models.NewMask(5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			m.Set(x, y, true)
		}
	}

	d := DistanceTransform(m)
	assert.InDelta(t, 2.0, d.At(2, 2), 1e-9)
	assert.InDelta(t, 1.0, d.At(1, 1), 1e-9)
	assert.InDelta(t, 1.0, d.At(3, 2), 1e-9)
	assert.Zero(t, d.At(0, 0))
	assert.InDelta(t, 2.0, d.Max(), 1e-9)
}

func TestDistanceTransformDiagonal(t *testing.T) {
	m := models.NewMask(4, 4)
	for i := range m.Pix {
		m.Pix[i] = true
	}
	m.Set(0, 0, false)

	d := DistanceTransform(m)
	assert.InDelta(t, math.Sqrt(18), d.At(3, 3), 1e-9)
	assert.InDelta(t, 3.0, d.At(3, 0), 1e-9)
	assert.InDelta(t, math.Sqrt(5), d.At(1, 2), 1e-9)
}

func TestDistanceTransformWithoutBackground(t *testing.T) {
	m := models.NewMask(3, 3)
	for i := range m.Pix {
		m.Pix[i] = true
	}
	assert.Zero(t, DistanceTransform(m).Max())
	assert.Zero(t, DistanceTransform(models.NewMask(3, 3)).Max())
}

func TestLabelComponentsEightConnected(t *testing.T) {
	m := models.NewMask(6, 4)
	m.Set(0, 0, true)
	m.Set(1, 1, true) // diagonal neighbour of (0,0)
	m.Set(4, 0, true)
	m.Set(4, 3, true)
	m.Set(5, 3, true)

	labels, n := LabelComponents(m)
	require.Equal(t, 3, n)
	assert.Equal(t, int32(1), labels[0])
	assert.Equal(t, int32(1), labels[1*6+1])
	assert.Equal(t, int32(2), labels[4])
	assert.Equal(t, int32(3), labels[3*6+4])
	assert.Equal(t, int32(3), labels[3*6+5])
	assert.Equal(t, int32(0), labels[2*6+2])
}

func touchingPair() *models.Mask {
	// radius 20, centres 34 apart: the circles overlap by 30% of the radius
	return testutils.Mask(120, 80,
		testutils.Disc{X: 40, Y: 40, Radius: 20},
		testutils.Disc{X: 74, Y: 40, Radius: 20},
	)
}

func TestGenerateSplitsTouchingDiscs(t *testing.T) {
	mask := touchingPair()
	cfg := models.DefaultConfig()
	cfg.DistanceThreshold = 0.7

	got := NewGenerator(cfg).Generate(mask)
	require.Equal(t, 2, got.Seeds)

	m := got.Map
	assert.Equal(t, int32(2), m.At(40, 40))
	assert.Equal(t, int32(3), m.At(74, 40))
	assert.Equal(t, models.MarkerUnknown, m.At(57, 40), "the neck is undecided")
	assert.Equal(t, models.MarkerBackground, m.At(2, 2))
	assert.Equal(t, models.MarkerUnknown, m.At(40, 61), "the dilated rim is undecided")
	assert.Equal(t, models.MarkerBackground, m.At(40, 65))

	for i := range m.Pix {
		if got.Unknown.Pix[i] {
			assert.Equal(t, models.MarkerUnknown, m.Pix[i])
		}
		if got.SureForeground.Pix[i] {
			assert.GreaterOrEqual(t, m.Pix[i], models.MarkerFirstSeed)
		}
	}
}

func TestGenerateLowThresholdMergesCores(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.DistanceThreshold = 0.01

	got := NewGenerator(cfg).Generate(touchingPair())
	assert.Equal(t, 1, got.Seeds)
}

func TestGenerateEmptyMask(t *testing.T) {
	got := NewGenerator(models.DefaultConfig()).Generate(models.NewMask(10, 10))
	assert.Zero(t, got.Seeds)
	assert.Equal(t, 100, got.Map.CountValue(models.MarkerBackground))
}

func TestFromComponents(t *testing.T) {
	got := FromComponents(touchingPair())
	assert.Equal(t, 1, got.Seeds)
	assert.Equal(t, int32(2), got.Map.At(57, 40))
	assert.Zero(t, got.Map.CountValue(models.MarkerUnknown))
}
