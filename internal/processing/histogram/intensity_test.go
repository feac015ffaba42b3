package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"object-counter/internal/models"
)

func TestIntensityCountsAndInverts(t *testing.T) {
	grid := models.NewIntensityGrid(2, 2)
	grid.Pix = []uint8{0, 0, 10, 255}

	hist := Intensity(grid, false)
	assert.Equal(t, 2, hist[0])
	assert.Equal(t, 1, hist[10])
	assert.Equal(t, 1, hist[255])
	assert.Equal(t, 4, Total(hist))

	inv := Intensity(grid, true)
	assert.Equal(t, 2, inv[255])
	assert.Equal(t, 1, inv[245])
	assert.Equal(t, 1, inv[0])
}
