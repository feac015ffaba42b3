// Package testutils builds synthetic grids for the segmentation tests.
package testutils

import "object-counter/internal/models"

// Disc describes a filled circle.
type Disc struct {
	X, Y   int
	Radius float64
}

// Grid returns a width×height grid filled with background and every disc
// painted with foreground.
func Grid(width, height int, background, foreground uint8, discs ...Disc) *models.IntensityGrid {
	grid := models.NewIntensityGrid(width, height)
	for i := range grid.Pix {
		grid.Pix[i] = background
	}
	for _, d := range discs {
		paint(width, height, d, func(i int) { grid.Pix[i] = foreground })
	}
	return grid
}

// Mask returns a width×height mask with every disc set.
func Mask(width, height int, discs ...Disc) *models.Mask {
	mask := models.NewMask(width, height)
	for _, d := range discs {
		paint(width, height, d, func(i int) { mask.Pix[i] = true })
	}
	return mask
}

func paint(width, height int, d Disc, set func(i int)) {
	r2 := d.Radius * d.Radius
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x-d.X), float64(y-d.Y)
			if dx*dx+dy*dy <= r2 {
				set(y*width + x)
			}
		}
	}
}
