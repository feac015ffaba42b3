package histogram

import "object-counter/internal/models"

// Bins is the number of levels in an 8-bit intensity histogram.
const Bins = 256

// Intensity counts how many pixels hold each 8-bit level. When invert is set
// every level v is counted as 255-v.
func Intensity(grid *models.IntensityGrid, invert bool) [Bins]int {
	var hist [Bins]int
	for _, v := range grid.Pix {
		if invert {
			v = 255 - v
		}
		hist[v]++
	}
	return hist
}

// Total returns the number of samples in hist.
func Total(hist [Bins]int) int {
	total := 0
	for _, n := range hist {
		total += n
	}
	return total
}
