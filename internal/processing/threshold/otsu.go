package threshold

import (
	"object-counter/internal/models"
	"object-counter/internal/processing/histogram"
)

// OtsuThreshold returns the level t that maximizes the between-class variance
// of {v <= t} and {v > t}. The first maximum wins. A histogram with a single
// occupied level returns 0.
func OtsuThreshold(hist [histogram.Bins]int) uint8 {
	total := histogram.Total(hist)
	if total == 0 {
		return 0
	}

	var totalSum float64
	for level, n := range hist {
		totalSum += float64(level * n)
	}

	var (
		best        uint8
		maxVariance float64
		w0          float64
		sum0        float64
	)

	for level := 0; level < histogram.Bins; level++ {
		w0 += float64(hist[level])
		if w0 == 0 {
			continue
		}

		w1 := float64(total) - w0
		if w1 == 0 {
			break
		}

		sum0 += float64(level * hist[level])
		variance := calculateBetweenClassVariance(w0, w1, sum0, totalSum-sum0)
		if variance > maxVariance {
			maxVariance = variance
			best = uint8(level)
		}
	}

	return best
}

func calculateBetweenClassVariance(w0, w1, sum0, sum1 float64) float64 {
	mean0 := sum0 / w0
	mean1 := sum1 / w1
	meanDiff := mean0 - mean1
	return w0 * w1 * meanDiff * meanDiff
}

// Binarizer splits an intensity grid into foreground and background with a
// global Otsu threshold.
type Binarizer struct {
	polarity models.Polarity
}

func NewBinarizer(polarity models.Polarity) *Binarizer {
	return &Binarizer{polarity: polarity}
}

// Binarize classifies a pixel as foreground when its intensity, mirrored for
// DarkOnLight, exceeds the Otsu threshold of the mirrored histogram. The
// returned threshold is expressed in that mirrored scale.
func (b *Binarizer) Binarize(grid *models.IntensityGrid) (*models.Mask, uint8) {
	invert := b.polarity == models.DarkOnLight
	t := OtsuThreshold(histogram.Intensity(grid, invert))

	mask := models.NewMask(grid.Width, grid.Height)
	for i, v := range grid.Pix {
		if invert {
			v = 255 - v
		}
		mask.Pix[i] = v > t
	}

	return mask, t
}
