// Package watershed floods the undecided pixels of a marker map outward from
// its seeds across the intensity landscape.
package watershed

import (
	"object-counter/internal/models"
)

// neighbors4 in the order left, right, up, down.
var neighbors4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Segmenter runs a marker-controlled priority-flood watershed.
type Segmenter struct{}

func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Stats describes one flood.
type Stats struct {
	Flooded     int
	Ridges      int
	Unreached   int
	MaxPriority uint8
}

// Segment resolves every MarkerUnknown cell of markers in place and returns
// the same map. Cells are processed in increasing order of the intensity step
// through which the flood reached them. A cell whose labelled 4-neighbours
// carry more than one label becomes MarkerRidge; otherwise it adopts the
// single label and passes the flood on. Cells the flood never reaches are
// resolved to background.
func (s *Segmenter) Segment(grid *models.IntensityGrid, markers *models.MarkerMap) (*models.MarkerMap, Stats) {
	w, h := markers.Width, markers.Height
	pix := markers.Pix
	queued := make([]bool, w*h)
	var q bucketQueue
	var stats Stats

	// Initial front: unknown cells touching a label, in raster order.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if pix[i] != models.MarkerUnknown {
				continue
			}

			best, found := uint8(255), false
			for _, d := range neighbors4 {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if pix[ni] > models.MarkerUnknown {
					if step := absDiff(grid.Pix[i], grid.Pix[ni]); !found || step < best {
						best = step
					}
					found = true
				}
			}

			if found {
				q.push(best, i)
				queued[i] = true
			}
		}
	}

	for q.len() > 0 {
		i, _ := q.pop()
		x, y := i%w, i/w

		label := models.MarkerUnknown
		for _, d := range neighbors4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			l := pix[ny*w+nx]
			if l <= models.MarkerUnknown {
				continue
			}
			if label == models.MarkerUnknown {
				label = l
			} else if l != label {
				label = models.MarkerRidge
				break
			}
		}

		pix[i] = label
		if label == models.MarkerRidge {
			stats.Ridges++
			continue
		}
		stats.Flooded++

		for _, d := range neighbors4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if pix[ni] != models.MarkerUnknown || queued[ni] {
				continue
			}
			step := absDiff(grid.Pix[i], grid.Pix[ni])
			if step > stats.MaxPriority {
				stats.MaxPriority = step
			}
			q.push(step, ni)
			queued[ni] = true
		}
	}

	for i, l := range pix {
		if l == models.MarkerUnknown {
			pix[i] = models.MarkerBackground
			stats.Unreached++
		}
	}

	return markers, stats
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
