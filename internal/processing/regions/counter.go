package regions

import (
	"image"
	"slices"

	"gonum.org/v1/gonum/stat"

	"object-counter/internal/models"
)

// Policy decides which traced pieces count as objects.
type Policy struct {
	// MinArea is the smallest accepted contour area in pixels. Inclusive.
	MinArea float64
	// MinCircularity rejects pieces whose 4πA/P² falls below it. Zero disables
	// the check.
	MinCircularity float64
}

func PolicyFromConfig(cfg models.Config) Policy {
	return Policy{MinArea: float64(cfg.MinArea), MinCircularity: cfg.MinCircularity}
}

func (p Policy) accepts(area, circularity float64) bool {
	if area < p.MinArea {
		return false
	}
	return p.MinCircularity <= 0 || circularity >= p.MinCircularity
}

// Summary is the outcome of counting one marker map.
type Summary struct {
	Count    int
	Regions  []models.Region
	Rejected int
}

// Labels returns the distinct object labels (> 1) of m in ascending order.
func Labels(m *models.MarkerMap) []int32 {
	labels, _ := indexLabels(m)
	return labels
}

// indexLabels groups pixel indices by object label in one pass.
func indexLabels(m *models.MarkerMap) ([]int32, map[int32][]int) {
	index := make(map[int32][]int)
	for i, l := range m.Pix {
		if l > models.MarkerBackground {
			index[l] = append(index[l], i)
		}
	}

	labels := make([]int32, 0, len(index))
	for l := range index {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels, index
}

// Count traces every 8-connected piece of every object label and accepts the
// pieces the policy admits. Each piece counts on its own, so a label split in
// two contributes two objects. grid is optional; without it intensity
// statistics stay zero.
func Count(m *models.MarkerMap, grid *models.IntensityGrid, policy Policy) Summary {
	labels, index := indexLabels(m)

	var summary Summary
	for _, label := range labels {
		for _, region := range labelRegions(m.Width, label, index[label], grid) {
			if !policy.accepts(region.Area, region.Circularity) {
				summary.Rejected++
				continue
			}
			summary.Regions = append(summary.Regions, region)
		}
	}
	summary.Count = len(summary.Regions)
	return summary
}

// labelRegions traces the pieces of one label inside its bounding box.
func labelRegions(width int, label int32, pixels []int, grid *models.IntensityGrid) []models.Region {
	box := image.Rectangle{
		Min: image.Pt(pixels[0]%width, pixels[0]/width),
		Max: image.Pt(pixels[0]%width, pixels[0]/width),
	}
	for _, i := range pixels[1:] {
		x, y := i%width, i/width
		box.Min.X = min(box.Min.X, x)
		box.Min.Y = min(box.Min.Y, y)
		box.Max.X = max(box.Max.X, x)
		box.Max.Y = max(box.Max.Y, y)
	}

	sub := models.NewMask(box.Dx()+1, box.Dy()+1)
	for _, i := range pixels {
		sub.Set(i%width-box.Min.X, i/width-box.Min.Y, true)
	}

	subLabels, pieces := splitPieces(sub)
	regions := make([]models.Region, 0, len(pieces))
	for _, p := range pieces {
		contour := traceBorder(sub.Width, sub.Height, subLabels, p)
		for i := range contour {
			contour[i] = contour[i].Add(box.Min)
		}

		area := PolygonArea(contour)
		perimeter := Perimeter(contour)
		region := models.Region{
			Label:       label,
			Contour:     contour,
			Area:        area,
			Perimeter:   perimeter,
			Circularity: Circularity(area, perimeter),
			PixelCount:  len(p.pixels),
			Bounds:      bounds(contour),
		}

		if grid != nil {
			values := make([]float64, len(p.pixels))
			for k, si := range p.pixels {
				x := si%sub.Width + box.Min.X
				y := si/sub.Width + box.Min.Y
				values[k] = float64(grid.At(x, y))
			}
			region.MeanIntensity, region.StdIntensity = stat.MeanStdDev(values, nil)
			if len(values) < 2 {
				region.StdIntensity = 0
			}
		}

		regions = append(regions, region)
	}
	return regions
}
