package markers

import (
	"object-counter/internal/models"
	"object-counter/internal/processing/filters"
)

// Markers is the seeded marker map plus the intermediate regions it was
// derived from.
type Markers struct {
	Map            *models.MarkerMap
	SureBackground *models.Mask
	SureForeground *models.Mask
	Unknown        *models.Mask
	Distance       *models.DistanceField
	// Seeds is the number of foreground seed components (labels 2..Seeds+1).
	Seeds int
}

// Generator derives watershed seeds from a cleaned binary mask.
type Generator struct {
	// DistanceThreshold is the fraction of the peak distance a pixel must
	// exceed to be a confident object core.
	DistanceThreshold   float64
	KernelSize          int
	BackgroundDilations int
}

func NewGenerator(cfg models.Config) *Generator {
	return &Generator{
		DistanceThreshold:   cfg.DistanceThreshold,
		KernelSize:          cfg.KernelSize,
		BackgroundDilations: cfg.BackgroundDilations,
	}
}

// Generate partitions mask into sure background, sure foreground and the
// unknown band between them, and labels the sure-foreground cores.
//
// Marker values: 0 unknown, 1 background, 2.. one per core.
func (g *Generator) Generate(mask *models.Mask) *Markers {
	sureBg := filters.DilateN(mask, g.KernelSize, g.BackgroundDilations)
	dist := DistanceTransform(mask)

	cutoff := g.DistanceThreshold * dist.Max()
	sureFg := models.NewMask(mask.Width, mask.Height)
	for i, d := range dist.Pix {
		sureFg.Pix[i] = d > cutoff
	}

	unknown := models.NewMask(mask.Width, mask.Height)
	for i := range unknown.Pix {
		unknown.Pix[i] = sureBg.Pix[i] && !sureFg.Pix[i]
	}

	labels, n := LabelComponents(sureFg)
	markerMap := models.NewMarkerMap(mask.Width, mask.Height)
	for i, l := range labels {
		if unknown.Pix[i] {
			markerMap.Pix[i] = models.MarkerUnknown
			continue
		}
		markerMap.Pix[i] = l + models.MarkerBackground
	}

	return &Markers{
		Map:            markerMap,
		SureBackground: sureBg,
		SureForeground: sureFg,
		Unknown:        unknown,
		Distance:       dist,
		Seeds:          n,
	}
}

// FromComponents labels the mask's connected components directly, with no
// unknown band. The result needs no flooding; it is what counting would see
// without watershed segmentation.
func FromComponents(mask *models.Mask) *Markers {
	labels, n := LabelComponents(mask)
	markerMap := models.NewMarkerMap(mask.Width, mask.Height)
	for i, l := range labels {
		markerMap.Pix[i] = l + models.MarkerBackground
	}

	return &Markers{
		Map:            markerMap,
		SureBackground: mask.Clone(),
		SureForeground: mask.Clone(),
		Unknown:        models.NewMask(mask.Width, mask.Height),
		Seeds:          n,
	}
}
