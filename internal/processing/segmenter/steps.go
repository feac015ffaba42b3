package segmenter

import (
	"context"
	"image"
	"image/color"

	"object-counter/internal/debug"
	"object-counter/internal/logger"
	"object-counter/internal/models"
	"object-counter/internal/processing/chain"
	"object-counter/internal/processing/filters"
	"object-counter/internal/processing/markers"
	"object-counter/internal/processing/regions"
	"object-counter/internal/processing/threshold"
	"object-counter/internal/processing/watershed"
)

// Stage names, also used for timing keys and debug captures.
const (
	StageBinarize   = "binarize"
	StageClean      = "clean"
	StageMarkers    = "markers"
	StageWatershed  = "watershed"
	StageComponents = "components"
	StageCount      = "count"
)

type binarizeStep struct {
	logger logger.Logger
}

func (s binarizeStep) Name() string                     { return StageBinarize }
func (s binarizeStep) ShouldExecute(models.Config) bool { return true }

func (s binarizeStep) Apply(_ context.Context, frame *chain.Frame, cfg models.Config) (debug.Imager, error) {
	frame.Mask, frame.Threshold = threshold.NewBinarizer(cfg.Polarity).Binarize(frame.Grid)

	s.logger.Debug("Binarizer", "otsu threshold selected", map[string]interface{}{
		"source":     frame.Source,
		"threshold":  frame.Threshold,
		"polarity":   cfg.Polarity.String(),
		"foreground": frame.Mask.Count(),
	})
	return frame.Mask, nil
}

type cleanStep struct{}

func (cleanStep) Name() string                     { return StageClean }
func (cleanStep) ShouldExecute(models.Config) bool { return true }

func (cleanStep) Apply(_ context.Context, frame *chain.Frame, cfg models.Config) (debug.Imager, error) {
	frame.Cleaned = filters.NewMorphologyFilter(cfg.KernelSize, cfg.CleanIterations).Clean(frame.Mask)
	return frame.Cleaned, nil
}

type markersStep struct {
	logger logger.Logger
}

func (s markersStep) Name() string                         { return StageMarkers }
func (s markersStep) ShouldExecute(cfg models.Config) bool { return !cfg.DisableWatershed }

func (s markersStep) Apply(_ context.Context, frame *chain.Frame, cfg models.Config) (debug.Imager, error) {
	frame.Markers = markers.NewGenerator(cfg).Generate(frame.Cleaned)

	s.logger.Debug("MarkerGenerator", "seeds labelled", map[string]interface{}{
		"source":       frame.Source,
		"seeds":        frame.Markers.Seeds,
		"max_distance": frame.Markers.Distance.Max(),
		"unknown":      frame.Markers.Unknown.Count(),
	})
	return frame.Markers.Map, nil
}

type watershedStep struct {
	logger logger.Logger
}

func (s watershedStep) Name() string                         { return StageWatershed }
func (s watershedStep) ShouldExecute(cfg models.Config) bool { return !cfg.DisableWatershed }

func (s watershedStep) Apply(_ context.Context, frame *chain.Frame, _ models.Config) (debug.Imager, error) {
	frame.Labels, frame.Flood = watershed.NewSegmenter().Segment(frame.Grid, frame.Markers.Map)

	s.logger.Debug("Watershed", "flood complete", map[string]interface{}{
		"source":       frame.Source,
		"flooded":      frame.Flood.Flooded,
		"ridges":       frame.Flood.Ridges,
		"unreached":    frame.Flood.Unreached,
		"max_priority": frame.Flood.MaxPriority,
	})
	return frame.Labels, nil
}

// componentsStep stands in for markers and watershed when segmentation is
// disabled: every connected blob of the cleaned mask becomes one label.
type componentsStep struct{}

func (componentsStep) Name() string                         { return StageComponents }
func (componentsStep) ShouldExecute(cfg models.Config) bool { return cfg.DisableWatershed }

func (componentsStep) Apply(_ context.Context, frame *chain.Frame, _ models.Config) (debug.Imager, error) {
	frame.Markers = markers.FromComponents(frame.Cleaned)
	frame.Labels = frame.Markers.Map
	return frame.Labels, nil
}

type countStep struct{}

func (countStep) Name() string                     { return StageCount }
func (countStep) ShouldExecute(models.Config) bool { return true }

func (countStep) Apply(_ context.Context, frame *chain.Frame, cfg models.Config) (debug.Imager, error) {
	frame.Summary = regions.Count(frame.Labels, frame.Grid, regions.PolicyFromConfig(cfg))
	return regionOverlay{grid: frame.Grid, regions: frame.Summary.Regions}, nil
}

// regionOverlay paints accepted contours over the grayscale input.
type regionOverlay struct {
	grid    *models.IntensityGrid
	regions []models.Region
}

var overlayColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}

func (o regionOverlay) ToImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, o.grid.Width, o.grid.Height))
	for i, v := range o.grid.Pix {
		img.Pix[i*4+0] = v
		img.Pix[i*4+1] = v
		img.Pix[i*4+2] = v
		img.Pix[i*4+3] = 255
	}
	for _, r := range o.regions {
		for _, p := range r.Contour {
			img.SetRGBA(p.X, p.Y, overlayColor)
		}
	}
	return img
}
