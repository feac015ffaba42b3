// Package segmenter assembles the counting pipeline: binarize, clean, seed,
// flood and count.
package segmenter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"object-counter/internal/debug"
	"object-counter/internal/debug/timing"
	"object-counter/internal/logger"
	"object-counter/internal/models"
	"object-counter/internal/processing/chain"
)

// ErrEmptyGrid is returned for a nil or zero-sized input.
var ErrEmptyGrid = errors.New("empty intensity grid")

// Segmenter counts objects in intensity grids with a fixed configuration. It
// holds no per-image state and may be shared between goroutines.
type Segmenter struct {
	cfg    models.Config
	chain  *chain.ProcessingChain
	logger logger.Logger
}

type options struct {
	sink   debug.Sink
	logger logger.Logger
}

type Option func(*options)

// WithSink sends every intermediate stage to sink.
func WithSink(sink debug.Sink) Option {
	return func(o *options) { o.sink = sink }
}

func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.logger = log }
}

// New validates cfg and builds the step chain.
func New(cfg models.Config, opts ...Option) (*Segmenter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{sink: debug.Nop, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	steps := []chain.ProcessingStep{
		binarizeStep{logger: o.logger},
		cleanStep{},
		markersStep{logger: o.logger},
		watershedStep{logger: o.logger},
		componentsStep{},
		countStep{},
	}

	return &Segmenter{
		cfg:    cfg,
		chain:  chain.NewProcessingChain(steps, o.sink, o.logger),
		logger: o.logger,
	}, nil
}

func (s *Segmenter) Config() models.Config {
	return s.cfg
}

// Count runs the pipeline over grid. source only labels logs and debug
// captures. The context is consulted between stages.
func (s *Segmenter) Count(ctx context.Context, source string, grid *models.IntensityGrid) (*models.Result, error) {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return nil, ErrEmptyGrid
	}

	start := time.Now()
	tracker := timing.NewTracker()
	frame := &chain.Frame{Source: source, Grid: grid}

	if err := s.chain.Execute(ctx, frame, s.cfg, tracker); err != nil {
		return nil, fmt.Errorf("segmentation of %s failed: %w", source, err)
	}

	seeds := 0
	if frame.Markers != nil {
		seeds = frame.Markers.Seeds
	}

	result := &models.Result{
		Path:        source,
		Width:       grid.Width,
		Height:      grid.Height,
		Count:       frame.Summary.Count,
		Seeds:       seeds,
		Regions:     frame.Summary.Regions,
		Rejected:    frame.Summary.Rejected,
		Threshold:   frame.Threshold,
		ProcessTime: time.Since(start),
		StageTimes:  tracker.Totals(),
	}

	s.logger.Debug("Segmenter", "image counted", map[string]interface{}{
		"source":   source,
		"count":    result.Count,
		"seeds":    result.Seeds,
		"rejected": result.Rejected,
		"duration": result.ProcessTime.String(),
	})

	return result, nil
}
