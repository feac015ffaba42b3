package chain

import (
	"context"
	"fmt"
	"time"

	"object-counter/internal/debug"
	"object-counter/internal/debug/timing"
	"object-counter/internal/logger"
	"object-counter/internal/models"
	"object-counter/internal/processing/markers"
	"object-counter/internal/processing/regions"
	"object-counter/internal/processing/watershed"
)

// Frame carries one image through the chain. Each step reads what earlier
// steps left on it and adds its own product.
type Frame struct {
	Source string
	Grid   *models.IntensityGrid

	Threshold uint8
	Mask      *models.Mask
	Cleaned   *models.Mask
	Markers   *markers.Markers
	Labels    *models.MarkerMap
	Flood     watershed.Stats
	Summary   regions.Summary
}

// ProcessingStep is one stage of the chain. Apply returns the buffer the stage
// produced so it can be shown on the debug side channel, or nil.
type ProcessingStep interface {
	Apply(ctx context.Context, frame *Frame, cfg models.Config) (debug.Imager, error)
	Name() string
	ShouldExecute(cfg models.Config) bool
}

type ProcessingChain struct {
	steps  []ProcessingStep
	sink   debug.Sink
	logger logger.Logger
}

func NewProcessingChain(steps []ProcessingStep, sink debug.Sink, log logger.Logger) *ProcessingChain {
	if sink == nil {
		sink = debug.Nop
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ProcessingChain{
		steps:  steps,
		sink:   sink,
		logger: log,
	}
}

// Execute runs every applicable step in order. The context is only checked
// between steps; a step, once started, runs to completion. Durations are
// recorded on tracker when it is non-nil.
func (pc *ProcessingChain) Execute(ctx context.Context, frame *Frame, cfg models.Config, tracker *timing.Tracker) error {
	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !step.ShouldExecute(cfg) {
			continue
		}

		start := time.Now()
		stepCtx := ctx
		if tracker != nil {
			stepCtx = tracker.StartTiming(ctx, step.Name())
		}

		out, err := step.Apply(stepCtx, frame, cfg)

		if tracker != nil {
			tracker.EndTiming(stepCtx)
		}
		if err != nil {
			return fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		pc.logger.Debug("ProcessingChain", "step completed", map[string]interface{}{
			"source":   frame.Source,
			"step":     step.Name(),
			"duration": time.Since(start).String(),
		})

		if out != nil {
			pc.sink.Capture(frame.Source, step.Name(), out)
		}
	}

	return nil
}

func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
