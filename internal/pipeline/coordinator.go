package pipeline

import (
	"context"

	"object-counter/internal/debug"
	"object-counter/internal/logger"
	"object-counter/internal/models"
	"object-counter/internal/processing/segmenter"
)

// Coordinator runs load, count and save for single jobs. It keeps no state
// between jobs and is safe for concurrent use.
type Coordinator struct {
	saver  *Saver
	sink   debug.Sink
	logger logger.Logger
}

func NewCoordinator(sink debug.Sink, log logger.Logger) *Coordinator {
	if sink == nil {
		sink = debug.Nop
	}
	return &Coordinator{
		saver:  NewSaver(log),
		sink:   sink,
		logger: log,
	}
}

// ProcessFile counts the objects of job.Input and, when job.Output is set,
// writes the annotated image there. Load failures return *LoadError and write
// failures *WriteError; on a write failure the result is still returned.
func (c *Coordinator) ProcessFile(ctx context.Context, job models.Job) (*models.Result, error) {
	seg, err := segmenter.New(job.Config, segmenter.WithSink(c.sink), segmenter.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	img, err := NewLoader(job.Config.BlurSize, c.logger).Load(job.Input)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	c.sink.Capture(job.Input, "input", img.Grid)

	result, err := seg.Count(ctx, job.Input, img.Grid)
	if err != nil {
		return nil, err
	}

	if job.Output == "" {
		return result, nil
	}

	result.OutputPath = job.Output
	if err := c.saver.Save(job.Output, img, result); err != nil {
		return result, err
	}

	c.logger.Info("Coordinator", "image processed", map[string]interface{}{
		"input":    job.Input,
		"output":   job.Output,
		"objects":  result.Count,
		"duration": result.ProcessTime.String(),
	})

	return result, nil
}
