package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"object-counter/internal/debug"
	"object-counter/internal/gui"
	"object-counter/internal/logger"
	"object-counter/internal/pipeline"
	"object-counter/internal/services"
	"object-counter/internal/shutdown"
)

func newLogger(c *cli.Context) logger.Logger {
	level := logger.ParseLevel(c.String("log-level"))
	if c.Bool("json-logs") {
		return logger.NewZerolog(os.Stderr, level)
	}
	return logger.NewConsoleLogger(level)
}

func runCount(c *cli.Context) error {
	log := newLogger(c)

	jobs, err := buildJobs(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	shutdownMgr := shutdown.NewManager(c.Context, log)
	stopSignals := shutdownMgr.Listen()
	defer stopSignals()

	var sinks []debug.Sink
	if dir := c.String("debug-dir"); dir != "" {
		dirSink, err := debug.NewDirSink(dir, log)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		sinks = append(sinks, dirSink)
	}

	var viewer *gui.Viewer
	if c.Bool("show") {
		viewer = gui.NewViewer(log)
		shutdownMgr.Register(viewer)
		sinks = append(sinks, viewer)
	}

	log.Info("CLI", "counting started", map[string]interface{}{
		"images":  len(jobs),
		"workers": c.Int("workers"),
		"version": AppVersion,
	})

	coordinator := pipeline.NewCoordinator(debug.Multi(sinks...), log)
	batch := services.NewBatchService(coordinator, c.Int("workers"), log)
	report, batchErr := batch.Run(shutdownMgr.Context(), jobs)

	for _, o := range report.Outcomes {
		if o.Result != nil {
			fmt.Fprintf(c.App.Writer, "%s: %d objects\n", o.Job.Input, o.Result.Count)
			if viewer != nil {
				viewer.SetResult(o.Result)
			}
		}
		if o.Err != nil {
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", o.Job.Input, o.Err)
		}
	}

	if len(report.Outcomes) > 1 || c.Bool("summary") {
		fmt.Fprintln(c.App.Writer, report.Table())
	}

	if viewer != nil {
		viewer.Show()
	}

	if batchErr != nil {
		return cli.Exit(fmt.Sprintf("%d of %d images failed", report.Failed(), len(report.Outcomes)), 1)
	}
	return nil
}
