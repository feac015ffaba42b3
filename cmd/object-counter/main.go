package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"object-counter/internal/models"
)

const (
	AppName    = "object-counter"
	AppVersion = "1.0.0"
)

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    AppName,
		Usage:   "count touching objects in photographs with marker-controlled watershed segmentation",
		Version: AppVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "json-logs",
				Usage: "write logs as JSON lines instead of console text",
			},
		},
		Commands: []*cli.Command{
			countCommand(),
			presetsCommand(),
		},
	}
}

func countCommand() *cli.Command {
	defaults := models.DefaultConfig()
	return &cli.Command{
		Name:      "count",
		Usage:     "count objects in one or more images",
		ArgsUsage: "[image ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "preset", Usage: "start from a named preset (seeds, chocolates)"},
			&cli.IntFlag{Name: "min-area", Value: defaults.MinArea, Usage: "smallest accepted contour area in pixels"},
			&cli.StringFlag{Name: "polarity", Value: defaults.Polarity.String(), Usage: "light-on-dark or dark-on-light"},
			&cli.Float64Flag{Name: "dist-thresh", Value: defaults.DistanceThreshold, Usage: "fraction of the peak distance that seeds an object core"},
			&cli.IntFlag{Name: "kernel-size", Value: defaults.KernelSize, Usage: "morphology kernel side (odd)"},
			&cli.IntFlag{Name: "clean-iterations", Value: defaults.CleanIterations, Usage: "opening and closing iterations"},
			&cli.IntFlag{Name: "bg-dilations", Value: defaults.BackgroundDilations, Usage: "dilations used to find sure background"},
			&cli.IntFlag{Name: "blur-size", Value: defaults.BlurSize, Usage: "Gaussian pre-blur kernel side (odd, 0 disables)"},
			&cli.Float64Flag{Name: "min-circularity", Usage: "reject contours less circular than this (0 disables)"},
			&cli.BoolFlag{Name: "no-watershed", Usage: "count raw connected components without splitting touching objects"},
			&cli.StringFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "YAML job file listing images and per-image overrides"},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "directory for annotated images (default: next to each input)"},
			&cli.BoolFlag{Name: "no-save", Usage: "do not write annotated images"},
			&cli.IntFlag{Name: "workers", Value: runtime.NumCPU(), Usage: "images processed in parallel"},
			&cli.StringFlag{Name: "debug-dir", Usage: "write every intermediate stage as PNG into this directory"},
			&cli.BoolFlag{Name: "show", Usage: "open a window with every stage once counting finishes"},
			&cli.BoolFlag{Name: "summary", Usage: "print a summary table even for a single image"},
		},
		Action: runCount,
	}
}

func presetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "list the built-in presets",
		Action: func(c *cli.Context) error {
			for _, name := range presetNames() {
				p := models.Presets[name]
				fmt.Fprintf(c.App.Writer, "%-12s polarity=%s min_area=%d distance_threshold=%.2f\n",
					name, p.Polarity, p.MinArea, p.DistanceThreshold)
			}
			return nil
		},
	}
}
