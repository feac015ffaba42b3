package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"object-counter/internal/models"
)

func presetNames() []string {
	names := make([]string, 0, len(models.Presets))
	for name := range models.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// flagOverrides collects the configuration flags the user actually set.
func flagOverrides(c *cli.Context) (models.Overrides, error) {
	o := models.Overrides{Preset: c.String("preset")}

	if c.IsSet("min-area") {
		v := c.Int("min-area")
		o.MinArea = &v
	}
	if c.IsSet("polarity") {
		p, err := models.ParsePolarity(c.String("polarity"))
		if err != nil {
			return o, err
		}
		o.Polarity = &p
	}
	if c.IsSet("dist-thresh") {
		v := c.Float64("dist-thresh")
		o.DistanceThreshold = &v
	}
	if c.IsSet("kernel-size") {
		v := c.Int("kernel-size")
		o.KernelSize = &v
	}
	if c.IsSet("clean-iterations") {
		v := c.Int("clean-iterations")
		o.CleanIterations = &v
	}
	if c.IsSet("bg-dilations") {
		v := c.Int("bg-dilations")
		o.BackgroundDilations = &v
	}
	if c.IsSet("blur-size") {
		v := c.Int("blur-size")
		o.BlurSize = &v
	}
	if c.IsSet("min-circularity") {
		v := c.Float64("min-circularity")
		o.MinCircularity = &v
	}
	if c.IsSet("no-watershed") {
		v := c.Bool("no-watershed")
		o.DisableWatershed = &v
	}

	return o, nil
}

// buildJobs turns the positional images and the optional job file into jobs.
// Flags form the base configuration; job file entries override it per image.
func buildJobs(c *cli.Context) ([]models.Job, error) {
	overrides, err := flagOverrides(c)
	if err != nil {
		return nil, err
	}
	base, err := overrides.Apply(models.DefaultConfig())
	if err != nil {
		return nil, err
	}

	var jobs []models.Job
	for _, input := range c.Args().Slice() {
		jobs = append(jobs, models.Job{
			Input:  input,
			Output: models.DefaultOutputPath(input, c.String("output-dir")),
			Config: base,
		})
	}

	if path := c.String("jobs"); path != "" {
		fromFile, err := models.LoadJobFile(path, base)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, fromFile...)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("no images given: pass image paths or --jobs")
	}

	if c.Bool("no-save") {
		for i := range jobs {
			jobs[i].Output = ""
		}
	}

	return jobs, nil
}
