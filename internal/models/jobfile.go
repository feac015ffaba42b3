package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Job is one image to count plus the configuration to count it with.
type Job struct {
	Input  string
	Output string
	Config Config
}

// Overrides holds optional per-job changes on top of a base Config.
type Overrides struct {
	Preset              string    `yaml:"preset"`
	MinArea             *int      `yaml:"min_area"`
	Polarity            *Polarity `yaml:"polarity"`
	DistanceThreshold   *float64  `yaml:"distance_threshold"`
	KernelSize          *int      `yaml:"kernel_size"`
	CleanIterations     *int      `yaml:"clean_iterations"`
	BackgroundDilations *int      `yaml:"background_dilations"`
	BlurSize            *int      `yaml:"blur_size"`
	DisableWatershed    *bool     `yaml:"disable_watershed"`
	MinCircularity      *float64  `yaml:"min_circularity"`
}

// Apply returns base with every set override written over it. A preset is
// applied first so explicit fields win.
func (o Overrides) Apply(base Config) (Config, error) {
	cfg := base
	if o.Preset != "" {
		preset, ok := Presets[o.Preset]
		if !ok {
			return cfg, NewValidationError("preset", o.Preset, "unknown preset")
		}
		cfg = preset
	}

	if o.MinArea != nil {
		cfg.MinArea = *o.MinArea
	}
	if o.Polarity != nil {
		cfg.Polarity = *o.Polarity
	}
	if o.DistanceThreshold != nil {
		cfg.DistanceThreshold = *o.DistanceThreshold
	}
	if o.KernelSize != nil {
		cfg.KernelSize = *o.KernelSize
	}
	if o.CleanIterations != nil {
		cfg.CleanIterations = *o.CleanIterations
	}
	if o.BackgroundDilations != nil {
		cfg.BackgroundDilations = *o.BackgroundDilations
	}
	if o.BlurSize != nil {
		cfg.BlurSize = *o.BlurSize
	}
	if o.DisableWatershed != nil {
		cfg.DisableWatershed = *o.DisableWatershed
	}
	if o.MinCircularity != nil {
		cfg.MinCircularity = *o.MinCircularity
	}

	return cfg, cfg.Validate()
}

type jobEntry struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Overrides `yaml:",inline"`
}

// JobFile is the YAML batch description accepted by --jobs.
type JobFile struct {
	OutputDir string     `yaml:"output_dir"`
	Defaults  Overrides  `yaml:"defaults"`
	Jobs      []jobEntry `yaml:"jobs"`
}

// ParseJobFile decodes a job file and resolves every entry against base.
// Relative paths are taken relative to baseDir.
func ParseJobFile(data []byte, base Config, baseDir string) ([]Job, error) {
	var file JobFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	defaults, err := file.Defaults.Apply(base)
	if err != nil {
		return nil, fmt.Errorf("job file defaults: %w", err)
	}

	jobs := make([]Job, 0, len(file.Jobs))
	for i, entry := range file.Jobs {
		if entry.Input == "" {
			return nil, fmt.Errorf("job %d: missing input path", i)
		}

		cfg, err := entry.Overrides.Apply(defaults)
		if err != nil {
			return nil, fmt.Errorf("job %d (%s): %w", i, entry.Input, err)
		}

		input := resolvePath(baseDir, entry.Input)
		output := entry.Output
		if output == "" {
			output = DefaultOutputPath(input, resolvePath(baseDir, file.OutputDir))
		} else {
			output = resolvePath(baseDir, output)
		}

		jobs = append(jobs, Job{Input: input, Output: output, Config: cfg})
	}

	return jobs, nil
}

// LoadJobFile reads and parses a job file from disk.
func LoadJobFile(path string, base Config) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return ParseJobFile(data, base, filepath.Dir(path))
}

// DefaultOutputPath derives "<name>_result.png" next to the input, or inside
// outputDir when one is given.
func DefaultOutputPath(input, outputDir string) string {
	dir := filepath.Dir(input)
	if outputDir != "" {
		dir = outputDir
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"_result.png")
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
