package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every ValidationError.
var ErrInvalidConfig = errors.New("invalid configuration")

// Polarity selects which side of the Otsu threshold counts as foreground.
type Polarity int

const (
	// LightOnDark treats bright objects on a dark background as foreground.
	LightOnDark Polarity = iota
	// DarkOnLight treats dark objects on a light background as foreground.
	DarkOnLight
)

func (p Polarity) String() string {
	switch p {
	case LightOnDark:
		return "light-on-dark"
	case DarkOnLight:
		return "dark-on-light"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// ParsePolarity accepts the String() form plus a few short aliases.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light-on-dark", "light", "bright":
		return LightOnDark, nil
	case "dark-on-light", "dark", "inverted":
		return DarkOnLight, nil
	default:
		return LightOnDark, NewValidationError("polarity", s, "expected light-on-dark or dark-on-light")
	}
}

func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Polarity) UnmarshalText(text []byte) error {
	parsed, err := ParsePolarity(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config is the per-invocation configuration surface of the counter.
type Config struct {
	// MinArea discards regions whose contour area is below this many pixels.
	MinArea int `yaml:"min_area"`
	// Polarity selects the binarization direction.
	Polarity Polarity `yaml:"polarity"`
	// DistanceThreshold is the fraction of the maximum distance-field value a
	// pixel must exceed to seed a confident foreground core.
	DistanceThreshold float64 `yaml:"distance_threshold"`

	KernelSize          int  `yaml:"kernel_size"`
	CleanIterations     int  `yaml:"clean_iterations"`
	BackgroundDilations int  `yaml:"background_dilations"`
	BlurSize            int  `yaml:"blur_size"`
	DisableWatershed    bool `yaml:"disable_watershed"`

	// MinCircularity rejects elongated contours (4πA/P² below the value).
	// Zero accepts by area alone.
	MinCircularity float64 `yaml:"min_circularity"`
}

// DefaultConfig is the seed-counting setup.
func DefaultConfig() Config {
	return Config{
		MinArea:             100,
		Polarity:            LightOnDark,
		DistanceThreshold:   0.4,
		KernelSize:          3,
		CleanIterations:     2,
		BackgroundDilations: 3,
		BlurSize:            5,
	}
}

// Presets are tuned configurations selectable by name.
var Presets = map[string]Config{
	"seeds": DefaultConfig(),
	"chocolates": func() Config {
		c := DefaultConfig()
		c.MinArea = 500
		c.Polarity = DarkOnLight
		c.DistanceThreshold = 0.5
		return c
	}(),
}

// ParameterRange defines valid range for a parameter
type ParameterRange struct {
	Min interface{}
	Max interface{}
	// Exclusive bounds reject the endpoints themselves.
	Exclusive bool
	Odd       bool
}

var configRanges = map[string]ParameterRange{
	"min_area":             {Min: 0},
	"distance_threshold":   {Min: 0.0, Max: 1.0, Exclusive: true},
	"kernel_size":          {Min: 1, Max: 31, Odd: true},
	"clean_iterations":     {Min: 0, Max: 50},
	"background_dilations": {Min: 0, Max: 50},
	"blur_size":            {Min: 0, Max: 31},
	"min_circularity":      {Min: 0.0, Max: 1.0},
}

// Validate checks every field against its range.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value interface{}
	}{
		{"min_area", c.MinArea},
		{"distance_threshold", c.DistanceThreshold},
		{"kernel_size", c.KernelSize},
		{"clean_iterations", c.CleanIterations},
		{"background_dilations", c.BackgroundDilations},
		{"blur_size", c.BlurSize},
		{"min_circularity", c.MinCircularity},
	}

	for _, check := range checks {
		if err := validateParameter(check.name, check.value); err != nil {
			return err
		}
	}

	if c.BlurSize > 0 && c.BlurSize%2 == 0 {
		return NewValidationError("blur_size", c.BlurSize, "value must be odd or zero")
	}

	if c.Polarity != LightOnDark && c.Polarity != DarkOnLight {
		return NewValidationError("polarity", c.Polarity, "unknown polarity")
	}

	return nil
}

// validateParameter checks if a parameter value is valid
func validateParameter(paramName string, value interface{}) error {
	paramRange, hasRange := configRanges[paramName]
	if !hasRange {
		return nil
	}

	switch v := value.(type) {
	case int:
		if min, ok := paramRange.Min.(int); ok && v < min {
			return NewValidationError(paramName, value, "value below minimum")
		}
		if max, ok := paramRange.Max.(int); ok && v > max {
			return NewValidationError(paramName, value, "value above maximum")
		}
		if paramRange.Odd && v%2 == 0 {
			return NewValidationError(paramName, value, "value must be odd")
		}
	case float64:
		if min, ok := paramRange.Min.(float64); ok {
			if v < min || (paramRange.Exclusive && v == min) {
				return NewValidationError(paramName, value, "value below minimum")
			}
		}
		if max, ok := paramRange.Max.(float64); ok {
			if v > max || (paramRange.Exclusive && v == max) {
				return NewValidationError(paramName, value, "value above maximum")
			}
		}
	}

	return nil
}

// ValidationError represents a parameter validation error
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

// NewValidationError creates a new validation error
func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

// Error returns the error message
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for parameter '%s' with value '%v': %s",
		ve.Parameter, ve.Value, ve.Message)
}

func (ve *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}
