package models

import (
	"image"
	"time"
)

// Region is one accepted object: an external contour of a single label.
type Region struct {
	Label         int32
	Contour       []image.Point
	Area          float64
	Perimeter     float64
	Circularity   float64
	PixelCount    int
	MeanIntensity float64
	StdIntensity  float64
	Bounds        image.Rectangle
}

// Result is everything produced for one image.
type Result struct {
	Path       string
	OutputPath string
	Width      int
	Height     int
	Count      int
	Seeds      int
	Regions    []Region
	// Rejected counts contours discarded by the area or shape policy.
	Rejected    int
	Threshold   uint8
	ProcessTime time.Duration
	StageTimes  map[string]time.Duration
}
