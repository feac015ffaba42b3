package pipeline

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"object-counter/internal/logger"
	"object-counter/internal/models"
	"object-counter/internal/opencv/conversion"
	"object-counter/internal/opencv/preprocess"
)

// Image is a decoded input: the colour matrix the overlay is drawn on and the
// smoothed grayscale grid the counter works on.
type Image struct {
	Path  string
	Color gocv.Mat
	Grid  *models.IntensityGrid
}

func (img *Image) Close() error {
	return img.Color.Close()
}

type Loader struct {
	blurSize int
	logger   logger.Logger
}

// NewLoader returns a loader smoothing with a blurSize×blurSize Gaussian.
// Zero disables smoothing.
func NewLoader(blurSize int, log logger.Logger) *Loader {
	return &Loader{blurSize: blurSize, logger: log}
}

func (l *Loader) Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrUndecodable, err)}
	}
	if mat.Empty() {
		mat.Close()
		return nil, &LoadError{Path: path, Err: ErrUndecodable}
	}

	grid, err := l.toGrid(mat)
	if err != nil {
		mat.Close()
		return nil, &LoadError{Path: path, Err: err}
	}

	l.logger.Debug("ImageLoader", "image loaded", map[string]interface{}{
		"path":       path,
		"width":      grid.Width,
		"height":     grid.Height,
		"channels":   mat.Channels(),
		"size_bytes": len(data),
	})

	return &Image{Path: path, Color: mat, Grid: grid}, nil
}

func (l *Loader) toGrid(color gocv.Mat) (*models.IntensityGrid, error) {
	gray, err := preprocess.Grayscale(color)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	blurred, err := preprocess.GaussianBlur(gray, l.blurSize)
	if err != nil {
		return nil, err
	}
	defer blurred.Close()

	return conversion.MatToGrid(blurred)
}
