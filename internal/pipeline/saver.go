package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"object-counter/internal/logger"
	"object-counter/internal/models"
	"object-counter/internal/opencv/conversion"
)

var (
	contourColor = color.RGBA{R: 0, G: 255, B: 255, A: 0}
	labelColor   = color.RGBA{R: 255, G: 0, B: 255, A: 0}
)

const (
	contourThickness = 2
	labelScale       = 0.8
	labelThickness   = 2
)

type Saver struct {
	logger logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	return &Saver{logger: log}
}

// Annotate draws the accepted contours and the object count on a copy of the
// colour input. The caller closes the returned Mat.
func Annotate(src gocv.Mat, result *models.Result) gocv.Mat {
	annotated := src.Clone()

	contours := conversion.ContoursToPointsVector(result.Regions)
	defer contours.Close()
	gocv.DrawContours(&annotated, contours, -1, contourColor, contourThickness)

	text := fmt.Sprintf("Objects detected: %d", result.Count)
	origin := image.Point{X: 10, Y: annotated.Rows() - 10}
	gocv.PutText(&annotated, text, origin, gocv.FontHersheySimplex, labelScale, labelColor, labelThickness)

	return annotated
}

// Save writes the annotated image to path, creating its directory. The
// encoding follows the extension and defaults to PNG.
func (s *Saver) Save(path string, img *Image, result *models.Result) error {
	annotated := Annotate(img.Color, result)
	defer annotated.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = string(gocv.PNGFileExt)
	}

	buf, err := gocv.IMEncode(gocv.FileExt(ext), annotated)
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("encoding %s: %w", ext, err)}
	}
	defer buf.Close()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, buf.GetBytes(), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	s.logger.Debug("ImageSaver", "annotated image written", map[string]interface{}{
		"path":    path,
		"format":  strings.TrimPrefix(ext, "."),
		"objects": result.Count,
	})

	return nil
}
