// Package conversion moves pixels between gocv matrices and the pure Go
// rasters the segmentation works on.
package conversion

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"object-counter/internal/models"
	"object-counter/internal/opencv/safe"
)

// MatToGrid copies a single-channel 8-bit Mat into an IntensityGrid.
func MatToGrid(src gocv.Mat) (*models.IntensityGrid, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to grid conversion"); err != nil {
		return nil, err
	}
	if src.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("grid conversion requires an 8-bit single-channel Mat, got type %v", src.Type())
	}

	rows, cols := src.Rows(), src.Cols()
	grid := models.NewIntensityGrid(cols, rows)

	if src.IsContinuous() {
		copy(grid.Pix, src.ToBytes())
		return grid, nil
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			grid.Pix[y*cols+x] = src.GetUCharAt(y, x)
		}
	}
	return grid, nil
}

// GridToMat returns a new 8-bit single-channel Mat holding grid. The caller
// owns the Mat.
func GridToMat(grid *models.IntensityGrid) (gocv.Mat, error) {
	if err := safe.ValidateDimensions(grid.Width, grid.Height, "grid to Mat conversion"); err != nil {
		return gocv.NewMat(), err
	}
	return gocv.NewMatFromBytes(grid.Height, grid.Width, gocv.MatTypeCV8UC1, grid.Pix)
}

// ImageToMat converts a standard Go image to a Mat: gray images keep a single
// channel, everything else becomes BGR.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), fmt.Errorf("input image is nil")
	}

	if gray, ok := img.(*image.Gray); ok {
		return gocv.ImageGrayToMatGray(gray)
	}
	return gocv.ImageToMatRGB(img)
}

// ContoursToPointsVector packs region contours for gocv drawing. The caller
// closes the vector.
func ContoursToPointsVector(regions []models.Region) gocv.PointsVector {
	pts := make([][]image.Point, 0, len(regions))
	for _, r := range regions {
		pts = append(pts, r.Contour)
	}
	return gocv.NewPointsVectorFromPoints(pts)
}
