// Package preprocess prepares decoded rasters for counting with OpenCV.
package preprocess

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"object-counter/internal/opencv/safe"
)

// Grayscale returns a new single-channel copy of src. One-channel input is
// cloned; BGR and BGRA are converted. The caller closes the result.
func Grayscale(src gocv.Mat) (gocv.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "grayscale conversion"); err != nil {
		return gocv.NewMat(), err
	}

	switch src.Channels() {
	case 1:
		return src.Clone(), nil
	case 3:
		dst := gocv.NewMat()
		gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
		return dst, nil
	case 4:
		// BGRA goes through BGR first.
		tempBGR := gocv.NewMat()
		defer tempBGR.Close()
		gocv.CvtColor(src, &tempBGR, gocv.ColorBGRAToBGR)

		dst := gocv.NewMat()
		gocv.CvtColor(tempBGR, &dst, gocv.ColorBGRToGray)
		return dst, nil
	default:
		return gocv.NewMat(), fmt.Errorf("unsupported channel count for grayscale conversion: %d", src.Channels())
	}
}

// GaussianBlur smooths src with a size×size kernel, sigma derived from the
// size by OpenCV. Size zero returns a clone. The caller closes the result.
func GaussianBlur(src gocv.Mat, size int) (gocv.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "gaussian blur"); err != nil {
		return gocv.NewMat(), err
	}
	if err := safe.ValidateKernelSize(size, "gaussian blur"); err != nil {
		return gocv.NewMat(), err
	}

	if size == 0 {
		return src.Clone(), nil
	}

	dst := gocv.NewMat()
	gocv.GaussianBlur(src, &dst, image.Point{X: size, Y: size}, 0, 0, gocv.BorderDefault)
	return dst, nil
}
