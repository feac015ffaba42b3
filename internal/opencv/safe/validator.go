// Package safe validates gocv matrices before they are handed to OpenCV, where
// a bad shape would abort the process instead of returning an error.
package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

const maxDimension = 32768

func ValidateMatForOperation(mat gocv.Mat, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}

	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}

	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}

	return nil
}

// ValidateKernelSize accepts odd positive sizes, or zero meaning "skip".
func ValidateKernelSize(size int, operation string) error {
	if size == 0 {
		return nil
	}
	if size < 0 || size%2 == 0 {
		return fmt.Errorf("kernel size %d must be odd and positive for operation: %s", size, operation)
	}
	return nil
}
