package pipeline

import (
	"errors"
	"fmt"
)

// ErrUndecodable is wrapped by LoadError when the file exists but OpenCV
// cannot decode it.
var ErrUndecodable = errors.New("image could not be decoded")

// LoadError reports an input raster that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WriteError reports an annotated raster that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
