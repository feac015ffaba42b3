package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"object-counter/internal/logger"
	"object-counter/internal/opencv/conversion"
)

// DirSink writes every capture as <dir>/<source name>.<stage>.png.
type DirSink struct {
	dir    string
	logger logger.Logger
}

// NewDirSink creates dir if needed.
func NewDirSink(dir string, log logger.Logger) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create debug directory %s: %w", dir, err)
	}
	return &DirSink{dir: dir, logger: log}, nil
}

// Path returns where a capture of stage for source is written.
func (d *DirSink) Path(source, stage string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "image"
	}
	return filepath.Join(d.dir, fmt.Sprintf("%s.%s.png", base, stage))
}

func (d *DirSink) Capture(source, stage string, buf Imager) {
	path := d.Path(source, stage)

	mat, err := conversion.ImageToMat(buf.ToImage())
	if err != nil {
		d.logger.Error("DebugSink", err, map[string]interface{}{"path": path})
		return
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		d.logger.Error("DebugSink", fmt.Errorf("failed to write %s", path), nil)
		return
	}

	d.logger.Debug("DebugSink", "stage written", map[string]interface{}{
		"stage": stage,
		"path":  path,
	})
}
