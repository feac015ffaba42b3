// Package gui is the --show stage viewer: a fyne window listing every counted
// image and the output of each pipeline stage.
package gui

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"object-counter/internal/debug"
	"object-counter/internal/gui/components"
	"object-counter/internal/gui/stages"
	"object-counter/internal/logger"
	"object-counter/internal/models"
)

const (
	appID       = "io.objectcounter.viewer"
	inputStage  = "input"
	windowTitle = "Object Counter"
)

// Viewer collects stage captures while a batch runs and shows them once Show
// is called.
type Viewer struct {
	store  *stages.Store
	logger logger.Logger

	mu  sync.Mutex
	app fyne.App

	display      *components.ImageDisplay
	status       *components.StatusBar
	sourceSelect *widget.Select
	stageSelect  *widget.Select
}

func NewViewer(log logger.Logger) *Viewer {
	return &Viewer{store: stages.NewStore(), logger: log}
}

var _ debug.Sink = (*Viewer)(nil)

func (v *Viewer) Capture(source, stage string, buf debug.Imager) {
	v.store.Capture(source, stage, buf)
}

func (v *Viewer) SetResult(result *models.Result) {
	v.store.SetResult(result)
}

// Show opens the viewer window and blocks until it is closed. It must run on
// the main goroutine.
func (v *Viewer) Show() {
	if v.store.Empty() {
		v.logger.Warning("Viewer", "nothing captured, not opening window", nil)
		return
	}

	v.mu.Lock()
	v.app = app.NewWithID(appID)
	v.mu.Unlock()

	window := v.app.NewWindow(windowTitle)
	window.SetContent(v.buildContent())
	window.Resize(fyne.NewSize(2*components.ImageAreaWidth+40, components.ImageAreaHeight+120))

	sources := v.store.Sources()
	v.sourceSelect.SetSelected(sources[0])

	v.logger.Info("Viewer", "window opened", map[string]interface{}{"images": len(sources)})
	window.ShowAndRun()
}

// Shutdown closes the window if it is open.
func (v *Viewer) Shutdown() {
	v.mu.Lock()
	a := v.app
	v.mu.Unlock()

	if a != nil {
		fyne.Do(a.Quit)
	}
}

func (v *Viewer) buildContent() fyne.CanvasObject {
	v.display = components.NewImageDisplay()
	v.status = components.NewStatusBar()

	labels := make([]string, 0)
	bySource := make(map[string]string)
	for _, source := range v.store.Sources() {
		label := filepath.Base(source)
		if _, clash := bySource[label]; clash {
			label = source
		}
		bySource[label] = source
		labels = append(labels, label)
	}

	v.stageSelect = widget.NewSelect(nil, func(stage string) {
		v.showStage(bySource[v.sourceSelect.Selected], stage)
	})
	v.sourceSelect = widget.NewSelect(labels, func(label string) {
		v.showSource(bySource[label])
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Image"), v.sourceSelect,
		widget.NewSeparator(),
		widget.NewLabel("Stage"), v.stageSelect,
	)

	return container.NewBorder(toolbar, v.status.GetContainer(), nil, nil, v.display.GetContainer())
}

func (v *Viewer) showSource(source string) {
	v.display.SetInputImage(v.store.Image(source, inputStage))
	v.status.SetResult(v.store.Result(source))
	v.status.SetStatus(filepath.Base(source))

	options := slices.DeleteFunc(v.store.Stages(source), func(s string) bool { return s == inputStage })
	v.stageSelect.Options = options
	v.stageSelect.Refresh()
	if len(options) > 0 {
		last := options[len(options)-1]
		v.stageSelect.SetSelected(last)
		v.showStage(source, last)
	}
}

func (v *Viewer) showStage(source, stage string) {
	img := v.store.Image(source, stage)
	if img == nil {
		v.logger.Debug("Viewer", "stage not captured", map[string]interface{}{"source": source, "stage": stage})
		return
	}
	v.display.SetStageImage(fmt.Sprintf("%s (%dx%d)", stage, img.Bounds().Dx(), img.Bounds().Dy()), img)
}
