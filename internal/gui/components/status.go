package components

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"object-counter/internal/models"
)

type StatusBar struct {
	container    *fyne.Container
	statusLabel  *widget.Label
	countLabel   *widget.Label
	detailsLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	countLabel := widget.NewLabel("Objects detected: --")
	detailsLabel := widget.NewLabel("")

	metricsContainer := container.NewHBox(
		countLabel,
		widget.NewSeparator(),
		detailsLabel,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		statusLabel,
		metricsContainer,
	)

	return &StatusBar{
		container:    mainContainer,
		statusLabel:  statusLabel,
		countLabel:   countLabel,
		detailsLabel: detailsLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetResult(result *models.Result) {
	if result == nil {
		sb.countLabel.SetText("Objects detected: --")
		sb.detailsLabel.SetText("")
		return
	}
	sb.countLabel.SetText(fmt.Sprintf("Objects detected: %d", result.Count))
	sb.detailsLabel.SetText(fmt.Sprintf("seeds %d, rejected %d, threshold %d, %s",
		result.Seeds, result.Rejected, result.Threshold, result.ProcessTime.Round(time.Millisecond)))
}
