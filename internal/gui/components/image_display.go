package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 500
	ImageAreaHeight = 400
)

// ImageDisplay shows the input next to one selected pipeline stage.
type ImageDisplay struct {
	container  fyne.CanvasObject
	inputImage *canvas.Image
	stageImage *canvas.Image
	stageTitle *widget.Label
	splitView  *container.Split
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func newStageCanvas() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	// Nearest-neighbour keeps label boundaries crisp when zoomed.
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (id *ImageDisplay) createComponents() {
	id.inputImage = newStageCanvas()
	id.stageImage = newStageCanvas()
	id.stageTitle = widget.NewLabel("Stage")
}

func (id *ImageDisplay) setupLayout() {
	inputContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Input**"),
		nil, nil, nil,
		id.inputImage,
	)

	stageContainer := container.NewBorder(
		id.stageTitle,
		nil, nil, nil,
		id.stageImage,
	)

	id.splitView = container.NewHSplit(inputContainer, stageContainer)
	id.splitView.SetOffset(0.5)
	id.container = id.splitView
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) SetInputImage(img image.Image) {
	id.inputImage.Image = img
	id.inputImage.Refresh()
}

func (id *ImageDisplay) SetStageImage(stage string, img image.Image) {
	id.stageTitle.SetText(stage)
	id.stageImage.Image = img
	id.stageImage.Refresh()
}
