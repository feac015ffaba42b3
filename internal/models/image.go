package models

import (
	"image"
	"image/color"
	"math"
)

// Marker values shared by the marker generator, the watershed and the counter.
const (
	MarkerRidge      int32 = -1
	MarkerUnknown    int32 = 0
	MarkerBackground int32 = 1
	MarkerFirstSeed  int32 = 2
)

// IntensityGrid is a row-major 8-bit grayscale raster.
type IntensityGrid struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewIntensityGrid(width, height int) *IntensityGrid {
	return &IntensityGrid{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// GridFromImage reduces any image to grayscale using the standard library's
// luma conversion.
func GridFromImage(img image.Image) *IntensityGrid {
	bounds := img.Bounds()
	grid := NewIntensityGrid(bounds.Dx(), bounds.Dy())
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			grid.Pix[y*grid.Width+x] = g.Y
		}
	}
	return grid
}

func (g *IntensityGrid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

func (g *IntensityGrid) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// Inverted returns a new grid with every intensity mirrored (255-v).
func (g *IntensityGrid) Inverted() *IntensityGrid {
	out := NewIntensityGrid(g.Width, g.Height)
	for i, v := range g.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

func (g *IntensityGrid) ToImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(img.Pix, g.Pix)
	return img
}

// Mask is a binary foreground/background raster. True is foreground.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]bool, width*height)}
}

func (m *Mask) At(x, y int) bool {
	return m.Pix[y*m.Width+x]
}

func (m *Mask) Set(x, y int, v bool) {
	m.Pix[y*m.Width+x] = v
}

func (m *Mask) Clone() *Mask {
	out := NewMask(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

func (m *Mask) Equal(other *Mask) bool {
	if other == nil || m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for i := range m.Pix {
		if m.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

func (m *Mask) ToImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v {
			img.Pix[i] = 255
		}
	}
	return img
}

// DistanceField holds, per foreground pixel, the Euclidean distance to the
// nearest background pixel. Background pixels hold zero.
type DistanceField struct {
	Width  int
	Height int
	Pix    []float64
}

func NewDistanceField(width, height int) *DistanceField {
	return &DistanceField{Width: width, Height: height, Pix: make([]float64, width*height)}
}

func (d *DistanceField) At(x, y int) float64 {
	return d.Pix[y*d.Width+x]
}

func (d *DistanceField) Max() float64 {
	max := 0.0
	for _, v := range d.Pix {
		if v > max {
			max = v
		}
	}
	return max
}

// ToImage normalizes the field to the full 8-bit range.
func (d *DistanceField) ToImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, d.Width, d.Height))
	max := d.Max()
	if max == 0 {
		return img
	}
	for i, v := range d.Pix {
		img.Pix[i] = uint8(math.Round(v / max * 255))
	}
	return img
}

// MarkerMap is the integer label raster flooded by the watershed.
type MarkerMap struct {
	Width  int
	Height int
	Pix    []int32
}

func NewMarkerMap(width, height int) *MarkerMap {
	return &MarkerMap{Width: width, Height: height, Pix: make([]int32, width*height)}
}

func (m *MarkerMap) At(x, y int) int32 {
	return m.Pix[y*m.Width+x]
}

func (m *MarkerMap) Set(x, y int, v int32) {
	m.Pix[y*m.Width+x] = v
}

func (m *MarkerMap) Clone() *MarkerMap {
	out := NewMarkerMap(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

// CountValue returns how many cells hold v.
func (m *MarkerMap) CountValue(v int32) int {
	n := 0
	for _, p := range m.Pix {
		if p == v {
			n++
		}
	}
	return n
}

// ToImage renders ridges white, unknown black, background dark gray and every
// seed label in a distinct hue.
func (m *MarkerMap) ToImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		var c color.RGBA
		switch {
		case v == MarkerRidge:
			c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		case v == MarkerUnknown:
			c = color.RGBA{A: 255}
		case v == MarkerBackground:
			c = color.RGBA{R: 40, G: 40, B: 40, A: 255}
		default:
			c = labelColor(v)
		}
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return img
}

// labelColor spreads labels around the hue wheel by the golden angle.
func labelColor(label int32) color.RGBA {
	h := math.Mod(float64(label)*137.508, 360)
	r, g, b := hsvToRGB(h, 0.75, 0.95)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
