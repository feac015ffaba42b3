package models

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridFromImageAndInverted(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.SetGray(1, 0, color.Gray{Y: 200})
	src.SetGray(2, 1, color.Gray{Y: 10})

	grid := GridFromImage(src)
	assert.Equal(t, 3, grid.Width)
	assert.Equal(t, 2, grid.Height)
	assert.Equal(t, uint8(200), grid.At(1, 0))
	assert.Equal(t, uint8(10), grid.At(2, 1))

	inv := grid.Inverted()
	assert.Equal(t, uint8(55), inv.At(1, 0))
	assert.Equal(t, uint8(255), inv.At(0, 0))
	assert.Equal(t, uint8(200), grid.At(1, 0), "source must not change")
}

func TestMaskHelpers(t *testing.T) {
	m := NewMask(4, 4)
	m.Set(1, 1, true)
	m.Set(2, 3, true)
	assert.Equal(t, 2, m.Count())

	c := m.Clone()
	assert.True(t, m.Equal(c))
	c.Set(0, 0, true)
	assert.False(t, m.Equal(c))
	assert.False(t, m.Equal(NewMask(2, 2)))

	img := m.ToImage().(*image.Gray)
	assert.Equal(t, uint8(255), img.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
}

func TestDistanceFieldImageNormalizes(t *testing.T) {
	d := NewDistanceField(2, 1)
	d.Pix[0] = 1
	d.Pix[1] = 4
	assert.InDelta(t, 4.0, d.Max(), 1e-9)

	img := d.ToImage().(*image.Gray)
	assert.Equal(t, uint8(255), img.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(64), img.GrayAt(0, 0).Y)

	empty := NewDistanceField(2, 2).ToImage().(*image.Gray)
	assert.Equal(t, uint8(0), empty.GrayAt(1, 1).Y)
}

func TestMarkerMapImage(t *testing.T) {
	m := NewMarkerMap(4, 1)
	m.Pix = []int32{MarkerRidge, MarkerUnknown, MarkerBackground, 5}
	assert.Equal(t, 1, m.CountValue(MarkerRidge))

	img := m.ToImage().(*image.RGBA)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{40, 40, 40, 255}, img.RGBAAt(2, 0))
	assert.NotEqual(t, img.RGBAAt(2, 0), img.RGBAAt(3, 0))
}
