package filters

import (
	"object-counter/internal/models"
)

// MorphologyFilter removes speckle noise and closes small gaps in a binary
// mask with a square structuring element.
type MorphologyFilter struct {
	KernelSize int
	Iterations int
}

func NewMorphologyFilter(kernelSize, iterations int) *MorphologyFilter {
	return &MorphologyFilter{KernelSize: kernelSize, Iterations: iterations}
}

func (m *MorphologyFilter) Name() string {
	return "morphology_filter"
}

// Clean applies an opening followed by a closing. Opening goes first so that
// noise is gone before the closing could fuse it into real objects.
func (m *MorphologyFilter) Clean(mask *models.Mask) *models.Mask {
	opened := Open(mask, m.KernelSize, m.Iterations)
	return Close(opened, m.KernelSize, m.Iterations)
}

// Open erodes iterations times, then dilates iterations times.
func Open(mask *models.Mask, size, iterations int) *models.Mask {
	out := mask.Clone()
	for i := 0; i < iterations; i++ {
		out = Erode(out, size)
	}
	for i := 0; i < iterations; i++ {
		out = Dilate(out, size)
	}
	return out
}

// Close dilates iterations times, then erodes iterations times.
func Close(mask *models.Mask, size, iterations int) *models.Mask {
	out := mask.Clone()
	for i := 0; i < iterations; i++ {
		out = Dilate(out, size)
	}
	for i := 0; i < iterations; i++ {
		out = Erode(out, size)
	}
	return out
}

// Erode keeps a pixel only if every in-frame pixel of its size×size
// neighbourhood is foreground. Out-of-frame pixels do not vote.
func Erode(mask *models.Mask, size int) *models.Mask {
	return squarePass(mask, size, true)
}

// Dilate sets a pixel if any in-frame pixel of its size×size neighbourhood is
// foreground.
func Dilate(mask *models.Mask, size int) *models.Mask {
	return squarePass(mask, size, false)
}

// DilateN applies Dilate n times.
func DilateN(mask *models.Mask, size, n int) *models.Mask {
	out := mask.Clone()
	for i := 0; i < n; i++ {
		out = Dilate(out, size)
	}
	return out
}

// squarePass runs the square kernel as a horizontal then a vertical 1-D pass.
// With erode set a window is true only when all of it is true; otherwise when
// any of it is.
func squarePass(mask *models.Mask, size int, erode bool) *models.Mask {
	if size <= 1 {
		return mask.Clone()
	}

	half := size / 2
	w, h := mask.Width, mask.Height
	rows := models.NewMask(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rows.Pix[y*w+x] = window(mask.Pix, y*w, max(0, x-half), min(w-1, x+half), 1, erode)
		}
	}

	out := models.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			y0, y1 := max(0, y-half), min(h-1, y+half)
			out.Pix[y*w+x] = window(rows.Pix, x, y0, y1, w, erode)
		}
	}

	return out
}

// window folds pix[base+i*stride] for i in [from, to].
func window(pix []bool, base, from, to, stride int, erode bool) bool {
	for i := from; i <= to; i++ {
		v := pix[base+i*stride]
		if erode && !v {
			return false
		}
		if !erode && v {
			return true
		}
	}
	return erode
}
