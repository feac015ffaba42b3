package markers

import (
	"math"

	"object-counter/internal/models"
)

// DistanceTransform computes the exact Euclidean distance from every
// foreground pixel to the nearest background pixel, using the separable
// lower-envelope-of-parabolas method (Felzenszwalb & Huttenlocher). Pixels
// outside the frame are not background. A mask without any background pixel
// has no finite distances and yields an all-zero field.
func DistanceTransform(mask *models.Mask) *models.DistanceField {
	w, h := mask.Width, mask.Height
	field := models.NewDistanceField(w, h)
	if w == 0 || h == 0 || mask.Count() == len(mask.Pix) {
		return field
	}

	// Larger than any squared distance that fits in the frame, so an
	// "infinite" parabola never undercuts a real one.
	inf := float64(w*w + h*h + 1)

	sq := make([]float64, w*h)
	for i, fg := range mask.Pix {
		if fg {
			sq[i] = inf
		}
	}

	n := max(w, h)
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			f[y] = sq[y*w+x]
		}
		lowerEnvelope(f[:h], d[:h], v, z)
		for y := 0; y < h; y++ {
			sq[y*w+x] = d[y]
		}
	}

	for y := 0; y < h; y++ {
		row := sq[y*w : (y+1)*w]
		copy(f, row)
		lowerEnvelope(f[:w], d[:w], v, z)
		for x := 0; x < w; x++ {
			field.Pix[y*w+x] = math.Sqrt(d[x])
		}
	}

	return field
}

// lowerEnvelope is the 1-D squared distance transform of the sampled
// function f, written into d. v and z are scratch buffers of len(f) and
// len(f)+1.
func lowerEnvelope(f, d []float64, v []int, z []float64) {
	n := len(f)
	if n == 0 {
		return
	}

	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)

	for q := 1; q < n; q++ {
		s := intersection(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersection(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersection returns the abscissa where the parabolas rooted at q and p meet.
func intersection(f []float64, q, p int) float64 {
	fq := f[q] + float64(q*q)
	fp := f[p] + float64(p*p)
	return (fq - fp) / float64(2*q-2*p)
}
