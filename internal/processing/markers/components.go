package markers

import "object-counter/internal/models"

// neighbors8 lists the 8-connected offsets in raster order.
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// LabelComponents assigns 1..n to the 8-connected foreground components of
// mask, numbered in raster order of each component's first pixel. Background
// pixels get 0.
func LabelComponents(mask *models.Mask) ([]int32, int) {
	w, h := mask.Width, mask.Height
	labels := make([]int32, w*h)
	queue := make([]int, 0, 64)
	var next int32

	for start, fg := range mask.Pix {
		if !fg || labels[start] != 0 {
			continue
		}

		next++
		labels[start] = next
		queue = append(queue[:0], start)

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			cx, cy := idx%w, idx/w

			for _, d := range neighbors8 {
				nx, ny := cx+d[0], cy+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if mask.Pix[ni] && labels[ni] == 0 {
					labels[ni] = next
					queue = append(queue, ni)
				}
			}
		}
	}

	return labels, int(next)
}
