// Package regions turns a flooded marker map into counted objects: it traces
// the outer border of every labelled piece and filters the pieces by size and
// shape.
package regions

import (
	"image"

	"object-counter/internal/models"
	"object-counter/internal/processing/markers"
)

// directions are ordered counter-clockwise on screen (y grows downward),
// starting east.
var directions = [8]image.Point{
	{X: 1, Y: 0},   // E
	{X: 1, Y: -1},  // NE
	{X: 0, Y: -1},  // N
	{X: -1, Y: -1}, // NW
	{X: -1, Y: 0},  // W
	{X: -1, Y: 1},  // SW
	{X: 0, Y: 1},   // S
	{X: 1, Y: 1},   // SE
}

const west = 4

func directionOf(from, to image.Point) int {
	d := to.Sub(from)
	for i, dir := range directions {
		if dir == d {
			return i
		}
	}
	return -1
}

// piece is one 8-connected component of a mask.
type piece struct {
	id     int32
	pixels []int // raster order
}

func splitPieces(mask *models.Mask) ([]int32, []piece) {
	labels, n := markers.LabelComponents(mask)
	pieces := make([]piece, n)
	for i := range pieces {
		pieces[i].id = int32(i + 1)
	}
	for i, l := range labels {
		if l > 0 {
			pieces[l-1].pixels = append(pieces[l-1].pixels, i)
		}
	}
	return labels, pieces
}

// TraceExternal returns the outer border of every 8-connected piece of mask,
// in raster order of each piece's first pixel. Points are pixel coordinates of
// the border pixels themselves.
func TraceExternal(mask *models.Mask) [][]image.Point {
	labels, pieces := splitPieces(mask)
	contours := make([][]image.Point, 0, len(pieces))
	for _, p := range pieces {
		contours = append(contours, traceBorder(mask.Width, mask.Height, labels, p))
	}
	return contours
}

// traceBorder follows the outer border of p, starting from its first raster
// pixel, whose west neighbour is guaranteed to lie outside the piece.
func traceBorder(width, height int, labels []int32, p piece) []image.Point {
	inside := func(pt image.Point) bool {
		if pt.X < 0 || pt.X >= width || pt.Y < 0 || pt.Y >= height {
			return false
		}
		return labels[pt.Y*width+pt.X] == p.id
	}

	start := image.Pt(p.pixels[0]%width, p.pixels[0]/width)
	contour := []image.Point{start}

	// Clockwise from west for the first neighbour in the piece.
	var p1 image.Point
	found := false
	for k := 0; k < 8; k++ {
		candidate := start.Add(directions[(west-k+8)%8])
		if inside(candidate) {
			p1, found = candidate, true
			break
		}
	}
	if !found {
		return contour
	}

	prev, cur := p1, start
	for {
		// Counter-clockwise around cur, beginning just past prev.
		from := directionOf(cur, prev)
		var next image.Point
		for k := 1; k <= 8; k++ {
			candidate := cur.Add(directions[(from+k)%8])
			if inside(candidate) {
				next = candidate
				break
			}
		}

		if next == start && cur == p1 {
			return contour
		}
		prev, cur = cur, next
		contour = append(contour, cur)
	}
}

// Simplify drops every point that lies on a straight run between its
// neighbours, leaving only the corners of the contour.
func Simplify(contour []image.Point) []image.Point {
	n := len(contour)
	if n <= 2 {
		return append([]image.Point(nil), contour...)
	}

	out := make([]image.Point, 0, n)
	for i, p := range contour {
		prev := contour[(i+n-1)%n]
		next := contour[(i+1)%n]
		if directionOf(prev, p) != directionOf(p, next) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = append(out, contour[0])
	}
	return out
}
