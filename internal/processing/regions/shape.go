package regions

import (
	"image"
	"math"
)

// PolygonArea returns the enclosed area of a closed polygon by the shoelace
// formula. Fewer than three points enclose nothing.
func PolygonArea(points []image.Point) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum int
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(sum)) / 2
}

// Perimeter is the length of the closed polyline through points.
func Perimeter(points []image.Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var total float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		total += math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
	}
	return total
}

// Circularity is 4πA/P², 1 for a perfect circle and approaching 0 for a line.
func Circularity(area, perimeter float64) float64 {
	if perimeter == 0 {
		return 0
	}
	return 4 * math.Pi * area / (perimeter * perimeter)
}

func bounds(points []image.Point) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	// Max is exclusive.
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}
