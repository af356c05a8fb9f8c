// Package layout projects paper embeddings onto a 2-D canvas for map views.
package layout

import "math"

const (
	// CanvasMin and CanvasSpan bound the fitted coordinate range: every
	// projected axis lands in [CanvasMin, CanvasMin+CanvasSpan].
	CanvasMin  = 100.0
	CanvasSpan = 800.0

	baselineStart   = 100.0
	baselineSpacing = 200.0
	baselineY       = 250.0

	circleCenterX = 300.0
	circleCenterY = 300.0
	circleRadius  = 200.0

	gridCell   = 150.0
	gridOffset = 100.0
)

// Point is a 2-D canvas position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions places each embedding in raw layout coordinates. One or two
// inputs sit on a horizontal baseline; three or more identical vectors
// spread evenly on a circle; everything else goes through PCA, with a grid
// arrangement as the fallback when the decomposition fails. Callers apply
// FitToCanvas for display coordinates.
func Positions(vecs [][]float32) []Point {
	n := len(vecs)
	if n == 0 {
		return nil
	}
	if n <= 2 {
		pts := make([]Point, n)
		for i := range pts {
			pts[i] = Point{X: baselineStart + baselineSpacing*float64(i), Y: baselineY}
		}
		return pts
	}
	if allIdentical(vecs) {
		return circlePositions(n)
	}

	raw, ok := projectPCA(vecs)
	if !ok {
		return gridPositions(n)
	}
	return raw
}

func allIdentical(vecs [][]float32) bool {
	first := vecs[0]
	for _, v := range vecs[1:] {
		if len(v) != len(first) {
			return false
		}
		for j := range v {
			if v[j] != first[j] {
				return false
			}
		}
	}
	return true
}

func circlePositions(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{
			X: circleCenterX + circleRadius*math.Cos(angle),
			Y: circleCenterY + circleRadius*math.Sin(angle),
		}
	}
	return pts
}

func gridPositions(n int) []Point {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X: gridOffset + gridCell*float64(i%cols),
			Y: gridOffset + gridCell*float64(i/cols),
		}
	}
	return pts
}

// FitToCanvas rescales each axis independently into the canvas range,
// regardless of which branch produced the raw positions. The small
// denominator padding keeps a constant axis from dividing by zero and pins
// it at CanvasMin.
func FitToCanvas(raw []Point) []Point {
	if len(raw) == 0 {
		return nil
	}
	minX, maxX := raw[0].X, raw[0].X
	minY, maxY := raw[0].Y, raw[0].Y
	for _, p := range raw[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	const pad = 1e-6
	fitted := make([]Point, len(raw))
	for i, p := range raw {
		fitted[i] = Point{
			X: (p.X-minX)/(maxX-minX+pad)*CanvasSpan + CanvasMin,
			Y: (p.Y-minY)/(maxY-minY+pad)*CanvasSpan + CanvasMin,
		}
	}
	return fitted
}
