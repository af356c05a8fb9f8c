package layout

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPositions_Baseline(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if pts := Positions(nil); pts != nil {
			t.Errorf("got %v, want nil", pts)
		}
	})

	t.Run("single", func(t *testing.T) {
		pts := Positions([][]float32{{1, 2, 3}})
		if len(pts) != 1 || pts[0] != (Point{X: 100, Y: 250}) {
			t.Errorf("got %v, want [(100,250)]", pts)
		}
	})

	t.Run("pair", func(t *testing.T) {
		pts := Positions([][]float32{{1, 0}, {0, 1}})
		want := []Point{{X: 100, Y: 250}, {X: 300, Y: 250}}
		if len(pts) != 2 || pts[0] != want[0] || pts[1] != want[1] {
			t.Errorf("got %v, want %v", pts, want)
		}
	})
}

func TestPositions_IdenticalVectorsOnCircle(t *testing.T) {
	vecs := [][]float32{{1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 1}}
	pts := Positions(vecs)
	if len(pts) != 5 {
		t.Fatalf("got %d points, want 5", len(pts))
	}

	if !almostEqual(pts[0].X, 500, 1e-9) || !almostEqual(pts[0].Y, 300, 1e-9) {
		t.Errorf("first point = %v, want (500,300)", pts[0])
	}
	for i, p := range pts {
		r := math.Hypot(p.X-300, p.Y-300)
		if !almostEqual(r, 200, 1e-9) {
			t.Errorf("point %d at radius %v, want 200", i, r)
		}
	}
	// Evenly spread: consecutive points are 72 degrees apart.
	step := 2 * math.Pi / 5
	for i, p := range pts {
		angle := step * float64(i)
		wantX := 300 + 200*math.Cos(angle)
		wantY := 300 + 200*math.Sin(angle)
		if !almostEqual(p.X, wantX, 1e-9) || !almostEqual(p.Y, wantY, 1e-9) {
			t.Errorf("point %d = %v, want (%v,%v)", i, p, wantX, wantY)
		}
	}
}

func TestPositions_PCAFitsToCanvas(t *testing.T) {
	vecs := [][]float32{
		{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0},
		{0, 0, 0, 1}, {1, 1, 0, 0}, {0, 0, 1, 1},
	}
	pts := FitToCanvas(Positions(vecs))
	if len(pts) != len(vecs) {
		t.Fatalf("got %d points, want %d", len(pts), len(vecs))
	}
	for i, p := range pts {
		if p.X < CanvasMin || p.X > CanvasMin+CanvasSpan ||
			p.Y < CanvasMin || p.Y > CanvasMin+CanvasSpan {
			t.Errorf("point %d = %v, outside canvas", i, p)
		}
	}

	// The dominant axis should use the full canvas width.
	minX, maxX := pts[0].X, pts[0].X
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	if !almostEqual(minX, 100, 0.01) {
		t.Errorf("min X = %v, want 100", minX)
	}
	if !almostEqual(maxX, 900, 0.01) {
		t.Errorf("max X = %v, want 900", maxX)
	}
}

func TestPositions_CollinearInputsFlattenSecondAxis(t *testing.T) {
	// Points on a line have a single principal component; the second axis
	// carries no variance and pins to the canvas minimum.
	vecs := [][]float32{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	pts := FitToCanvas(Positions(vecs))
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4", len(pts))
	}
	for i, p := range pts {
		if !almostEqual(p.Y, 100, 0.1) {
			t.Errorf("point %d Y = %v, want 100", i, p.Y)
		}
	}

	// Equal input spacing survives the projection.
	d1 := math.Abs(pts[1].X - pts[0].X)
	d2 := math.Abs(pts[2].X - pts[1].X)
	d3 := math.Abs(pts[3].X - pts[2].X)
	if !almostEqual(d1, d2, 0.01) || !almostEqual(d2, d3, 0.01) {
		t.Errorf("uneven spacing: %v %v %v", d1, d2, d3)
	}
}

func TestPositions_GridFallback(t *testing.T) {
	// Mismatched dimensions defeat the decomposition, so placement falls
	// back to a square-ish grid.
	vecs := [][]float32{{1}, {1, 2}, {3}, {4}, {5}}
	pts := Positions(vecs)
	want := []Point{
		{X: 100, Y: 100}, {X: 250, Y: 100}, {X: 400, Y: 100},
		{X: 100, Y: 250}, {X: 250, Y: 250},
	}
	if len(pts) != len(want) {
		t.Fatalf("got %d points, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestFitToCanvas_AppliesToEveryBranch(t *testing.T) {
	assertFitted := func(t *testing.T, pts []Point) {
		t.Helper()
		minX, maxX := pts[0].X, pts[0].X
		for _, p := range pts {
			if p.X < CanvasMin || p.X > CanvasMin+CanvasSpan ||
				p.Y < CanvasMin || p.Y > CanvasMin+CanvasSpan {
				t.Errorf("point %v outside canvas", p)
			}
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
		}
		if !almostEqual(minX, 100, 0.01) || !almostEqual(maxX, 900, 0.01) {
			t.Errorf("X spans [%v,%v], want full canvas width", minX, maxX)
		}
	}

	t.Run("baseline pair", func(t *testing.T) {
		pts := FitToCanvas(Positions([][]float32{{1, 0}, {0, 1}}))
		want := []Point{{X: 100, Y: 100}, {X: 900, Y: 100}}
		for i := range want {
			if !almostEqual(pts[i].X, want[i].X, 0.01) || !almostEqual(pts[i].Y, want[i].Y, 0.01) {
				t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
			}
		}
	})

	t.Run("identical-vector circle", func(t *testing.T) {
		vecs := [][]float32{{1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 1}}
		assertFitted(t, FitToCanvas(Positions(vecs)))
	})

	t.Run("grid fallback", func(t *testing.T) {
		// Mismatched dimensions force the grid; a large n pushes raw grid
		// coordinates past the canvas, so the fit must rein them in.
		vecs := make([][]float32, 37)
		for i := range vecs {
			vecs[i] = []float32{float32(i)}
		}
		vecs[1] = []float32{1, 2}
		assertFitted(t, FitToCanvas(Positions(vecs)))
	})

	t.Run("empty", func(t *testing.T) {
		if pts := FitToCanvas(nil); pts != nil {
			t.Errorf("got %v, want nil", pts)
		}
	})
}
