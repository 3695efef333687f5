package interp

import (
	"math"
	"testing"
)

// scatter returns n deterministic pseudo-random sites in [0, 10) x [0, 10).
func scatter(n int) (xs, ys []float64) {
	state := uint64(42)
	next := func() float64 {
		state = state*6364136223846793005 + 1442695040888963407
		return float64(state>>11) / float64(1<<53) * 10
	}
	for i := 0; i < n; i++ {
		xs = append(xs, next())
		ys = append(ys, next())
	}
	return xs, ys
}

func TestTriangulationIsDelaunay(t *testing.T) {
	xs, ys := scatter(60)
	checkDelaunay(t, xs, ys)
}

func TestTriangulationLargeAndDegenerateInputs(t *testing.T) {
	xs, ys := scatter(1500)
	checkDelaunay(t, xs, ys)

	// A regular grid is full of cocircular and collinear sites.
	var gx, gy []float64
	for i := 0; i < 15; i++ {
		for j := 0; j < 15; j++ {
			gx = append(gx, float64(i))
			gy = append(gy, float64(j))
		}
	}
	checkDelaunay(t, gx, gy)
}

func checkDelaunay(t *testing.T, xs, ys []float64) {
	t.Helper()
	tri, err := triangulate(xs, ys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tri.triangles) == 0 {
		t.Fatal("expected triangles")
	}

	for i, v := range tri.triangles {
		if orient(xs[v[0]], ys[v[0]], xs[v[1]], ys[v[1]], xs[v[2]], ys[v[2]]) <= 0 {
			t.Fatalf("triangle %d is not counter-clockwise", i)
		}
		for p := range xs {
			if p == v[0] || p == v[1] || p == v[2] {
				continue
			}
			if inCircle(xs[v[0]], ys[v[0]], xs[v[1]], ys[v[1]], xs[v[2]], ys[v[2]], xs[p], ys[p]) > 1e-9 {
				t.Fatalf("point %d lies inside the circumcircle of triangle %d", p, i)
			}
		}
		for k, nb := range tri.neighbors[i] {
			if nb < 0 {
				continue
			}
			found := false
			for _, back := range tri.neighbors[nb] {
				if back == i {
					found = true
				}
			}
			if !found {
				t.Fatalf("neighbor %d of triangle %d (side %d) does not link back", nb, i, k)
			}
		}
	}

	// Euler: a triangulation of n points with h on the hull has 2n-2-h triangles.
	hull := 0
	for i := range tri.triangles {
		for _, nb := range tri.neighbors[i] {
			if nb < 0 {
				hull++
			}
		}
	}
	if want := 2*len(xs) - 2 - hull; len(tri.triangles) != want {
		t.Errorf("expected %d triangles, got %d", want, len(tri.triangles))
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	cases := map[string][2][]float64{
		"too few":    {{0, 1}, {0, 1}},
		"collinear":  {{0, 1, 2, 3}, {0, 1, 2, 3}},
		"duplicates": {{1, 1, 1}, {2, 2, 2}},
	}
	for name, c := range cases {
		if _, err := triangulate(c[0], c[1]); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCubicExactAtSites(t *testing.T) {
	xs, ys := scatter(40)
	values := make([]float64, len(xs))
	for i := range xs {
		values[i] = math.Sin(xs[i]) + math.Cos(ys[i]/2) + 10
	}

	ct, err := New(xs, ys, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range xs {
		got := ct.At(xs[i], ys[i])
		if math.Abs(got-values[i]) > 1e-9 {
			t.Errorf("site %d: expected %v, got %v", i, values[i], got)
		}
	}
}

func TestCubicReproducesLinearField(t *testing.T) {
	xs, ys := scatter(30)
	field := func(x, y float64) float64 { return 2.5*x - 1.25*y + 7 }

	values := make([]float64, len(xs))
	for i := range xs {
		values[i] = field(xs[i], ys[i])
	}

	ct, err := New(xs, ys, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range [][2]float64{{5, 5}, {4.2, 6.1}, {6.6, 3.3}} {
		got := ct.At(p[0], p[1])
		if math.IsNaN(got) {
			t.Fatalf("point %v unexpectedly outside the hull", p)
		}
		if want := field(p[0], p[1]); math.Abs(got-want) > 1e-3 {
			t.Errorf("point %v: expected %v, got %v", p, want, got)
		}
	}
}

func TestCubicOutsideHull(t *testing.T) {
	xs := []float64{0, 1, 0, 1}
	ys := []float64{0, 0, 1, 1}
	values := []float64{1, 2, 3, 4}

	for _, p := range [][2]float64{{2, 2}, {-0.1, 0.5}, {0.5, 1.0001}} {
		if got := Cubic(xs, ys, values, p[0], p[1]); !math.IsNaN(got) {
			t.Errorf("point %v: expected NaN, got %v", p, got)
		}
	}

	// Hull boundary and interior are defined.
	for _, p := range [][2]float64{{0.5, 0}, {0.5, 0.5}, {1, 1}} {
		if got := Cubic(xs, ys, values, p[0], p[1]); math.IsNaN(got) {
			t.Errorf("point %v: expected a value, got NaN", p)
		}
	}
}

func TestCubicInsufficientSamples(t *testing.T) {
	if got := Cubic([]float64{0, 1}, []float64{0, 1}, []float64{1, 2}, 0.5, 0.5); !math.IsNaN(got) {
		t.Errorf("expected NaN for two samples, got %v", got)
	}
	if _, err := New([]float64{0, 1, 2}, []float64{0, 1}, []float64{1, 2, 3}); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestCubicBilinearSquare(t *testing.T) {
	// f = x + y on the unit square is linear, so the centre must be 1.
	xs := []float64{0, 1, 0, 1}
	ys := []float64{0, 0, 1, 1}
	values := []float64{0, 1, 1, 2}

	got := Cubic(xs, ys, values, 0.5, 0.5)
	if math.Abs(got-1) > 1e-4 {
		t.Errorf("expected 1, got %v", got)
	}
}
