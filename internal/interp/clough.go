// Package interp implements piecewise cubic interpolation of scattered 2-D
// data: a Clough-Tocher C1 surface over the Delaunay triangulation of the
// sample sites. It matches the behaviour of SciPy's griddata(method="cubic"):
// exact at the sites, smooth inside their convex hull and undefined (NaN)
// outside it.
package interp

import (
	"errors"
	"math"
)

const (
	gradientMaxIter = 400
	gradientTol     = 1e-6

	// eps is the barycentric tolerance used when locating a query point.
	eps = 100 * 2.220446049250313e-16
)

var errLength = errors.New("points and values differ in length")

// CloughTocher is an immutable interpolant built from a fixed sample set.
// It is safe for concurrent use.
type CloughTocher struct {
	tri    *triangulation
	values []float64
	grads  [][2]float64
}

// New triangulates the sample sites (xs[i], ys[i]) carrying values[i] and
// estimates the vertex gradients. Fewer than three distinct sites, or sites
// that are all collinear, cannot be triangulated and yield an error.
func New(xs, ys, values []float64) (*CloughTocher, error) {
	if len(xs) != len(ys) || len(xs) != len(values) {
		return nil, errLength
	}

	tri, err := triangulate(xs, ys)
	if err != nil {
		return nil, err
	}

	ct := &CloughTocher{
		tri:    tri,
		values: values,
		grads:  make([][2]float64, len(values)),
	}
	ct.estimateGradients()
	return ct, nil
}

// Cubic interpolates the samples at (x, y) in one shot. It returns NaN when
// the samples cannot be triangulated or the point lies outside their hull.
func Cubic(xs, ys, values []float64, x, y float64) float64 {
	ct, err := New(xs, ys, values)
	if err != nil {
		return math.NaN()
	}
	return ct.At(x, y)
}

// estimateGradients picks the vertex gradients that minimise the second
// derivative of the piecewise cubic along every triangulation edge, solving
// the resulting sparse system with Gauss-Seidel sweeps.
func (ct *CloughTocher) estimateGradients() {
	xs, ys, f := ct.tri.xs, ct.tri.ys, ct.values

	for iter := 0; iter < gradientMaxIter; iter++ {
		maxChange := 0.0

		for i := range f {
			var q00, q01, q11, s0, s1 float64
			for _, j := range ct.tri.adjacent[i] {
				ex := xs[j] - xs[i]
				ey := ys[j] - ys[i]
				l := math.Sqrt(ex*ex + ey*ey)
				l3 := l * l * l

				df2 := -ex*ct.grads[j][0] - ey*ct.grads[j][1]
				r := 6*(f[i]-f[j]) - 2*df2

				q00 += 4 * ex * ex / l3
				q01 += 4 * ex * ey / l3
				q11 += 4 * ey * ey / l3
				s0 += r * ex / l3
				s1 += r * ey / l3
			}

			det := q00*q11 - q01*q01
			if det == 0 {
				continue
			}
			r0 := (q11*s0 - q01*s1) / det
			r1 := (-q01*s0 + q00*s1) / det

			change := math.Max(math.Abs(ct.grads[i][0]+r0), math.Abs(ct.grads[i][1]+r1))
			ct.grads[i] = [2]float64{-r0, -r1}

			change /= math.Max(1, math.Max(math.Abs(r0), math.Abs(r1)))
			maxChange = math.Max(maxChange, change)
		}

		if maxChange < gradientTol {
			return
		}
	}
}

// barycentric returns the coordinates of (x, y) relative to triangle t.
func (ct *CloughTocher) barycentric(t int, x, y float64) (c [3]float64) {
	xs, ys := ct.tri.xs, ct.tri.ys
	v := ct.tri.triangles[t]
	x0, y0 := xs[v[0]], ys[v[0]]
	x1, y1 := xs[v[1]], ys[v[1]]
	x2, y2 := xs[v[2]], ys[v[2]]

	det := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	c[1] = ((x-x0)*(y2-y0) - (x2-x0)*(y-y0)) / det
	c[2] = ((x1-x0)*(y-y0) - (x-x0)*(y1-y0)) / det
	c[0] = 1 - c[1] - c[2]
	return c
}

// locate finds a triangle containing (x, y), or -1.
func (ct *CloughTocher) locate(x, y float64) (int, [3]float64) {
	for t := range ct.tri.triangles {
		c := ct.barycentric(t, x, y)
		if c[0] >= -eps && c[1] >= -eps && c[2] >= -eps &&
			c[0] <= 1+eps && c[1] <= 1+eps && c[2] <= 1+eps {
			return t, c
		}
	}
	return -1, [3]float64{}
}

// At evaluates the interpolant at (x, y). Points outside the convex hull of
// the sample sites yield NaN.
func (ct *CloughTocher) At(x, y float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.NaN()
	}
	t, b := ct.locate(x, y)
	if t < 0 {
		return math.NaN()
	}
	return ct.evaluate(t, b)
}

// evaluate computes the Clough-Tocher split-triangle Bezier patch of
// triangle t at barycentric coordinates b.
func (ct *CloughTocher) evaluate(t int, b [3]float64) float64 {
	xs, ys := ct.tri.xs, ct.tri.ys
	v := ct.tri.triangles[t]

	e12x, e12y := xs[v[1]]-xs[v[0]], ys[v[1]]-ys[v[0]]
	e23x, e23y := xs[v[2]]-xs[v[1]], ys[v[2]]-ys[v[1]]
	e31x, e31y := xs[v[0]]-xs[v[2]], ys[v[0]]-ys[v[2]]

	f1, f2, f3 := ct.values[v[0]], ct.values[v[1]], ct.values[v[2]]
	g1, g2, g3 := ct.grads[v[0]], ct.grads[v[1]], ct.grads[v[2]]

	df12 := g1[0]*e12x + g1[1]*e12y
	df21 := -(g2[0]*e12x + g2[1]*e12y)
	df23 := g2[0]*e23x + g2[1]*e23y
	df32 := -(g3[0]*e23x + g3[1]*e23y)
	df31 := g3[0]*e31x + g3[1]*e31y
	df13 := -(g1[0]*e31x + g1[1]*e31y)

	c3000 := f1
	c2100 := (df12 + 3*c3000) / 3
	c2010 := (df13 + 3*c3000) / 3
	c0300 := f2
	c1200 := (df21 + 3*c0300) / 3
	c0210 := (df23 + 3*c0300) / 3
	c0030 := f3
	c1020 := (df31 + 3*c0030) / 3
	c0120 := (df32 + 3*c0030) / 3

	c2001 := (c2100 + c2010 + c3000) / 3
	c0201 := (c1200 + c0300 + c0210) / 3
	c0021 := (c1020 + c0120 + c0030) / 3

	// Cross-boundary derivatives are taken towards the neighbouring
	// triangle's centroid, which keeps the surface affine invariant.
	var g [3]float64
	for k := 0; k < 3; k++ {
		nb := ct.tri.neighbors[t][k]
		if nb < 0 {
			g[k] = -0.5
			continue
		}

		w := ct.tri.triangles[nb]
		cx := (xs[w[0]] + xs[w[1]] + xs[w[2]]) / 3
		cy := (ys[w[0]] + ys[w[1]] + ys[w[2]]) / 3
		c := ct.barycentric(t, cx, cy)

		switch k {
		case 0:
			g[k] = (2*c[2] + c[1] - 1) / (2 - 3*c[2] - 3*c[1])
		case 1:
			g[k] = (2*c[0] + c[2] - 1) / (2 - 3*c[0] - 3*c[2])
		case 2:
			g[k] = (2*c[1] + c[0] - 1) / (2 - 3*c[1] - 3*c[0])
		}
	}

	c0111 := (g[0]*(-c0300+3*c0210-3*c0120+c0030) + (-c0300 + 2*c0210 - c0120 + c0021 + c0201)) / 2
	c1011 := (g[1]*(-c0030+3*c1020-3*c2010+c3000) + (-c0030 + 2*c1020 - c2010 + c2001 + c0021)) / 2
	c1101 := (g[2]*(-c3000+3*c2100-3*c1200+c0300) + (-c3000 + 2*c2100 - c1200 + c2001 + c0201)) / 2

	c1002 := (c1101 + c1011 + c2001) / 3
	c0102 := (c1101 + c0111 + c0201) / 3
	c0012 := (c1011 + c0111 + c0021) / 3

	c0003 := (c1002 + c0102 + c0012) / 3

	// Extended barycentric coordinates over the three sub-triangles; one of
	// b1, b2, b3 is always zero.
	minval := math.Min(b[0], math.Min(b[1], b[2]))
	b1 := b[0] - minval
	b2 := b[1] - minval
	b3 := b[2] - minval
	b4 := 3 * minval

	return b1*b1*b1*c3000 + 3*b1*b1*b2*c2100 + 3*b1*b1*b3*c2010 +
		3*b1*b1*b4*c2001 + 3*b1*b2*b2*c1200 +
		6*b1*b2*b4*c1101 + 3*b1*b3*b3*c1020 + 6*b1*b3*b4*c1011 +
		3*b1*b4*b4*c1002 + b2*b2*b2*c0300 + 3*b2*b2*b3*c0210 +
		3*b2*b2*b4*c0201 + 3*b2*b3*b3*c0120 + 6*b2*b3*b4*c0111 +
		3*b2*b4*b4*c0102 + b3*b3*b3*c0030 + 3*b3*b3*b4*c0021 +
		3*b3*b4*b4*c0012 + b4*b4*b4*c0003
}
