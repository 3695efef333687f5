package interp

import "errors"

// ghost is the symbolic vertex at infinity. A triangle (a, b, ghost) stands
// for the unbounded region beyond hull edge a->b.
const ghost = -1

var errDegenerate = errors.New("points are collinear or too few to triangulate")

type triangle [3]int

func (t triangle) isGhost() bool {
	return t[0] == ghost || t[1] == ghost || t[2] == ghost
}

type edge [2]int

// triangulation is a Delaunay triangulation with counter-clockwise triangles.
type triangulation struct {
	xs, ys    []float64
	triangles []triangle
	// neighbors[t][k] is the triangle across the edge opposite vertex k, or -1.
	neighbors [][3]int
	// adjacent[v] lists the vertices sharing an edge with v.
	adjacent [][]int
}

func orient(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// inCircle is positive when (px, py) lies strictly inside the circumcircle
// of the counter-clockwise triangle a, b, c.
func inCircle(ax, ay, bx, by, cx, cy, px, py float64) float64 {
	adx, ady := ax-px, ay-py
	bdx, bdy := bx-px, by-py
	cdx, cdy := cx-px, cy-py

	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	return ad*(bdx*cdy-cdx*bdy) + bd*(cdx*ady-adx*cdy) + cd*(adx*bdy-bdx*ady)
}

// triangulate builds the Delaunay triangulation of the given points with the
// Bowyer-Watson algorithm. Exact duplicate points are left out.
func triangulate(xs, ys []float64) (*triangulation, error) {
	n := len(xs)
	if n < 3 {
		return nil, errDegenerate
	}

	// Seed with the first non-degenerate triangle.
	i0, i1, i2 := 0, -1, -1
	for i := 1; i < n; i++ {
		if xs[i] != xs[i0] || ys[i] != ys[i0] {
			i1 = i
			break
		}
	}
	if i1 < 0 {
		return nil, errDegenerate
	}
	for i := i1 + 1; i < n; i++ {
		if orient(xs[i0], ys[i0], xs[i1], ys[i1], xs[i], ys[i]) != 0 {
			i2 = i
			break
		}
	}
	if i2 < 0 {
		return nil, errDegenerate
	}
	if orient(xs[i0], ys[i0], xs[i1], ys[i1], xs[i2], ys[i2]) < 0 {
		i1, i2 = i2, i1
	}

	m := &mesh{xs: xs, ys: ys, owner: make(map[edge]int, 6*n)}
	m.add(triangle{i0, i1, i2})
	m.add(triangle{i1, i0, ghost})
	m.add(triangle{i2, i1, ghost})
	m.add(triangle{i0, i2, ghost})

	seen := map[[2]float64]bool{
		{xs[i0], ys[i0]}: true,
		{xs[i1], ys[i1]}: true,
		{xs[i2], ys[i2]}: true,
	}

	for p := 0; p < n; p++ {
		key := [2]float64{xs[p], ys[p]}
		if seen[key] {
			continue
		}
		seen[key] = true
		m.insert(p)
	}

	t := &triangulation{xs: xs, ys: ys}
	for i, tri := range m.tris {
		if m.alive[i] && !tri.isGhost() {
			t.triangles = append(t.triangles, tri)
		}
	}
	t.link(n)
	return t, nil
}

// conflicts reports whether point p invalidates tri. For a ghost triangle
// the circumcircle degenerates to the open half-plane beyond its hull edge
// plus the open edge itself.
func conflicts(tri triangle, xs, ys []float64, p int) bool {
	px, py := xs[p], ys[p]
	if !tri.isGhost() {
		a, b, c := tri[0], tri[1], tri[2]
		return inCircle(xs[a], ys[a], xs[b], ys[b], xs[c], ys[c], px, py) > 0
	}

	a, b := ghostEdge(tri)
	o := orient(xs[a], ys[a], xs[b], ys[b], px, py)
	if o > 0 {
		return true
	}
	if o < 0 {
		return false
	}
	// Collinear with the hull edge: conflict only strictly between its ends.
	dot := (px-xs[a])*(xs[b]-xs[a]) + (py-ys[a])*(ys[b]-ys[a])
	length := (xs[b]-xs[a])*(xs[b]-xs[a]) + (ys[b]-ys[a])*(ys[b]-ys[a])
	return dot > 0 && dot < length
}

// ghostEdge returns the real edge of a ghost triangle in its stored direction.
func ghostEdge(tri triangle) (int, int) {
	if tri[0] == ghost {
		return tri[1], tri[2]
	}
	if tri[1] == ghost {
		return tri[2], tri[0]
	}
	return tri[0], tri[1]
}

// mesh is the triangulation under construction, ghost triangles included.
// Removed triangles stay in tris with alive unset.
type mesh struct {
	xs, ys []float64
	tris   []triangle
	alive  []bool
	// owner maps each directed edge to the triangle holding it in
	// counter-clockwise order.
	owner map[edge]int
	// last is a live real triangle where point location starts.
	last int
}

func (m *mesh) add(tri triangle) {
	i := len(m.tris)
	m.tris = append(m.tris, tri)
	m.alive = append(m.alive, true)
	for k := 0; k < 3; k++ {
		m.owner[edge{tri[k], tri[(k+1)%3]}] = i
	}
	if !tri.isGhost() {
		m.last = i
	}
}

func (m *mesh) remove(i int) {
	m.alive[i] = false
	tri := m.tris[i]
	for k := 0; k < 3; k++ {
		e := edge{tri[k], tri[(k+1)%3]}
		if j, ok := m.owner[e]; ok && j == i {
			delete(m.owner, e)
		}
	}
}

// twin returns the triangle across edge u->v.
func (m *mesh) twin(u, v int) (int, bool) {
	j, ok := m.owner[edge{v, u}]
	return j, ok
}

// locate returns a triangle in conflict with point p, walking from the last
// created triangle towards p. The walk falls back to a full scan when it
// does not settle.
func (m *mesh) locate(p int) int {
	xs, ys := m.xs, m.ys
	px, py := xs[p], ys[p]

	t := m.last
	if !m.alive[t] || m.tris[t].isGhost() {
		t = -1
		for i, tri := range m.tris {
			if m.alive[i] && !tri.isGhost() {
				t = i
				break
			}
		}
	}

	for steps := 0; t >= 0 && steps < len(m.tris); steps++ {
		tri := m.tris[t]
		next := -1
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if orient(xs[a], ys[a], xs[b], ys[b], px, py) < 0 {
				if j, ok := m.twin(a, b); ok {
					next = j
				}
				break
			}
		}
		if next < 0 || m.tris[next].isGhost() {
			if next >= 0 {
				t = next
			}
			if conflicts(m.tris[t], xs, ys, p) {
				return t
			}
			break
		}
		t = next
	}

	for i, tri := range m.tris {
		if m.alive[i] && conflicts(tri, xs, ys, p) {
			return i
		}
	}
	return -1
}

// insert adds point p: the cavity of triangles in conflict with p is grown
// from a located seed over shared edges, removed, and every cavity boundary
// edge is joined to p, keeping its orientation.
func (m *mesh) insert(p int) {
	seed := m.locate(p)
	if seed < 0 {
		return
	}

	cavity := []int{seed}
	inCavity := map[int]bool{seed: true}
	for i := 0; i < len(cavity); i++ {
		tri := m.tris[cavity[i]]
		for k := 0; k < 3; k++ {
			j, ok := m.twin(tri[k], tri[(k+1)%3])
			if !ok || inCavity[j] {
				continue
			}
			if conflicts(m.tris[j], m.xs, m.ys, p) {
				inCavity[j] = true
				cavity = append(cavity, j)
			}
		}
	}

	var boundary []edge
	for _, c := range cavity {
		tri := m.tris[c]
		for k := 0; k < 3; k++ {
			u, v := tri[k], tri[(k+1)%3]
			if j, ok := m.twin(u, v); ok && inCavity[j] {
				continue
			}
			boundary = append(boundary, edge{u, v})
		}
	}

	for _, c := range cavity {
		m.remove(c)
	}
	for _, e := range boundary {
		m.add(triangle{e[0], e[1], p})
	}
}

// link fills in triangle neighbors and vertex adjacency.
func (t *triangulation) link(n int) {
	owner := make(map[edge]int, 3*len(t.triangles))
	for i, tri := range t.triangles {
		for k := 0; k < 3; k++ {
			owner[edge{tri[k], tri[(k+1)%3]}] = i
		}
	}

	t.neighbors = make([][3]int, len(t.triangles))
	for i, tri := range t.triangles {
		for k := 0; k < 3; k++ {
			// The edge opposite vertex k runs from k+1 to k+2.
			u, v := tri[(k+1)%3], tri[(k+2)%3]
			if j, ok := owner[edge{v, u}]; ok {
				t.neighbors[i][k] = j
			} else {
				t.neighbors[i][k] = -1
			}
		}
	}

	t.adjacent = make([][]int, n)
	linked := make(map[edge]bool, 3*len(t.triangles))
	for _, tri := range t.triangles {
		for k := 0; k < 3; k++ {
			u, v := tri[k], tri[(k+1)%3]
			if u > v {
				u, v = v, u
			}
			if linked[edge{u, v}] {
				continue
			}
			linked[edge{u, v}] = true
			t.adjacent[u] = append(t.adjacent[u], v)
			t.adjacent[v] = append(t.adjacent[v], u)
		}
	}
}
