package lattice

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/latgraph/pkg/errors"
)

// DefaultHopping is the hopping strength assumed for an edge when a format
// does not encode one.
const DefaultHopping = 1.0

// Point is a vertex position. Two-dimensional lattices leave the third
// component at zero.
type Point [3]float64

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	d := p.Sub(q)
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
}

// Edge is an undirected connection between vertices I and J with its
// hopping strength. Construct edges with [E] to get the default strength.
type Edge struct {
	I, J    int
	Hopping float64
}

// E returns the edge i-j with [DefaultHopping].
func E(i, j int) Edge { return Edge{I: i, J: j, Hopping: DefaultHopping} }

// Key returns the endpoints ordered low to high.
func (e Edge) Key() [2]int {
	if e.I > e.J {
		return [2]int{e.J, e.I}
	}
	return [2]int{e.I, e.J}
}

// Lattice is a graph with a 2D or 3D embedding and physical annotations.
// Vertex indices are contiguous 0..Len()-1 and the index order is the labelling.
//
// A Lattice is immutable after construction: every transformation returns a
// new value. The zero value is an empty 3D lattice.
type Lattice struct {
	dim        int
	positions  []Point
	edges      []Edge        // canonical (I < J), sorted
	adj        [][]int       // sorted neighbour lists
	edgeIndex  map[[2]int]int // canonical key -> index into edges
	name       string
	comment    string
	timeSlices int
}

// Option configures optional lattice fields in [New].
type Option func(*Lattice)

// WithName sets the lattice name.
func WithName(name string) Option { return func(l *Lattice) { l.name = name } }

// WithComment sets the free-text comment.
func WithComment(comment string) Option { return func(l *Lattice) { l.comment = comment } }

// WithTimeSlices sets the number of temporal layers. Zero means absent.
func WithTimeSlices(nt int) Option { return func(l *Lattice) { l.timeSlices = nt } }

// New builds a lattice of the given dimensionality (2 or 3) and checks every
// structural invariant eagerly. Each position must have exactly dim
// coordinates; edges must join two distinct existing vertices and may not
// repeat in either orientation. Violations return a MALFORMED_LATTICE error.
func New(dim int, positions [][]float64, edges []Edge, opts ...Option) (*Lattice, error) {
	if dim != 2 && dim != 3 {
		return nil, errors.Malformed("dimension must be 2 or 3, got %d", dim)
	}

	pts := make([]Point, len(positions))
	for i, p := range positions {
		if len(p) != dim {
			return nil, errors.Malformed("vertex %d: expected %d coordinates, got %d", i, dim, len(p))
		}
		for k, x := range p {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, errors.Malformed("vertex %d: coordinate %d is not finite", i, k)
			}
			pts[i][k] = x
		}
	}

	n := len(pts)
	canon := make([]Edge, 0, len(edges))
	seen := make(map[[2]int]bool, len(edges))
	for k, e := range edges {
		if e.I < 0 || e.I >= n || e.J < 0 || e.J >= n {
			return nil, errors.Malformed("edge %d (%d-%d): index out of range [0, %d)", k, e.I, e.J, n)
		}
		if e.I == e.J {
			return nil, errors.Malformed("edge %d: self-loop on vertex %d", k, e.I)
		}
		if math.IsNaN(e.Hopping) || math.IsInf(e.Hopping, 0) {
			return nil, errors.Malformed("edge %d (%d-%d): hopping strength is not finite", k, e.I, e.J)
		}
		key := e.Key()
		if seen[key] {
			return nil, errors.Malformed("edge %d: duplicate edge %d-%d", k, key[0], key[1])
		}
		seen[key] = true
		canon = append(canon, Edge{I: key[0], J: key[1], Hopping: e.Hopping})
	}

	l := build(dim, pts, canon)
	for _, opt := range opts {
		opt(l)
	}
	if l.timeSlices < 0 {
		return nil, errors.Malformed("time slices must not be negative, got %d", l.timeSlices)
	}
	return l, nil
}

// build assembles a lattice from already validated canonical edges.
func build(dim int, pts []Point, edges []Edge) *Lattice {
	slices.SortFunc(edges, compareEdges)

	adj := make([][]int, len(pts))
	index := make(map[[2]int]int, len(edges))
	for k, e := range edges {
		adj[e.I] = append(adj[e.I], e.J)
		adj[e.J] = append(adj[e.J], e.I)
		index[[2]int{e.I, e.J}] = k
	}
	for _, nb := range adj {
		slices.Sort(nb)
	}

	return &Lattice{
		dim:       dim,
		positions: pts,
		edges:     edges,
		adj:       adj,
		edgeIndex: index,
	}
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.I, b.I); c != 0 {
		return c
	}
	return cmp.Compare(a.J, b.J)
}

// Len returns the number of vertices.
func (l *Lattice) Len() int { return len(l.positions) }

// Dim returns the embedding dimensionality (2 or 3). The zero Lattice reports 3.
func (l *Lattice) Dim() int {
	if l.dim == 0 {
		return 3
	}
	return l.dim
}

// Name returns the lattice name, or "" if unset.
func (l *Lattice) Name() string { return l.name }

// Comment returns the free-text comment, or "" if unset.
func (l *Lattice) Comment() string { return l.comment }

// TimeSlices returns the number of temporal layers, or 0 if absent.
func (l *Lattice) TimeSlices() int { return l.timeSlices }

// Position returns the position of vertex i.
func (l *Lattice) Position(i int) Point { return l.positions[i] }

// Coords returns the Dim() coordinates of vertex i as a fresh slice.
func (l *Lattice) Coords(i int) []float64 {
	return slices.Clone(l.positions[i][:l.Dim()])
}

// Positions returns a copy of all vertex positions in label order.
func (l *Lattice) Positions() []Point { return slices.Clone(l.positions) }

// Edges returns a copy of all edges, canonical (I < J) and sorted.
func (l *Lattice) Edges() []Edge { return slices.Clone(l.edges) }

// EdgeCount returns the number of edges.
func (l *Lattice) EdgeCount() int { return len(l.edges) }

// Neighbours returns the neighbours of vertex i in ascending index order.
// The returned slice should not be modified.
func (l *Lattice) Neighbours(i int) []int { return l.adj[i] }

// Degree returns the number of neighbours of vertex i.
func (l *Lattice) Degree(i int) int { return len(l.adj[i]) }

// HasEdge reports whether i and j are adjacent.
func (l *Lattice) HasEdge(i, j int) bool {
	_, ok := l.edgeIndex[E(i, j).Key()]
	return ok
}

// Hopping returns the hopping strength of edge i-j and whether it exists.
func (l *Lattice) Hopping(i, j int) (float64, bool) {
	k, ok := l.edgeIndex[E(i, j).Key()]
	if !ok {
		return 0, false
	}
	return l.edges[k].Hopping, true
}

// Centroid returns the mean of all vertex positions, or the origin for an
// empty lattice.
func (l *Lattice) Centroid() Point {
	var c Point
	if len(l.positions) == 0 {
		return c
	}
	for _, p := range l.positions {
		for k := range c {
			c[k] += p[k]
		}
	}
	n := float64(len(l.positions))
	for k := range c {
		c[k] /= n
	}
	return c
}

// Bounds returns the per-axis minimum and maximum of all positions.
// Both are the origin for an empty lattice.
func (l *Lattice) Bounds() (lo, hi Point) {
	if len(l.positions) == 0 {
		return lo, hi
	}
	lo, hi = l.positions[0], l.positions[0]
	for _, p := range l.positions[1:] {
		for k := range p {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return lo, hi
}

// DegreeRange returns the smallest and largest vertex degree.
func (l *Lattice) DegreeRange() (lo, hi int) {
	for i, nb := range l.adj {
		if i == 0 || len(nb) < lo {
			lo = len(nb)
		}
		if len(nb) > hi {
			hi = len(nb)
		}
	}
	return lo, hi
}

// ComponentCount returns the number of connected components. An empty
// lattice has none.
func (l *Lattice) ComponentCount() int {
	seen := make([]bool, len(l.adj))
	count := 0
	var stack []int
	for s := range l.adj {
		if seen[s] {
			continue
		}
		count++
		seen[s] = true
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range l.adj[v] {
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return count
}

// Reindex returns a new lattice in which new vertex k is old vertex order[k].
// Positions, edges and hopping strengths are carried over and only renumbered;
// name, comment and time slices are copied unchanged. order must be a
// permutation of 0..Len()-1, otherwise a MALFORMED_LATTICE error is returned
// and the receiver is left untouched.
func (l *Lattice) Reindex(order []int) (*Lattice, error) {
	if !IsPermutation(order, l.Len()) {
		return nil, errors.Malformed("reindex: order is not a permutation of 0..%d", l.Len()-1)
	}
	inv := Inverse(order)

	pts := make([]Point, len(order))
	for k, old := range order {
		pts[k] = l.positions[old]
	}
	edges := make([]Edge, len(l.edges))
	for k, e := range l.edges {
		edges[k] = Edge{I: inv[e.I], J: inv[e.J], Hopping: e.Hopping}
		key := edges[k].Key()
		edges[k].I, edges[k].J = key[0], key[1]
	}

	out := build(l.Dim(), pts, edges)
	out.copyFields(l)
	return out, nil
}

// StripLossy returns a copy with every field a writegraph file cannot carry
// reset to its default: hopping strengths become 1, time slices become absent
// and name and comment are cleared.
func (l *Lattice) StripLossy() *Lattice {
	edges := make([]Edge, len(l.edges))
	for k, e := range l.edges {
		edges[k] = E(e.I, e.J)
	}
	return build(l.Dim(), slices.Clone(l.positions), edges)
}

// SameTopology reports whether other has the same vertex count and edge set.
// Positions, dimensionality and hopping strengths are not compared.
func (l *Lattice) SameTopology(other *Lattice) bool {
	if l.Len() != other.Len() || len(l.edges) != len(other.edges) {
		return false
	}
	for k, e := range l.edges {
		if e.I != other.edges[k].I || e.J != other.edges[k].J {
			return false
		}
	}
	return true
}

// Equal reports whether l and other describe the same lattice. Positions and
// hopping strengths are compared with absolute tolerance tol; edges are
// compared as sets; dimensionality, name, comment and time slices exactly.
func (l *Lattice) Equal(other *Lattice, tol float64) bool {
	if l.Dim() != other.Dim() || l.name != other.name || l.comment != other.comment ||
		l.timeSlices != other.timeSlices || !l.SameTopology(other) {
		return false
	}
	for i, p := range l.positions {
		for k := range p {
			if math.Abs(p[k]-other.positions[i][k]) > tol {
				return false
			}
		}
	}
	for k, e := range l.edges {
		if math.Abs(e.Hopping-other.edges[k].Hopping) > tol {
			return false
		}
	}
	return true
}

func (l *Lattice) copyFields(src *Lattice) {
	l.name = src.name
	l.comment = src.comment
	l.timeSlices = src.timeSlices
}
