// Package generate builds lattices procedurally.
//
// Every generator returns a fully constructed lattice that satisfies the
// invariants of [lattice.New]: vertices are numbered row by row, boundaries
// are open unless stated otherwise, and all hopping strengths are 1.
//
// The graphene ribbons [Armchair] and [Zigzag] and the [Nanotube] are always
// periodic along their length; [Kagome] is periodic in both directions when
// [Options.Periodic] is set. Bonds that wrap around a periodic boundary join
// vertices on opposite edges of the drawing, so only the other bonds are one
// spacing long.
//
//	l, err := generate.Triangle(7, 3, generate.Options{Spacing: 1.5})
package generate

import (
	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

const (
	// DefaultSpacing is the nearest-neighbour distance used when none is given.
	DefaultSpacing = 1.0

	// DefaultDim is the embedding dimension of generated lattices. All
	// generated lattices are planar; in 3D the z coordinate is zero.
	DefaultDim = 3
)

// Kinds lists the generator names understood by [ByName].
var Kinds = []string{"square", "triangle", "ring", "kagome", "agnr", "zgnr", "pyramid", "tube"}

// arity is the number of size arguments each kind takes.
var arity = map[string]int{
	"square":   2,
	"triangle": 2,
	"ring":     1,
	"kagome":   2,
	"agnr":     2,
	"zgnr":     2,
	"pyramid":  2,
	"tube":     3,
}

// Options holds the settings shared by all generators.
type Options struct {
	Spacing    float64 // nearest-neighbour distance; zero means DefaultSpacing
	Dim        int     // 2 or 3; zero means DefaultDim
	Name       string
	Comment    string
	TimeSlices int
	Periodic   bool // close the boundaries of generators that support it
}

func (o Options) withDefaults() (Options, error) {
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.Dim == 0 {
		o.Dim = DefaultDim
	}
	if o.Spacing < 0 {
		return o, errors.New(errors.ErrCodeInvalidInput, "spacing must be positive, got %g", o.Spacing)
	}
	if o.Dim != 2 && o.Dim != 3 {
		return o, errors.New(errors.ErrCodeInvalidInput, "dimension must be 2 or 3, got %d", o.Dim)
	}
	return o, nil
}

// ByName dispatches to the generator called kind. size holds the generator's
// integer arguments: columns and rows for "square", "triangle", "kagome" and
// "pyramid", dimer lines and hexagons for "agnr", zigzag lines and unit cells
// for "zgnr", the vertex count for "ring", and the chiral indices n, m and
// the unit cell count for "tube".
func ByName(kind string, size []int, opts Options) (*lattice.Lattice, error) {
	want, ok := arity[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown generator %q", kind)
	}
	if len(size) != want {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s takes %d size argument(s), got %d", kind, want, len(size))
	}

	switch kind {
	case "square":
		return Square(size[0], size[1], opts)
	case "triangle":
		return Triangle(size[0], size[1], opts)
	case "kagome":
		return Kagome(size[0], size[1], opts)
	case "agnr":
		return Armchair(size[0], size[1], opts)
	case "zgnr":
		return Zigzag(size[0], size[1], opts)
	case "pyramid":
		return Pyramid(size[0], size[1], opts)
	case "tube":
		return Nanotube(size[0], size[1], size[2], opts)
	default:
		return Ring(size[0], opts)
	}
}

// builder accumulates planar vertices and edges.
type builder struct {
	dim       int
	positions [][]float64
	edges     []lattice.Edge
}

func (b *builder) vertex(x, y float64) {
	p := []float64{x, y}
	if b.dim == 3 {
		p = append(p, 0)
	}
	b.positions = append(b.positions, p)
}

// vertex3 adds a vertex off the plane. The builder must be 3D.
func (b *builder) vertex3(x, y, z float64) {
	b.positions = append(b.positions, []float64{x, y, z})
}

func (b *builder) edge(i, j int) {
	b.edges = append(b.edges, lattice.E(i, j))
}

func (b *builder) build(o Options) (*lattice.Lattice, error) {
	return lattice.New(o.Dim, b.positions, b.edges,
		lattice.WithName(o.Name),
		lattice.WithComment(o.Comment),
		lattice.WithTimeSlices(o.TimeSlices),
	)
}
