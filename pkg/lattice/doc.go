// Package lattice provides the in-memory representation of a lattice: an
// undirected graph whose vertices carry a 2D or 3D embedding, with per-edge
// hopping strengths and optional physical annotations.
//
// # Overview
//
// A [Lattice] is the single domain entity of latgraph. Codecs decode files
// into it, generators build it, the relabelling engine reorders it, and the
// plotting front end draws it. Vertex indices are contiguous 0..n-1 and the
// index order is the labelling, so "relabelling" means producing a new
// Lattice through [Lattice.Reindex].
//
// # Construction
//
// [New] takes the dimensionality, one coordinate slice per vertex and a list
// of edges, and validates every invariant before returning:
//
//	lat, err := lattice.New(2,
//	    [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
//	    []lattice.Edge{lattice.E(0, 1), lattice.E(1, 2), lattice.E(2, 3), lattice.E(3, 0)},
//	    lattice.WithName("square"),
//	)
//
// Violations (index out of range, self-loops, duplicate edges, coordinate
// count not matching the dimension, non-finite numbers) return an error with
// code MALFORMED_LATTICE from [github.com/matzehuels/latgraph/pkg/errors].
//
// # Optional Fields
//
// Hopping strengths default to [DefaultHopping] via [E]. Time slices are 0
// when absent. Name and comment are empty when absent. Formats that cannot
// encode these fields yield exactly these defaults on decode; see
// [Lattice.StripLossy].
//
// # Immutability
//
// A Lattice is never mutated after construction. Accessors that return
// slices return copies, except [Lattice.Neighbours] which returns a read-only
// view for the traversal hot path.
package lattice
