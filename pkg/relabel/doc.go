// Package relabel recomputes the vertex order of a lattice from a geometric
// traversal of a reference lattice.
//
// # Traversal
//
// The reference lattice supplies positions and adjacency. Traversal starts at
// the vertex closest to the centroid of the reference positions and then
// repeatedly moves to an unvisited neighbour of the current vertex, chosen by
// the [Method]:
//
//   - [Innermost]: the neighbour closest to the centroid.
//   - [Anticlockwise]: the neighbour reached by the smallest positive
//     anticlockwise turn about the centroid (see below).
//
// Ties within an absolute tolerance of 1e-12 go to the lowest original index,
// so the result is reproducible. When the current vertex has no unvisited
// neighbour while other vertices remain, traversal fails with a
// STUCK_TRAVERSAL error; it never jumps to another component.
//
// # Anticlockwise convention
//
// Angles are measured in the x-y plane (3D positions are projected) about the
// centroid c. For current vertex u and candidate v the turn is the angle from
// the ray c→u to the ray c→v, taken anticlockwise and normalized into
// (0, 2π]. A candidate on the ray c→u therefore ranks last (2π), as does a
// candidate lying on c itself. When u lies on c the positive x axis serves as
// the reference ray.
//
// # Result
//
// The traversal yields an order: order[k] is the original index of the vertex
// that receives label k. [Apply] reindexes a target lattice with that order.
// The target may use a different embedding, even a different dimensionality,
// as long as it shares vertex identity with the reference.
//
//	out, order, err := relabel.Apply(target, ref, relabel.Innermost,
//	    relabel.WithTopologyCheck())
package relabel
