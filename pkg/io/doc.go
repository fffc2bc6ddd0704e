// Package io provides the codec layer: conversion between a
// [lattice.Lattice] and its on-disk formats.
//
// # Formats
//
// Three formats are supported, selected by file extension:
//
//   - .w3d: writegraph 3D, plain coordinates and edge list
//   - .w2d: writegraph 2D, plain coordinates and edge list
//   - .yml / .yaml: structured document carrying every lattice field
//
// Each format is one [Codec] implementation behind a common interface. Use
// [FormatFromPath] to select a format, [CodecFor] to obtain its codec, or the
// [ReadFile] / [WriteFile] wrappers that do both.
//
// # Writegraph
//
//	>>writegraph2d<<
//	4
//	0 0
//	1 0
//	1 1
//	0 1
//	0 1
//	0 3
//	1 2
//	2 3
//
// The header fixes the dimensionality. The count is the number of vertices,
// followed by one coordinate line each. Every remaining line up to the end of
// the file is one 0-based index pair per edge. Blank
// lines and lines starting with '#' are ignored. The legacy site-adjacency
// layout (1-based "index coords neighbours..." lines terminated by "0") is
// accepted on decode.
//
// Writegraph files carry no hopping strengths, time slices, name or comment.
// Encoding drops them and decoding yields the defaults, so a round trip
// returns [lattice.Lattice.StripLossy] of the input.
//
// # YAML
//
//	!lattice
//	name: square
//	comment: unit cell
//	nt: 16
//	dim: 2
//	sites: 4
//	positions:
//	  - [0, 0]
//	  - [1, 0]
//	  - [1, 1]
//	  - [0, 1]
//	adjacency:
//	  - [0, 1]
//	  - [0, 3]
//	  - [1, 2]
//	  - [2, 3]
//	hopping: [1, 0.5, 1, 1]
//
// The !lattice tag is optional on decode. hopping may be a single number
// applied to every edge, a list with one strength per adjacency entry, or
// omitted (all strengths 1); an adjacency entry [i, j, h] overrides both.
// When sites is given it must equal the number of positions.
//
// # Errors
//
// Unknown extensions fail with UNSUPPORTED_FORMAT before any file is touched.
// Structural problems (count mismatch, index out of range, wrong number of
// coordinates) fail with MALFORMED_LATTICE; nothing is truncated or padded.
// [WriteFile] never leaves a partially written output file behind.
//
// [lattice.Lattice]: github.com/matzehuels/latgraph/pkg/lattice.Lattice
// [lattice.Lattice.StripLossy]: github.com/matzehuels/latgraph/pkg/lattice.Lattice.StripLossy
package io
