// Package pkg provides the core libraries of latgraph.
//
// # Overview
//
// latgraph converts lattice descriptions between file formats, relabels
// their vertices by a geometric traversal of a reference lattice, generates
// simple lattices and plots them. The pkg directory is organized as:
//
//  1. [lattice] - The lattice data model and permutation helpers
//  2. [io] - Codecs for the writegraph (W3D, W2D) and YAML formats
//  3. [relabel] - The innermost and anticlockwise traversal engine
//  4. [generate] - Lattice and graphene ribbon generators
//  5. [render] - Plotting via Graphviz and rsvg-convert
//  6. [pipeline] - Orchestration (load → relabel → render → write)
//
// # Architecture
//
// The data flow through latgraph:
//
//	Lattice file (.w3d, .w2d, .yml)      Label file
//	         ↓                                ↓
//	    [io] package (decode)  ←───────  [io] package
//	         ↓                                ↓
//	    [relabel] package (traverse the label lattice, reindex)
//	         ↓
//	    [io] package (encode) and [render/nodelink] (plot)
//	         ↓
//	    Lattice file, SVG/PDF/PNG
//
// # Quick Start
//
//	ref, _ := io.ReadFile("labels.w2d")
//	target, _ := io.ReadFile("lattice.w3d")
//	relabelled, order, err := relabel.Apply(target, ref, relabel.Anticlockwise)
//	if err != nil {
//	    return err
//	}
//	_ = io.WriteFile("lattice.yml", relabelled)
//
// [lattice]: https://pkg.go.dev/github.com/matzehuels/latgraph/pkg/lattice
// [io]: https://pkg.go.dev/github.com/matzehuels/latgraph/pkg/io
// [relabel]: https://pkg.go.dev/github.com/matzehuels/latgraph/pkg/relabel
// [generate]: https://pkg.go.dev/github.com/matzehuels/latgraph/pkg/generate
// [render]: https://pkg.go.dev/github.com/matzehuels/latgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/latgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/latgraph/pkg/pipeline
package pkg
