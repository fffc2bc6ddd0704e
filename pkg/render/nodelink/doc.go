// Package nodelink plots lattices as node-link diagrams using Graphviz.
//
// # Overview
//
// Vertices are drawn at their lattice positions, pinned with pos="x,y!" and
// laid out by the neato engine so Graphviz does not move them. 3D lattices
// are projected onto the x-y plane. Edges are undirected.
//
// # Usage
//
// Convert a lattice to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
//   - Labels: draw the vertex index (or VertexLabels) inside every vertex
//   - Hopping: annotate edges whose hopping strength differs from 1
//   - Scale: inches per lattice unit
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
