// Package render converts plots between image formats.
//
// Plots are produced as SVG by the [nodelink] subpackage. The [ToPDF] and
// [ToPNG] functions convert SVG to other formats using the external
// rsvg-convert tool (from librsvg); [FormatFromPath] picks the image format
// from an output file name.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/latgraph/pkg/render/nodelink
package render
