package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/latgraph/pkg/lattice"
	"github.com/matzehuels/latgraph/pkg/render"
)

// DefaultScale is the plot size of one lattice unit in inches.
const DefaultScale = 1.0

// Options configures lattice plots.
type Options struct {
	// Labels draws each vertex's index. When false vertices are plain dots.
	Labels bool

	// VertexLabels, when it has one entry per vertex, replaces the index
	// text drawn by Labels.
	VertexLabels []string

	// Hopping labels edges whose hopping strength is not the default.
	Hopping bool

	// Scale is the size of one lattice unit in inches. Zero means DefaultScale.
	Scale float64
}

// ToDOT converts a lattice to Graphviz DOT format with every vertex pinned
// at its (x, y) position. The resulting DOT string can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(l *lattice.Lattice, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if name := l.Name(); name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", name)
	}
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.3, fontsize=10];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.08, label=\"\"];\n")
	}
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	custom := len(opts.VertexLabels) == l.Len()
	for i := 0; i < l.Len(); i++ {
		label := ""
		if opts.Labels {
			label = strconv.Itoa(i)
			if custom {
				label = opts.VertexLabels[i]
			}
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", i, fmtAttrs(l.Position(i), scale, label))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges() {
		if attrs := fmtEdgeAttrs(e, opts.Hopping); attrs != "" {
			fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.I, e.J, attrs)
		} else {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.I, e.J)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(p lattice.Point, scale float64, label string) string {
	pos := fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(p[0]*scale), fmtCoord(p[1]*scale))
	if label == "" {
		return pos
	}
	return fmt.Sprintf("%s, label=%q", pos, label)
}

func fmtEdgeAttrs(e lattice.Edge, hopping bool) string {
	if !hopping || e.Hopping == lattice.DefaultHopping {
		return ""
	}
	attrs := fmt.Sprintf("label=%q, fontsize=8", fmtCoord(e.Hopping))
	if e.Hopping < 0 {
		attrs += ", style=dashed"
	}
	return attrs
}

func fmtCoord(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// keeps pinned positions.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// Plot renders l in the given image format (see [render.FormatFromPath]).
func Plot(l *lattice.Lattice, format string, opts Options, pngScale float64) ([]byte, error) {
	svg, err := RenderSVG(ToDOT(l, opts))
	if err != nil {
		return nil, err
	}
	return render.Convert(svg, format, pngScale)
}
