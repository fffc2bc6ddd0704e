package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/latgraph/pkg/lattice"
)

func triangle(t *testing.T, opts ...lattice.Option) *lattice.Lattice {
	t.Helper()
	l, err := lattice.New(3,
		[][]float64{{0, 0, 0}, {1, 0, 5}, {0.5, 0.75, -1}},
		[]lattice.Edge{lattice.E(0, 1), {I: 1, J: 2, Hopping: -0.5}, lattice.E(2, 0)},
		opts...,
	)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(triangle(t), Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato",
		`0 [pos="0,0!"]`,
		`1 [pos="1,0!"]`,
		`2 [pos="0.5,0.75!"]`,
		"0 -- 1;",
		"1 -- 2;",
		"0 -- 2;",
		"shape=point",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() lattice edges must be undirected")
	}
}

func TestToDOT_Labels(t *testing.T) {
	dot := ToDOT(triangle(t), Options{Labels: true, Scale: 2})

	if !strings.Contains(dot, `1 [pos="2,0!", label="1"]`) {
		t.Errorf("ToDOT() labelled output missing scaled vertex 1:\n%s", dot)
	}
	if !strings.Contains(dot, "shape=circle") {
		t.Error("ToDOT() labelled output should draw circles")
	}
}

func TestToDOT_Hopping(t *testing.T) {
	dot := ToDOT(triangle(t), Options{Hopping: true})

	if !strings.Contains(dot, `1 -- 2 [label="-0.5", fontsize=8, style=dashed];`) {
		t.Errorf("ToDOT() missing hopping annotation:\n%s", dot)
	}
	if !strings.Contains(dot, "0 -- 1;") {
		t.Error("ToDOT() default hopping edges should stay plain")
	}
}

func TestToDOT_Name(t *testing.T) {
	dot := ToDOT(triangle(t, lattice.WithName("tri")), Options{})
	if !strings.Contains(dot, `label="tri"`) {
		t.Errorf("ToDOT() missing graph label:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(triangle(t), Options{Labels: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(`not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestPlotSVG(t *testing.T) {
	out, err := Plot(triangle(t), "svg", Options{}, 1)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Error("Plot() output missing <svg> tag")
	}
}

func TestToDOT_VertexLabels(t *testing.T) {
	dot := ToDOT(triangle(t), Options{Labels: true, VertexLabels: []string{"c", "a", "b"}})
	if !strings.Contains(dot, `0 [pos="0,0!", label="c"]`) {
		t.Errorf("ToDOT() should use custom vertex labels:\n%s", dot)
	}

	// A label list of the wrong length falls back to indices.
	dot = ToDOT(triangle(t), Options{Labels: true, VertexLabels: []string{"x"}})
	if !strings.Contains(dot, `0 [pos="0,0!", label="0"]`) {
		t.Errorf("ToDOT() should fall back to indices:\n%s", dot)
	}
}
