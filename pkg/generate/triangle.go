package generate

import (
	"math"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Triangle returns a tiling of cols triangles per row and rows stacked rows,
// with open boundaries. The first triangle of the bottom row points up:
//
//	      - cols -
//	  |   /\/\/\/\
//	rows  \/\/\/\/
//	  |   /\/\/\/\
//
// The tiling above has 3 rows and 7 columns. Vertices are numbered along
// each horizontal line of vertices, bottom to top.
func Triangle(cols, rows int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if cols < 1 || rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "triangle tiling needs at least one column and row, got %dx%d", cols, rows)
	}

	// offset[y] is the index of the first vertex on line y.
	offset := make([]int, rows+2)
	for y := 0; y <= rows; y++ {
		offset[y+1] = offset[y] + lineWidth(y, cols)
	}
	index := func(x, y int) (int, bool) {
		if y < 0 || y > rows || x < 0 || x >= lineWidth(y, cols) {
			return 0, false
		}
		return offset[y] + x, true
	}

	height := math.Sqrt(0.75) * o.Spacing
	b := builder{dim: o.Dim}
	for y := 0; y <= rows; y++ {
		shift := 0.0
		if y%2 == 0 {
			shift = 0.5
		}
		for x := 0; x < lineWidth(y, cols); x++ {
			i := offset[y] + x
			b.vertex((float64(x)+shift)*o.Spacing, float64(y)*height)

			// Only link forward (right and up) so every edge appears once.
			diag := x - 1
			if y%2 == 0 {
				diag = x + 1
			}
			for _, nb := range [][2]int{{x + 1, y}, {x, y + 1}, {diag, y + 1}} {
				if j, ok := index(nb[0], nb[1]); ok {
					b.edge(i, j)
				}
			}
		}
	}
	return b.build(o)
}

// lineWidth is the number of vertices on horizontal line y.
func lineWidth(y, cols int) int {
	if y%2 == 0 {
		return (cols + 2) / 2
	}
	return (cols+1)/2 + 1
}
