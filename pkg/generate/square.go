package generate

import (
	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Square returns a cols x rows grid with open boundaries. Vertex y*cols+x sits
// at (x, y) times the spacing.
func Square(cols, rows int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if cols < 1 || rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "square grid needs at least one column and row, got %dx%d", cols, rows)
	}

	b := builder{dim: o.Dim}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			b.vertex(float64(x)*o.Spacing, float64(y)*o.Spacing)
			if x+1 < cols {
				b.edge(i, i+1)
			}
			if y+1 < rows {
				b.edge(i, i+cols)
			}
		}
	}
	return b.build(o)
}
