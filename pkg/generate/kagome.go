package generate

import (
	"math"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Vertices of a kagome unit cell.
const (
	siteA = iota
	siteB
	siteC
)

// Kagome returns cols x rows kagome unit cells. Each cell holds an upward
// triangle of three vertices A, B and C, numbered 3*(y*cols+x)+{0,1,2}:
//
//	    C
//	   / \
//	  A---B---A ...
//
// Odd rows are shifted right by one spacing so that the tiling stays
// rectangular. With opts.Periodic the boundaries wrap in both directions,
// which needs at least two columns and an even number of rows.
func Kagome(cols, rows int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if cols < 1 || rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "kagome lattice needs at least one column and row, got %dx%d", cols, rows)
	}
	if o.Periodic && (cols < 2 || rows < 2 || rows%2 != 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "periodic kagome lattice needs at least 2 columns and an even number of rows, got %dx%d", cols, rows)
	}

	index := func(x, y, site int) (int, bool) {
		if o.Periodic {
			x = (x + cols) % cols
			y = (y + rows) % rows
		}
		if x < 0 || x >= cols || y < 0 || y >= rows {
			return 0, false
		}
		return 3*(y*cols+x) + site, true
	}

	d := o.Spacing
	h := math.Sqrt(3) * d
	b := builder{dim: o.Dim}
	for y := 0; y < rows; y++ {
		// The cell above C holds A at the same column on even rows and one
		// column right on odd rows; B sits one column left of A.
		up := 0
		if y%2 == 1 {
			up = 1
		}
		for x := 0; x < cols; x++ {
			ox := 2*d*float64(x) + d*float64(y%2)
			oy := h * float64(y)
			b.vertex(ox, oy)
			b.vertex(ox+d, oy)
			b.vertex(ox+d/2, oy+h/2)

			ia, _ := index(x, y, siteA)
			ib, _ := index(x, y, siteB)
			ic, _ := index(x, y, siteC)
			b.edge(ia, ib)
			b.edge(ia, ic)
			b.edge(ib, ic)
			if j, ok := index(x+1, y, siteA); ok {
				b.edge(ib, j)
			}
			if j, ok := index(x+up, y+1, siteA); ok {
				b.edge(ic, j)
			}
			if j, ok := index(x+up-1, y+1, siteB); ok {
				b.edge(ic, j)
			}
		}
	}
	return b.build(o)
}
