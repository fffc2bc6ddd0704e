package generate

import (
	"math"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Pyramid returns nx x ny equilateral square pyramids tiled in the plane,
// with open boundaries. Rows alternate between nx+1 base vertices at z=0 and
// nx apexes lifted by spacing/sqrt(2):
//
//	0--- 1--- 2    base row
//	|\  /|\  /|
//	|  3 |  4 |    apex row
//	|/  \|/  \|
//	5--- 6--- 7    base row
//
// Every edge is one spacing long. Pyramids need a 3D embedding.
func Pyramid(nx, ny int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if o.Dim != 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pyramid tiling needs a 3D embedding, got dimension %d", o.Dim)
	}
	if nx < 1 || ny < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pyramid tiling needs at least one pyramid in each direction, got %dx%d", nx, ny)
	}

	s := o.Spacing
	stride := 2*nx + 1 // vertices per base row plus apex row
	b := builder{dim: o.Dim}
	for row := 0; row <= 2*ny; row++ {
		k := row / 2
		if row%2 == 0 {
			for col := 0; col <= nx; col++ {
				i := k*stride + col
				b.vertex3(float64(col)*s, float64(k)*s, 0)
				if col < nx {
					b.edge(i, i+1)
				}
				if row < 2*ny {
					b.edge(i, i+stride)
				}
			}
			continue
		}
		for col := 0; col < nx; col++ {
			i := k*stride + nx + 1 + col
			b.vertex3((float64(col)+0.5)*s, (float64(k)+0.5)*s, s/math.Sqrt2)
			for _, j := range []int{i - nx - 1, i - nx, i + nx, i + nx + 1} {
				b.edge(i, j)
			}
		}
	}
	return b.build(o)
}
