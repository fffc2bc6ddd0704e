package generate

import (
	"fmt"
	"math"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Armchair returns a graphene nanoribbon with armchair edges, dimers dimer
// lines wide and hexagons hexagons long. Each dimer line holds 4*hexagons
// vertices, numbered left to right, and lines are stacked bottom to top.
// The ribbon is periodic along its length and open across it.
func Armchair(dimers, hexagons int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if dimers < 1 || hexagons < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "armchair ribbon needs at least one dimer line and hexagon, got %dx%d", dimers, hexagons)
	}

	length := 4 * hexagons
	s := o.Spacing
	b := builder{dim: o.Dim}
	for line := 0; line < dimers; line++ {
		// Odd lines start half a spacing in. Along a line, bonded pairs are
		// one spacing apart and the gaps across a hexagon are two.
		x := 0.5 * float64(line%2)
		y := math.Sqrt(3) / 2 * float64(line)
		for l := 0; l < length; l++ {
			i := line*length + l
			b.vertex(x*s, y*s)

			rightBonded := (line%2+l)%2 == 1
			if rightBonded {
				b.edge(i, line*length+(l+1)%length)
				x++
			} else {
				x += 2
			}
			if line+1 < dimers {
				b.edge(i, i+length)
			}
		}
	}
	return b.build(o)
}

// Zigzag returns a graphene nanoribbon with zigzag edges, zigzags zigzag
// lines wide and cells unit cells long. Each line holds 2*cells vertices
// alternating between a lower and an upper row:
//
//	even line:     1       3          odd line:  1       3
//	           0       2       4                     0       2
//
// The ribbon is periodic along its length, which needs at least two unit
// cells. Without opts.Name the lattice is named "<zigzags>zgnr<cells>".
func Zigzag(zigzags, cells int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if zigzags < 1 || cells < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "zigzag ribbon needs at least one zigzag line and two unit cells, got %dx%d", zigzags, cells)
	}
	if o.Name == "" {
		o.Name = fmt.Sprintf("%dzgnr%d", zigzags, cells)
	}

	n := 2 * cells
	s := o.Spacing
	half := math.Sqrt(3) / 2
	b := builder{dim: o.Dim}
	for zig := 0; zig < zigzags; zig++ {
		base := zig * n
		for l := 0; l < n; l++ {
			upper := l % 2
			shift := upper
			if zig%2 == 1 {
				shift = 1 - upper
			}
			x := float64(l/2)*2*half + half*float64(shift)
			y := 1.5*float64(zig) + 0.5*float64(upper)
			b.vertex(x*s, y*s)

			i := base + l
			switch {
			case zig%2 == 0:
				b.edge(i, base+(l+1)%n)
			case upper == 0:
				b.edge(i, i+1)
				b.edge(i, base+(l+3)%n)
			}
			// Upper vertices bond straight up to the lower row of the next
			// line, one index back.
			if upper == 1 && zig+1 < zigzags {
				b.edge(i, i+n-1)
			}
		}
	}
	return b.build(o)
}
