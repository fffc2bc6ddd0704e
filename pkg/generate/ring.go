package generate

import (
	"math"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Ring returns a cycle of n vertices on a circle centred at the origin,
// numbered anticlockwise from the positive x axis. The radius is chosen so
// that neighbours are one spacing apart.
func Ring(n int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if n < 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "ring needs at least 3 vertices, got %d", n)
	}

	radius := o.Spacing / (2 * math.Sin(math.Pi/float64(n)))
	b := builder{dim: o.Dim}
	for i := 0; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		b.vertex(radius*math.Cos(phi), radius*math.Sin(phi))
		b.edge(i, (i+1)%n)
	}
	return b.build(o)
}
