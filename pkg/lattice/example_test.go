package lattice_test

import (
	"fmt"

	"github.com/matzehuels/latgraph/pkg/lattice"
)

func ExampleNew() {
	lat, err := lattice.New(2,
		[][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		[]lattice.Edge{lattice.E(0, 1), lattice.E(1, 2), lattice.E(2, 3), lattice.E(3, 0)},
		lattice.WithName("square"),
	)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Vertices:", lat.Len())
	fmt.Println("Edges:", lat.EdgeCount())
	fmt.Println("Neighbours of 0:", lat.Neighbours(0))
	fmt.Println("Centroid:", lat.Centroid())
	// Output:
	// Vertices: 4
	// Edges: 4
	// Neighbours of 0: [1 3]
	// Centroid: [0.5 0.5 0]
}

func ExampleLattice_Reindex() {
	lat, _ := lattice.New(2,
		[][]float64{{0, 0}, {1, 0}, {2, 0}},
		[]lattice.Edge{lattice.E(0, 1), lattice.E(1, 2)},
	)

	// Reverse the chain: new vertex 0 is old vertex 2.
	rev, _ := lat.Reindex([]int{2, 1, 0})
	fmt.Println(rev.Position(0))
	fmt.Println(rev.Edges())
	// Output:
	// [2 0 0]
	// [{0 1 1} {1 2 1}]
}
