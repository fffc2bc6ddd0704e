package generate

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
	"github.com/matzehuels/latgraph/pkg/relabel"
)

// checkEdgeLengths fails unless every edge but the long ones that wrap a
// periodic boundary is spacing long.
func checkEdgeLengths(t *testing.T, l *lattice.Lattice, spacing float64, long int) {
	t.Helper()
	got := 0
	for _, e := range l.Edges() {
		d := l.Position(e.I).Dist(l.Position(e.J))
		if math.Abs(d-spacing) > 1e-9 {
			if d < spacing {
				t.Errorf("edge %d-%d has length %g, shorter than %g", e.I, e.J, d, spacing)
			}
			got++
		}
	}
	if got != long {
		t.Errorf("%d edges are not %g long, want %d wrapping edges", got, spacing, long)
	}
}

func TestGenerators(t *testing.T) {
	tests := []struct {
		name           string
		gen            func() (*lattice.Lattice, error)
		spacing        float64
		vertices       int
		edges          int
		long           int
		minDeg, maxDeg int
	}{
		{
			name:     "Square3x2",
			gen:      func() (*lattice.Lattice, error) { return Square(3, 2, Options{}) },
			spacing:  1,
			vertices: 6,
			edges:    7,
			minDeg:   2,
			maxDeg:   3,
		},
		{
			name:     "Square1x1",
			gen:      func() (*lattice.Lattice, error) { return Square(1, 1, Options{}) },
			spacing:  1,
			vertices: 1,
		},
		{
			name:     "SingleTriangle",
			gen:      func() (*lattice.Lattice, error) { return Triangle(1, 1, Options{Spacing: 2}) },
			spacing:  2,
			vertices: 3,
			edges:    3,
			minDeg:   2,
			maxDeg:   2,
		},
		{
			name:     "Triangle7x3",
			gen:      func() (*lattice.Lattice, error) { return Triangle(7, 3, Options{}) },
			spacing:  1,
			vertices: 18,
			edges:    38,
			minDeg:   2,
			maxDeg:   6,
		},
		{
			name:     "Ring6",
			gen:      func() (*lattice.Lattice, error) { return Ring(6, Options{Spacing: 0.5, Dim: 2}) },
			spacing:  0.5,
			vertices: 6,
			edges:    6,
			minDeg:   2,
			maxDeg:   2,
		},
		{
			name:     "KagomeCell",
			gen:      func() (*lattice.Lattice, error) { return Kagome(1, 1, Options{}) },
			spacing:  1,
			vertices: 3,
			edges:    3,
			minDeg:   2,
			maxDeg:   2,
		},
		{
			name:     "Kagome2x2",
			gen:      func() (*lattice.Lattice, error) { return Kagome(2, 2, Options{Spacing: 1.5, Dim: 2}) },
			spacing:  1.5,
			vertices: 12,
			edges:    17,
			minDeg:   2,
			maxDeg:   4,
		},
		{
			name:     "Kagome3x3",
			gen:      func() (*lattice.Lattice, error) { return Kagome(3, 3, Options{}) },
			spacing:  1,
			vertices: 27,
			edges:    27 + 6 + 10,
			minDeg:   2,
			maxDeg:   4,
		},
		{
			name:     "Armchair3x2",
			gen:      func() (*lattice.Lattice, error) { return Armchair(3, 2, Options{}) },
			spacing:  1,
			vertices: 24,
			edges:    28,
			long:     2,
			minDeg:   2,
			maxDeg:   3,
		},
		{
			name:     "ArmchairHexagonRing",
			gen:      func() (*lattice.Lattice, error) { return Armchair(2, 1, Options{Spacing: 2}) },
			spacing:  2,
			vertices: 8,
			edges:    8,
			long:     1,
			minDeg:   2,
			maxDeg:   2,
		},
		{
			name:     "Zigzag2x3",
			gen:      func() (*lattice.Lattice, error) { return Zigzag(2, 3, Options{}) },
			spacing:  1,
			vertices: 12,
			edges:    15,
			long:     2,
			minDeg:   2,
			maxDeg:   3,
		},
		{
			name:     "Zigzag4x2",
			gen:      func() (*lattice.Lattice, error) { return Zigzag(4, 2, Options{Dim: 2}) },
			spacing:  1,
			vertices: 16,
			edges:    4*4 + 3*2,
			long:     4,
			minDeg:   2,
			maxDeg:   3,
		},
		{
			name:     "SinglePyramid",
			gen:      func() (*lattice.Lattice, error) { return Pyramid(1, 1, Options{}) },
			spacing:  1,
			vertices: 5,
			edges:    8,
			minDeg:   3,
			maxDeg:   4,
		},
		{
			name:     "Pyramid2x1",
			gen:      func() (*lattice.Lattice, error) { return Pyramid(2, 1, Options{Spacing: 0.5}) },
			spacing:  0.5,
			vertices: 8,
			edges:    15,
			minDeg:   3,
			maxDeg:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := tt.gen()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if l.Len() != tt.vertices || l.EdgeCount() != tt.edges {
				t.Errorf("got %d vertices, %d edges; want %d, %d", l.Len(), l.EdgeCount(), tt.vertices, tt.edges)
			}
			if lo, hi := l.DegreeRange(); lo != tt.minDeg || hi != tt.maxDeg {
				t.Errorf("degree range = [%d, %d], want [%d, %d]", lo, hi, tt.minDeg, tt.maxDeg)
			}
			if n := l.ComponentCount(); n != 1 {
				t.Errorf("ComponentCount() = %d, want 1", n)
			}
			checkEdgeLengths(t, l, tt.spacing, tt.long)
		})
	}
}

func TestKagomePeriodic(t *testing.T) {
	l, err := Kagome(4, 2, Options{Periodic: true})
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 24 || l.EdgeCount() != 48 {
		t.Errorf("got %d vertices, %d edges; want 24, 48", l.Len(), l.EdgeCount())
	}
	if lo, hi := l.DegreeRange(); lo != 4 || hi != 4 {
		t.Errorf("degree range = [%d, %d], every vertex of a closed kagome lattice has 4 neighbours", lo, hi)
	}
	// B of the last column wraps to A of the first.
	if !l.HasEdge(3*3+siteB, siteA) {
		t.Error("row 0 should close between the last and first cell")
	}
}

func TestRibbonWrapping(t *testing.T) {
	agnr, err := Armchair(2, 1, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !agnr.HasEdge(3, 0) {
		t.Error("the first dimer line of an armchair ribbon should close between its last and first vertex")
	}

	zgnr, err := Zigzag(2, 2, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !zgnr.HasEdge(3, 0) || !zgnr.HasEdge(4+2, 4+1) {
		t.Error("zigzag lines should close around the ribbon")
	}
	if zgnr.Name() != "2zgnr2" {
		t.Errorf("Name() = %q, want the default 2zgnr2", zgnr.Name())
	}

	named, err := Zigzag(2, 2, Options{Name: "strip"})
	if err != nil {
		t.Fatal(err)
	}
	if named.Name() != "strip" {
		t.Errorf("Name() = %q, want strip", named.Name())
	}
}

func TestNanotube(t *testing.T) {
	tests := []struct {
		n, m, cells int
		atoms       int
	}{
		{1, 1, 2, 8},  // armchair, 2 hexagons per cell
		{6, 0, 1, 24}, // zigzag, 12 hexagons per cell
		{5, 5, 2, 40},
		{4, 2, 1, 56}, // chiral, gcd(8, 10) = 2
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("(%d,%d)x%d", tt.n, tt.m, tt.cells), func(t *testing.T) {
			l, err := Nanotube(tt.n, tt.m, tt.cells, Options{Spacing: 1.42})
			if err != nil {
				t.Fatal(err)
			}
			if l.Len() != tt.atoms || l.EdgeCount() != 3*tt.atoms/2 {
				t.Errorf("got %d atoms, %d bonds; want %d, %d", l.Len(), l.EdgeCount(), tt.atoms, 3*tt.atoms/2)
			}
			if lo, hi := l.DegreeRange(); lo != 3 || hi != 3 {
				t.Errorf("degree range = [%d, %d], every atom needs 3 bonds", lo, hi)
			}

			// Rolled up: all atoms on one cylinder, bonds are chords no
			// longer than the bond length.
			r := math.Hypot(l.Position(0)[0], l.Position(0)[1])
			for i := 0; i < l.Len(); i++ {
				p := l.Position(i)
				if math.Abs(math.Hypot(p[0], p[1])-r) > 1e-9 {
					t.Fatalf("atom %d at radius %g, want %g", i, math.Hypot(p[0], p[1]), r)
				}
			}
			for _, e := range l.Edges() {
				p, q := l.Position(e.I), l.Position(e.J)
				if math.Abs(p[2]-q[2]) > 1.42 {
					continue // closes the tube along its axis
				}
				if d := p.Dist(q); d > 1.42+1e-9 {
					t.Errorf("bond %d-%d is %g long", e.I, e.J, d)
				}
			}
		})
	}
}

func TestNanotubeUnrolled(t *testing.T) {
	l, err := Nanotube(6, 0, 2, Options{Dim: 2})
	if err != nil {
		t.Fatal(err)
	}
	if l.Dim() != 2 || l.Len() != 48 {
		t.Fatalf("got a %dD lattice of %d atoms, want 2D with 48", l.Dim(), l.Len())
	}
	// On the unrolled sheet only bonds across the seam or the axial
	// boundary are longer than the bond length.
	short := 0
	for _, e := range l.Edges() {
		if math.Abs(l.Position(e.I).Dist(l.Position(e.J))-1) < 1e-9 {
			short++
		}
	}
	if short == 0 || short == l.EdgeCount() {
		t.Errorf("%d of %d bonds are one spacing long, want most but not all", short, l.EdgeCount())
	}
}

func TestPyramidApexHeight(t *testing.T) {
	l, err := Pyramid(1, 1, Options{Spacing: 2})
	if err != nil {
		t.Fatal(err)
	}
	apex := l.Position(2)
	want := lattice.Point{1, 1, math.Sqrt2}
	for k := range want {
		if math.Abs(apex[k]-want[k]) > 1e-12 {
			t.Fatalf("apex at %v, want %v", apex, want)
		}
	}
}

func TestTriangleFirstPointsUp(t *testing.T) {
	l, err := Triangle(1, 1, Options{Dim: 2})
	if err != nil {
		t.Fatal(err)
	}
	apex := l.Position(0)
	if apex[1] != 0 || apex[0] != 0.5 {
		t.Fatalf("vertex 0 at %v, want the bottom vertex (0.5, 0)", apex)
	}
	for _, i := range []int{1, 2} {
		if p := l.Position(i); p[1] <= apex[1] {
			t.Errorf("vertex %d at %v should lie above vertex 0", i, p)
		}
	}
}

func TestRingGeometry(t *testing.T) {
	l, err := Ring(8, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Dim() != DefaultDim {
		t.Errorf("Dim() = %d, want %d", l.Dim(), DefaultDim)
	}
	r := l.Position(0).Dist(lattice.Point{})
	for i := 0; i < l.Len(); i++ {
		if d := l.Position(i).Dist(lattice.Point{}); math.Abs(d-r) > 1e-12 {
			t.Errorf("vertex %d at radius %g, want %g", i, d, r)
		}
	}
	if !l.HasEdge(7, 0) {
		t.Error("ring must close between the last and first vertex")
	}

	// Numbered anticlockwise, so the anticlockwise sweep keeps the order.
	order, err := relabel.Compute(l, relabel.Anticlockwise)
	if err != nil {
		t.Fatal(err)
	}
	if order[1] != 1 || order[len(order)-1] != 7 {
		t.Errorf("anticlockwise order = %v", order)
	}
}

func TestMetadataOptions(t *testing.T) {
	l, err := Square(2, 2, Options{Name: "plaquette", Comment: "2x2", TimeSlices: 16})
	if err != nil {
		t.Fatal(err)
	}
	if l.Name() != "plaquette" || l.Comment() != "2x2" || l.TimeSlices() != 16 {
		t.Errorf("metadata = %q %q %d", l.Name(), l.Comment(), l.TimeSlices())
	}
}

func TestGeneratorErrors(t *testing.T) {
	tests := []struct {
		name string
		gen  func() (*lattice.Lattice, error)
	}{
		{"SquareNoColumns", func() (*lattice.Lattice, error) { return Square(0, 3, Options{}) }},
		{"TriangleNoRows", func() (*lattice.Lattice, error) { return Triangle(3, 0, Options{}) }},
		{"RingTooSmall", func() (*lattice.Lattice, error) { return Ring(2, Options{}) }},
		{"NegativeSpacing", func() (*lattice.Lattice, error) { return Ring(4, Options{Spacing: -1}) }},
		{"BadDim", func() (*lattice.Lattice, error) { return Square(2, 2, Options{Dim: 4}) }},
		{"UnknownKind", func() (*lattice.Lattice, error) { return ByName("hexagon", []int{2, 2}, Options{}) }},
		{"KagomeNoRows", func() (*lattice.Lattice, error) { return Kagome(2, 0, Options{}) }},
		{"KagomePeriodicOddRows", func() (*lattice.Lattice, error) { return Kagome(2, 3, Options{Periodic: true}) }},
		{"KagomePeriodicOneColumn", func() (*lattice.Lattice, error) { return Kagome(1, 2, Options{Periodic: true}) }},
		{"ArmchairNoHexagons", func() (*lattice.Lattice, error) { return Armchair(2, 0, Options{}) }},
		{"ZigzagOneCell", func() (*lattice.Lattice, error) { return Zigzag(2, 1, Options{}) }},
		{"PyramidFlat", func() (*lattice.Lattice, error) { return Pyramid(2, 2, Options{Dim: 2}) }},
		{"PyramidNoRows", func() (*lattice.Lattice, error) { return Pyramid(2, 0, Options{}) }},
		{"TubeBadChirality", func() (*lattice.Lattice, error) { return Nanotube(2, 3, 1, Options{}) }},
		{"TubeTooThin", func() (*lattice.Lattice, error) { return Nanotube(1, 0, 4, Options{}) }},
		{"TubeTooShort", func() (*lattice.Lattice, error) { return Nanotube(1, 1, 1, Options{}) }},
		{"TubeNoCells", func() (*lattice.Lattice, error) { return Nanotube(4, 2, 0, Options{}) }},
		{"TubeArity", func() (*lattice.Lattice, error) { return ByName("tube", []int{4, 2}, Options{}) }},
		{"WrongArity", func() (*lattice.Lattice, error) { return ByName("ring", []int{2, 2}, Options{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.gen()
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestByName(t *testing.T) {
	sizes := map[string][]int{
		"ring": {5},
		"tube": {3, 3, 2},
	}
	for _, kind := range Kinds {
		size, ok := sizes[kind]
		if !ok {
			size = []int{3, 2}
		}
		l, err := ByName(kind, size, Options{})
		if err != nil {
			t.Fatalf("ByName(%q): %v", kind, err)
		}
		if l.Len() == 0 {
			t.Errorf("ByName(%q) returned an empty lattice", kind)
		}
	}
}
