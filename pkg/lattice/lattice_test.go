package lattice

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/latgraph/pkg/errors"
)

func square(t *testing.T, opts ...Option) *Lattice {
	t.Helper()
	l, err := New(2,
		[][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		[]Edge{E(0, 1), E(1, 2), E(2, 3), E(3, 0)},
		opts...,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		dim       int
		positions [][]float64
		edges     []Edge
		opts      []Option
		wantErr   bool
	}{
		{
			name:      "Valid",
			dim:       3,
			positions: [][]float64{{0, 0, 0}, {1, 0, 0}},
			edges:     []Edge{E(0, 1)},
		},
		{
			name: "Empty",
			dim:  2,
		},
		{
			name:      "BadDimension",
			dim:       4,
			positions: [][]float64{{0, 0, 0, 0}},
			wantErr:   true,
		},
		{
			name:      "MixedDimensions",
			dim:       3,
			positions: [][]float64{{0, 0, 0}, {1, 0}},
			wantErr:   true,
		},
		{
			name:      "IndexOutOfRange",
			dim:       2,
			positions: [][]float64{{0, 0}, {1, 0}},
			edges:     []Edge{E(0, 2)},
			wantErr:   true,
		},
		{
			name:      "NegativeIndex",
			dim:       2,
			positions: [][]float64{{0, 0}, {1, 0}},
			edges:     []Edge{E(-1, 1)},
			wantErr:   true,
		},
		{
			name:      "SelfLoop",
			dim:       2,
			positions: [][]float64{{0, 0}, {1, 0}},
			edges:     []Edge{E(1, 1)},
			wantErr:   true,
		},
		{
			name:      "DuplicateReversed",
			dim:       2,
			positions: [][]float64{{0, 0}, {1, 0}},
			edges:     []Edge{E(0, 1), E(1, 0)},
			wantErr:   true,
		},
		{
			name:      "NaNCoordinate",
			dim:       2,
			positions: [][]float64{{math.NaN(), 0}},
			wantErr:   true,
		},
		{
			name:      "InfHopping",
			dim:       2,
			positions: [][]float64{{0, 0}, {1, 0}},
			edges:     []Edge{{I: 0, J: 1, Hopping: math.Inf(1)}},
			wantErr:   true,
		},
		{
			name:      "NegativeTimeSlices",
			dim:       2,
			positions: [][]float64{{0, 0}},
			opts:      []Option{WithTimeSlices(-2)},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.dim, tt.positions, tt.edges, tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeMalformedLattice) {
					t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeMalformedLattice)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l.Len() != len(tt.positions) {
				t.Errorf("Len() = %d, want %d", l.Len(), len(tt.positions))
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	l := square(t, WithName("sq"), WithComment("unit"), WithTimeSlices(16))

	if l.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", l.Dim())
	}
	if l.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", l.EdgeCount())
	}
	if got := l.Neighbours(0); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Neighbours(0) = %v, want [1 3]", got)
	}
	if l.Degree(2) != 2 {
		t.Errorf("Degree(2) = %d, want 2", l.Degree(2))
	}
	if !l.HasEdge(0, 3) || !l.HasEdge(3, 0) {
		t.Error("HasEdge(0, 3) should hold in both orientations")
	}
	if l.HasEdge(0, 2) {
		t.Error("HasEdge(0, 2) should be false")
	}
	if h, ok := l.Hopping(3, 0); !ok || h != DefaultHopping {
		t.Errorf("Hopping(3, 0) = %v, %v; want %v, true", h, ok, DefaultHopping)
	}
	if c := l.Centroid(); c != (Point{0.5, 0.5, 0}) {
		t.Errorf("Centroid() = %v, want (0.5, 0.5, 0)", c)
	}
	if got := l.Coords(2); !slices.Equal(got, []float64{1, 1}) {
		t.Errorf("Coords(2) = %v, want [1 1]", got)
	}
	if l.Name() != "sq" || l.Comment() != "unit" || l.TimeSlices() != 16 {
		t.Errorf("metadata = (%q, %q, %d)", l.Name(), l.Comment(), l.TimeSlices())
	}
	lo, hi := l.DegreeRange()
	if lo != 2 || hi != 2 {
		t.Errorf("DegreeRange() = %d, %d; want 2, 2", lo, hi)
	}
}

func TestEdgesCanonical(t *testing.T) {
	l, err := New(2,
		[][]float64{{0, 0}, {1, 0}, {2, 0}},
		[]Edge{{I: 2, J: 1, Hopping: 0.5}, E(1, 0)},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []Edge{{I: 0, J: 1, Hopping: 1}, {I: 1, J: 2, Hopping: 0.5}}
	if got := l.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestReindex(t *testing.T) {
	l, err := New(2,
		[][]float64{{0, 0}, {1, 0}, {2, 0}},
		[]Edge{E(0, 1), {I: 1, J: 2, Hopping: 0.25}},
		WithName("chain"), WithTimeSlices(4),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	order := []int{2, 0, 1}
	r, err := l.Reindex(order)
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	// new 0 = old 2, new 1 = old 0, new 2 = old 1
	if r.Position(0) != l.Position(2) || r.Position(1) != l.Position(0) {
		t.Errorf("positions not reindexed: %v", r.Positions())
	}
	if !r.HasEdge(1, 2) {
		t.Error("old edge 0-1 should become 1-2")
	}
	if h, ok := r.Hopping(0, 2); !ok || h != 0.25 {
		t.Errorf("old edge 1-2 should become 0-2 with hopping 0.25, got %v, %v", h, ok)
	}
	if r.Name() != "chain" || r.TimeSlices() != 4 {
		t.Error("scalar fields must be carried over")
	}

	back, err := r.Reindex(Inverse(order))
	if err != nil {
		t.Fatalf("Reindex inverse: %v", err)
	}
	if !back.Equal(l, 0) {
		t.Error("reindexing with the inverse should recover the original")
	}

	// receiver untouched
	if l.Position(0) != (Point{0, 0, 0}) {
		t.Error("Reindex must not mutate the receiver")
	}
}

func TestReindexRejectsNonPermutation(t *testing.T) {
	l := square(t)
	for _, order := range [][]int{
		{0, 1, 2},
		{0, 1, 2, 2},
		{0, 1, 2, 4},
		{-1, 1, 2, 3},
	} {
		if _, err := l.Reindex(order); !errors.Is(err, errors.ErrCodeMalformedLattice) {
			t.Errorf("Reindex(%v) error = %v, want MALFORMED_LATTICE", order, err)
		}
	}
}

func TestStripLossy(t *testing.T) {
	l, err := New(3,
		[][]float64{{0, 0, 0}, {1, 0, 0}},
		[]Edge{{I: 0, J: 1, Hopping: 2.5}},
		WithName("n"), WithComment("c"), WithTimeSlices(8),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := l.StripLossy()
	if s.Name() != "" || s.Comment() != "" || s.TimeSlices() != 0 {
		t.Error("StripLossy should clear metadata and time slices")
	}
	if h, _ := s.Hopping(0, 1); h != DefaultHopping {
		t.Errorf("hopping = %v, want %v", h, DefaultHopping)
	}
	if h, _ := l.Hopping(0, 1); h != 2.5 {
		t.Error("StripLossy must not mutate the receiver")
	}
}

func TestEqual(t *testing.T) {
	a := square(t)
	b, _ := New(2,
		[][]float64{{0, 0}, {1 + 1e-12, 0}, {1, 1}, {0, 1}},
		[]Edge{E(3, 0), E(2, 3), E(1, 2), E(0, 1)},
	)
	if !a.Equal(b, 1e-9) {
		t.Error("lattices equal up to tolerance and edge order should compare equal")
	}
	if a.Equal(b, 0) {
		t.Error("zero tolerance should detect the perturbed coordinate")
	}
	c := square(t, WithName("other"))
	if a.Equal(c, 1e-9) {
		t.Error("different names should not compare equal")
	}
}

func TestSameTopology(t *testing.T) {
	a := square(t)
	b, _ := New(3,
		[][]float64{{0, 0, 5}, {2, 0, 5}, {2, 2, 5}, {0, 2, 5}},
		[]Edge{E(0, 1), E(1, 2), E(2, 3), E(0, 3)},
	)
	if !a.SameTopology(b) {
		t.Error("same edges in a different embedding should share topology")
	}
	c, _ := New(2,
		[][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		[]Edge{E(0, 1), E(1, 2), E(2, 3), E(0, 2)},
	)
	if a.SameTopology(c) {
		t.Error("different edge sets should not share topology")
	}
}

func TestZeroValue(t *testing.T) {
	var l Lattice
	if l.Len() != 0 || l.Dim() != 3 || l.EdgeCount() != 0 {
		t.Errorf("zero value: Len=%d Dim=%d EdgeCount=%d", l.Len(), l.Dim(), l.EdgeCount())
	}
	if l.Centroid() != (Point{}) {
		t.Error("zero value centroid should be the origin")
	}
}

func TestPermutationHelpers(t *testing.T) {
	if !IsPermutation([]int{}, 0) {
		t.Error("empty order is a permutation of nothing")
	}
	if !IsPermutation(Identity(5), 5) {
		t.Error("identity should be a permutation")
	}
	order := []int{3, 0, 2, 1}
	inv := Inverse(order)
	for k, v := range order {
		if inv[v] != k {
			t.Fatalf("Inverse(%v) = %v", order, inv)
		}
	}
}

func TestComponentCount(t *testing.T) {
	if got := square(t).ComponentCount(); got != 1 {
		t.Errorf("square: ComponentCount() = %d, want 1", got)
	}

	split, err := New(2,
		[][]float64{{0, 0}, {1, 0}, {5, 0}, {6, 0}, {9, 9}},
		[]Edge{E(0, 1), E(2, 3)},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := split.ComponentCount(); got != 3 {
		t.Errorf("split: ComponentCount() = %d, want 3", got)
	}

	var empty Lattice
	if got := empty.ComponentCount(); got != 0 {
		t.Errorf("empty: ComponentCount() = %d, want 0", got)
	}
}
