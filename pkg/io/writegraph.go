package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// writegraph implements the W3D and W2D formats. The variant fixes the
// dimensionality; it is never inferred from the content.
//
// Layout:
//
//	>>writegraph3d<<
//	<vertex count>
//	x y z                 one line per vertex
//	i j                   one line per edge, 0-based, until EOF
//
// Decode also accepts the legacy site-adjacency layout, one line per site
// holding the 1-based site index, its coordinates and its 1-based neighbours,
// terminated by a line "0".
type writegraph struct {
	dim int
}

func (c writegraph) Format() Format {
	if c.dim == 2 {
		return FormatW2D
	}
	return FormatW3D
}

func (c writegraph) header() string {
	return fmt.Sprintf(">>writegraph%dd<<", c.dim)
}

// lineReader yields significant lines (non-blank, not starting with '#')
// together with their 1-based line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &lineReader{sc: sc}
}

func (lr *lineReader) next() ([]string, bool, error) {
	for lr.sc.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return strings.Fields(text), true, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeMalformedLattice, err, "line %d", lr.line+1)
	}
	return nil, false, nil
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return errors.Malformed("line %d: %s", lr.line, fmt.Sprintf(format, args...))
}

func (c writegraph) Decode(r io.Reader) (*lattice.Lattice, error) {
	lr := newLineReader(r)

	fields, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Malformed("empty input, expected header %s", c.header())
	}
	if got := strings.Join(fields, " "); got != c.header() {
		return nil, lr.errorf("header is %q, expected %q", got, c.header())
	}

	fields, ok, err = lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Malformed("missing vertex count after header")
	}
	if len(fields) > 1 {
		return c.decodeLegacy(lr, fields)
	}
	return c.decodeCounted(lr, fields[0])
}

// maxPrealloc caps slice capacities taken from counts in the input, so a
// forged count cannot force a huge allocation before any data is read.
const maxPrealloc = 4096

func (c writegraph) decodeCounted(lr *lineReader, countField string) (*lattice.Lattice, error) {
	n, err := strconv.Atoi(countField)
	if err != nil || n < 0 {
		return nil, lr.errorf("invalid vertex count %q", countField)
	}

	positions := make([][]float64, 0, min(n, maxPrealloc))
	for len(positions) < n {
		fields, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Malformed("declared %d vertices but found %d coordinate lines", n, len(positions))
		}
		p, err := parseFloats(fields)
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		if len(p) != c.dim {
			return nil, lr.errorf("expected %d coordinates, got %d", c.dim, len(p))
		}
		positions = append(positions, p)
	}

	// Every remaining line is an edge, up to EOF.
	var edges []lattice.Edge
	for {
		fields, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if len(fields) != 2 {
			return nil, lr.errorf("expected 2 vertex indices, got %d fields", len(fields))
		}
		ij, err := parseInts(fields)
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		edges = append(edges, lattice.E(ij[0], ij[1]))
	}

	return lattice.New(c.dim, positions, edges)
}

// decodeLegacy parses the site-adjacency layout. first holds the fields of
// the first site line, already consumed by the caller. Site indices must be
// exactly 1..N for N site lines, in any order.
func (c writegraph) decodeLegacy(lr *lineReader, first []string) (*lattice.Lattice, error) {
	type site struct {
		idx   int
		line  int
		pos   []float64
		neigh []int
	}
	var sites []site
	seen := map[int]bool{}

	fields := first
	for {
		if len(fields) == 1 && fields[0] == "0" {
			break
		}
		if len(fields) < 1+c.dim {
			return nil, lr.errorf("expected index and %d coordinates, got %d fields", c.dim, len(fields))
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, lr.errorf("invalid site index %q", fields[0])
		}
		if idx < 1 {
			return nil, lr.errorf("site index %d out of range (indices are 1-based)", idx)
		}
		if seen[idx] {
			return nil, lr.errorf("duplicate site index %d", idx)
		}
		seen[idx] = true

		pos, err := parseFloats(fields[1 : 1+c.dim])
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		neigh, err := parseInts(fields[1+c.dim:])
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		sites = append(sites, site{idx: idx, line: lr.line, pos: pos, neigh: neigh})

		var ok bool
		fields, ok, err = lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}

	// Indices are distinct and at least 1, so all of them lying in 1..N
	// means they are exactly 1..N.
	n := len(sites)
	positions := make([][]float64, n)
	neigh := make([][]int, n)
	for _, s := range sites {
		if s.idx > n {
			return nil, errors.Malformed("line %d: site index %d out of range for %d sites", s.line, s.idx, n)
		}
		positions[s.idx-1] = s.pos
		neigh[s.idx-1] = s.neigh
	}

	var edges []lattice.Edge
	have := map[[2]int]bool{}
	for i, nbs := range neigh {
		for _, nb := range nbs {
			e := lattice.E(i, nb-1)
			if nb-1 != i && have[e.Key()] {
				continue
			}
			have[e.Key()] = true
			edges = append(edges, e)
		}
	}
	return lattice.New(c.dim, positions, edges)
}

func (c writegraph) Encode(w io.Writer, l *lattice.Lattice) error {
	if l.Dim() != c.dim {
		return errors.Unsupported("cannot write a %dD lattice as %s", l.Dim(), c.Format())
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, c.header())
	fmt.Fprintln(bw, l.Len())
	for i := 0; i < l.Len(); i++ {
		coords := l.Coords(i)
		parts := make([]string, len(coords))
		for k, x := range coords {
			parts[k] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		fmt.Fprintln(bw, strings.Join(parts, " "))
	}
	for _, e := range l.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e.I, e.J)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", c.Format(), err)
	}
	return nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for k, s := range fields {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		out[k] = x
	}
	return out, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for k, s := range fields {
		x, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", s)
		}
		out[k] = x
	}
	return out, nil
}
