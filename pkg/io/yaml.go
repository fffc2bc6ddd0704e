package io

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// latticeTag is the local YAML tag marking a lattice document.
const latticeTag = "!lattice"

// yamlCodec implements the YAML format, which carries every lattice field.
type yamlCodec struct{}

func (yamlCodec) Format() Format { return FormatYAML }

// yamlIn is the decode-side document. Hopping stays a raw node because it
// may be a scalar applied to every edge or a list with one entry per edge.
type yamlIn struct {
	Name      string      `yaml:"name"`
	Comment   string      `yaml:"comment"`
	NT        int         `yaml:"nt"`
	Dim       int         `yaml:"dim"`
	Sites     *int        `yaml:"sites"`
	Positions [][]float64 `yaml:"positions"`
	Adjacency [][]float64 `yaml:"adjacency"`
	Hopping   yaml.Node   `yaml:"hopping"`
}

type yamlOut struct {
	Name      string      `yaml:"name,omitempty"`
	Comment   string      `yaml:"comment,omitempty"`
	NT        int         `yaml:"nt,omitempty"`
	Dim       int         `yaml:"dim"`
	Sites     int         `yaml:"sites"`
	Positions [][]float64 `yaml:"positions"`
	Adjacency [][]int     `yaml:"adjacency"`
	Hopping   []float64   `yaml:"hopping,omitempty"`
}

func (yamlCodec) Decode(r io.Reader) (*lattice.Lattice, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.Malformed("empty YAML document")
		}
		return nil, errors.Wrap(errors.ErrCodeMalformedLattice, err, "parse YAML")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Malformed("line %d: lattice document must be a mapping", root.Line)
	}
	switch root.Tag {
	case latticeTag:
		root.Tag = "" // decode the mapping body as a plain map
	case "", "!!map":
	default:
		return nil, errors.Malformed("line %d: unexpected tag %s, expected %s", root.Line, root.Tag, latticeTag)
	}

	var in yamlIn
	if err := root.Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedLattice, err, "decode lattice")
	}
	return in.toLattice()
}

func (in yamlIn) toLattice() (*lattice.Lattice, error) {
	n := len(in.Positions)
	if in.Sites != nil && *in.Sites != n {
		return nil, errors.Malformed("sites declares %d vertices but positions lists %d", *in.Sites, n)
	}

	dim := in.Dim
	if dim == 0 {
		dim = 3
		if n > 0 {
			dim = len(in.Positions[0])
		}
	}

	hopping, err := in.hoppingFor(len(in.Adjacency))
	if err != nil {
		return nil, err
	}

	edges := make([]lattice.Edge, len(in.Adjacency))
	for k, entry := range in.Adjacency {
		if len(entry) != 2 && len(entry) != 3 {
			return nil, errors.Malformed("adjacency entry %d: expected [i, j] or [i, j, hopping], got %d values", k, len(entry))
		}
		i, okI := asIndex(entry[0])
		j, okJ := asIndex(entry[1])
		if !okI || !okJ {
			return nil, errors.Malformed("adjacency entry %d: indices must be non-negative integers, got %v", k, entry[:2])
		}
		if i >= n || j >= n {
			return nil, errors.Malformed("adjacency entry %d: index out of range [0, %d): [%d, %d]", k, n, i, j)
		}
		h := hopping[k]
		if len(entry) == 3 {
			h = entry[2]
		}
		edges[k] = lattice.Edge{I: i, J: j, Hopping: h}
	}

	return lattice.New(dim, in.Positions, edges,
		lattice.WithName(in.Name),
		lattice.WithComment(in.Comment),
		lattice.WithTimeSlices(in.NT),
	)
}

// hoppingFor expands the hopping field into one strength per edge.
func (in yamlIn) hoppingFor(m int) ([]float64, error) {
	out := make([]float64, m)
	switch in.Hopping.Kind {
	case 0:
		for k := range out {
			out[k] = lattice.DefaultHopping
		}
	case yaml.ScalarNode:
		var h float64
		if err := in.Hopping.Decode(&h); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedLattice, err, "line %d: hopping", in.Hopping.Line)
		}
		for k := range out {
			out[k] = h
		}
	case yaml.SequenceNode:
		var hs []float64
		if err := in.Hopping.Decode(&hs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedLattice, err, "line %d: hopping", in.Hopping.Line)
		}
		if len(hs) != m {
			return nil, errors.Malformed("hopping lists %d strengths for %d adjacency entries", len(hs), m)
		}
		copy(out, hs)
	default:
		return nil, errors.Malformed("line %d: hopping must be a number or a list of numbers", in.Hopping.Line)
	}
	return out, nil
}

func asIndex(x float64) (int, bool) {
	if x < 0 || x != math.Trunc(x) || x > math.MaxInt32 {
		return 0, false
	}
	return int(x), true
}

func (yamlCodec) Encode(w io.Writer, l *lattice.Lattice) error {
	out := yamlOut{
		Name:      l.Name(),
		Comment:   l.Comment(),
		NT:        l.TimeSlices(),
		Dim:       l.Dim(),
		Sites:     l.Len(),
		Positions: make([][]float64, l.Len()),
		Adjacency: make([][]int, l.EdgeCount()),
	}
	for i := range out.Positions {
		out.Positions[i] = l.Coords(i)
	}

	uniform := true
	hopping := make([]float64, l.EdgeCount())
	for k, e := range l.Edges() {
		out.Adjacency[k] = []int{e.I, e.J}
		hopping[k] = e.Hopping
		if e.Hopping != lattice.DefaultHopping {
			uniform = false
		}
	}
	if !uniform {
		out.Hopping = hopping
	}

	var node yaml.Node
	if err := node.Encode(out); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	node.Tag = latticeTag
	flowInnerSequences(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// flowInnerSequences renders coordinate and index tuples as [a, b, c]
// and the hopping list on one line.
func flowInnerSequences(m *yaml.Node) {
	for k := 0; k+1 < len(m.Content); k += 2 {
		key, val := m.Content[k], m.Content[k+1]
		switch key.Value {
		case "positions", "adjacency":
			for _, item := range val.Content {
				item.Style = yaml.FlowStyle
			}
		case "hopping":
			val.Style = yaml.FlowStyle
		}
	}
}
