package io

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Format identifies a serialized lattice format.
type Format string

// Supported formats.
const (
	FormatW3D  Format = "w3d"
	FormatW2D  Format = "w2d"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatW3D, FormatW2D, FormatYAML}

var extToFormat = map[string]Format{
	".w3d":  FormatW3D,
	".w2d":  FormatW2D,
	".yml":  FormatYAML,
	".yaml": FormatYAML,
}

// Codec converts between a [lattice.Lattice] and one serialized format.
// Adding a format means adding one Codec implementation.
type Codec interface {
	// Format returns the format tag handled by this codec.
	Format() Format
	// Decode reads a complete lattice from r. It does not close r.
	Decode(r io.Reader) (*lattice.Lattice, error)
	// Encode writes l to w. Fields the format cannot carry are dropped.
	Encode(w io.Writer, l *lattice.Lattice) error
}

// FormatFromPath selects the format from the file extension (case-insensitive).
// Unknown extensions return an UNSUPPORTED_FORMAT error.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extToFormat[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return "", errors.Unsupported("%s: no file extension (supported: .w3d, .w2d, .yml, .yaml)", path)
	}
	return "", errors.Unsupported("%s: unknown file extension %q (supported: .w3d, .w2d, .yml, .yaml)", path, ext)
}

// ParseFormat converts a format name such as "w3d" or "yml" into a Format.
func ParseFormat(name string) (Format, error) {
	if f, ok := extToFormat["."+strings.ToLower(strings.TrimPrefix(name, "."))]; ok {
		return f, nil
	}
	return "", errors.Unsupported("unknown format %q", name)
}

// CodecFor returns the codec for f.
func CodecFor(f Format) (Codec, error) {
	switch f {
	case FormatW3D:
		return writegraph{dim: 3}, nil
	case FormatW2D:
		return writegraph{dim: 2}, nil
	case FormatYAML:
		return yamlCodec{}, nil
	default:
		return nil, errors.Unsupported("unknown format %q", f)
	}
}

// Decode reads a lattice in format f from r.
func Decode(r io.Reader, f Format) (*lattice.Lattice, error) {
	c, err := CodecFor(f)
	if err != nil {
		return nil, err
	}
	return c.Decode(r)
}

// Encode writes l to w in format f.
func Encode(w io.Writer, l *lattice.Lattice, f Format) error {
	c, err := CodecFor(f)
	if err != nil {
		return err
	}
	return c.Encode(w, l)
}

// Marshal encodes l in format f and returns the bytes.
func Marshal(l *lattice.Lattice, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, l, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a lattice in format f from data.
func Unmarshal(data []byte, f Format) (*lattice.Lattice, error) {
	return Decode(bytes.NewReader(data), f)
}
