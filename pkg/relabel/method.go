package relabel

import (
	"strings"

	"github.com/matzehuels/latgraph/pkg/errors"
)

// Method selects how the traversal picks the next vertex.
type Method int

const (
	// Innermost moves to the unvisited neighbour closest to the centroid.
	Innermost Method = iota
	// Anticlockwise keeps sweeping anticlockwise around the centroid.
	Anticlockwise
)

// Methods lists the method names accepted by [ParseMethod].
var Methods = []string{"innermost", "anticlockwise"}

func (m Method) String() string {
	switch m {
	case Innermost:
		return "innermost"
	case Anticlockwise:
		return "anticlockwise"
	default:
		return "unknown"
	}
}

// ParseMethod converts a method name (case-insensitive) into a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "innermost":
		return Innermost, nil
	case "anticlockwise":
		return Anticlockwise, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"unknown relabel method %q (valid: %s)", name, strings.Join(Methods, ", "))
	}
}

// UnmarshalText lets a Method be read directly from configuration files.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText returns the method name.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
