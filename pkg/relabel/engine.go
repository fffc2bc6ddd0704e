package relabel

import (
	"math"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// tieTolerance is the absolute tolerance under which two distances or angles
// count as equal.
const tieTolerance = 1e-12

// Option configures [Apply].
type Option func(*options)

type options struct {
	checkTopology bool
}

// WithTopologyCheck makes [Apply] also require that reference and target
// have the same edge set on the shared index space.
func WithTopologyCheck() Option {
	return func(o *options) { o.checkTopology = true }
}

// chooser picks the next vertex among the unvisited neighbours of cur.
// It reports false when there is none.
type chooser func(ref *lattice.Lattice, centre lattice.Point, cur int, visited []bool) (int, bool)

// Compute traverses ref with the given method and returns the order in which
// vertices are visited: order[k] is the original index that receives label k.
//
// An empty lattice yields an empty order. A traversal that cannot reach every
// vertex fails with STUCK_TRAVERSAL.
func Compute(ref *lattice.Lattice, method Method) ([]int, error) {
	if ref == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "reference lattice is nil")
	}
	var next chooser
	switch method {
	case Innermost:
		next = nextInnermost
	case Anticlockwise:
		next = nextAnticlockwise
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown relabel method %d", int(method))
	}

	n := ref.Len()
	order := make([]int, 0, n)
	if n == 0 {
		return order, nil
	}

	centre := ref.Centroid()
	visited := make([]bool, n)
	cur := closestTo(ref, centre)
	for {
		visited[cur] = true
		order = append(order, cur)
		if len(order) == n {
			return order, nil
		}
		v, ok := next(ref, centre, cur, visited)
		if !ok {
			return nil, errors.New(errors.ErrCodeStuckTraversal,
				"traversal stuck at vertex %d after labelling %d of %d vertices", cur, len(order), n)
		}
		cur = v
	}
}

// Apply computes the order from ref and reindexes target with it. It returns
// the relabelled lattice together with the order.
//
// target and ref must have the same vertex count; with [WithTopologyCheck]
// they must also share the edge set. Otherwise LABEL_MISMATCH is returned.
func Apply(target, ref *lattice.Lattice, method Method, opts ...Option) (*lattice.Lattice, []int, error) {
	if target == nil || ref == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "target and reference lattice are required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if target.Len() != ref.Len() {
		return nil, nil, errors.New(errors.ErrCodeLabelMismatch,
			"reference has %d vertices but target has %d", ref.Len(), target.Len())
	}
	if o.checkTopology && !ref.SameTopology(target) {
		return nil, nil, errors.New(errors.ErrCodeLabelMismatch,
			"reference and target edge sets differ (%d vs %d edges)", ref.EdgeCount(), target.EdgeCount())
	}

	order, err := Compute(ref, method)
	if err != nil {
		return nil, nil, err
	}
	out, err := target.Reindex(order)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "reindex target")
	}
	return out, order, nil
}

// closestTo returns the vertex closest to c, lowest index on ties.
func closestTo(l *lattice.Lattice, c lattice.Point) int {
	best, bestDist := 0, math.Inf(1)
	for i := 0; i < l.Len(); i++ {
		if d := l.Position(i).Dist(c); d < bestDist-tieTolerance {
			best, bestDist = i, d
		}
	}
	return best
}

func nextInnermost(ref *lattice.Lattice, centre lattice.Point, cur int, visited []bool) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for _, v := range ref.Neighbours(cur) {
		if visited[v] {
			continue
		}
		if d := ref.Position(v).Dist(centre); best < 0 || d < bestDist-tieTolerance {
			best, bestDist = v, d
		}
	}
	return best, best >= 0
}

func nextAnticlockwise(ref *lattice.Lattice, centre lattice.Point, cur int, visited []bool) (int, bool) {
	base := 0.0
	if u := ref.Position(cur).Sub(centre); math.Hypot(u[0], u[1]) > tieTolerance {
		base = math.Atan2(u[1], u[0])
	}

	best, bestTurn := -1, math.Inf(1)
	for _, v := range ref.Neighbours(cur) {
		if visited[v] {
			continue
		}
		if t := turn(ref.Position(v).Sub(centre), base); best < 0 || t < bestTurn-tieTolerance {
			best, bestTurn = v, t
		}
	}
	return best, best >= 0
}

// turn returns the anticlockwise angle from the ray at angle base to the
// direction of d, normalized into (0, 2π]. A zero vector yields 2π.
func turn(d lattice.Point, base float64) float64 {
	const full = 2 * math.Pi
	if math.Hypot(d[0], d[1]) <= tieTolerance {
		return full
	}
	t := math.Mod(math.Atan2(d[1], d[0])-base, full)
	if t < 0 {
		t += full
	}
	if t <= tieTolerance || full-t <= tieTolerance {
		return full
	}
	return t
}
