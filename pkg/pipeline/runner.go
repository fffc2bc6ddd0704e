package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/latgraph/pkg/cache"
	"github.com/matzehuels/latgraph/pkg/io"
	"github.com/matzehuels/latgraph/pkg/lattice"
	"github.com/matzehuels/latgraph/pkg/observability"
	"github.com/matzehuels/latgraph/pkg/relabel"
)

// Runner executes the convert pipeline.
//
// The Runner keeps no results between runs. Rendered plots may be reused
// through Cache.
type Runner struct {
	Logger *log.Logger

	// Cache holds rendered plots keyed by their DOT source. Never nil after
	// NewRunner.
	Cache cache.Cache
}

// NewRunner creates a runner without a plot cache. A nil logger means
// log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Cache: cache.NewNullCache()}
}

// Artifact is an encoded file waiting to be written.
type Artifact struct {
	Path string
	Data []byte
}

// Execute runs load → relabel → render → write. Cancellation is checked
// between stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	lat, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	var ref *lattice.Lattice
	if opts.Labels != "" {
		if ref, err = r.Load(ctx, opts.Labels); err != nil {
			return nil, err
		}
	}
	result.Stats.LoadTime = time.Since(loadStart)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Relabel
	if ref != nil {
		relabelStart := time.Now()
		lat, result.Order, err = r.Relabel(ctx, lat, ref, opts)
		if err != nil {
			return nil, err
		}
		result.Stats.RelabelTime = time.Since(relabelStart)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	result.Lattice = lat
	result.Stats.Vertices = lat.Len()
	result.Stats.Edges = lat.EdgeCount()

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, lat, ref, result.Order, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Write
	writeStart := time.Now()
	written, err := r.write(ctx, artifacts)
	if err != nil {
		return nil, err
	}
	result.Written = written
	result.Stats.WriteTime = time.Since(writeStart)

	return result, nil
}

// Load reads the lattice at path.
func (r *Runner) Load(ctx context.Context, path string) (*lattice.Lattice, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	l, err := io.ReadFile(path)
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, path, l.Len(), time.Since(start), nil)

	r.Logger.Info("loaded lattice",
		"path", path,
		"vertices", l.Len(),
		"edges", l.EdgeCount(),
		"dim", l.Dim(),
		"duration", time.Since(start))
	return l, nil
}

// Relabel reorders target by traversing ref with the method in opts.
func (r *Runner) Relabel(ctx context.Context, target, ref *lattice.Lattice, opts Options) (*lattice.Lattice, []int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRelabelStart(ctx, opts.Method, ref.Len())
	start := time.Now()

	out, order, err := relabel.Apply(target, ref, opts.method, opts.relabelOptions()...)
	hooks.OnRelabelComplete(ctx, opts.Method, time.Since(start), err)
	if err != nil {
		return nil, nil, fmt.Errorf("relabel with %s: %w", opts.Labels, err)
	}

	r.Logger.Info("relabelled lattice",
		"method", opts.Method,
		"vertices", out.Len(),
		"duration", time.Since(start))
	return out, order, nil
}

// write stages every artifact next to its target before renaming any of
// them into place, so a failure while staging leaves no output behind.
func (r *Runner) write(ctx context.Context, artifacts []Artifact) ([]string, error) {
	hooks := observability.Pipeline()
	staged := make([]*io.Staged, 0, len(artifacts))
	defer func() {
		for _, s := range staged {
			s.Discard()
		}
	}()

	starts := make([]time.Time, len(artifacts))
	for i, a := range artifacts {
		hooks.OnWriteStart(ctx, a.Path)
		starts[i] = time.Now()
		s, err := io.Stage(a.Path, a.Data)
		if err != nil {
			hooks.OnWriteComplete(ctx, a.Path, time.Since(starts[i]), err)
			return nil, err
		}
		staged = append(staged, s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(staged))
	for i, s := range staged {
		a := artifacts[i]
		err := s.Commit()
		hooks.OnWriteComplete(ctx, a.Path, time.Since(starts[i]), err)
		if err != nil {
			return written, err
		}
		written = append(written, a.Path)
		r.Logger.Debug("wrote file", "path", a.Path, "bytes", len(a.Data))
	}
	return written, nil
}
