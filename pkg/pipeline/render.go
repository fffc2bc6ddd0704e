package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/latgraph/pkg/cache"
	"github.com/matzehuels/latgraph/pkg/io"
	"github.com/matzehuels/latgraph/pkg/lattice"
	"github.com/matzehuels/latgraph/pkg/observability"
	"github.com/matzehuels/latgraph/pkg/render"
	"github.com/matzehuels/latgraph/pkg/render/nodelink"
)

// Render encodes the output lattice and draws the requested plots. Nothing
// is written; the returned artifacts are in write order.
//
// ref and order are the label lattice and traversal order; both may be nil
// when no relabelling took place.
func (r *Runner) Render(ctx context.Context, lat, ref *lattice.Lattice, order []int, opts Options) ([]Artifact, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	var artifacts []Artifact

	if opts.Output != "" {
		f, err := io.FormatFromPath(opts.Output)
		if err != nil {
			return nil, err
		}
		data, err := io.Marshal(lat, f)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", opts.Output, err)
		}
		artifacts = append(artifacts, Artifact{Path: opts.Output, Data: data})
	}

	if opts.Plot != "" {
		data, err := r.plot(ctx, lat, opts.Plot, nodelink.Options{Labels: order != nil, Hopping: true}, opts.PlotScale)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Path: opts.Plot, Data: data})
	}

	if opts.PlotLabels != "" && ref != nil {
		plotOpts := nodelink.Options{Labels: true, VertexLabels: labelsOf(order)}
		data, err := r.plot(ctx, ref, opts.PlotLabels, plotOpts, opts.PlotScale)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Path: opts.PlotLabels, Data: data})
	}

	return artifacts, nil
}

// PlotCacheTTL is how long a rendered plot stays in the cache.
const PlotCacheTTL = 7 * 24 * time.Hour

func (r *Runner) plot(ctx context.Context, l *lattice.Lattice, path string, opts nodelink.Options, scale float64) ([]byte, error) {
	format, err := render.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	hooks := observability.Plot()
	hooks.OnPlotStart(ctx, format, l.Len())
	start := time.Now()

	dot := nodelink.ToDOT(l, opts)
	key := cache.PlotKey(dot, format, scale)
	if data, ok := r.cachedPlot(ctx, key, format); ok {
		hooks.OnPlotComplete(ctx, format, len(data), time.Since(start), nil)
		r.Logger.Debug("plot cache hit", "path", path, "format", format)
		return data, nil
	}

	data, err := renderDOT(dot, format, scale)
	hooks.OnPlotComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("plot %s: %w", path, err)
	}
	if err := r.cacheOrNull().Set(ctx, key, cache.Plot{Format: format, Data: data}, PlotCacheTTL); err != nil {
		r.Logger.Warn("plot not cached", "path", path, "err", err)
	}

	r.Logger.Info("rendered plot",
		"path", path,
		"format", format,
		"duration", time.Since(start))
	return data, nil
}

func renderDOT(dot, format string, scale float64) ([]byte, error) {
	svg, err := nodelink.RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(svg, format, scale)
}

// cachedPlot looks key up in the plot cache. Cache failures and entries of
// another format count as misses.
func (r *Runner) cachedPlot(ctx context.Context, key, format string) ([]byte, bool) {
	p, ok, err := r.cacheOrNull().Get(ctx, key)
	if err != nil {
		r.Logger.Warn("plot cache read failed", "err", err)
		return nil, false
	}
	if !ok || p.Format != format {
		return nil, false
	}
	return p.Data, true
}

func (r *Runner) cacheOrNull() cache.Cache {
	if r.Cache == nil {
		return cache.NewNullCache()
	}
	return r.Cache
}

// labelsOf returns, for each original vertex, the label it receives under
// order.
func labelsOf(order []int) []string {
	out := make([]string, len(order))
	for i, label := range lattice.Inverse(order) {
		out[i] = strconv.Itoa(label)
	}
	return out
}
