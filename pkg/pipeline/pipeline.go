// Package pipeline provides the convert pipeline used by the latgraph CLI.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: decode the input lattice (and the label lattice, if any)
//  2. Relabel: compute a traversal order from the label lattice and apply it
//  3. Render: encode the output and draw the requested plots, in memory
//  4. Write: stage every artifact in a temp file, then rename them all
//
// All validation and every stage that can fail on bad data run before the
// first file is written. Artifacts are renamed into place only after all of
// them were staged, so a failed run leaves no output behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:  "lattice.w3d",
//	    Output: "lattice.yml",
//	    Labels: "labels.w2d",
//	    Method: "anticlockwise",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Order)
package pipeline

import (
	stdio "io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/io"
	"github.com/matzehuels/latgraph/pkg/lattice"
	"github.com/matzehuels/latgraph/pkg/relabel"
	"github.com/matzehuels/latgraph/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMethod is the relabelling method used when none is given.
	DefaultMethod = "innermost"

	// DefaultPlotScale is the raster scale for PNG plots.
	DefaultPlotScale = 2.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the lattice file to convert. Required.
	Input string

	// Output is the file to write the final lattice to. Optional.
	Output string

	// Labels is a reference lattice file. When set, the input is relabelled
	// by traversing the reference.
	Labels string

	// Method is "innermost" or "anticlockwise".
	Method string

	// CheckTopology additionally requires the reference and the input to
	// share their edge set.
	CheckTopology bool

	// Plot is an image file (.svg, .pdf, .png) for the final lattice.
	Plot string

	// PlotLabels is an image file for the label lattice annotated with the
	// computed labels. Requires Labels.
	PlotLabels string

	// PlotScale is the raster scale used for PNG plots.
	PlotScale float64

	// Runtime options
	Logger *log.Logger

	method    relabel.Method
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Lattice is the final lattice, relabelled if Labels was set.
	Lattice *lattice.Lattice

	// Order is the traversal order (nil without Labels): Order[k] is the
	// original index of the vertex that received label k.
	Order []int

	// Written lists the files written, in order.
	Written []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices    int
	Edges       int
	LoadTime    time.Duration
	RelabelTime time.Duration
	RenderTime  time.Duration
	WriteTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every file name and option and applies
// defaults. It touches no file. Calling it more than once has no further
// effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	for _, path := range []string{o.Input, o.Output, o.Labels} {
		if path == "" {
			continue
		}
		if _, err := io.FormatFromPath(path); err != nil {
			return err
		}
	}
	for _, path := range []string{o.Plot, o.PlotLabels} {
		if path == "" {
			continue
		}
		if _, err := render.FormatFromPath(path); err != nil {
			return err
		}
	}
	if o.PlotLabels != "" && o.Labels == "" {
		return errors.New(errors.ErrCodeInvalidInput, "plotting the label lattice requires a label file")
	}

	if o.Method == "" {
		o.Method = DefaultMethod
	}
	m, err := relabel.ParseMethod(o.Method)
	if err != nil {
		return err
	}
	o.method = m

	if o.PlotScale <= 0 {
		o.PlotScale = DefaultPlotScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// relabelOptions returns the engine options selected by o.
func (o *Options) relabelOptions() []relabel.Option {
	if o.CheckTopology {
		return []relabel.Option{relabel.WithTopologyCheck()}
	}
	return nil
}
