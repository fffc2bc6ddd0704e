package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/latgraph/pkg/pipeline"
	"github.com/matzehuels/latgraph/pkg/relabel"
)

// convertCommand creates the convert command for converting, relabelling and
// plotting a lattice file.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		opts  pipeline.Options
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Convert, relabel and plot a lattice file",
		Long: `Convert a lattice between formats, optionally relabelling it.

The format of every file is chosen by its extension: .w3d, .w2d, .yml and
.yaml for lattices, .svg, .pdf and .png for plots. With --labels the input
is relabelled by traversing the label lattice, which must have the same
number of vertices.`,
		Example: `  # Convert a writegraph file to YAML
  latgraph convert lattice.w3d -o lattice.yml

  # Relabel against a 2D reference and plot the result
  latgraph convert lattice.w3d -l labels.w2d -m anticlockwise -o out.yml -p out.svg

  # Re-run whenever the lattice or the label file changes
  latgraph convert lattice.w3d -l labels.w2d -o out.yml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			c.applyConvertConfig(cmd, &opts)
			if watch {
				return c.runConvertWatch(cmd, opts)
			}
			return c.runConvert(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Output, "output", "o", "", "output lattice file (.w3d, .w2d, .yml, .yaml)")
	flags.StringVarP(&opts.Labels, "labels", "l", "", "reference lattice whose traversal defines the new labels")
	flags.StringVarP(&opts.Method, "method", "m", pipeline.DefaultMethod, "relabelling method: "+strings.Join(relabel.Methods, ", "))
	flags.BoolVar(&opts.CheckTopology, "check-topology", false, "require the label lattice to share the input's edges")
	flags.StringVarP(&opts.Plot, "plot", "p", "", "plot the final lattice (.svg, .pdf, .png)")
	flags.StringVarP(&opts.PlotLabels, "plot-labels", "P", "", "plot the label lattice annotated with the new labels")
	flags.Float64Var(&opts.PlotScale, "plot-scale", pipeline.DefaultPlotScale, "scale factor for PNG plots")
	flags.BoolVar(&c.noCache, "no-cache", false, "render plots without the plot cache")
	flags.BoolVarP(&watch, "watch", "w", false, "re-run whenever the input or label file changes")

	_ = cmd.RegisterFlagCompletionFunc("method", cobra.FixedCompletions(relabel.Methods, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyConvertConfig copies config values into opts for every flag the user
// did not set.
func (c *CLI) applyConvertConfig(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if !flags.Changed("method") && c.Config.Method != "" {
		opts.Method = c.Config.Method
	}
	if !flags.Changed("check-topology") {
		opts.CheckTopology = c.Config.CheckTopology
	}
	if !flags.Changed("plot-scale") && c.Config.PlotScale > 0 {
		opts.PlotScale = c.Config.PlotScale
	}
}

// wantsPlotCache reports whether the run plots and caching is enabled.
func (c *CLI) wantsPlotCache(opts pipeline.Options) bool {
	return !c.noCache && (opts.Plot != "" || opts.PlotLabels != "")
}

func (c *CLI) runConvert(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	out := cmd.OutOrStdout()

	if opts.Output == "" && opts.Plot == "" && opts.PlotLabels == "" {
		logger.Warn("no output requested, only validating input", "input", opts.Input)
	}

	var spinner *Spinner
	if (opts.Plot != "" || opts.PlotLabels != "") && isTerminal(cmd.ErrOrStderr()) {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Plotting...")
		spinner.Start()
	}

	prog := newProgress(logger)
	result, err := c.newRunner(c.wantsPlotCache(opts)).Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("convert %s: %w", opts.Input, err)
	}
	prog.done("Converted " + opts.Input)

	printResult(out, opts, result)
	return nil
}

// runConvertWatch converts once and again on every change to the input or
// label file, until interrupted.
func (c *CLI) runConvertWatch(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()
	opts.Logger = loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	printInfo(out, "Watching %s (Ctrl+C to stop)", opts.Input)
	return c.newRunner(c.wantsPlotCache(opts)).Watch(ctx, opts, func(result *pipeline.Result, err error) {
		if err != nil {
			printError(out, "%s", FormatError(err))
			return
		}
		printResult(out, opts, result)
	})
}

func printResult(out io.Writer, opts pipeline.Options, result *pipeline.Result) {
	if result.Order != nil {
		printSuccess(out, "Relabelled %s (%s)", opts.Input, opts.Method)
	} else {
		printSuccess(out, "Loaded %s", opts.Input)
	}
	printStats(out, result.Stats.Vertices, result.Stats.Edges)
	for _, path := range result.Written {
		printFile(out, path)
	}
}
