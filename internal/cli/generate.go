package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/generate"
	"github.com/matzehuels/latgraph/pkg/io"
)

// generateFlags holds the flags shared by all generate subcommands.
type generateFlags struct {
	output string
	opts   generate.Options
}

// generateCommand creates the generate command with one subcommand per
// lattice kind.
func (c *CLI) generateCommand() *cobra.Command {
	var gf generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate lattices and graphene ribbons",
		Long: `Generate a lattice procedurally.

Without --output the lattice is written to stdout as YAML.`,
		Example: `  latgraph generate triangle 7 3 -o tri.w3d
  latgraph generate square 4 4 --dim 2 --spacing 0.5 -o grid.w2d
  latgraph generate ring 12 --name ring12
  latgraph generate kagome 4 4 --periodic -o kagome.yml
  latgraph generate zgnr 4 6 -o ribbon.w3d
  latgraph generate tube 6 0 4 -o cnt.yml`,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&gf.output, "output", "o", "", "output lattice file (.w3d, .w2d, .yml, .yaml)")
	flags.Float64Var(&gf.opts.Spacing, "spacing", generate.DefaultSpacing, "nearest-neighbour distance")
	flags.IntVar(&gf.opts.Dim, "dim", generate.DefaultDim, "embedding dimension (2 or 3)")
	flags.StringVar(&gf.opts.Name, "name", "", "lattice name (YAML only)")
	flags.StringVar(&gf.opts.Comment, "comment", "", "lattice comment (YAML only)")
	flags.IntVar(&gf.opts.TimeSlices, "nt", 0, "number of time slices (YAML only)")
	flags.BoolVar(&gf.opts.Periodic, "periodic", false, "close the boundaries (kagome only)")

	cmd.AddCommand(c.generateKindCommand(&gf, "square", "square COLS ROWS", "Square grid with open boundaries", 2))
	cmd.AddCommand(c.generateKindCommand(&gf, "triangle", "triangle COLS ROWS", "Triangular tiling, first triangle pointing up", 2))
	cmd.AddCommand(c.generateKindCommand(&gf, "ring", "ring N", "Ring of N vertices, labelled anticlockwise", 1))
	cmd.AddCommand(c.generateKindCommand(&gf, "kagome", "kagome COLS ROWS", "Kagome lattice of COLS x ROWS unit cells", 2))
	cmd.AddCommand(c.generateKindCommand(&gf, "agnr", "agnr DIMERS HEXAGONS", "Armchair graphene nanoribbon, periodic along its length", 2))
	cmd.AddCommand(c.generateKindCommand(&gf, "zgnr", "zgnr ZIGZAGS CELLS", "Zigzag graphene nanoribbon, periodic along its length", 2))
	cmd.AddCommand(c.generateKindCommand(&gf, "pyramid", "pyramid NX NY", "Square pyramids tiled in the plane (3D only)", 2))
	cmd.AddCommand(c.generateKindCommand(&gf, "tube", "tube N M CELLS", "Carbon nanotube of chirality (N, M), periodic along its axis", 3))

	return cmd
}

func (c *CLI) generateKindCommand(gf *generateFlags, kind, use, short string, nargs int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := parseSize(args)
			if err != nil {
				return err
			}
			c.applyGenerateConfig(cmd, gf)
			return c.runGenerate(cmd, kind, size, *gf)
		},
	}
}

// applyGenerateConfig copies config values into gf for every flag the user
// did not set.
func (c *CLI) applyGenerateConfig(cmd *cobra.Command, gf *generateFlags) {
	flags := cmd.Flags()
	if !flags.Changed("spacing") && c.Config.Generate.Spacing > 0 {
		gf.opts.Spacing = c.Config.Generate.Spacing
	}
	if !flags.Changed("dim") && c.Config.Generate.Dim != 0 {
		gf.opts.Dim = c.Config.Generate.Dim
	}
}

func parseSize(args []string) ([]int, error) {
	size := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "size argument %q is not an integer", arg)
		}
		size[i] = n
	}
	return size, nil
}

func (c *CLI) runGenerate(cmd *cobra.Command, kind string, size []int, gf generateFlags) error {
	logger := loggerFromContext(cmd.Context())

	if gf.output != "" {
		// Reject the extension before doing any work.
		if _, err := io.FormatFromPath(gf.output); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	l, err := generate.ByName(kind, size, gf.opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %s", kind))
	logger.Debug("generated lattice", "kind", kind, "vertices", l.Len(), "edges", l.EdgeCount())

	if gf.output == "" {
		return io.Encode(cmd.OutOrStdout(), l, io.FormatYAML)
	}
	if err := io.WriteFile(gf.output, l); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Generated %s lattice", kind)
	printStats(out, l.Len(), l.EdgeCount())
	printFile(out, gf.output)
	return nil
}
