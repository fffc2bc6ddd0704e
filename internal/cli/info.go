package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/latgraph/pkg/io"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// infoCommand creates the info command that summarizes a lattice file.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info INPUT",
		Short: "Print a summary of a lattice file",
		Long: `Decode a lattice file, which checks every structural invariant, and
print its size, geometry and metadata.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd, args[0])
		},
	}
}

func (c *CLI) runInfo(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	format, err := io.FormatFromPath(path)
	if err != nil {
		return err
	}
	l, err := io.ReadFile(path)
	if err != nil {
		return err
	}
	logger.Debug("decoded lattice", "path", path, "format", format)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, StyleTitle.Render(path))
	printKeyValue(out, "format", string(format))
	printKeyValue(out, "dim", strconv.Itoa(l.Dim()))
	printKeyValue(out, "vertices", StyleNumber.Render(strconv.Itoa(l.Len())))
	printKeyValue(out, "edges", StyleNumber.Render(strconv.Itoa(l.EdgeCount())))

	lo, hi := l.DegreeRange()
	printKeyValue(out, "degree", fmt.Sprintf("%d..%d", lo, hi))

	components := l.ComponentCount()
	connected := "yes"
	if components > 1 {
		connected = fmt.Sprintf("no (%d components)", components)
	}
	printKeyValue(out, "connected", connected)

	nt := l.TimeSlices()
	if nt == 0 {
		nt = 1
	}
	printKeyValue(out, "time slices", strconv.Itoa(nt))
	if l.Name() != "" {
		printKeyValue(out, "name", l.Name())
	}
	if l.Comment() != "" {
		printKeyValue(out, "comment", l.Comment())
	}
	if l.Len() > 0 {
		lo, hi := l.Bounds()
		printKeyValue(out, "centroid", fmtPoint(l.Centroid(), l.Dim()))
		printKeyValue(out, "bounds", fmtPoint(lo, l.Dim())+" .. "+fmtPoint(hi, l.Dim()))
	}
	if components > 1 {
		printInfo(out, "relabelling against this lattice will fail: it is not connected")
		printDetail(out, "every vertex must be reachable from the centre vertex")
	}
	return nil
}

func fmtPoint(p lattice.Point, dim int) string {
	parts := make([]string, dim)
	for i := range dim {
		parts[i] = strconv.FormatFloat(p[i], 'g', 6, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
