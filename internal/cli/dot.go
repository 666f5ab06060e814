package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbgtools/closetig/pkg/bcalm"
	"github.com/dbgtools/closetig/pkg/dbg"
	"github.com/dbgtools/closetig/pkg/render"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	output string // output file path (stdout if empty)
	svg    bool   // render SVG via graphviz instead of emitting DOT
	counts bool   // include k-mer counts in node labels
}

// newDotCmd creates the dot command, a debugging aid for small inputs.
func newDotCmd() *cobra.Command {
	var opts dotOpts

	cmd := &cobra.Command{
		Use:   "dot <abundance-file>",
		Short: "Render the canonical k-mer graph as DOT or SVG",
		Long: `Render the canonical k-mer graph for inspection.

Each canonical k-mer becomes one node; edges carry the strand orientation of
both endpoints. Intended for small inputs.

Examples:
  closetig dot graph.fa                        # DOT to stdout
  closetig dot graph.fa --counts -o graph.dot  # DOT with counts
  closetig dot graph.fa --svg -o graph.svg     # SVG via graphviz`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDot(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().BoolVar(&opts.counts, "counts", false, "include k-mer counts in node labels")

	return cmd
}

func runDot(ctx context.Context, opts *dotOpts, path string) error {
	records, err := bcalm.ReadFile(path)
	if err != nil {
		return err
	}
	g, err := dbg.Build(records)
	if err != nil {
		return err
	}

	dot := render.ToDOT(g, render.Options{Counts: opts.counts})
	data := []byte(dot)

	if opts.svg {
		sp := newSpinner("Rendering SVG")
		sp.Start()
		data, err = render.RenderSVG(ctx, dot)
		if err != nil {
			sp.StopWithError(fmt.Sprintf("Render failed: %v", err))
			return err
		}
		sp.StopWithSuccess(fmt.Sprintf("Rendered %d nodes", g.NodeCount()))
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if opts.output != "" {
		printInfo("Wrote %s", opts.output)
	}
	return nil
}
