package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dbgtools/closetig/pkg/bcalm"
	"github.com/dbgtools/closetig/pkg/pipeline"
)

// closeOpts holds the command-line flags for the close command.
type closeOpts struct {
	output  string // output file path (stdout if empty)
	workers int    // materialization worker count
	check   bool   // verify the reconstruction law before writing
	noSort  bool   // keep component emission order
	config  string // explicit TOML config file
}

// newCloseCmd creates the close command, the main operation of the tool.
//
// Default options:
//   - workers: runtime.NumCPU()
//   - check: false (opt-in self-check)
//   - output sorted by ascending support
func newCloseCmd() *cobra.Command {
	opts := closeOpts{workers: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "close <abundance-file>",
		Short: "Compress per-k-mer counts into closed unitigs",
		Long: `Compress a BCALM2-style abundance file into closed unitigs.

Each output record carries a single support value in its header; the count of
any k-mer in the input is the maximum support over the output unitigs that
contain it.

Examples:
  closetig close graph.fa                      # Write to stdout
  closetig close graph.fa -o closed.fa         # Write to a file
  closetig close graph.fa --check              # Verify before writing`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runClose(c, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "materialization workers")
	cmd.Flags().BoolVar(&opts.check, "check", false, "verify the reconstruction law before writing")
	cmd.Flags().BoolVar(&opts.noSort, "no-sort", false, "keep component emission order instead of sorting by support")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file")

	return cmd
}

// runClose executes the full pipeline and writes the closed unitigs.
func runClose(cmd *cobra.Command, opts *closeOpts, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	applyConfig(cmd, opts, cfg)

	logger.Infof("Closing %s", path)
	prog := newProgress(logger)

	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		InputPath:     path,
		Workers:       opts.workers,
		Check:         opts.check,
		SortBySupport: !opts.noSort,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Closed %d k-mers into %d unitigs", result.Stats.Nodes, result.Stats.Unitigs))

	return writeUnitigs(result, opts.output, logger)
}

// applyConfig fills in values from the config file for flags the user did not
// set on the command line.
func applyConfig(cmd *cobra.Command, opts *closeOpts, cfg Config) {
	if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
		opts.workers = cfg.Workers
	}
	if !cmd.Flags().Changed("check") && cfg.Check {
		opts.check = true
	}
	if !cmd.Flags().Changed("no-sort") && cfg.SortBySupport != nil {
		opts.noSort = !*cfg.SortBySupport
	}
}

// writeUnitigs serializes the unitigs to the specified path (or stdout if empty).
// Output ids are assigned by position.
func writeUnitigs(result *pipeline.Result, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bcalm.NewWriter(out)
	for i, u := range result.Unitigs {
		if err := w.WriteRecord(i, u.Support, u.Seq); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote %d unitigs to %s", len(result.Unitigs), path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
