package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dbgtools/closetig/pkg/buildinfo"
)

// Execute runs the closetig CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (close, verify,
// stats, dot), configures logging based on the --verbose flag, and executes
// the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:   "closetig",
		Short: "closetig compresses per-k-mer abundance counts into closed unitigs",
		Long: `Closetig reads BCALM2-style unitig records with per-k-mer abundance counts,
builds the canonical k-mer graph, and rewrites the counts as a set of closed
unitigs from which every original count can be reconstructed exactly.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCloseCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newDotCmd())

	return root.ExecuteContext(ctx)
}
