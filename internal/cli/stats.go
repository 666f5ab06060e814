package cli

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dbgtools/closetig/pkg/pipeline"
)

// newStatsCmd creates the stats command, which runs the pipeline and prints a
// summary table instead of the output records.
func newStatsCmd() *cobra.Command {
	workers := runtime.NumCPU()

	cmd := &cobra.Command{
		Use:   "stats <abundance-file>",
		Short: "Print graph and decomposition statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runStats(c.Context(), args[0], workers)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", workers, "materialization workers")
	return cmd
}

func runStats(ctx context.Context, path string, workers int) error {
	logger := loggerFromContext(ctx)

	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		InputPath: path,
		Workers:   workers,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	bases := 0
	for _, u := range result.Unitigs {
		bases += len(u.Seq)
	}

	s := result.Stats
	rows := [][]string{
		{"k", strconv.Itoa(result.K)},
		{"records", strconv.Itoa(s.Records)},
		{"k-mers", strconv.Itoa(s.Nodes)},
		{"arcs", strconv.Itoa(s.Arcs)},
		{"components", strconv.Itoa(s.Components)},
		{"unitigs", strconv.Itoa(s.Unitigs)},
		{"output bases", strconv.Itoa(bases)},
		{"read", s.ReadTime.Round(time.Millisecond).String()},
		{"build", s.BuildTime.Round(time.Millisecond).String()},
		{"decompose", s.DecomposeTime.Round(time.Millisecond).String()},
		{"materialize", s.MaterializeTime.Round(time.Millisecond).String()},
	}

	fmt.Println(StyleTitle.Render("Decomposition statistics"))

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	return nil
}
