// Package pipeline orchestrates the full compression run: read records →
// build graph → decompose → materialize → (verify).
//
// Centralizing the stage sequence keeps the CLI commands thin and guarantees
// a single behavior for every entry point. Each stage can also be run
// independently through the underlying packages.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{InputPath: "graph.fa"})
//	if err != nil {
//	    return err
//	}
//	for i, u := range result.Unitigs {
//	    w.WriteRecord(i, u.Support, u.Seq)
//	}
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dbgtools/closetig/pkg/closure"
	"github.com/dbgtools/closetig/pkg/errors"
)

// Options configures one compression run.
type Options struct {
	// InputPath is the BCALM2 FASTA file to read. Ignored when Input is set.
	InputPath string

	// Input overrides InputPath with an in-memory stream. Mainly for tests.
	Input io.Reader

	// Workers bounds the goroutines materializing components in parallel.
	// Defaults to runtime.NumCPU().
	Workers int

	// Check re-verifies the reconstruction law on the emitted set before
	// returning. A failure is an implementation defect, not an input error.
	Check bool

	// SortBySupport orders the emitted unitigs by ascending support, which
	// keeps consecutive support deltas small in the output. When false the
	// emission order of the sweep (descending support) is kept. The order is
	// deterministic either way.
	SortBySupport bool

	// Logger receives per-stage progress. Defaults to a discarding logger.
	Logger *log.Logger
}

// validate applies defaults and rejects unusable options.
func (o *Options) validate() error {
	if o.InputPath == "" && o.Input == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no input file given")
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be positive, got %d", o.Workers)
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result holds the outputs of one run.
type Result struct {
	// RunID uniquely identifies this execution in logs.
	RunID string

	// K is the k-mer length inferred from the input.
	K int

	// Unitigs is the emitted closed-unitig set in deterministic order.
	Unitigs []closure.Unitig

	// Stats contains size and timing information per stage.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Nodes      int
	Arcs       int
	Components int
	Unitigs    int

	ReadTime        time.Duration
	BuildTime       time.Duration
	DecomposeTime   time.Duration
	MaterializeTime time.Duration
	CheckTime       time.Duration
}
