package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dbgtools/closetig/pkg/bcalm"
	"github.com/dbgtools/closetig/pkg/closure"
	"github.com/dbgtools/closetig/pkg/dbg"
	"github.com/dbgtools/closetig/pkg/verify"
)

// Runner executes the compression pipeline. It is stateless apart from the
// logger; multiple goroutines can share one Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs read → build → decompose → materialize → (verify) and returns
// the emitted unitig set with stats. The context is only consulted between
// stages: the computation itself is a bounded batch job with no cancellation
// semantics of its own.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{RunID: uuid.NewString()}
	logger.Debug("starting run", "run_id", result.RunID)

	// Stage 1: read records.
	readStart := time.Now()
	var records []bcalm.Record
	var err error
	if opts.Input != nil {
		records, err = bcalm.Read(opts.Input)
	} else {
		records, err = bcalm.ReadFile(opts.InputPath)
	}
	if err != nil {
		return nil, err
	}
	result.Stats.Records = len(records)
	result.Stats.ReadTime = time.Since(readStart)
	logger.Info("read records", "records", len(records), "duration", result.Stats.ReadTime)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: build the canonical k-mer graph.
	buildStart := time.Now()
	g, err := dbg.Build(records)
	if err != nil {
		return nil, err
	}
	result.K = g.K()
	result.Stats.Nodes = g.NodeCount()
	result.Stats.Arcs = g.ArcCount()
	result.Stats.BuildTime = time.Since(buildStart)
	logger.Info("built graph",
		"k", g.K(), "nodes", g.NodeCount(), "arcs", g.ArcCount(),
		"duration", result.Stats.BuildTime)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: threshold decomposition.
	decompStart := time.Now()
	comps, err := closure.Decompose(g)
	if err != nil {
		return nil, err
	}
	result.Stats.Components = len(comps)
	result.Stats.DecomposeTime = time.Since(decompStart)
	logger.Info("decomposed graph", "components", len(comps), "duration", result.Stats.DecomposeTime)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: materialize components in parallel. Finalized components share
	// no mutable state, so the only coordination is the indexed result slice.
	matStart := time.Now()
	result.Unitigs = materializeAll(g, comps, opts.Workers)
	if opts.SortBySupport {
		sort.SliceStable(result.Unitigs, func(i, j int) bool {
			return result.Unitigs[i].Support < result.Unitigs[j].Support
		})
	}
	result.Stats.Unitigs = len(result.Unitigs)
	result.Stats.MaterializeTime = time.Since(matStart)
	logger.Info("materialized unitigs", "unitigs", len(result.Unitigs), "duration", result.Stats.MaterializeTime)

	// Stage 5: optional reconstruction check.
	if opts.Check {
		checkStart := time.Now()
		if err := verify.Check(g, result.Unitigs); err != nil {
			return nil, err
		}
		result.Stats.CheckTime = time.Since(checkStart)
		logger.Info("verified reconstruction", "kmers", g.NodeCount(), "duration", result.Stats.CheckTime)
	}

	return result, nil
}

// materializeAll fans the components out over a bounded worker pool and
// reassembles the per-component unitigs in component order, so the flattened
// result is independent of scheduling.
func materializeAll(g *dbg.Graph, comps []closure.Component, workers int) []closure.Unitig {
	if workers > len(comps) {
		workers = len(comps)
	}
	if workers <= 1 {
		var out []closure.Unitig
		for _, comp := range comps {
			out = append(out, closure.Materialize(g, comp)...)
		}
		return out
	}

	perComp := make([][]closure.Unitig, len(comps))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				perComp[i] = closure.Materialize(g, comps[i])
			}
		}()
	}
	for i := range comps {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out []closure.Unitig
	for _, unitigs := range perComp {
		out = append(out, unitigs...)
	}
	return out
}
