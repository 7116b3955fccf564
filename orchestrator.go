package vex2pdf

import (
	"context"
	"fmt"
	"runtime"
)

// BatchProcessor is the "processes many jobs" capability: submit a fully
// enumerated job list and collect the run summary.
type BatchProcessor interface {
	Process(ctx context.Context, jobs []Job) (Summary, error)
}

// Compile-time check that Orchestrator implements BatchProcessor.
var _ BatchProcessor = (*Orchestrator)(nil)

// Orchestrator bridges a discovered job list to a WorkerPool and aggregates
// the outcome. Per-job failures are absorbed into the Summary; the only
// error Process itself reports is ErrInvalidWorkerCount.
type Orchestrator struct {
	cfg  *Config
	proc FileProcessor

	// OnResult, when set, receives every per-job status event in reporting
	// order. Successes carry SeverityInfo, failures SeverityError.
	OnResult func(JobResult)
}

// NewOrchestrator creates an Orchestrator running jobs through proc with
// the shared settings cfg.
func NewOrchestrator(cfg *Config, proc FileProcessor) *Orchestrator {
	return &Orchestrator{cfg: cfg, proc: proc}
}

// ResolveWorkerCount maps the configured worker-count setting to a concrete
// pool size: 0 resolves to the host's available parallelism clamped to
// [MinWorkers, MaxWorkers]; anything else is returned unchanged for the
// pool constructor to validate.
func ResolveWorkerCount(configured int) int {
	if configured != 0 {
		return configured
	}

	// automaxprocs adjusts GOMAXPROCS for container CPU quotas.
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// Process submits every job, drains the pool, and returns the aggregated
// summary. An empty job list yields Summary{} without error. The worker
// count is validated before any job is touched; a value outside
// {0} ∪ [1,255] fails with ErrInvalidWorkerCount.
func (o *Orchestrator) Process(ctx context.Context, jobs []Job) (Summary, error) {
	if o.cfg.Workers < 0 || o.cfg.Workers > MaxWorkers {
		return Summary{}, fmt.Errorf("%w: %d (must be between 0 and %d, 0 means auto)", ErrInvalidWorkerCount, o.cfg.Workers, MaxWorkers)
	}

	if len(jobs) == 0 {
		return Summary{}, nil
	}

	// Never spawn more workers than there are jobs to run.
	workers := ResolveWorkerCount(o.cfg.Workers)
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var opts []PoolOption
	if o.OnResult != nil {
		opts = append(opts, WithResultHandler(o.OnResult))
	}

	// Queue sized to the exact job count, so Submit never blocks.
	pool, err := NewWorkerPool(ctx, workers, len(jobs), o.proc, o.cfg, opts...)
	if err != nil {
		return Summary{}, err
	}

	for _, job := range jobs {
		if err := pool.Submit(job); err != nil {
			// Unreachable while this orchestrator owns the pool; surfaced
			// for completeness rather than swallowed.
			pool.Shutdown()
			return Summarize(pool.Results()), err
		}
	}

	pool.Shutdown()
	return Summarize(pool.Results()), nil
}
