package vex2pdf

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Worker count bounds.
const (
	// MinWorkers is the smallest pool: one worker, which degenerates to
	// inline mode (no goroutines, jobs run synchronously in the caller).
	MinWorkers = 1

	// MaxWorkers caps the pool size; each worker drives its own browser
	// page, so the count stays within a byte like the configuration value.
	MaxWorkers = 255
)

// FileProcessor is the per-job processing capability: parse one input file
// and render its report. Implementations must be safe for concurrent use,
// since every worker shares one instance.
type FileProcessor interface {
	ProcessFile(ctx context.Context, job Job, cfg *Config) (outputPath string, err error)
}

// PoolState tracks the lifecycle of a WorkerPool.
type PoolState int32

// Pool lifecycle states.
const (
	PoolRunning  PoolState = iota // accepting and executing jobs
	PoolDraining                  // queue closed, in-flight jobs finishing
	PoolStopped                   // all workers terminated
)

// String returns the lowercase display name of the state.
func (s PoolState) String() string {
	switch s {
	case PoolRunning:
		return "running"
	case PoolDraining:
		return "draining"
	default:
		return "stopped"
	}
}

// WorkerPool owns a fixed set of workers, the shared job queue, and the
// shutdown coordination. The pool size is fixed at creation; there is no
// resizing or reuse across runs.
//
// With a single worker the pool runs in inline mode: no goroutines are
// spawned and Submit executes each job synchronously in the caller, which
// guarantees submission-order execution and reporting. With more workers
// job completion order is nondeterministic.
type WorkerPool struct {
	cfg     *Config
	proc    FileProcessor
	workers int

	ctx  context.Context
	jobs chan Job // nil in inline mode
	wg   sync.WaitGroup

	state atomic.Int32

	succeeded atomic.Int64
	failed    atomic.Int64

	mu       sync.Mutex
	results  []JobResult
	onResult func(JobResult)
}

// PoolOption configures a WorkerPool.
type PoolOption func(*WorkerPool)

// WithResultHandler registers a callback invoked once per completed job,
// in reporting order. Calls are serialized; the handler must not block for
// long or it stalls result reporting.
func WithResultHandler(fn func(JobResult)) PoolOption {
	return func(p *WorkerPool) {
		p.onResult = fn
	}
}

// NewWorkerPool creates a pool with exactly workers execution agents and a
// job queue sized to capacity. Discovery enumerates the full job list before
// dispatch, so callers size capacity to the job count and Submit never
// blocks.
//
// The worker count must be in [MinWorkers, MaxWorkers]; a configured value
// of 0 is resolved to hardware parallelism by ResolveWorkerCount before it
// reaches this constructor. workers == 1 selects inline mode.
//
// The context is handed to the processing capability of every job; the pool
// itself never cancels or times out an in-flight job.
func NewWorkerPool(ctx context.Context, workers, capacity int, proc FileProcessor, cfg *Config, opts ...PoolOption) (*WorkerPool, error) {
	if workers < MinWorkers || workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidWorkerCount, workers, MinWorkers, MaxWorkers)
	}
	if capacity < 0 {
		capacity = 0
	}

	p := &WorkerPool{
		cfg:     cfg,
		proc:    proc,
		workers: workers,
		ctx:     ctx,
	}

	for _, opt := range opts {
		opt(p)
	}

	if workers == 1 {
		// Inline mode: the caller's goroutine is the only worker.
		return p, nil
	}

	p.jobs = make(chan Job, capacity)
	for id := 1; id <= workers; id++ {
		p.wg.Add(1)
		go p.runWorker(id)
	}

	return p, nil
}

// Inline reports whether the pool runs jobs synchronously in the caller.
func (p *WorkerPool) Inline() bool {
	return p.jobs == nil
}

// Workers returns the fixed worker count chosen at creation.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// State returns the current pool lifecycle state.
func (p *WorkerPool) State() PoolState {
	return PoolState(p.state.Load())
}

// Submit enqueues one job. In inline mode the job executes synchronously
// before Submit returns; otherwise it is queued for the next free worker.
// Submitting after Shutdown returns ErrPoolStopped.
func (p *WorkerPool) Submit(job Job) error {
	if p.State() != PoolRunning {
		return ErrPoolStopped
	}

	if p.Inline() {
		p.report(p.execute(job))
		return nil
	}

	p.jobs <- job
	return nil
}

// Shutdown closes the queue, waits until every enqueued job has been
// processed and reported, and joins all workers. No job is discarded.
// It returns only after every worker has terminated.
func (p *WorkerPool) Shutdown() {
	if !p.state.CompareAndSwap(int32(PoolRunning), int32(PoolDraining)) {
		return // already draining or stopped
	}

	if !p.Inline() {
		close(p.jobs)
		p.wg.Wait()
	}

	p.state.Store(int32(PoolStopped))
}

// Results returns a copy of all reported results. Call after Shutdown for
// the complete run; calling earlier returns a snapshot.
func (p *WorkerPool) Results() []JobResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]JobResult, len(p.results))
	copy(out, p.results)
	return out
}

// Succeeded returns the number of jobs reported without error so far.
func (p *WorkerPool) Succeeded() int {
	return int(p.succeeded.Load())
}

// Failed returns the number of jobs reported with an error so far.
func (p *WorkerPool) Failed() int {
	return int(p.failed.Load())
}

// report records one result and emits the event. Serialized under the
// mutex so the caller-visible event stream has a single total order.
func (p *WorkerPool) report(res JobResult) {
	if res.Err != nil {
		p.failed.Add(1)
	} else {
		p.succeeded.Add(1)
	}

	p.mu.Lock()
	p.results = append(p.results, res)
	fn := p.onResult
	if fn != nil {
		fn(res)
	}
	p.mu.Unlock()
}
