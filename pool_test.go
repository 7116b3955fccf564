package vex2pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// stubProcessor is a FileProcessor for tests: records call order, fails or
// panics on selected paths, and optionally sleeps to simulate render time.
type stubProcessor struct {
	mu      sync.Mutex
	calls   []string
	failOn  map[string]error
	panicOn map[string]bool
	delay   time.Duration
}

func (s *stubProcessor) ProcessFile(ctx context.Context, job Job, cfg *Config) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, job.Path)
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panicOn[job.Path] {
		panic("stub exploded on " + job.Path)
	}
	if err := s.failOn[job.Path]; err != nil {
		return "", err
	}
	return strings.TrimSuffix(job.Path, filepath.Ext(job.Path)) + ".pdf", nil
}

func (s *stubProcessor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubProcessor) callOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// makeJobs builds n JSON jobs with distinct paths.
func makeJobs(n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = NewJob(fmt.Sprintf("doc-%03d.json", i))
	}
	return jobs
}

func TestNewWorkerPool_WorkerCountBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"one worker is inline", 1, false},
		{"two workers", 2, false},
		{"four workers", 4, false},
		{"max workers", MaxWorkers, false},
		{"zero rejected", 0, true},
		{"negative rejected", -1, true},
		{"above max rejected", MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool, err := NewWorkerPool(context.Background(), tt.workers, 0, &stubProcessor{}, DefaultConfig())
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWorkerCount) {
					t.Fatalf("NewWorkerPool(%d) error = %v, want ErrInvalidWorkerCount", tt.workers, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewWorkerPool(%d) error = %v", tt.workers, err)
			}
			defer pool.Shutdown()

			if got := pool.Workers(); got != tt.workers {
				t.Errorf("Workers() = %d, want %d", got, tt.workers)
			}
			if wantInline := tt.workers == 1; pool.Inline() != wantInline {
				t.Errorf("Inline() = %v, want %v", pool.Inline(), wantInline)
			}
		})
	}
}

func TestWorkerPool_InlineRunsInSubmissionOrder(t *testing.T) {
	t.Parallel()

	proc := &stubProcessor{}
	pool, err := NewWorkerPool(context.Background(), 1, 5, proc, DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	jobs := makeJobs(5)
	var events []string
	pool.onResult = func(r JobResult) { events = append(events, r.Job.Path) }

	for _, j := range jobs {
		if err := pool.Submit(j); err != nil {
			t.Fatalf("Submit(%s) error = %v", j.Path, err)
		}
	}
	pool.Shutdown()

	want := make([]string, len(jobs))
	for i, j := range jobs {
		want[i] = j.Path
	}

	got := proc.callOrder()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("execution order[%d] = %s, want %s", i, got[i], want[i])
		}
		if events[i] != want[i] {
			t.Fatalf("event order[%d] = %s, want %s", i, events[i], want[i])
		}
	}
}

func TestWorkerPool_DrainProcessesEveryJob(t *testing.T) {
	t.Parallel()

	proc := &stubProcessor{delay: time.Millisecond}
	jobs := makeJobs(20)

	pool, err := NewWorkerPool(context.Background(), 4, len(jobs), proc, DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	for _, j := range jobs {
		if err := pool.Submit(j); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pool.Shutdown()

	if got := pool.State(); got != PoolStopped {
		t.Errorf("State() after Shutdown = %v, want %v", got, PoolStopped)
	}
	if got := proc.callCount(); got != len(jobs) {
		t.Errorf("processed %d jobs, want %d", got, len(jobs))
	}
	if got := len(pool.Results()); got != len(jobs) {
		t.Errorf("Results() has %d entries, want %d", got, len(jobs))
	}
	if pool.Succeeded() != len(jobs) || pool.Failed() != 0 {
		t.Errorf("counters = %d/%d, want %d/0", pool.Succeeded(), pool.Failed(), len(jobs))
	}
}

func TestWorkerPool_FailedJobDoesNotAffectOthers(t *testing.T) {
	t.Parallel()

	jobs := makeJobs(8)
	bad := jobs[3].Path
	proc := &stubProcessor{failOn: map[string]error{bad: errors.New("corrupt document")}}

	pool, err := NewWorkerPool(context.Background(), 4, len(jobs), proc, DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	for _, j := range jobs {
		if err := pool.Submit(j); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pool.Shutdown()

	if pool.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", pool.Failed())
	}
	if pool.Succeeded() != len(jobs)-1 {
		t.Errorf("Succeeded() = %d, want %d", pool.Succeeded(), len(jobs)-1)
	}

	for _, r := range pool.Results() {
		if r.Job.Path == bad {
			if r.Err == nil {
				t.Errorf("result for %s has nil error", bad)
			}
			if r.Severity() != SeverityError {
				t.Errorf("Severity() = %v, want SeverityError", r.Severity())
			}
		} else if r.Err != nil {
			t.Errorf("result for %s unexpectedly failed: %v", r.Job.Path, r.Err)
		}
	}
}

func TestWorkerPool_PanicBecomesFailedResult(t *testing.T) {
	t.Parallel()

	jobs := makeJobs(4)
	proc := &stubProcessor{panicOn: map[string]bool{jobs[1].Path: true}}

	pool, err := NewWorkerPool(context.Background(), 2, len(jobs), proc, DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	for _, j := range jobs {
		if err := pool.Submit(j); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pool.Shutdown()

	if pool.Failed() != 1 || pool.Succeeded() != 3 {
		t.Fatalf("counters = %d/%d, want 3 succeeded / 1 failed", pool.Succeeded(), pool.Failed())
	}

	for _, r := range pool.Results() {
		if r.Job.Path != jobs[1].Path {
			continue
		}
		if r.Err == nil || !strings.Contains(r.Err.Error(), "panicked") {
			t.Errorf("panic result error = %v, want panic message", r.Err)
		}
	}
}

func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
	}{
		{"inline pool", 1},
		{"concurrent pool", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool, err := NewWorkerPool(context.Background(), tt.workers, 1, &stubProcessor{}, DefaultConfig())
			if err != nil {
				t.Fatalf("NewWorkerPool() error = %v", err)
			}
			pool.Shutdown()

			if err := pool.Submit(makeJobs(1)[0]); !errors.Is(err, ErrPoolStopped) {
				t.Errorf("Submit() after Shutdown = %v, want ErrPoolStopped", err)
			}
		})
	}
}

func TestWorkerPool_DoubleShutdown(t *testing.T) {
	t.Parallel()

	pool, err := NewWorkerPool(context.Background(), 2, 0, &stubProcessor{}, DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	pool.Shutdown()
	pool.Shutdown() // must be a no-op, not a double close

	if got := pool.State(); got != PoolStopped {
		t.Errorf("State() = %v, want %v", got, PoolStopped)
	}
}

func TestWorkerPool_ResultHandlerSeesEveryJob(t *testing.T) {
	t.Parallel()

	jobs := makeJobs(12)
	proc := &stubProcessor{delay: time.Millisecond}

	var mu sync.Mutex
	seen := make(map[string]bool)

	pool, err := NewWorkerPool(context.Background(), 4, len(jobs), proc, DefaultConfig(),
		WithResultHandler(func(r JobResult) {
			mu.Lock()
			seen[r.Job.Path] = true
			mu.Unlock()
		}))
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	for _, j := range jobs {
		if err := pool.Submit(j); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pool.Shutdown()

	if len(seen) != len(jobs) {
		t.Errorf("handler saw %d jobs, want %d", len(seen), len(jobs))
	}
}

func TestPoolState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state PoolState
		want  string
	}{
		{PoolRunning, "running"},
		{PoolDraining, "draining"},
		{PoolStopped, "stopped"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("PoolState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
