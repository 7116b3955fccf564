package vex2pdf

import (
	"fmt"
	"time"
)

// runWorker is the worker loop: block on the shared queue, execute, report,
// repeat until the queue is closed and empty, then terminate. A failure
// while executing one job never terminates the worker or the pool.
func (p *WorkerPool) runWorker(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		p.report(p.execute(job))
	}
}

// execute runs one job through the processing capability and converts any
// error, including a panic inside the capability, into a failed JobResult.
// Errors never escalate beyond the job boundary.
func (p *WorkerPool) execute(job Job) (res JobResult) {
	start := time.Now()
	res = JobResult{Job: job}

	defer func() {
		if v := recover(); v != nil {
			res.Err = fmt.Errorf("processing %s panicked: %v", job.Path, v)
		}
		res.Duration = time.Since(start)
	}()

	out, err := p.proc.ProcessFile(p.ctx, job, p.cfg)
	res.OutputPath = out
	res.Err = err
	return res
}
