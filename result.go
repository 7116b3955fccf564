package vex2pdf

import "time"

// Severity tags a JobResult event for routing to distinct output sinks.
type Severity int

// Event severities.
const (
	SeverityInfo  Severity = iota // job succeeded
	SeverityError                 // job failed
)

// String returns the lowercase display name of the severity.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "info"
}

// JobResult is the outcome of exactly one job. Err is nil on success.
type JobResult struct {
	Job        Job
	OutputPath string
	Err        error
	Duration   time.Duration
}

// Severity returns the event severity for this result.
func (r JobResult) Severity() Severity {
	if r.Err != nil {
		return SeverityError
	}
	return SeverityInfo
}

// Summary is the aggregate outcome of a run.
// Total == Succeeded + Failed always holds.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize tallies results into a Summary.
func Summarize(results []JobResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}
