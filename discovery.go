package vex2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DiscoverJobs enumerates the input documents under cfg.WorkingPath and
// returns them as an ordered job list, fully enumerated before any dispatch.
//
// A file path yields at most one job; a directory is scanned one level deep
// (subdirectories are not descended into, matching the batch-drop usage
// where reports land in a flat directory). Files whose format is
// unsupported, or whose format is disabled via ProcessJSON/ProcessXML, are
// skipped. The result is sorted by path so runs are reproducible.
func DiscoverJobs(cfg *Config) ([]Job, error) {
	info, err := os.Stat(cfg.WorkingPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDocument, err)
	}

	if !info.IsDir() {
		job := NewJob(cfg.WorkingPath)
		if !job.Supported() {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, cfg.WorkingPath)
		}
		if !formatEnabled(cfg, job.Format) {
			return nil, nil
		}
		return []Job{job}, nil
	}

	entries, err := os.ReadDir(cfg.WorkingPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDocument, err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		job := NewJob(filepath.Join(cfg.WorkingPath, entry.Name()))
		if !job.Supported() || !formatEnabled(cfg, job.Format) {
			continue
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })
	return jobs, nil
}

// CountByFormat returns how many jobs carry the given format.
func CountByFormat(jobs []Job, f Format) int {
	n := 0
	for _, j := range jobs {
		if j.Format == f {
			n++
		}
	}
	return n
}

// formatEnabled reports whether the configuration processes this format.
func formatEnabled(cfg *Config, f Format) bool {
	switch f {
	case FormatJSON:
		return cfg.ProcessJSON
	case FormatXML:
		return cfg.ProcessXML
	default:
		return false
	}
}
