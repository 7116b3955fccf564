package vex2pdf

import (
	"path/filepath"
	"strings"
)

// Format identifies the on-disk encoding of an input document.
type Format int

// Supported input formats.
const (
	FormatUnsupported Format = iota
	FormatJSON
	FormatXML
)

// String returns the uppercase display name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatXML:
		return "XML"
	default:
		return "UNSUPPORTED"
	}
}

// Ext returns the lowercase file extension (without dot) for the format.
// Returns "" for FormatUnsupported.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return ""
	}
}

// FormatForPath detects the input format from a file extension.
// Detection is case-insensitive; anything but .json and .xml is unsupported.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".xml":
		return FormatXML
	default:
		return FormatUnsupported
	}
}

// Job is one unit of work: a single input file plus its detected format.
// Jobs are immutable once created and consumed exactly once by the pool.
type Job struct {
	Path   string
	Format Format
}

// NewJob builds a Job for path, detecting the format from the extension.
func NewJob(path string) Job {
	return Job{Path: path, Format: FormatForPath(path)}
}

// Supported reports whether the job's file format can be parsed.
func (j Job) Supported() bool {
	return j.Format != FormatUnsupported
}
