package vex2pdf

import "time"

// Default titles used when the configuration does not override them.
const (
	DefaultReportTitle    = "Vulnerability Report Document"
	DefaultReportTitleBOM = "Bill of Materials Document"
	DefaultPDFMetaName    = "VEX Vulnerability Report"
	DefaultPDFMetaNameBOM = "BOM Report"
)

// DefaultRenderTimeout bounds a single PDF render inside a job when no
// timeout is configured on the Service.
const DefaultRenderTimeout = 30 * time.Second

// Config holds the run-wide settings shared by every worker.
//
// A Config is constructed once before any job executes and must not be
// mutated afterwards: workers receive it by pointer and read it without
// synchronization. There are no setters; treat every field as frozen once
// the value has been handed to an Orchestrator or WorkerPool.
type Config struct {
	// WorkingPath is a file or directory to scan for input documents.
	WorkingPath string

	// OutputDir receives the generated PDFs. Empty means alongside the input.
	OutputDir string

	// ProcessJSON and ProcessXML select which discovered formats become jobs.
	ProcessJSON bool
	ProcessXML  bool

	// ShowNoVulnsMsg renders a "No vulnerabilities reported" note instead of
	// omitting the section when a document carries no vulnerabilities.
	ShowNoVulnsMsg bool

	// ShowComponents renders the component inventory after the
	// vulnerabilities section.
	ShowComponents bool

	// PureBOM treats documents as plain bills of materials: only the
	// component inventory is rendered, no vulnerabilities section.
	PureBOM bool

	// ReportTitle and PDFMetaName override the generated titles.
	// Empty values fall back to the defaults above.
	ReportTitle string
	PDFMetaName string

	// Workers is the configured worker count: 0 means hardware parallelism,
	// 1 means inline single-threaded mode, 2..255 that many workers.
	Workers int
}

// DefaultConfig returns the settings used when nothing is overridden:
// scan the current directory, write next to the inputs, process both
// formats, show everything, auto worker count.
func DefaultConfig() *Config {
	return &Config{
		WorkingPath:    ".",
		ProcessJSON:    true,
		ProcessXML:     true,
		ShowNoVulnsMsg: true,
		ShowComponents: true,
	}
}

// reportTitle resolves the title printed at the top of the report.
func (c *Config) reportTitle() string {
	if c.ReportTitle != "" {
		return c.ReportTitle
	}
	if c.PureBOM {
		return DefaultReportTitleBOM
	}
	return DefaultReportTitle
}

// pdfMetaName resolves the document name embedded in the PDF metadata.
func (c *Config) pdfMetaName() string {
	if c.PDFMetaName != "" {
		return c.PDFMetaName
	}
	if c.PureBOM {
		return DefaultPDFMetaNameBOM
	}
	return DefaultPDFMetaName
}

