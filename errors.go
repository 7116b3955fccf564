package vex2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Pool and orchestration errors.
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrPoolStopped        = errors.New("worker pool is not accepting jobs")

	// Document errors.
	ErrUnsupportedFileType = errors.New("unsupported file type for parsing")
	ErrParse               = errors.New("failed to parse document")
	ErrEmptyDocument       = errors.New("document has no content")

	// Rendering errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// I/O errors.
	ErrReadDocument  = errors.New("failed to read document file")
	ErrWriteReport   = errors.New("failed to write PDF report")
	ErrInvalidOutput = errors.New("output path is not a directory")
)
