package main

import (
	"errors"
	"os"

	vex2pdf "github.com/avholm/vex2pdf"
	"github.com/avholm/vex2pdf/internal/config"
)

// Exit codes for the vex2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // All documents converted
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitBrowser    = 4 // Browser/Chrome errors
	ExitJobsFailed = 5 // Run completed but some documents failed
)

// ErrJobsFailed signals that the batch ran to completion with at least one
// failed document.
var ErrJobsFailed = errors.New("some documents failed")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Partial batch failure (exit 5)
	if errors.Is(err, ErrJobsFailed) {
		return ExitJobsFailed
	}

	// Browser errors (exit 4)
	if errors.Is(err, vex2pdf.ErrBrowserConnect) ||
		errors.Is(err, vex2pdf.ErrPageCreate) ||
		errors.Is(err, vex2pdf.ErrPageLoad) ||
		errors.Is(err, vex2pdf.ErrHTMLConversion) ||
		errors.Is(err, vex2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, vex2pdf.ErrReadDocument) ||
		errors.Is(err, vex2pdf.ErrWriteReport) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, vex2pdf.ErrInvalidWorkerCount) ||
		errors.Is(err, vex2pdf.ErrUnsupportedFileType) ||
		errors.Is(err, vex2pdf.ErrInvalidOutput) {
		return ExitUsage
	}

	return ExitGeneral
}
