package vex2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avholm/vex2pdf/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Service is the default per-job processing capability: parse one input
// document, build the report, render it to PDF, and write the output file.
// A single Service is shared by all workers; the browser is shared and each
// render uses its own page.
type Service struct {
	timeout       time.Duration
	htmlConverter htmlConverter
	pdfConverter  pdfConverter
	now           func() time.Time
}

// Compile-time check that Service implements FileProcessor.
var _ FileProcessor = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("vex2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.timeout = d
	}
}

// WithPDFConverter overrides the PDF backend (used by tests and by callers
// embedding a different renderer).
func WithPDFConverter(c pdfConverter) Option {
	return func(s *Service) {
		s.pdfConverter = c
	}
}

// NewService creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func NewService(opts ...Option) *Service {
	s := &Service{
		timeout:       DefaultRenderTimeout,
		htmlConverter: newGoldmarkConverter(),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.timeout)
	}

	return s
}

// Close releases rendering resources (the headless browser, if one was
// started).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}

// ProcessFile runs the full pipeline for one job and returns the path of
// the written PDF.
func (s *Service) ProcessFile(ctx context.Context, job Job, cfg *Config) (string, error) {
	doc, err := ParseFile(job)
	if err != nil {
		return "", err
	}

	markdown := BuildReport(doc, cfg)

	htmlContent, err := s.htmlConverter.ToHTML(ctx, markdown, cfg.pdfMetaName())
	if err != nil {
		return "", err
	}

	pdfBytes, err := s.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		FooterDate: s.now().Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	outPath := fileutil.OutputPDFPath(cfg.OutputDir, job.Path)
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWriteReport, err)
		}
	}

	// #nosec G306 -- reports are meant to be readable
	if err := os.WriteFile(outPath, pdfBytes, filePermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteReport, err)
	}

	return outPath, nil
}
