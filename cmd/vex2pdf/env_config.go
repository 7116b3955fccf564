package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // VEX2PDF_CONFIG: config file path
	WorkingPath string        // VEX2PDF_WORKING_PATH: file or directory to scan
	OutputDir   string        // VEX2PDF_OUTPUT_DIR: directory for generated PDFs
	ReportTitle string        // VEX2PDF_REPORT_TITLE: report title
	PDFMetaName string        // VEX2PDF_PDF_META_NAME: PDF metadata document name
	Timeout     time.Duration // VEX2PDF_TIMEOUT: per-render timeout

	// Boolean toggles are pointers so "unset" differs from explicit false.
	JSON           *bool // VEX2PDF_JSON: process JSON documents
	XML            *bool // VEX2PDF_XML: process XML documents
	ShowComponents *bool // VEX2PDF_SHOW_COMPONENTS: render the component inventory
	PureBOMNoVulns *bool // VEX2PDF_PURE_BOM_NOVULNS: treat documents as plain BOMs
	NoVulnsMsg     *bool // VEX2PDF_NOVULNS_MSG: render the no-vulnerabilities note

	MaxJobs *int // VEX2PDF_MAX_JOBS: parallel jobs
}

// knownEnvVars lists valid VEX2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"VEX2PDF_CONFIG":           true,
	"VEX2PDF_WORKING_PATH":     true,
	"VEX2PDF_OUTPUT_DIR":       true,
	"VEX2PDF_REPORT_TITLE":     true,
	"VEX2PDF_PDF_META_NAME":    true,
	"VEX2PDF_TIMEOUT":          true,
	"VEX2PDF_JSON":             true,
	"VEX2PDF_XML":              true,
	"VEX2PDF_SHOW_COMPONENTS":  true,
	"VEX2PDF_PURE_BOM_NOVULNS": true,
	"VEX2PDF_NOVULNS_MSG":      true,
	"VEX2PDF_MAX_JOBS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized VEX2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("VEX2PDF_CONFIG"),
		WorkingPath: os.Getenv("VEX2PDF_WORKING_PATH"),
		OutputDir:   os.Getenv("VEX2PDF_OUTPUT_DIR"),
		ReportTitle: os.Getenv("VEX2PDF_REPORT_TITLE"),
		PDFMetaName: os.Getenv("VEX2PDF_PDF_META_NAME"),
	}

	if timeout := os.Getenv("VEX2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	cfg.JSON = envBool("VEX2PDF_JSON")
	cfg.XML = envBool("VEX2PDF_XML")
	cfg.ShowComponents = envBool("VEX2PDF_SHOW_COMPONENTS")
	cfg.PureBOMNoVulns = envBool("VEX2PDF_PURE_BOM_NOVULNS")
	cfg.NoVulnsMsg = envBool("VEX2PDF_NOVULNS_MSG")

	if jobs := os.Getenv("VEX2PDF_MAX_JOBS"); jobs != "" {
		if n, err := strconv.Atoi(jobs); err == nil && n >= 0 {
			cfg.MaxJobs = &n
		}
	}

	return cfg
}

// envBool parses a boolean environment variable. Returns nil when the
// variable is unset or unparsable.
func envBool(name string) *bool {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized VEX2PDF_* variables.
// Helps catch typos like VEX2PDF_JOBS instead of VEX2PDF_MAX_JOBS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "VEX2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
