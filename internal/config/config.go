// Package config loads the optional YAML configuration file for the CLI.
//
// Boolean and integer fields are pointers so the merge layer can tell
// "absent from the file" apart from an explicit false/zero.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
)

// MaxConfigSize limits config input to prevent memory exhaustion.
const MaxConfigSize = 1 << 20 // 1MB

// Field length limits.
const (
	MaxPathLength  = 4096 // Filesystem path
	MaxTitleLength = 200  // Report title / PDF metadata name
	MaxJobs        = 255  // Worker count upper bound
)

// Config holds the file-based settings. Every field is optional; absent
// fields keep the built-in defaults.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Format FormatConfig `yaml:"formats"`
	Report ReportConfig `yaml:"report"`
	Jobs   JobsConfig   `yaml:"jobs"`
}

// InputConfig defines where documents are discovered.
type InputConfig struct {
	Path string `yaml:"path"` // File or directory to scan (empty = current dir)
}

// OutputConfig defines where PDFs are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = alongside the inputs
}

// FormatConfig selects which document formats become jobs.
type FormatConfig struct {
	JSON *bool `yaml:"json"`
	XML  *bool `yaml:"xml"`
}

// ReportConfig defines report content options.
type ReportConfig struct {
	Title          string `yaml:"title"`          // Empty = default title
	PDFMetaName    string `yaml:"pdfMetaName"`    // Empty = default metadata name
	ShowComponents *bool  `yaml:"showComponents"` // Render the component inventory
	NoVulnsMsg     *bool  `yaml:"noVulnsMsg"`     // Render the "no vulnerabilities" note
	PureBOM        *bool  `yaml:"pureBOM"`        // Components only, no vulnerabilities section
}

// JobsConfig defines execution options.
type JobsConfig struct {
	Max *int `yaml:"max"` // 0 = hardware parallelism, 1 = inline, 2..255 workers
}

// Validate checks field lengths and ranges. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.path", c.Input.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.title", c.Report.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.pdfMetaName", c.Report.PDFMetaName, MaxTitleLength); err != nil {
		return err
	}

	if c.Jobs.Max != nil {
		if *c.Jobs.Max < 0 || *c.Jobs.Max > MaxJobs {
			return fmt.Errorf("jobs.max: must be between 0 and %d, got %d", MaxJobs, *c.Jobs.Max)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/vex2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "vex2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
