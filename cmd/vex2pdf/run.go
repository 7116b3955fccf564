package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	vex2pdf "github.com/avholm/vex2pdf"
	"github.com/avholm/vex2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var ErrNoInput = errors.New("no input documents found")

// run executes one full batch: parse flags, merge configuration, discover
// documents, convert them, and print the outcome.
func run(args []string, env *Environment) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.common.version {
		fmt.Fprintf(env.Stdout, "vex2pdf %s\n", Version)
		return nil
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	envCfg := loadEnvConfig()

	fileCfg, err := loadFileConfig(flags, envCfg)
	if err != nil {
		return err
	}

	cfg := buildRunConfig(flags, positional, envCfg, fileCfg)

	if cfg.OutputDir != "" {
		if info, statErr := os.Stat(cfg.OutputDir); statErr == nil && !info.IsDir() {
			return fmt.Errorf("%w: %s", vex2pdf.ErrInvalidOutput, cfg.OutputDir)
		}
	}

	jobs, err := vex2pdf.DiscoverJobs(cfg)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoInput, cfg.WorkingPath)
	}

	if flags.common.verbose {
		jsonCount := vex2pdf.CountByFormat(jobs, vex2pdf.FormatJSON)
		xmlCount := vex2pdf.CountByFormat(jobs, vex2pdf.FormatXML)
		fmt.Fprintf(env.Stderr, "Found %d document(s): %d JSON, %d XML\n", len(jobs), jsonCount, xmlCount)
		fmt.Fprintf(env.Stderr, "Workers: %d\n", vex2pdf.ResolveWorkerCount(cfg.Workers))
	}

	svc := vex2pdf.NewService(vex2pdf.WithTimeout(resolveTimeout(envCfg)))
	defer func() { _ = svc.Close() }()

	orch := vex2pdf.NewOrchestrator(cfg, svc)
	orch.OnResult = func(r vex2pdf.JobResult) {
		printResult(r, flags.common.quiet, flags.common.verbose, env)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	summary, err := orch.Process(ctx, jobs)
	if err != nil {
		return err
	}

	if !flags.common.quiet && summary.Total > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrJobsFailed, summary.Failed, summary.Total)
	}

	return nil
}

// loadFileConfig loads the YAML config named by flag or environment.
// Returns nil when no config file is requested.
func loadFileConfig(flags *cliFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return nil, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildRunConfig merges the four configuration layers into the run settings.
// Precedence: CLI flags > environment variables > config file > defaults.
func buildRunConfig(flags *cliFlags, positional []string, envCfg *envConfig, fileCfg *config.Config) *vex2pdf.Config {
	cfg := vex2pdf.DefaultConfig()

	// Layer 1: config file
	if fileCfg != nil {
		if fileCfg.Input.Path != "" {
			cfg.WorkingPath = fileCfg.Input.Path
		}
		if fileCfg.Output.Dir != "" {
			cfg.OutputDir = fileCfg.Output.Dir
		}
		if fileCfg.Format.JSON != nil {
			cfg.ProcessJSON = *fileCfg.Format.JSON
		}
		if fileCfg.Format.XML != nil {
			cfg.ProcessXML = *fileCfg.Format.XML
		}
		if fileCfg.Report.Title != "" {
			cfg.ReportTitle = fileCfg.Report.Title
		}
		if fileCfg.Report.PDFMetaName != "" {
			cfg.PDFMetaName = fileCfg.Report.PDFMetaName
		}
		if fileCfg.Report.ShowComponents != nil {
			cfg.ShowComponents = *fileCfg.Report.ShowComponents
		}
		if fileCfg.Report.NoVulnsMsg != nil {
			cfg.ShowNoVulnsMsg = *fileCfg.Report.NoVulnsMsg
		}
		if fileCfg.Report.PureBOM != nil {
			cfg.PureBOM = *fileCfg.Report.PureBOM
		}
		if fileCfg.Jobs.Max != nil {
			cfg.Workers = *fileCfg.Jobs.Max
		}
	}

	// Layer 2: environment variables
	if envCfg.WorkingPath != "" {
		cfg.WorkingPath = envCfg.WorkingPath
	}
	if envCfg.OutputDir != "" {
		cfg.OutputDir = envCfg.OutputDir
	}
	if envCfg.ReportTitle != "" {
		cfg.ReportTitle = envCfg.ReportTitle
	}
	if envCfg.PDFMetaName != "" {
		cfg.PDFMetaName = envCfg.PDFMetaName
	}
	if envCfg.JSON != nil {
		cfg.ProcessJSON = *envCfg.JSON
	}
	if envCfg.XML != nil {
		cfg.ProcessXML = *envCfg.XML
	}
	if envCfg.ShowComponents != nil {
		cfg.ShowComponents = *envCfg.ShowComponents
	}
	if envCfg.PureBOMNoVulns != nil {
		cfg.PureBOM = *envCfg.PureBOMNoVulns
	}
	if envCfg.NoVulnsMsg != nil {
		cfg.ShowNoVulnsMsg = *envCfg.NoVulnsMsg
	}
	if envCfg.MaxJobs != nil {
		cfg.Workers = *envCfg.MaxJobs
	}

	// Layer 3: CLI flags win
	if len(positional) > 0 {
		cfg.WorkingPath = positional[0]
	}
	if flags.io.outputDir != "" {
		cfg.OutputDir = flags.io.outputDir
	}
	if flags.changed("max-jobs") {
		cfg.Workers = flags.io.maxJobs
	}
	if flags.report.title != "" {
		cfg.ReportTitle = flags.report.title
	}
	if flags.report.pdfMetaName != "" {
		cfg.PDFMetaName = flags.report.pdfMetaName
	}
	if flags.changed("json") {
		cfg.ProcessJSON = flags.report.json
	}
	if flags.changed("xml") {
		cfg.ProcessXML = flags.report.xml
	}
	if flags.changed("show-components") {
		cfg.ShowComponents = flags.report.showComponents
	}
	if flags.changed("bom-novulns") {
		cfg.PureBOM = flags.report.bomNoVulns
	}
	if flags.changed("no-novulns-msg") {
		cfg.ShowNoVulnsMsg = !flags.report.noNoVulnsMsg
	}

	return cfg
}

// resolveTimeout picks the per-render timeout from the environment, falling
// back to the library default.
func resolveTimeout(envCfg *envConfig) time.Duration {
	if envCfg.Timeout > 0 {
		return envCfg.Timeout
	}
	return vex2pdf.DefaultRenderTimeout
}

// printResult routes one job outcome to the right stream: failures always go
// to stderr, successes go to stdout unless quiet.
func printResult(r vex2pdf.JobResult, quiet, verbose bool, env *Environment) {
	if r.Severity() == vex2pdf.SeverityError {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Job.Path, r.Err)
		return
	}

	if quiet {
		return
	}

	if verbose {
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Job.Path, r.OutputPath, r.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
	}
}
