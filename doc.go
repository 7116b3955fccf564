// Package vex2pdf converts CycloneDX VEX and BOM documents to PDF reports
// using headless Chrome.
//
// # Quick Start
//
// Discover documents, create a service, and run the batch:
//
//	cfg := vex2pdf.DefaultConfig()
//	cfg.WorkingPath = "scans"
//
//	jobs, err := vex2pdf.DiscoverJobs(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc := vex2pdf.NewService()
//	defer svc.Close()
//
//	summary, err := vex2pdf.NewOrchestrator(cfg, svc).Process(ctx, jobs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
//
// # Processing Pipeline
//
// Each job runs through these stages:
//
//  1. Parse the CycloneDX document (JSON via goccy/go-json, XML via encoding/xml)
//  2. Build a Markdown report (metadata, vulnerabilities, component inventory)
//  3. Markdown to HTML conversion via Goldmark (GFM, syntax highlighting)
//  4. PDF rendering via headless Chrome (go-rod)
//
// # Parallelism
//
// Config.Workers selects the execution mode: 0 resolves to the host's
// available parallelism, 1 runs jobs inline in submission order without
// goroutines, and 2 to 255 runs that many concurrent workers. The worker
// pool drains fully on shutdown; a failing or panicking job never affects
// the others, it is recorded as a failed JobResult and counted in the
// Summary.
//
// Per-job status events are delivered through Orchestrator.OnResult in a
// single total order. Successes carry SeverityInfo, failures SeverityError,
// so callers can route them to separate sinks.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; the sandbox is
// disabled automatically when CI=true or a custom binary is set.
package vex2pdf
