package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every run.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// ioFlags holds input/output flags.
type ioFlags struct {
	outputDir string
	maxJobs   int
}

// reportFlags holds report content flags.
type reportFlags struct {
	title          string
	pdfMetaName    string
	json           bool
	xml            bool
	showComponents bool
	bomNoVulns     bool
	noNoVulnsMsg   bool
}

// cliFlags holds all parsed flags plus a probe for explicit settings.
// changed reports whether a flag was set on the command line, which is how
// the merge layer distinguishes --json=false from the default true.
type cliFlags struct {
	common  commonFlags
	io      ioFlags
	report  reportFlags
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-document timing")
	fs.BoolVar(&f.version, "version", false, "show version information")
}

// addIOFlags adds input/output flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *ioFlags) {
	fs.StringVarP(&f.outputDir, "output-dir", "d", "", "directory for generated PDFs")
	fs.IntVarP(&f.maxJobs, "max-jobs", "j", 0, "parallel jobs (0 = auto, 1 = inline)")
}

// addReportFlags adds report content flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVarP(&f.title, "report-title", "t", "", "report title")
	fs.StringVarP(&f.pdfMetaName, "pdf-meta-name", "n", "", "PDF metadata document name")
	fs.BoolVar(&f.json, "json", true, "process JSON documents")
	fs.BoolVar(&f.xml, "xml", true, "process XML documents")
	fs.BoolVar(&f.showComponents, "show-components", true, "render the component inventory")
	fs.BoolVar(&f.bomNoVulns, "bom-novulns", false, "treat documents as plain BOMs (skip vulnerabilities)")
	fs.BoolVar(&f.noNoVulnsMsg, "no-novulns-msg", false, "omit the note when a document has no vulnerabilities")
}

// parseFlags parses CLI flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("vex2pdf", flag.ContinueOnError)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addIOFlags(fs, &f.io)
	addReportFlags(fs, &f.report)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = fs.Changed
	return f, fs.Args(), nil
}
