package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: vex2pdf [flags] [path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert CycloneDX VEX/BOM documents (JSON or XML) to PDF reports.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path    Document file or directory to scan (default: current directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -d, --output-dir <dir>    Directory for generated PDFs (default: alongside inputs)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -j, --max-jobs <n>        Parallel jobs: 0 = auto, 1 = inline, up to 255")
	fmt.Fprintln(w, "      --json[=false]        Process JSON documents (default: true)")
	fmt.Fprintln(w, "      --xml[=false]         Process XML documents (default: true)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report content:")
	fmt.Fprintln(w, "  -t, --report-title <s>    Report title")
	fmt.Fprintln(w, "  -n, --pdf-meta-name <s>   PDF metadata document name")
	fmt.Fprintln(w, "      --show-components     Render the component inventory (default: true)")
	fmt.Fprintln(w, "      --bom-novulns         Treat documents as plain BOMs, skip vulnerabilities")
	fmt.Fprintln(w, "      --no-novulns-msg      Omit the note when a document has no vulnerabilities")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show discovery details and per-document timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (VEX2PDF_*) override config file values;")
	fmt.Fprintln(w, "flags override both. See the README for the full list.")
}
