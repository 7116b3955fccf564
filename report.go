package vex2pdf

import (
	"fmt"
	"strings"
)

// BuildReport renders the document model as a Markdown report, honoring the
// display toggles in cfg. The result feeds the Markdown-to-HTML converter.
func BuildReport(doc *Document, cfg *Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", cfg.reportTitle())

	writeDocumentInfo(&b, doc)

	if !cfg.PureBOM {
		writeVulnerabilities(&b, doc, cfg)
	}

	if cfg.ShowComponents || cfg.PureBOM {
		writeComponents(&b, doc)
	}

	return b.String()
}

// writeDocumentInfo renders the metadata header: subject component, serial
// number, document version, timestamp, and producing tools.
func writeDocumentInfo(b *strings.Builder, doc *Document) {
	if subj := doc.Subject(); subj != nil {
		fmt.Fprintf(b, "**Subject:** %s", subj.Name)
		if subj.Version != "" {
			fmt.Fprintf(b, " %s", subj.Version)
		}
		b.WriteString("\n")
	}

	// Serial numbers render only when they are well-formed urn:uuid values.
	if id, ok := doc.SerialUUID(); ok {
		fmt.Fprintf(b, "**Serial:** `%s%s`\n", urnUUIDPrefix, id)
	}

	if doc.Version > 0 {
		fmt.Fprintf(b, "**Document version:** %d\n", doc.Version)
	}

	if doc.Metadata != nil {
		if doc.Metadata.Timestamp != "" {
			fmt.Fprintf(b, "**Generated:** %s\n", doc.Metadata.Timestamp)
		}
		for _, tool := range doc.Metadata.Tools {
			name := tool.Name
			if tool.Vendor != "" {
				name = tool.Vendor + " " + name
			}
			if tool.Version != "" {
				name += " " + tool.Version
			}
			fmt.Fprintf(b, "**Tool:** %s\n", strings.TrimSpace(name))
		}
	}

	b.WriteString("\n")
}

// writeVulnerabilities renders the vulnerabilities section, or the
// "no vulnerabilities" note when the document has none and the
// configuration asks for the message.
func writeVulnerabilities(b *strings.Builder, doc *Document, cfg *Config) {
	if !doc.HasVulnerabilities() {
		if cfg.ShowNoVulnsMsg {
			b.WriteString("## Vulnerabilities\n\nNo vulnerabilities reported.\n\n")
		}
		return
	}

	fmt.Fprintf(b, "## Vulnerabilities (%d)\n\n", len(doc.Vulnerabilities))

	for i := range doc.Vulnerabilities {
		writeVulnerability(b, doc, &doc.Vulnerabilities[i])
	}
}

// writeVulnerability renders one vulnerability entry.
func writeVulnerability(b *strings.Builder, doc *Document, v *Vulnerability) {
	heading := v.ID
	if heading == "" {
		heading = "Unidentified vulnerability"
	}
	fmt.Fprintf(b, "### %s\n\n", heading)

	if v.Description != "" {
		fmt.Fprintf(b, "%s\n\n", v.Description)
	}

	for _, r := range v.Ratings {
		line := "**Severity:** " + displaySeverity(r.Severity)
		if r.Score > 0 {
			line += fmt.Sprintf(" (%.1f", r.Score)
			if r.Method != "" {
				line += " " + r.Method
			}
			line += ")"
		}
		b.WriteString(line + "\n")
		if r.Vector != "" {
			fmt.Fprintf(b, "**Vector:** `%s`\n", r.Vector)
		}
	}
	if len(v.Ratings) > 0 {
		b.WriteString("\n")
	}

	if v.Analysis != nil && v.Analysis.State != "" {
		fmt.Fprintf(b, "**Analysis:** %s\n", v.Analysis.State)
		if v.Analysis.Detail != "" {
			fmt.Fprintf(b, "%s\n", v.Analysis.Detail)
		}
		if len(v.Analysis.Responses) > 0 {
			fmt.Fprintf(b, "**Response:** %s\n", strings.Join(v.Analysis.Responses, ", "))
		}
		b.WriteString("\n")
	}

	// Multi-line detail text becomes one paragraph per line so embedded
	// newlines are not collapsed by the Markdown renderer.
	if v.Detail != "" {
		for _, line := range strings.Split(v.Detail, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(b, "%s\n", line)
			}
		}
		b.WriteString("\n")
	}

	if v.Recommendation != "" {
		fmt.Fprintf(b, "**Recommendation:** %s\n\n", v.Recommendation)
	}

	if len(v.Affects) > 0 {
		b.WriteString("**Affects:**\n\n")
		for _, a := range v.Affects {
			if comp := doc.componentByRef(a.Ref); comp != nil {
				fmt.Fprintf(b, "- %s %s\n", comp.Name, comp.Version)
			} else {
				fmt.Fprintf(b, "- %s\n", a.Ref)
			}
		}
		b.WriteString("\n")
	}
}

// writeComponents renders the component inventory as a table.
func writeComponents(b *strings.Builder, doc *Document) {
	fmt.Fprintf(b, "## Components (%d)\n\n", len(doc.Components))

	if len(doc.Components) == 0 {
		b.WriteString("No components listed.\n\n")
		return
	}

	b.WriteString("| Name | Version | Type | Package URL |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, c := range doc.Components {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			tableCell(c.Name), tableCell(c.Version), tableCell(c.Type), tableCell(c.PURL))
	}
	b.WriteString("\n")
}

// displaySeverity normalizes a rating severity for display.
func displaySeverity(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.ToLower(s)
}

// tableCell escapes pipes so component fields cannot break the table.
func tableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
