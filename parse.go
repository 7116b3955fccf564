package vex2pdf

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// cycloneDXFormat is the only bomFormat value JSON documents may declare.
const cycloneDXFormat = "CycloneDX"

// ParseJSON decodes a CycloneDX JSON document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.BOMFormat != "" && doc.BOMFormat != cycloneDXFormat {
		return nil, fmt.Errorf("%w: unexpected bomFormat %q", ErrParse, doc.BOMFormat)
	}
	if err := validateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseXML decodes a CycloneDX XML document.
func ParseXML(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := validateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile reads and decodes one input file according to the job's format.
func ParseFile(job Job) (*Document, error) {
	data, err := os.ReadFile(job.Path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDocument, err)
	}

	switch job.Format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatXML:
		return ParseXML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, job.Path)
	}
}

// validateDocument rejects documents that decode but carry nothing worth
// rendering. A report needs at least metadata, a component, or a
// vulnerability entry.
func validateDocument(doc *Document) error {
	if doc.Metadata == nil && len(doc.Components) == 0 && len(doc.Vulnerabilities) == 0 {
		return ErrEmptyDocument
	}
	return nil
}
