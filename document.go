package vex2pdf

import (
	"encoding/xml"
	"strings"

	"github.com/google/uuid"
)

// Document is the in-memory model of a CycloneDX VEX/BOM document, shared
// by the JSON and XML parsers. Only the subset rendered into reports is
// modeled; unknown fields are ignored on decode.
type Document struct {
	XMLName         xml.Name        `json:"-" xml:"bom"`
	BOMFormat       string          `json:"bomFormat,omitempty" xml:"-"`
	SpecVersion     string          `json:"specVersion,omitempty" xml:"-"`
	SerialNumber    string          `json:"serialNumber,omitempty" xml:"serialNumber,attr,omitempty"`
	Version         int             `json:"version,omitempty" xml:"version,attr,omitempty"`
	Metadata        *Metadata       `json:"metadata,omitempty" xml:"metadata,omitempty"`
	Components      []Component     `json:"components,omitempty" xml:"components>component,omitempty"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities,omitempty" xml:"vulnerabilities>vulnerability,omitempty"`
}

// Metadata describes the document itself: when it was produced, by which
// tools, and which component it is about.
type Metadata struct {
	Timestamp string     `json:"timestamp,omitempty" xml:"timestamp,omitempty"`
	Tools     []Tool     `json:"tools,omitempty" xml:"tools>tool,omitempty"`
	Component *Component `json:"component,omitempty" xml:"component,omitempty"`
}

// Tool identifies a producer of the document.
type Tool struct {
	Vendor  string `json:"vendor,omitempty" xml:"vendor,omitempty"`
	Name    string `json:"name,omitempty" xml:"name,omitempty"`
	Version string `json:"version,omitempty" xml:"version,omitempty"`
}

// Component is one entry of the bill of materials.
type Component struct {
	BOMRef  string `json:"bom-ref,omitempty" xml:"bom-ref,attr,omitempty"`
	Type    string `json:"type,omitempty" xml:"type,attr,omitempty"`
	Name    string `json:"name" xml:"name"`
	Version string `json:"version,omitempty" xml:"version,omitempty"`
	PURL    string `json:"purl,omitempty" xml:"purl,omitempty"`
}

// Vulnerability is one vulnerability entry with its ratings and analysis.
type Vulnerability struct {
	BOMRef         string    `json:"bom-ref,omitempty" xml:"bom-ref,attr,omitempty"`
	ID             string    `json:"id,omitempty" xml:"id,omitempty"`
	Description    string    `json:"description,omitempty" xml:"description,omitempty"`
	Detail         string    `json:"detail,omitempty" xml:"detail,omitempty"`
	Recommendation string    `json:"recommendation,omitempty" xml:"recommendation,omitempty"`
	Ratings        []Rating  `json:"ratings,omitempty" xml:"ratings>rating,omitempty"`
	Analysis       *Analysis `json:"analysis,omitempty" xml:"analysis,omitempty"`
	Affects        []Affect  `json:"affects,omitempty" xml:"affects>target,omitempty"`
}

// Rating is one severity rating of a vulnerability.
type Rating struct {
	Score    float64 `json:"score,omitempty" xml:"score,omitempty"`
	Severity string  `json:"severity,omitempty" xml:"severity,omitempty"`
	Method   string  `json:"method,omitempty" xml:"method,omitempty"`
	Vector   string  `json:"vector,omitempty" xml:"vector,omitempty"`
}

// Analysis is the VEX impact analysis of a vulnerability.
type Analysis struct {
	State     string   `json:"state,omitempty" xml:"state,omitempty"`
	Detail    string   `json:"detail,omitempty" xml:"detail,omitempty"`
	Responses []string `json:"response,omitempty" xml:"responses>response,omitempty"`
}

// Affect names a component affected by a vulnerability via its bom-ref.
type Affect struct {
	Ref string `json:"ref" xml:"ref"`
}

// urnUUIDPrefix is the URN scheme CycloneDX serial numbers use.
const urnUUIDPrefix = "urn:uuid:"

// SerialUUID returns the document serial number as a UUID when it is a
// well-formed urn:uuid value. Reports render the serial only in that case.
func (d *Document) SerialUUID() (uuid.UUID, bool) {
	s := strings.TrimPrefix(d.SerialNumber, urnUUIDPrefix)
	if s == d.SerialNumber {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// HasVulnerabilities reports whether any vulnerability entries exist.
func (d *Document) HasVulnerabilities() bool {
	return len(d.Vulnerabilities) > 0
}

// Subject returns the component the document is about, or nil.
func (d *Document) Subject() *Component {
	if d.Metadata == nil {
		return nil
	}
	return d.Metadata.Component
}

// componentByRef resolves a bom-ref to a component, searching the subject
// component first and then the inventory.
func (d *Document) componentByRef(ref string) *Component {
	if ref == "" {
		return nil
	}
	if subj := d.Subject(); subj != nil && subj.BOMRef == ref {
		return subj
	}
	for i := range d.Components {
		if d.Components[i].BOMRef == ref {
			return &d.Components[i]
		}
	}
	return nil
}
