package domain

import "strings"

// Exporter identifies the authoring tool that produced a creative package.
// It selects which validation and clickthrough rewriting policy applies.
type Exporter string

const (
	// ExporterGWD is Google Web Designer.
	ExporterGWD Exporter = "gwd"

	// ExporterConversio is the Conversio authoring tool.
	ExporterConversio Exporter = "conversio"

	// ExporterUnspecified means the caller supplied no exporter.
	// It is handled identically to ExporterGWD.
	ExporterUnspecified Exporter = ""
)

// ParseExporter maps a caller-supplied identifier onto an Exporter.
// Matching is exact; anything unrecognised resolves to ExporterUnspecified.
func ParseExporter(s string) Exporter {
	switch Exporter(strings.TrimSpace(s)) {
	case ExporterGWD:
		return ExporterGWD
	case ExporterConversio:
		return ExporterConversio
	default:
		return ExporterUnspecified
	}
}

// Effective returns the exporter whose policies actually apply.
func (e Exporter) Effective() Exporter {
	if e == ExporterConversio {
		return ExporterConversio
	}
	return ExporterGWD
}

// String returns the string representation.
func (e Exporter) String() string {
	return string(e)
}

// Description returns a human-readable name for the exporter.
func (e Exporter) Description() string {
	switch e.Effective() {
	case ExporterConversio:
		return "Conversio"
	default:
		return "Google Web Designer"
	}
}
