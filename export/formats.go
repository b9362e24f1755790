package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/semmls/graph"
	"github.com/c360studio/semmls/vocabulary/mls"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name or file extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for name, info := range FormatRegistry {
		if s == string(name) || s == strings.TrimPrefix(info.Extension, ".") {
			return name, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	ns mls.Namespaces
	sb strings.Builder
}

// NewTurtleWriter creates a Turtle writer that abbreviates IRIs with ns.
func NewTurtleWriter(ns mls.Namespaces) *TurtleWriter {
	return &TurtleWriter{ns: ns}
}

// WritePrefixes writes prefix declarations in table order.
func (w *TurtleWriter) WritePrefixes() {
	for _, p := range w.ns.Prefixes() {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", p.Name, p.IRI))
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(subject graph.Term) {
	w.sb.WriteString(w.term(subject) + "\n")
}

// WritePredicate writes a predicate-object pair.
func (w *TurtleWriter) WritePredicate(predicateIRI string, object graph.Term, last bool) {
	terminator := " ;"
	if last {
		terminator = " ."
	}
	predicate := w.iri(predicateIRI)
	if predicateIRI == mls.PropType {
		predicate = "a"
	}
	w.sb.WriteString(fmt.Sprintf("    %s %s%s\n", predicate, w.term(object), terminator))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) iri(iri string) string {
	compact := w.ns.Compact(iri)
	if compact == iri || !isPrefixedName(compact) {
		return "<" + iri + ">"
	}
	return compact
}

func (w *TurtleWriter) term(t graph.Term) string {
	switch t.Kind {
	case graph.KindIRI:
		return w.iri(t.Value)
	case graph.KindBlank:
		return t.String()
	}
	lit := graph.QuoteLiteral(t.Value)
	switch {
	case t.Language != "":
		return lit + "@" + t.Language
	case t.Datatype != "" && t.Datatype != mls.XSDString:
		return lit + "^^" + w.iri(t.Datatype)
	}
	return lit
}

// isPrefixedName reports whether the local part of a compact IRI can be written
// without escaping.
func isPrefixedName(curie string) bool {
	_, local, _ := strings.Cut(curie, ":")
	for _, r := range local {
		if !(r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(subject graph.Term, predicateIRI string, object graph.Term) {
	w.sb.WriteString(fmt.Sprintf("%s <%s> %s .\n", subject, predicateIRI, object))
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}
