// Package export serializes the merged provenance graph as RDF.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/piprate/json-gold/ld"

	"github.com/c360studio/semmls/graph"
	"github.com/c360studio/semmls/vocabulary/mls"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces compacted JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// RDFExporter writes a graph using a namespace table for prefixes.
type RDFExporter struct {
	ns mls.Namespaces
}

// NewRDFExporter creates an exporter bound to ns.
func NewRDFExporter(ns mls.Namespaces) *RDFExporter {
	return &RDFExporter{ns: ns}
}

// Export serializes every triple of g in the given format.
func (e *RDFExporter) Export(g *graph.Graph, format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(g), nil
	case FormatNTriples:
		return e.toNTriples(g), nil
	case FormatJSONLD:
		return e.toJSONLD(g)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// statement is a triple with its predicate mapped back to an IRI.
type statement struct {
	subject   graph.Term
	predicate string
	object    graph.Term
}

// subjectBlock groups statements by subject in first-seen order.
type subjectBlock struct {
	subject    graph.Term
	statements []statement
}

func statements(g *graph.Graph) []subjectBlock {
	var blocks []subjectBlock
	index := make(map[string]int)
	for _, t := range g.Triples() {
		st := statement{
			subject:   graph.SubjectTerm(t),
			predicate: mls.IRIForPredicate(t.Predicate),
			object:    graph.ObjectTerm(t),
		}
		i, ok := index[t.Subject]
		if !ok {
			i = len(blocks)
			index[t.Subject] = i
			blocks = append(blocks, subjectBlock{subject: st.subject})
		}
		blocks[i].statements = append(blocks[i].statements, st)
	}
	return blocks
}

func (e *RDFExporter) toTurtle(g *graph.Graph) string {
	w := NewTurtleWriter(e.ns)
	w.WritePrefixes()
	for _, block := range statements(g) {
		w.WriteSubject(block.subject)
		for i, st := range block.statements {
			w.WritePredicate(st.predicate, st.object, i == len(block.statements)-1)
		}
		w.WriteBlank()
	}
	return w.String()
}

func (e *RDFExporter) toNTriples(g *graph.Graph) string {
	w := NewNTriplesWriter()
	for _, block := range statements(g) {
		for _, st := range block.statements {
			w.WriteTriple(st.subject, st.predicate, st.object)
		}
	}
	return w.String()
}

// toJSONLD builds an expanded document and compacts it against the namespace context.
func (e *RDFExporter) toJSONLD(g *graph.Graph) (string, error) {
	blocks := statements(g)
	expanded := make([]any, 0, len(blocks))
	for _, block := range blocks {
		node := map[string]any{"@id": block.subject.Key()}
		for _, st := range block.statements {
			values, _ := node[st.predicate].([]any)
			node[st.predicate] = append(values, jsonldValue(st.object))
		}
		expanded = append(expanded, node)
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	compacted, err := proc.Compact(expanded, map[string]any{"@context": e.ns.Context()}, opts)
	if err != nil {
		return "", fmt.Errorf("compact JSON-LD: %w", err)
	}

	data, err := json.MarshalIndent(compacted, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON-LD: %w", err)
	}
	return string(data) + "\n", nil
}

func jsonldValue(t graph.Term) map[string]any {
	switch t.Kind {
	case graph.KindIRI, graph.KindBlank:
		return map[string]any{"@id": t.Key()}
	}
	v := map[string]any{"@value": t.Value}
	switch {
	case t.Language != "":
		v["@language"] = t.Language
	case t.Datatype != "" && t.Datatype != mls.XSDString:
		v["@type"] = t.Datatype
	}
	return v
}
