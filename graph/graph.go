// Package graph merges the exported provenance graph with annotation records into a
// single in-memory graph indexed for forward and reverse edge traversal.
package graph

import (
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semmls/vocabulary/mls"
)

// Graph is an adjacency-indexed triple set. Edges keep insertion order and duplicate
// triples are stored once. A Graph is built for one report and not shared.
type Graph struct {
	ns      mls.Namespaces
	triples []message.Triple
	seen    map[string]struct{}
	out     map[string]map[string][]Term
	in      map[string]map[string][]Term
}

// New returns an empty graph bound to a namespace table.
func New(ns mls.Namespaces) *Graph {
	return &Graph{
		ns:   ns,
		seen: make(map[string]struct{}),
		out:  make(map[string]map[string][]Term),
		in:   make(map[string]map[string][]Term),
	}
}

// Namespaces returns the prefix table the graph was built with.
func (g *Graph) Namespaces() mls.Namespaces {
	return g.ns
}

// Predicate normalizes a predicate IRI to its registered dotted name. Unregistered
// predicates keep their IRI.
func Predicate(p string) string {
	if dotted, ok := mls.PredicateForIRI(p); ok {
		return dotted
	}
	return p
}

// Add inserts a triple and reports whether it was new. The subject must not be a literal.
func (g *Graph) Add(subject Term, predicate string, object Term, source string, ts time.Time) bool {
	if subject.IsLiteral() {
		return false
	}
	predicate = Predicate(predicate)

	key := subject.Key() + " " + predicate + " " + object.Key()
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.seen[key] = struct{}{}

	g.triples = append(g.triples, message.Triple{
		Subject:    subject.Key(),
		Predicate:  predicate,
		Object:     object,
		Source:     source,
		Timestamp:  ts,
		Confidence: 1.0,
	})

	s := subject.Key()
	if g.out[s] == nil {
		g.out[s] = make(map[string][]Term)
	}
	g.out[s][predicate] = append(g.out[s][predicate], object)

	o := object.Key()
	if g.in[o] == nil {
		g.in[o] = make(map[string][]Term)
	}
	g.in[o][predicate] = append(g.in[o][predicate], subject)
	return true
}

// Objects follows predicate forward from node.
func (g *Graph) Objects(node Term, predicate string) []Term {
	return g.out[node.Key()][Predicate(predicate)]
}

// Subjects follows predicate backward from node.
func (g *Graph) Subjects(node Term, predicate string) []Term {
	return g.in[node.Key()][Predicate(predicate)]
}

// SubjectsOfType returns every node typed with class, in insertion order.
func (g *Graph) SubjectsOfType(class string) []Term {
	return g.Subjects(IRI(class), mls.ResourceType)
}

// Triples returns all triples in insertion order. The triple's Object is a Term.
func (g *Graph) Triples() []message.Triple {
	out := make([]message.Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// SubjectTerm returns the term for a triple subject.
func SubjectTerm(t message.Triple) Term {
	return termFromKey(t.Subject)
}

// ObjectTerm returns the term for a triple object.
func ObjectTerm(t message.Triple) Term {
	if term, ok := t.Object.(Term); ok {
		return term
	}
	if s, ok := t.Object.(string); ok {
		return Literal(s, mls.XSDString)
	}
	return Term{}
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}
