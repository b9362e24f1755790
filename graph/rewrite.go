package graph

import (
	"net/url"
	"strings"

	"github.com/c360studio/semmls/vocabulary/mls"
)

// HostRewriter moves IRIs recorded under one host to another, so that identifiers
// embedded by the host engine resolve in the current environment.
type HostRewriter struct {
	from string
	to   string
	ns   mls.Namespaces
}

// NewHostRewriter rewrites IRIs on host from to host to. Vocabulary IRIs inside ns are
// left unchanged. An empty from or to disables rewriting.
func NewHostRewriter(from, to string, ns mls.Namespaces) *HostRewriter {
	return &HostRewriter{from: strings.ToLower(from), to: to, ns: ns}
}

// Enabled reports whether the rewriter changes anything.
func (r *HostRewriter) Enabled() bool {
	return r != nil && r.from != "" && r.to != "" && r.from != strings.ToLower(r.to)
}

// IRI rewrites a single IRI.
func (r *HostRewriter) IRI(iri string) string {
	if !r.Enabled() || r.ns.Contains(iri) {
		return iri
	}
	u, err := url.Parse(iri)
	if err != nil || u.Host == "" || strings.ToLower(u.Host) != r.from {
		return iri
	}
	u.Host = r.to
	return u.String()
}

// Term rewrites IRI terms and returns other terms unchanged.
func (r *HostRewriter) Term(t Term) Term {
	if t.Kind != KindIRI {
		return t
	}
	return IRI(r.IRI(t.Value))
}
