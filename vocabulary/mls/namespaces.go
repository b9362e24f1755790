package mls

import "strings"

// Prefix binds a short name to a namespace IRI.
type Prefix struct {
	Name string
	IRI  string
}

// Namespaces is an ordered, read-only prefix table.
type Namespaces struct {
	prefixes []Prefix
}

// DefaultNamespaces returns the table the report queries are written against.
func DefaultNamespaces() Namespaces {
	return NewNamespaces(
		Prefix{"mls", NamespaceMLS},
		Prefix{"oa", NamespaceOA},
		Prefix{"xsd", NamespaceXSD},
		Prefix{"prov", NamespaceProv},
		Prefix{"rdf", NamespaceRDF},
		Prefix{"rdfs", NamespaceRDFS},
		Prefix{"schema", NamespaceSchema},
		Prefix{"dcterms", NamespaceDCTerms},
		Prefix{"foaf", NamespaceFOAF},
	)
}

// NewNamespaces builds a table. A later prefix with the same name replaces an earlier one.
func NewNamespaces(prefixes ...Prefix) Namespaces {
	out := make([]Prefix, 0, len(prefixes))
	for _, p := range prefixes {
		replaced := false
		for i := range out {
			if out[i].Name == p.Name {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return Namespaces{prefixes: out}
}

// With returns a copy of the table with additional bindings.
func (n Namespaces) With(prefixes ...Prefix) Namespaces {
	all := make([]Prefix, 0, len(n.prefixes)+len(prefixes))
	all = append(all, n.prefixes...)
	all = append(all, prefixes...)
	return NewNamespaces(all...)
}

// Prefixes returns the bindings in declaration order.
func (n Namespaces) Prefixes() []Prefix {
	out := make([]Prefix, len(n.prefixes))
	copy(out, n.prefixes)
	return out
}

// Lookup returns the namespace IRI bound to name.
func (n Namespaces) Lookup(name string) (string, bool) {
	for _, p := range n.prefixes {
		if p.Name == name {
			return p.IRI, true
		}
	}
	return "", false
}

// Expand turns a compact IRI such as "mls:Run" into a full IRI. Values with an
// unknown prefix are returned unchanged.
func (n Namespaces) Expand(curie string) string {
	name, local, ok := strings.Cut(curie, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return curie
	}
	if iri, found := n.Lookup(name); found {
		return iri + local
	}
	return curie
}

// Compact shortens an IRI with the longest matching namespace. IRIs outside every
// namespace are returned unchanged.
func (n Namespaces) Compact(iri string) string {
	best := Prefix{}
	for _, p := range n.prefixes {
		if strings.HasPrefix(iri, p.IRI) && len(p.IRI) > len(best.IRI) {
			best = p
		}
	}
	if best.IRI == "" {
		return iri
	}
	return best.Name + ":" + strings.TrimPrefix(iri, best.IRI)
}

// Contains reports whether the IRI lies inside one of the bound namespaces.
func (n Namespaces) Contains(iri string) bool {
	for _, p := range n.prefixes {
		if strings.HasPrefix(iri, p.IRI) {
			return true
		}
	}
	return false
}

// Context renders the table as a JSON-LD @context object.
func (n Namespaces) Context() map[string]any {
	ctx := make(map[string]any, len(n.prefixes))
	for _, p := range n.prefixes {
		ctx[p.Name] = p.IRI
	}
	return ctx
}
