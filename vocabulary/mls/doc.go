// Package mls provides the ML Schema, Web Annotation, and PROV-O vocabulary used to
// read run metadata out of a project's provenance graph.
//
// Predicates follow the semstreams dotted notation (domain.category.property) and are
// registered in init() with their standard IRIs, so RDF export can translate them back:
//
//	meta := vocabulary.GetPredicateMetadata(mls.RunImplements)
//	meta.StandardIRI // "http://www.w3.org/ns/mls#implements"
//
// Graph import goes the other way through PredicateForIRI, a lookup in the same
// semstreams registry (vocabulary.LookupByIRI).
//
// # Namespaces
//
// Namespaces is an immutable prefix table. It is handed to the graph builder and the
// query engine as a value; nothing in this package is mutated after init.
//
//	ns := mls.DefaultNamespaces()
//	ns.Expand("mls:Run")                          // "http://www.w3.org/ns/mls#Run"
//	ns.Compact("http://www.w3.org/ns/prov#entity") // "prov:entity"
package mls
