package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/piprate/json-gold/ld"
)

// quad is one converted statement before it is indexed.
type quad struct {
	subject   Term
	predicate string
	object    Term
}

// toQuads converts a JSON-LD value to statements. Named graphs are flattened into one.
// Blank node labels are prefixed with a fresh scope so that labels from different
// documents never collide.
func toQuads(doc any, base string) ([]quad, error) {
	opts := ld.NewJsonLdOptions(base)
	res, err := ld.NewJsonLdProcessor().ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("convert JSON-LD to RDF: %w", err)
	}
	dataset, ok := res.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("unexpected RDF result %T", res)
	}

	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == "@default" || names[j] == "@default" {
			return names[i] == "@default" && names[j] != "@default"
		}
		return names[i] < names[j]
	})

	scope := strings.ReplaceAll(uuid.NewString(), "-", "")
	var out []quad
	for _, name := range names {
		for _, q := range dataset.Graphs[name] {
			s, ok := convertNode(q.Subject, scope)
			if !ok || s.IsLiteral() {
				continue
			}
			p, ok := q.Predicate.(*ld.IRI)
			if !ok {
				continue
			}
			o, ok := convertNode(q.Object, scope)
			if !ok {
				continue
			}
			out = append(out, quad{subject: s, predicate: p.Value, object: o})
		}
	}
	return out, nil
}

func convertNode(n ld.Node, scope string) (Term, bool) {
	switch v := n.(type) {
	case *ld.IRI:
		return IRI(v.Value), true
	case *ld.BlankNode:
		return Blank(scope + "-" + strings.TrimPrefix(v.Attribute, "_:")), true
	case *ld.Literal:
		if v.Language != "" {
			return LangLiteral(v.Value, v.Language), true
		}
		return Literal(v.Value, v.Datatype), true
	}
	return Term{}, false
}
