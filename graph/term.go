package graph

import (
	"fmt"
	"strings"
)

// TermKind distinguishes graph nodes.
type TermKind int

// Term kinds.
const (
	KindIRI TermKind = iota
	KindBlank
	KindLiteral
)

// Term is a node in the graph: an IRI, a blank node or a typed literal.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Language string
}

// IRI returns an IRI term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Blank returns a blank node term. The label is given without the "_:" prefix.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a typed literal.
func Literal(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged string literal.
func LangLiteral(value, language string) Term {
	return Term{Kind: KindLiteral, Value: value, Language: language}
}

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool {
	return t.Kind == KindLiteral
}

// Key identifies the term inside a graph. IRIs are keyed by themselves and blank nodes
// by "_:label", so both can be used as a message.Triple subject.
func (t Term) Key() string {
	switch t.Kind {
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		return t.String()
	default:
		return t.Value
	}
}

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	}

	var sb strings.Builder
	sb.WriteString(QuoteLiteral(t.Value))
	switch {
	case t.Language != "":
		sb.WriteString("@" + t.Language)
	case t.Datatype != "":
		sb.WriteString("^^<" + t.Datatype + ">")
	}
	return sb.String()
}

// QuoteLiteral renders s as an RDF 1.1 quoted string, valid in both N-Triples and Turtle.
// Quote, backslash and the named control characters use ECHAR escapes, other control
// characters use \uXXXX. Invalid UTF-8 bytes become U+FFFD.
func QuoteLiteral(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			// range yields utf8.RuneError for each invalid byte
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// termFromKey is the inverse of Key for IRI and blank node keys.
func termFromKey(key string) Term {
	if label, ok := strings.CutPrefix(key, "_:"); ok {
		return Blank(label)
	}
	return IRI(key)
}
