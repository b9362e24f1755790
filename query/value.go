package query

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/c360studio/semmls/graph"
	"github.com/c360studio/semmls/vocabulary/mls"
)

// Kind is the decoded type of a literal.
type Kind int

// Value kinds.
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "string"
	}
}

// Value is a typed literal that keeps its original lexical form.
type Value struct {
	Kind Kind
	Raw  string
}

// Decode converts a graph term to a Value. A lexical form made only of digits is a
// number kept as its exact text; otherwise the datatype decides.
func Decode(t graph.Term) Value {
	if !t.IsLiteral() {
		return Value{Kind: KindString, Raw: t.Value}
	}
	if isDigits(t.Value) {
		return Value{Kind: KindNumber, Raw: t.Value}
	}
	if t.Language != "" {
		return Value{Kind: KindString, Raw: t.Value}
	}

	switch {
	case mls.IsNumericDatatype(t.Datatype):
		return Value{Kind: KindNumber, Raw: t.Value}
	case t.Datatype == mls.XSDBoolean:
		return Value{Kind: KindBool, Raw: t.Value}
	case t.Datatype == mls.XSDDate || t.Datatype == mls.XSDDateTime:
		return Value{Kind: KindDate, Raw: t.Value}
	}
	return Value{Kind: KindString, Raw: t.Value}
}

// Exact reports whether the value is rendered as its original text.
func (v Value) Exact() bool {
	return v.Kind != KindNumber || isDigits(v.Raw)
}

// Float returns the numeric value.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		if v.Exact() {
			return v.Raw
		}
		if f, ok := v.Float(); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case KindBool:
		if b, err := strconv.ParseBool(strings.TrimSpace(v.Raw)); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return v.Raw
}

// JSON renders the value as a JSON scalar. Exact numbers stay quoted strings.
func (v Value) JSON() string {
	switch v.Kind {
	case KindNumber:
		if !v.Exact() {
			if _, ok := v.Float(); ok {
				return v.String()
			}
		}
	case KindBool:
		if s := v.String(); s == "true" || s == "false" {
			return s
		}
	}
	return quote(v.Raw)
}

// Equal compares kind and rendered value.
func (v Value) Equal(o Value) bool {
	return v.Kind == o.Kind && v.String() == o.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
