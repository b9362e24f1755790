package report

import (
	"strings"

	"github.com/c360studio/semmls/query"
)

// writeObject renders key/value pairs as a JSON object with ", " and ": " separators.
func writeObject(keys []string, values []query.Value) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(query.Value{Kind: query.KindString, Raw: k}.JSON())
		sb.WriteString(": ")
		sb.WriteString(values[i].JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// writeList renders strings as a JSON array with ", " separators.
func writeList(items []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(query.Value{Kind: query.KindString, Raw: s}.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}
