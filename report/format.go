// Package report aggregates query rows into the leaderboard and hyperparameter views
// and renders them as tables.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how tables are rendered.
type Format string

// Supported formats.
const (
	FormatASCII    Format = "ascii"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name. The empty string selects ASCII.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatASCII:
		return FormatASCII, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q (want ascii or markdown)", ErrUnknownFormat, s)
}

// tableBuilder wraps a go-pretty writer and renders it in one format.
type tableBuilder struct {
	writer table.Writer
	format Format
}

func newTable(f Format) *tableBuilder {
	w := table.NewWriter()
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	w.SetStyle(style)
	return &tableBuilder{writer: w, format: f}
}

func (b *tableBuilder) header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	b.writer.AppendHeader(row)
}

func (b *tableBuilder) row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	b.writer.AppendRow(row)
}

// align sets the alignment of 1-based columns.
func (b *tableBuilder) align(aligns map[int]text.Align) {
	cfgs := make([]table.ColumnConfig, 0, len(aligns))
	for number, a := range aligns {
		cfgs = append(cfgs, table.ColumnConfig{Number: number, Align: a, AlignHeader: a})
	}
	b.writer.SetColumnConfigs(cfgs)
}

func (b *tableBuilder) String() string {
	if b.format == FormatMarkdown {
		return b.writer.RenderMarkdown()
	}
	return b.writer.Render()
}
