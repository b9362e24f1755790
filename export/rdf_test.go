package export_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/semmls/export"
	"github.com/c360studio/semmls/graph"
	"github.com/c360studio/semmls/vocabulary/mls"
)

func sampleGraph() *graph.Graph {
	g := graph.New(mls.DefaultNamespaces())
	now := time.Now()
	run := graph.IRI("https://localhost/runs/1")
	setting := graph.Blank("s1")

	g.Add(run, mls.PropType, graph.IRI(mls.ClassRun), "test", now)
	g.Add(run, mls.PropHasInput, setting, "test", now)
	g.Add(setting, mls.PropHasValue, graph.Literal("100", mls.XSDInteger), "test", now)
	g.Add(setting, mls.PropLabel, graph.Literal("n_estimators", mls.XSDString), "test", now)
	return g
}

func TestExportTurtle(t *testing.T) {
	output, err := export.NewRDFExporter(mls.DefaultNamespaces()).Export(sampleGraph(), export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, want := range []string{
		"@prefix mls: <http://www.w3.org/ns/mls#> .",
		"<https://localhost/runs/1>\n",
		"    a mls:Run ;\n",
		"    mls:hasInput _:s1 .\n",
		`    mls:hasValue "100"^^xsd:integer ;`,
		`    rdfs:label "n_estimators" .`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Turtle output missing %q\n%s", want, output)
		}
	}
}

func TestExportNTriples(t *testing.T) {
	output, err := export.NewRDFExporter(mls.DefaultNamespaces()).Export(sampleGraph(), export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 triples, got %d:\n%s", len(lines), output)
	}
	want := "<https://localhost/runs/1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/mls#Run> ."
	if lines[0] != want {
		t.Errorf("first triple = %q, want %q", lines[0], want)
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("triple not terminated: %q", line)
		}
	}
}

func TestExportEscapesLiterals(t *testing.T) {
	g := graph.New(mls.DefaultNamespaces())
	g.Add(graph.IRI("https://localhost/runs/1"), mls.PropLabel,
		graph.Literal("bell\a ctl\x01 bad\xff \"q\"\n", mls.XSDString), "test", time.Now())

	exporter := export.NewRDFExporter(mls.DefaultNamespaces())
	for _, format := range []export.Format{export.FormatNTriples, export.FormatTurtle} {
		output, err := exporter.Export(g, format)
		if err != nil {
			t.Fatalf("Export(%s) failed: %v", format, err)
		}
		want := `"bell\u0007 ctl\u0001 bad` + "\uFFFD" + ` \"q\"\n"`
		if !strings.Contains(output, want) {
			t.Errorf("%s output missing %s\n%s", format, want, output)
		}
		for _, bad := range []string{`\a`, `\x01`, `\xff`} {
			if strings.Contains(output, bad) {
				t.Errorf("%s output contains non-RDF escape %s\n%s", format, bad, output)
			}
		}
	}
}

func TestExportJSONLD(t *testing.T) {
	output, err := export.NewRDFExporter(mls.DefaultNamespaces()).Export(sampleGraph(), export.FormatJSONLD)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("JSON-LD output is not valid JSON: %v", err)
	}
	if _, ok := doc["@context"]; !ok {
		t.Error("JSON-LD output should have @context")
	}
	if !strings.Contains(output, "mls:Run") {
		t.Errorf("JSON-LD output should compact class IRIs:\n%s", output)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := export.NewRDFExporter(mls.DefaultNamespaces()).Export(sampleGraph(), export.Format("rdfxml"))
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"turtle", export.FormatTurtle},
		{"ttl", export.FormatTurtle},
		{"NT", export.FormatNTriples},
		{"jsonld", export.FormatJSONLD},
	}
	for _, tt := range tests {
		got, err := export.ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := export.ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestGetFormatInfo(t *testing.T) {
	info, ok := export.GetFormatInfo(export.FormatTurtle)
	if !ok {
		t.Fatal("turtle should be registered")
	}
	if info.Extension != ".ttl" || info.MIMEType != "text/turtle" {
		t.Errorf("unexpected turtle info: %+v", info)
	}
}
