package mls

import "testing"

func TestNamespacesExpand(t *testing.T) {
	ns := DefaultNamespaces()

	tests := []struct {
		in   string
		want string
	}{
		{"mls:Run", ClassRun},
		{"oa:hasBody", PropHasBody},
		{"xsd:integer", XSDInteger},
		{"prov:atLocation", PropAtLocation},
		{"unknown:thing", "unknown:thing"},
		{"https://localhost/activities/1", "https://localhost/activities/1"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ns.Expand(tt.in); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamespacesCompact(t *testing.T) {
	ns := DefaultNamespaces()

	if got := ns.Compact(ClassModelEvaluation); got != "mls:ModelEvaluation" {
		t.Errorf("Compact = %q, want mls:ModelEvaluation", got)
	}
	if got := ns.Compact("https://localhost/runs/1"); got != "https://localhost/runs/1" {
		t.Errorf("Compact should leave foreign IRIs alone, got %q", got)
	}
	if !ns.Contains(PropHasTarget) {
		t.Error("oa namespace should be contained")
	}
	if ns.Contains("https://localhost/runs/1") {
		t.Error("project IRIs should not be contained")
	}
}

func TestNamespacesWithIsCopy(t *testing.T) {
	base := DefaultNamespaces()
	extended := base.With(Prefix{"ex", "http://example.org/"}, Prefix{"mls", "http://example.org/mls#"})

	if _, ok := base.Lookup("ex"); ok {
		t.Error("With must not modify the receiver")
	}
	if iri, _ := base.Lookup("mls"); iri != NamespaceMLS {
		t.Errorf("base mls binding changed to %q", iri)
	}
	if iri, _ := extended.Lookup("mls"); iri != "http://example.org/mls#" {
		t.Errorf("later binding should win, got %q", iri)
	}
	if len(extended.Prefixes()) != len(base.Prefixes())+1 {
		t.Errorf("expected one additional prefix, got %d", len(extended.Prefixes()))
	}
}
