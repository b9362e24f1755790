package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/c360studio/semmls/graph"
	"github.com/c360studio/semmls/vocabulary/mls"
)

type param struct {
	name  string
	value graph.Term
}

type metric struct {
	measure string
	value   graph.Term
}

type runFixture struct {
	activity string
	model    string
	params   []param
	metrics  []metric
	inputs   []string
}

// buildGraph lays runs out the way annotated provenance graphs do: an annotation
// targets the activity and carries the run as its body.
func buildGraph(t *testing.T, runs ...runFixture) *graph.Graph {
	t.Helper()

	g := graph.New(mls.DefaultNamespaces())
	now := time.Now()
	add := func(s graph.Term, p string, o graph.Term) {
		g.Add(s, p, o, "test", now)
	}

	for i, r := range runs {
		activity := graph.IRI(r.activity)
		ann := graph.IRI(r.activity + "/annotations/mls/run")
		run := graph.IRI(fmt.Sprintf("https://x/runs/%d", i))
		impl := graph.IRI(fmt.Sprintf("https://x/implementations/%d", i))

		add(activity, mls.PropType, graph.IRI(mls.ClassActivity))
		add(ann, mls.PropType, graph.IRI(mls.ClassAnnotation))
		add(ann, mls.PropHasTarget, activity)
		add(ann, mls.PropHasBody, run)
		add(run, mls.PropType, graph.IRI(mls.ClassRun))
		add(run, mls.PropImplements, impl)
		add(impl, mls.PropLabel, graph.Literal(r.model, mls.XSDString))

		for j, p := range r.params {
			setting := graph.Blank(fmt.Sprintf("s%d-%d", i, j))
			hp := graph.IRI("https://x/hyperparameters/" + p.name)
			add(run, mls.PropHasInput, setting)
			add(setting, mls.PropType, graph.IRI(mls.ClassHyperParameterSetting))
			add(setting, mls.PropSpecifiedBy, hp)
			add(hp, mls.PropLabel, graph.Literal(p.name, mls.XSDString))
			add(setting, mls.PropHasValue, p.value)
		}

		for j, m := range r.metrics {
			eval := graph.Blank(fmt.Sprintf("e%d-%d", i, j))
			add(run, mls.PropHasOutput, eval)
			add(eval, mls.PropType, graph.IRI(mls.ClassModelEvaluation))
			add(eval, mls.PropSpecifiedBy, graph.IRI("http://www.w3.org/ns/mls#"+m.measure))
			add(eval, mls.PropHasValue, m.value)
		}

		for j, path := range r.inputs {
			usage := graph.Blank(fmt.Sprintf("u%d-%d", i, j))
			entity := graph.IRI("https://x/blob/" + path)
			add(activity, mls.PropQualifiedUsage, usage)
			add(usage, mls.PropEntity, entity)
			add(entity, mls.PropAtLocation, graph.Literal(path, mls.XSDString))
		}
	}
	return g
}
