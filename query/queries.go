package query

import "strings"

// MetricPattern reconstructs (metric type, value, model, run, dataset path) for every
// model evaluation.
var MetricPattern = Pattern{
	Root:      "em",
	RootClass: "mls:ModelEvaluation",
	Clauses: []Clause{
		Edge("em", "mls:hasValue", "value"),
		Edge("em", "mls:specifiedBy", "type"),
		Edge("em", "^mls:hasOutput/mls:implements/rdfs:label", "model"),
		Edge("em", "^mls:hasOutput/^oa:hasBody/oa:hasTarget", "runId"),
		Edge("runId", "prov:qualifiedUsage/prov:entity/prov:atLocation", "dsPath"),
	},
	Select:   []string{"type", "value", "model", "runId", "dsPath"},
	Distinct: true,
}

// HyperParameterPattern reconstructs (run, algorithm, parameter, value) for every run
// with hyperparameter settings.
var HyperParameterPattern = Pattern{
	Root:      "run",
	RootClass: "mls:Run",
	Clauses: []Clause{
		Edge("run", "mls:hasInput", "in"),
		Is("in", "a", "mls:HyperParameterSetting"),
		Edge("in", "mls:specifiedBy/rdfs:label", "hp"),
		Edge("in", "mls:hasValue", "value"),
		Edge("run", "mls:implements/rdfs:label", "algo"),
		Edge("run", "^oa:hasBody/oa:hasTarget", "runId"),
	},
	Select: []string{"runId", "algo", "hp", "value"},
}

// MetricRow is one evaluation of one run on one input dataset.
type MetricRow struct {
	RunID       string
	MetricType  string
	Value       Value
	Model       string
	DatasetPath string
}

// ParamRow is one hyperparameter setting of one run.
type ParamRow struct {
	RunID     string
	Algorithm string
	Name      string
	Value     Value
}

// Metrics runs MetricPattern.
func (e *Engine) Metrics() ([]MetricRow, error) {
	solutions, err := e.Match(MetricPattern)
	if err != nil {
		return nil, err
	}
	rows := make([]MetricRow, 0, len(solutions))
	for _, s := range solutions {
		rows = append(rows, MetricRow{
			RunID:       RunID(s["runId"].Value),
			MetricType:  LocalName(s["type"].Value),
			Value:       Decode(s["value"]),
			Model:       s["model"].Value,
			DatasetPath: s["dsPath"].Value,
		})
	}
	return rows, nil
}

// HyperParameters runs HyperParameterPattern.
func (e *Engine) HyperParameters() ([]ParamRow, error) {
	solutions, err := e.Match(HyperParameterPattern)
	if err != nil {
		return nil, err
	}
	rows := make([]ParamRow, 0, len(solutions))
	for _, s := range solutions {
		rows = append(rows, ParamRow{
			RunID:     RunID(s["runId"].Value),
			Algorithm: s["algo"].Value,
			Name:      s["hp"].Value,
			Value:     Decode(s["value"]),
		})
	}
	return rows, nil
}

// RunID returns the last path segment of a run identifier.
func RunID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// LocalName returns the fragment of an IRI, or its last path segment.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if strings.Contains(iri, "://") {
		return RunID(iri)
	}
	return iri
}
