package report

import (
	"github.com/jedib0t/go-pretty/v6/text"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/c360studio/semmls/query"
)

// RunParams is the algorithm and hyperparameter settings of one run.
type RunParams struct {
	RunID           string
	Algorithm       string
	Hyperparameters *orderedmap.OrderedMap[string, query.Value]
}

// JSON renders the hyperparameters in first-occurrence order.
func (r *RunParams) JSON() string {
	keys := make([]string, 0, r.Hyperparameters.Len())
	values := make([]query.Value, 0, r.Hyperparameters.Len())
	for pair := r.Hyperparameters.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
		values = append(values, pair.Value)
	}
	return writeObject(keys, values)
}

func (r *RunParams) values() map[string]query.Value {
	out := make(map[string]query.Value, r.Hyperparameters.Len())
	for pair := r.Hyperparameters.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Params maps run ids to their settings in first-occurrence order.
type Params struct {
	runs *orderedmap.OrderedMap[string, *RunParams]
}

// BuildParams groups hyperparameter rows by run. The first algorithm seen for a run is
// kept; a repeated parameter name keeps its position and takes the later value.
func BuildParams(rows []query.ParamRow) *Params {
	runs := orderedmap.New[string, *RunParams]()
	for _, r := range rows {
		run, ok := runs.Get(r.RunID)
		if !ok {
			run = &RunParams{
				RunID:           r.RunID,
				Algorithm:       r.Algorithm,
				Hyperparameters: orderedmap.New[string, query.Value](),
			}
			runs.Set(r.RunID, run)
		}
		run.Hyperparameters.Set(r.Name, r.Value)
	}
	return &Params{runs: runs}
}

// Get returns the settings of a run.
func (p *Params) Get(runID string) (*RunParams, bool) {
	return p.runs.Get(runID)
}

// Runs returns all runs in first-occurrence order.
func (p *Params) Runs() []*RunParams {
	out := make([]*RunParams, 0, p.runs.Len())
	for pair := p.runs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of runs.
func (p *Params) Len() int {
	return p.runs.Len()
}

// Render draws one row per run.
func (p *Params) Render(f Format) string {
	t := newTable(f)
	t.header("Run ID", "Model", "Hyper-Parameters")
	t.align(map[int]text.Align{1: text.AlignLeft, 2: text.AlignLeft, 3: text.AlignLeft})
	for _, run := range p.Runs() {
		t.row(run.RunID, run.Algorithm, run.JSON())
	}
	return t.String()
}
