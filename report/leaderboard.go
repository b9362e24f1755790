package report

import (
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/c360studio/semmls/query"
)

// Entry is one ranked run.
type Entry struct {
	RunID  string
	Model  string
	Inputs []string
	Value  query.Value
}

// Leaderboard is the ranked list of runs for one metric.
type Leaderboard struct {
	Metric  string
	Entries []Entry
}

type runMetrics struct {
	model   string
	metrics map[string]query.Value
	inputs  []string
	seen    map[string]struct{}
}

// BuildLeaderboard groups metric rows by run and ranks the runs by metric, highest
// first. Runs without a value for metric are dropped. When paths is non-empty a run is
// kept only if one of its inputs contains one of the paths as a substring.
func BuildLeaderboard(rows []query.MetricRow, metric string, paths []string) *Leaderboard {
	runs := orderedmap.New[string, *runMetrics]()
	for _, r := range rows {
		run, ok := runs.Get(r.RunID)
		if !ok {
			run = &runMetrics{
				model:   r.Model,
				metrics: make(map[string]query.Value),
				seen:    make(map[string]struct{}),
			}
			runs.Set(r.RunID, run)
		}
		if _, ok := run.metrics[r.MetricType]; !ok {
			run.metrics[r.MetricType] = r.Value
		}
		if _, ok := run.seen[r.DatasetPath]; !ok {
			run.seen[r.DatasetPath] = struct{}{}
			run.inputs = append(run.inputs, r.DatasetPath)
		}
	}

	board := &Leaderboard{Metric: metric}
	for pair := runs.Oldest(); pair != nil; pair = pair.Next() {
		run := pair.Value
		value, ok := run.metrics[metric]
		if !ok {
			continue
		}
		if len(paths) > 0 && !matchesAny(run.inputs, paths) {
			continue
		}
		inputs := append([]string(nil), run.inputs...)
		sort.Strings(inputs)
		board.Entries = append(board.Entries, Entry{
			RunID:  pair.Key,
			Model:  run.model,
			Inputs: inputs,
			Value:  value,
		})
	}

	sort.SliceStable(board.Entries, func(i, j int) bool {
		return greater(board.Entries[i].Value, board.Entries[j].Value)
	})
	return board
}

func matchesAny(inputs, paths []string) bool {
	for _, in := range inputs {
		for _, p := range paths {
			if strings.Contains(in, p) {
				return true
			}
		}
	}
	return false
}

// greater ranks numeric values ahead of non-numeric ones, then orders numbers
// numerically and everything else lexically. NaN counts as non-numeric.
func greater(a, b query.Value) bool {
	fa, okA := number(a)
	fb, okB := number(b)
	switch {
	case okA && okB:
		return fa > fb
	case okA != okB:
		return okA
	}
	return a.String() > b.String()
}

func number(v query.Value) (float64, bool) {
	f, ok := v.Float()
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Render draws the leaderboard table.
func (l *Leaderboard) Render(f Format) string {
	t := newTable(f)
	t.header("Run ID", "Model", "Inputs", l.Metric)
	t.align(map[int]text.Align{2: text.AlignLeft, 3: text.AlignLeft, 4: text.AlignRight})
	for _, e := range l.Entries {
		t.row(e.RunID, e.Model, writeList(e.Inputs), e.Value.String())
	}
	return t.String()
}
