package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/c360studio/semmls/query"
)

// ErrUnknownDiffRun is returned when a run to compare has no hyperparameters.
var ErrUnknownDiffRun = errors.New("unknown run")

// AlgorithmChange reports that two runs realize different algorithms.
type AlgorithmChange struct {
	Old string
	New string
}

// ParamChange is a hyperparameter set in both runs with different values.
type ParamChange struct {
	Name string
	Old  query.Value
	New  query.Value
}

// ParamDiff is the comparison of run A (old) against run B (new).
type ParamDiff struct {
	A, B      string
	Algorithm *AlgorithmChange
	Changes   []ParamChange
}

// Diff compares two runs. Different algorithms are reported alone, without a
// parameter comparison. Otherwise only parameters present in both runs with unequal
// values are reported; parameters set in only one run are not.
func Diff(p *Params, a, b string) (*ParamDiff, error) {
	for _, id := range []string{a, b} {
		if _, ok := p.Get(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDiffRun, id)
		}
	}
	ra, _ := p.Get(a)
	rb, _ := p.Get(b)

	d := &ParamDiff{A: a, B: b}
	if ra.Algorithm != rb.Algorithm {
		d.Algorithm = &AlgorithmChange{Old: ra.Algorithm, New: rb.Algorithm}
		return d, nil
	}

	r := &changeReporter{}
	cmp.Equal(ra.values(), rb.values(), cmp.Reporter(r))
	sort.SliceStable(r.changes, func(i, j int) bool {
		return r.changes[i].Name < r.changes[j].Name
	})
	d.Changes = r.changes
	return d, nil
}

// changeReporter collects map entries present on both sides with unequal values.
type changeReporter struct {
	path    cmp.Path
	changes []ParamChange
}

func (r *changeReporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *changeReporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	mi, ok := r.path.Last().(cmp.MapIndex)
	if !ok {
		return
	}
	vx, vy := mi.Values()
	if !vx.IsValid() || !vy.IsValid() {
		return
	}
	old, okOld := vx.Interface().(query.Value)
	cur, okNew := vy.Interface().(query.Value)
	if !okOld || !okNew {
		return
	}
	r.changes = append(r.changes, ParamChange{Name: mi.Key().String(), Old: old, New: cur})
}

func (r *changeReporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

// Render draws the algorithm change, or the changed parameters as a table.
func (d *ParamDiff) Render(f Format) string {
	if d.Algorithm != nil {
		return fmt.Sprintf("Model:\n\t- %s\n\t+ %s", d.Algorithm.Old, d.Algorithm.New)
	}
	t := newTable(f)
	t.header("Hyper-Parameter", "Old", "New")
	t.align(map[int]text.Align{1: text.AlignLeft})
	// Old is the first-listed run. renku-mls printed the second run's value under Old;
	// the placement here differs on purpose.
	for _, c := range d.Changes {
		t.row(c.Name, c.Old.String(), c.New.String())
	}
	return t.String()
}
