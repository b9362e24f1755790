package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semmls/query"
)

func str(s string) query.Value {
	return query.Value{Kind: query.KindString, Raw: s}
}

func paramRow(run, algo, name string, v query.Value) query.ParamRow {
	return query.ParamRow{RunID: run, Algorithm: algo, Name: name, Value: v}
}

const xgb = "xgboost.sklearn.XGBClassifier"

func TestBuildParams(t *testing.T) {
	rows := []query.ParamRow{
		paramRow("run1", xgb, "n_estimators", num("100")),
		paramRow("run2", xgb, "gamma", num("0.5")),
		paramRow("run1", xgb, "sampling_method", str("uniform")),
		paramRow("run1", xgb, "n_estimators", num("150")),
	}

	p := BuildParams(rows)
	require.Equal(t, 2, p.Len())

	runs := p.Runs()
	assert.Equal(t, "run1", runs[0].RunID)
	assert.Equal(t, "run2", runs[1].RunID)
	assert.Equal(t, `{"n_estimators": "150", "sampling_method": "uniform"}`, runs[0].JSON())
	assert.Equal(t, `{"gamma": 0.5}`, runs[1].JSON())
}

func TestParams_Render(t *testing.T) {
	p := BuildParams([]query.ParamRow{
		paramRow("run1", xgb, "n_estimators", num("100")),
		paramRow("run1", xgb, "sampling_method", str("uniform")),
		paramRow("run2", xgb, "n_estimators", num("200")),
	})

	out := p.Render(FormatASCII)
	assert.Len(t, strings.Split(out, "\n"), 6)
	assert.Contains(t, out, "Hyper-Parameters")
	assert.Contains(t, out, `"n_estimators": "100"`)
	assert.Contains(t, out, "sampling_method")
}

func TestDiff_ChangedValuesOnly(t *testing.T) {
	p := BuildParams([]query.ParamRow{
		paramRow("run1", xgb, "n_estimators", num("100")),
		paramRow("run1", xgb, "max_depth", num("3")),
		paramRow("run1", xgb, "only_in_one", str("x")),
		paramRow("run1", xgb, "gamma", num("0.5")),
		paramRow("run2", xgb, "n_estimators", num("200")),
		paramRow("run2", xgb, "max_depth", num("3")),
		paramRow("run2", xgb, "only_in_two", str("y")),
		paramRow("run2", xgb, "gamma", num("0.50")),
		paramRow("run2", xgb, "booster", str("gbtree")),
	})

	d, err := Diff(p, "run1", "run2")
	require.NoError(t, err)
	assert.Nil(t, d.Algorithm)
	require.Len(t, d.Changes, 1)
	assert.Equal(t, ParamChange{Name: "n_estimators", Old: num("100"), New: num("200")}, d.Changes[0])

	out := d.Render(FormatASCII)
	assert.Contains(t, out, "Hyper-Parameter")
	assert.NotContains(t, out, "Model:")
	assert.Len(t, strings.Split(out, "\n"), 5)

	row := strings.Split(out, "\n")[3]
	assert.Less(t, strings.Index(row, "100"), strings.Index(row, "200"), "first run's value comes first")
}

func TestDiff_SortsByName(t *testing.T) {
	p := BuildParams([]query.ParamRow{
		paramRow("a", xgb, "zeta", num("1")),
		paramRow("a", xgb, "alpha", num("1")),
		paramRow("b", xgb, "zeta", num("2")),
		paramRow("b", xgb, "alpha", num("2")),
	})

	d, err := Diff(p, "a", "b")
	require.NoError(t, err)
	require.Len(t, d.Changes, 2)
	assert.Equal(t, "alpha", d.Changes[0].Name)
	assert.Equal(t, "zeta", d.Changes[1].Name)
}

func TestDiff_AlgorithmChange(t *testing.T) {
	p := BuildParams([]query.ParamRow{
		paramRow("run1", xgb, "n_estimators", num("100")),
		paramRow("run2", "sklearn.svm.SVC", "n_estimators", num("200")),
	})

	d, err := Diff(p, "run1", "run2")
	require.NoError(t, err)
	assert.Empty(t, d.Changes)
	assert.Equal(t, &AlgorithmChange{Old: xgb, New: "sklearn.svm.SVC"}, d.Algorithm)
	assert.Equal(t, "Model:\n\t- "+xgb+"\n\t+ sklearn.svm.SVC", d.Render(FormatASCII))
}

func TestDiff_NoChanges(t *testing.T) {
	p := BuildParams([]query.ParamRow{
		paramRow("run1", xgb, "n_estimators", num("100")),
		paramRow("run2", xgb, "n_estimators", num("100")),
	})

	d, err := Diff(p, "run1", "run2")
	require.NoError(t, err)
	assert.Empty(t, d.Changes)

	out := d.Render(FormatASCII)
	assert.Contains(t, out, "Hyper-Parameter")
	assert.NotContains(t, out, "n_estimators")
}

func TestDiff_UnknownRun(t *testing.T) {
	p := BuildParams([]query.ParamRow{paramRow("run1", xgb, "n", num("1"))})

	for _, pair := range [][2]string{{"run1", "nope"}, {"nope", "run1"}} {
		_, err := Diff(p, pair[0], pair[1])
		if !errors.Is(err, ErrUnknownDiffRun) {
			t.Errorf("Diff(%q, %q) error = %v, want ErrUnknownDiffRun", pair[0], pair[1], err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatASCII, false},
		{"ascii", FormatASCII, false},
		{"Markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"html", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
