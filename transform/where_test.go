package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	input := []string{
		`{"n":1,"s":"abc","tags":["x"]}`,
		`{"n":5,"s":"def","tags":[]}`,
		`{"n":2.5,"s":"abd","tags":["x","y"]}`,
	}
	tests := []struct {
		name string
		cfg  WhereConfig
		want []int
	}{
		{"number", WhereConfig{Expr: "n > 2"}, []int{1, 2}},
		{"inverted", WhereConfig{Expr: "n > 2", Invert: true}, []int{0}},
		{"strings", WhereConfig{Expr: `s startsWith "ab"`}, []int{0, 2}},
		{"arrays", WhereConfig{Expr: `"x" in tags`}, []int{0, 2}},
		{"length", WhereConfig{Expr: `len(tags) == 0`}, []int{1}},
		{"env", WhereConfig{Expr: `$env["n"] == 1`}, []int{0}},
		{"missing", WhereConfig{Expr: `missing == nil`}, []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want []string
			for _, i := range tt.want {
				want = append(want, input[i])
			}
			assert.Equal(t, want, run(t, tt.cfg, input...))
		})
	}
}

func TestWhereMatchesCompare(t *testing.T) {
	input := []string{`{"n":1}`, `{"n":3}`, `{"n":4}`, `{"n":10}`}
	assert.Equal(t,
		run(t, CompareConfig{Key: "n", Operator: "gt", Value: "3"}, input...),
		run(t, WhereConfig{Expr: "n > 3"}, input...),
	)
}

func TestWhereMissingFields(t *testing.T) {
	input := []string{`{"m":1}`, `{"n":5}`, `{"n":null}`, `{"n":2}`}
	assert.Equal(t,
		run(t, CompareConfig{Key: "n", Operator: "gt", Value: "3"}, input...),
		run(t, WhereConfig{Expr: "n > 3"}, input...),
	)
	assert.Equal(t, []string{`{"n":5}`}, run(t, WhereConfig{Expr: "n > 3 && m == nil"}, input...))

	flags := []string{`{"flag":true}`, `{"other":true}`, `{"flag":false}`}
	assert.Equal(t, flags[:1], run(t, WhereConfig{Expr: "flag"}, flags...))
	assert.Equal(t, flags[1:], run(t, WhereConfig{Expr: "flag", Invert: true}, flags...))
}

func TestWhereErrors(t *testing.T) {
	_, err := New(WhereConfig{Expr: "n >"})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "where", cerr.Op)

	_, err = New(WhereConfig{Expr: `"not a bool"`})
	assert.Error(t, err)

	tr, err := New(WhereConfig{Expr: "n > 1"})
	require.NoError(t, err)
	err = tr.Transform(decode(t, `{"n":"x"}`), &recorder{})
	assert.Error(t, err)
}
