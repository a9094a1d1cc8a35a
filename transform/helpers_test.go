package transform

import (
	"strings"
	"testing"

	"github.com/steinarvk/linejson/encoding/json"
	"github.com/steinarvk/linejson/record"
	"github.com/stretchr/testify/require"
)

// recorder is an Emitter which keeps the output in memory.  Rows are joined
// with their separator without any quoting.
type recorder struct {
	lines []string
}

func (r *recorder) EmitRecord(v record.Value) error {
	r.lines = append(r.lines, record.JSON(v))
	return nil
}

func (r *recorder) EmitText(s string) error {
	r.lines = append(r.lines, s)
	return nil
}

func (r *recorder) EmitRow(row []string, comma rune) error {
	r.lines = append(r.lines, strings.Join(row, string(comma)))
	return nil
}

// run feeds the input lines to a new transformer for cfg and returns the
// output lines.
func run(t *testing.T, cfg Config, input ...string) []string {
	t.Helper()
	tr, err := New(cfg)
	require.NoError(t, err)
	out := &recorder{}
	for _, line := range input {
		require.NoError(t, tr.Transform(decode(t, line), out))
	}
	if f, ok := tr.(Finisher); ok {
		require.NoError(t, f.Finish(out))
	}
	return out.lines
}

func decode(t *testing.T, line string) record.Value {
	t.Helper()
	v, err := json.DecodeRecord([]byte(line))
	require.NoError(t, err)
	return v
}
