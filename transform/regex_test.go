package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatePattern(t *testing.T) {
	tests := []struct {
		in, out string
		groups  int
	}{
		{`abc`, `abc`, 0},
		{`(a)(?:b)(c)`, `(a)(?:b)(c)`, 2},
		{`(?P<year>\d{4})-(?P<month>\d\d)`, `(\d{4})-(\d\d)`, 2},
		{`(x)(?P<q>['"]).*(?P=q)`, `(x)(['"]).*(?:\2)`, 2},
		{`end\Z`, `end\z`, 0},
		{`\\Z`, `\\Z`, 0},
		{`[(?P<x>]`, `[(?P<x>]`, 0},
		{`[](]`, `[](]`, 0},
		{`\(?P<x>`, `\(?P<x>`, 0},
		{`(?<=a)(?!b)(c)`, `(?<=a)(?!b)(c)`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out, groups, _, err := translatePattern(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.out, out)
			assert.Equal(t, tt.groups, groups)
		})
	}
}

func TestTranslatePatternErrors(t *testing.T) {
	for _, src := range []string{`(?P<a)`, `(?P<>x)`, `(?P<a>x)(?P<a>y)`, `(?P=a)`, `(?P<a>x)(?P=a`} {
		t.Run(src, func(t *testing.T) {
			_, err := compilePattern(src, false)
			assert.Error(t, err)
		})
	}
}

func TestPatternErrorShowsSource(t *testing.T) {
	_, err := compilePattern(`(?P<a>x`, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in `(?P<a>x`")

	_, err = New(GrepConfig{Key: "a", Pattern: "("})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in `(`")
	assert.NotContains(t, err.Error(), `\A`)
}

func TestTranslateReplacement(t *testing.T) {
	p, err := compilePattern(`(?P<first>\w+) (\w+)`, false)
	require.NoError(t, err)
	tests := []struct {
		in, out string
	}{
		{`plain`, `plain`},
		{`\2 \1`, `${2} ${1}`},
		{`\g<first>`, `${1}`},
		{`\g<2>`, `${2}`},
		{`\g<0>!`, `${0}!`},
		{`$1`, `$$1`},
		{`\$`, `\$$`},
		{`a\tb\nc`, "a\tb\nc"},
		{`back\\slash`, `back\slash`},
		{`\.`, `\.`},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := p.translateReplacement(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.out, got)
		})
	}
}

func TestTranslateReplacementErrors(t *testing.T) {
	p, err := compilePattern(`(a)(?P<b>b)`, false)
	require.NoError(t, err)
	for _, repl := range []string{`\3`, `\g<c>`, `\g<>`, `\g<b`, `\gb`} {
		t.Run(repl, func(t *testing.T) {
			_, err := p.translateReplacement(repl)
			assert.Error(t, err)
		})
	}
}

func TestPythonGroupNumbering(t *testing.T) {
	// The named group comes first so it is group 1, as in Python.
	p, err := compilePattern(`(?P<word>[a-z]+)-(\d+)`, false)
	require.NoError(t, err)
	repl, err := p.translateReplacement(`\2:\1:\g<word>`)
	require.NoError(t, err)
	got, err := p.Replace("abc-12 x de-3", repl, -1, -1)
	require.NoError(t, err)
	assert.Equal(t, "12:abc:abc x 3:de:de", got)
}
