package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/dlclark/regexp2/syntax"
)

// A pattern is a compiled regular expression written in Python syntax.
//
// regexp2 numbers named groups after all the unnamed ones, whereas Python
// numbers all groups from left to right.  Named groups are compiled as
// unnamed ones so that group numbers agree, and their names are kept here.
type pattern struct {
	*regexp2.Regexp
	groups int
	names  map[string]int
}

// compilePattern compiles src.  If anchored is true, the expression only
// matches at the start of the input.
func compilePattern(src string, anchored bool) (*pattern, error) {
	translated, groups, names, err := translatePattern(src)
	if err != nil {
		return nil, err
	}
	if anchored {
		translated = `\A(?:` + translated + `)`
	}
	re, err := regexp2.Compile(translated, regexp2.None)
	if err != nil {
		var perr *syntax.Error
		if errors.As(err, &perr) {
			perr.Expr = src
		}
		return nil, err
	}
	return &pattern{Regexp: re, groups: groups, names: names}, nil
}

// translatePattern rewrites the Python-only constructs of a pattern into
// their regexp2 equivalents:
//
//	(?P<name>...)  ->  (...)
//	(?P=name)      ->  (?:\N) where N is the number of the group
//	\Z             ->  \z
//
// It returns the number of capturing groups and the numbers of named groups.
func translatePattern(src string) (string, int, map[string]int, error) {
	var (
		b       strings.Builder
		inClass bool
		groups  int
		names   = map[string]int{}
	)
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i++
			if src[i] == 'Z' && !inClass {
				b.WriteString(`\z`)
			} else {
				b.WriteByte('\\')
				b.WriteByte(src[i])
			}
			continue
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			// A ']' straight after the opening bracket is part of the class.
			if strings.HasPrefix(src[i+1:], "]") || strings.HasPrefix(src[i+1:], "^]") {
				n := strings.IndexByte(src[i+1:], ']') + 1
				b.WriteString(src[i : i+n+1])
				i += n
				continue
			}
		case c == '(' && strings.HasPrefix(src[i:], "(?P<"):
			end := strings.IndexByte(src[i:], '>')
			if end < 0 {
				return "", 0, nil, fmt.Errorf("missing '>' in group name at position %d", i)
			}
			name := src[i+len("(?P<") : i+end]
			if _, ok := names[name]; ok || name == "" {
				return "", 0, nil, fmt.Errorf("invalid group name %q at position %d", name, i)
			}
			groups++
			names[name] = groups
			b.WriteByte('(')
			i += end
			continue
		case c == '(' && strings.HasPrefix(src[i:], "(?P="):
			end := strings.IndexByte(src[i:], ')')
			if end < 0 {
				return "", 0, nil, fmt.Errorf("missing ')' in group reference at position %d", i)
			}
			name := src[i+len("(?P=") : i+end]
			n, ok := names[name]
			if !ok {
				return "", 0, nil, fmt.Errorf("unknown group name %q at position %d", name, i)
			}
			fmt.Fprintf(&b, `(?:\%d)`, n)
			i += end
			continue
		case c == '(' && !strings.HasPrefix(src[i:], "(?"):
			groups++
		}
		b.WriteByte(c)
	}
	return b.String(), groups, names, nil
}

// translateReplacement rewrites a Python replacement template into the
// substitution syntax of regexp2.
func (p *pattern) translateReplacement(repl string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '$' {
			b.WriteString("$$")
			continue
		}
		if c != '\\' || i+1 == len(repl) {
			b.WriteByte(c)
			continue
		}
		i++
		c = repl[i]
		switch {
		case c == 'g':
			rest := repl[i+1:]
			end := strings.IndexByte(rest, '>')
			if !strings.HasPrefix(rest, "<") || end < 0 {
				return "", fmt.Errorf("missing group name at position %d", i-1)
			}
			n, err := p.group(rest[1:end])
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "${%d}", n)
			i += end + 1
		case c >= '1' && c <= '9':
			j := i + 1
			if j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			n, err := p.group(repl[i:j])
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "${%d}", n)
			i = j - 1
		case c == '0':
			b.WriteByte(0)
		case c == '$':
			b.WriteString(`\$$`)
		default:
			if e, ok := replacementEscapes[c]; ok {
				b.WriteByte(e)
			} else {
				b.WriteByte('\\')
				b.WriteByte(c)
			}
		}
	}
	return b.String(), nil
}

var replacementEscapes = map[byte]byte{
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'f':  '\f',
	'v':  '\v',
	'a':  '\a',
	'b':  '\b',
}

// group returns the number of the group called name, which may be a number
// itself.
func (p *pattern) group(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("missing group name")
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > p.groups {
			return 0, fmt.Errorf("invalid group reference %d", n)
		}
		return n, nil
	}
	n, ok := p.names[name]
	if !ok {
		return 0, fmt.Errorf("unknown group name %q", name)
	}
	return n, nil
}
