package transform

import (
	"github.com/steinarvk/linejson/record"
)

// GrepConfig selects the records whose field Key matches Pattern.
type GrepConfig struct {
	Key     string
	Pattern string
	Literal bool // Pattern must equal the field text exactly
	Invert  bool // select records that do not match
}

// Grep is a Transformer which re-emits the records whose field text matches a
// pattern.  A missing field has the empty string as its text.  Regular
// expressions only need to match at the start of the text.
type Grep struct {
	key    string
	match  func(string) (bool, error)
	invert bool
}

var _ Transformer = (*Grep)(nil)

// NewGrep returns a Grep for cfg, or a *ConfigError if the pattern is not a
// valid regular expression.
func NewGrep(cfg GrepConfig) (*Grep, error) {
	g := &Grep{key: cfg.Key, invert: cfg.Invert}
	if cfg.Literal {
		literal := cfg.Pattern
		g.match = func(s string) (bool, error) {
			return s == literal, nil
		}
		return g, nil
	}
	re, err := compilePattern(cfg.Pattern, true)
	if err != nil {
		return nil, &ConfigError{Op: "grep", Err: err}
	}
	g.match = re.MatchString
	return g, nil
}

func (cfg GrepConfig) build() (Transformer, error) {
	g, err := NewGrep(cfg)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grep) Transform(rec record.Value, out Emitter) error {
	ok, err := g.match(record.FieldText(rec, g.key))
	if err != nil {
		return err
	}
	if ok == g.invert {
		return nil
	}
	return out.EmitRecord(rec)
}
