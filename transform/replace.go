package transform

import (
	"github.com/steinarvk/linejson/record"
)

// ReplaceConfig rewrites the field Key by substituting Replacement for every
// match of Pattern.  The result is stored in Output, or in Key if Output is
// empty.
type ReplaceConfig struct {
	Key         string
	Pattern     string
	Replacement string
	Output      string
}

// Replace is a Transformer which emits every record, with one field set to
// the result of a regular expression substitution.  Replacements use the
// Python syntax: \1 or \g<1> for numbered groups and \g<name> for named
// groups.
type Replace struct {
	key    string
	output string
	re     *pattern
	repl   string
}

var _ Transformer = (*Replace)(nil)

// NewReplace returns a Replace for cfg, or a *ConfigError if the pattern or
// the replacement is invalid.
func NewReplace(cfg ReplaceConfig) (*Replace, error) {
	re, err := compilePattern(cfg.Pattern, false)
	if err != nil {
		return nil, &ConfigError{Op: "replace", Err: err}
	}
	repl, err := re.translateReplacement(cfg.Replacement)
	if err != nil {
		return nil, &ConfigError{Op: "replace", Err: err}
	}
	output := cfg.Output
	if output == "" {
		output = cfg.Key
	}
	return &Replace{key: cfg.Key, output: output, re: re, repl: repl}, nil
}

func (cfg ReplaceConfig) build() (Transformer, error) {
	r, err := NewReplace(cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Replace) Transform(rec record.Value, out Emitter) error {
	obj, ok := rec.(*record.Object)
	if !ok {
		return ErrNotObject
	}
	result, err := r.re.Replace(record.FieldText(obj, r.key), r.repl, -1, -1)
	if err != nil {
		return err
	}
	obj.Set(r.output, record.String(result))
	return out.EmitRecord(obj)
}
