package transform

import (
	"github.com/steinarvk/linejson/record"
)

// ExtractConfig outputs the text of the fields Keys.
type ExtractConfig struct {
	Keys    []string
	Require bool // skip records missing any of the keys
	CSV     bool // separate fields with commas rather than spaces
}

// Extract is a Transformer which outputs the text of some fields of each
// record.  A single field is output as a bare line; several fields make a
// row, quoted as needed.
type Extract struct {
	keys    []string
	require bool
	comma   rune
	row     []string
}

var _ Transformer = (*Extract)(nil)

// NewExtract returns an Extract for cfg, or a *ConfigError if no keys are
// given.
func NewExtract(cfg ExtractConfig) (*Extract, error) {
	if len(cfg.Keys) == 0 {
		return nil, configError("extract", "at least one key is required")
	}
	comma := ' '
	if cfg.CSV {
		comma = ','
	}
	return &Extract{
		keys:    cfg.Keys,
		require: cfg.Require,
		comma:   comma,
		row:     make([]string, len(cfg.Keys)),
	}, nil
}

func (cfg ExtractConfig) build() (Transformer, error) {
	e, err := NewExtract(cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Extract) Transform(rec record.Value, out Emitter) error {
	for i, key := range e.keys {
		v, ok := record.Lookup(rec, key)
		switch {
		case ok:
			e.row[i] = record.Text(v)
		case e.require:
			return nil
		default:
			e.row[i] = ""
		}
	}
	if len(e.row) == 1 {
		return out.EmitText(e.row[0])
	}
	return out.EmitRow(e.row, e.comma)
}
