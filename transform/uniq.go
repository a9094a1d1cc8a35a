package transform

import (
	"slices"
	"strconv"

	"github.com/steinarvk/linejson/record"
)

// UniqConfig collects the distinct values of the field Key.
type UniqConfig struct {
	Key   string
	Count bool // output the number of occurrences of each value
}

// Uniq is a Transformer which outputs nothing until all records have been
// seen, then outputs the distinct values of a field.  A missing field counts
// as null.
type Uniq struct {
	key     string
	count   bool
	index   map[string]int
	entries []uniqEntry
}

type uniqEntry struct {
	value record.Value // first occurrence
	count int
}

var (
	_ Transformer = (*Uniq)(nil)
	_ Finisher    = (*Uniq)(nil)
)

func NewUniq(cfg UniqConfig) *Uniq {
	return &Uniq{
		key:   cfg.Key,
		count: cfg.Count,
		index: make(map[string]int),
	}
}

func (cfg UniqConfig) build() (Transformer, error) {
	return NewUniq(cfg), nil
}

func (u *Uniq) Transform(rec record.Value, out Emitter) error {
	v, ok := record.Lookup(rec, u.key)
	if !ok {
		v = record.Null
	}
	k := record.Key(v)
	i, ok := u.index[k]
	if !ok {
		i = len(u.entries)
		u.index[k] = i
		u.entries = append(u.entries, uniqEntry{value: v})
	}
	u.entries[i].count++
	return nil
}

// Finish outputs the values collected.  With counts they are sorted by
// increasing count (values seen first come first when counts are the same),
// otherwise by value.
func (u *Uniq) Finish(out Emitter) error {
	entries := slices.Clone(u.entries)
	if u.count {
		slices.SortStableFunc(entries, func(a, b uniqEntry) int {
			return a.count - b.count
		})
	} else {
		slices.SortStableFunc(entries, func(a, b uniqEntry) int {
			return record.Compare(a.value, b.value)
		})
	}
	for _, e := range entries {
		line := record.Text(e.value)
		if u.count {
			line += " " + strconv.Itoa(e.count)
		}
		if err := out.EmitText(line); err != nil {
			return err
		}
	}
	return nil
}
