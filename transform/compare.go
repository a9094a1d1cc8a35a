package transform

import (
	"fmt"

	"github.com/steinarvk/linejson/record"
)

// Operator is a comparison operator.
type Operator int

const (
	Greater Operator = iota
	GreaterOrEqual
	Less
	LessOrEqual
	Equal
	NotEqual
)

var operatorNames = [...]string{"gt", "ge", "lt", "le", "eq", "ne"}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorNames) {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorNames[op]
}

// ParseOperator returns the operator called name, one of gt, ge, lt, le, eq
// and ne.
func ParseOperator(name string) (Operator, error) {
	for i, n := range operatorNames {
		if n == name {
			return Operator(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q (expected one of gt, ge, lt, le, eq, ne)", name)
}

// Holds returns true if "x op y" is true.
func (op Operator) Holds(x, y record.Value) bool {
	switch op {
	case Equal:
		return record.Equal(x, y)
	case NotEqual:
		return !record.Equal(x, y)
	}
	c := record.Compare(x, y)
	switch op {
	case Greater:
		return c > 0
	case GreaterOrEqual:
		return c >= 0
	case Less:
		return c < 0
	case LessOrEqual:
		return c <= 0
	default:
		panic("invalid operator")
	}
}

// CompareConfig selects the records whose field Key compares with Value.
type CompareConfig struct {
	Key      string
	Operator string
	Value    string
	String   bool // Value is a string, whatever it looks like
}

// Compare is a Transformer which re-emits the records whose field satisfies
// a comparison.  Records where the field is missing or null never do.
type Compare struct {
	key     string
	op      Operator
	operand Operand
}

var _ Transformer = (*Compare)(nil)

// NewCompare returns a Compare for cfg, or a *ConfigError if the operator is
// unknown.
func NewCompare(cfg CompareConfig) (*Compare, error) {
	op, err := ParseOperator(cfg.Operator)
	if err != nil {
		return nil, &ConfigError{Op: "compare", Err: err}
	}
	return &Compare{
		key:     cfg.Key,
		op:      op,
		operand: ResolveOperand(cfg.Value, cfg.String),
	}, nil
}

func (cfg CompareConfig) build() (Transformer, error) {
	c, err := NewCompare(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Compare) Transform(rec record.Value, out Emitter) error {
	x, ok := record.Lookup(rec, c.key)
	if !ok || record.KindOf(x) == record.NullKind {
		return nil
	}
	y, ok := c.operand.Value(rec)
	if !ok || !c.op.Holds(x, y) {
		return nil
	}
	return out.EmitRecord(rec)
}
