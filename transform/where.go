package transform

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
	"github.com/steinarvk/linejson/record"
)

// WhereConfig selects the records for which the boolean expression Expr is
// true.  The fields of the record are the variables of the expression; keys
// that are not identifiers can be reached with $env["some key"].
type WhereConfig struct {
	Expr   string
	Invert bool
}

// Where is a Transformer which re-emits the records satisfying an
// expression.
type Where struct {
	program *vm.Program
	vars    []string
	invert  bool
}

var _ Transformer = (*Where)(nil)

// NewWhere compiles the expression in cfg.  It returns a *ConfigError if it
// is not a valid boolean expression.
func NewWhere(cfg WhereConfig) (*Where, error) {
	program, err := expr.Compile(cfg.Expr, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, &ConfigError{Op: "where", Err: err}
	}
	vars := variables{}
	node := program.Node()
	ast.Walk(&node, vars)
	w := &Where{program: program, invert: cfg.Invert}
	for name := range vars {
		w.vars = append(w.vars, name)
	}
	return w, nil
}

// variables collects the names of the variables used in an expression.
type variables map[string]bool

func (v variables) Visit(node *ast.Node) {
	if id, ok := (*node).(*ast.IdentifierNode); ok && id.Value != "$env" {
		v[id.Value] = true
	}
}

func (cfg WhereConfig) build() (Transformer, error) {
	w, err := NewWhere(cfg)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Where) Transform(rec record.Value, out Emitter) error {
	env := map[string]any{}
	if obj, ok := rec.(*record.Object); ok {
		env = record.Fields(obj)
	}
	result, err := expr.Run(w.program, env)
	if err != nil {
		if w.lacksField(env) {
			return nil
		}
		return err
	}
	if result == nil {
		result = false
	}
	ok, isBool := result.(bool)
	if !isBool {
		return fmt.Errorf("expression returned %T, not bool", result)
	}
	if ok == w.invert {
		return nil
	}
	return out.EmitRecord(rec)
}

// lacksField reports whether a variable of the expression is missing or null
// in env.  Records for which evaluation fails in that case are not output.
func (w *Where) lacksField(env map[string]any) bool {
	for _, name := range w.vars {
		if env[name] == nil {
			return true
		}
	}
	return false
}
