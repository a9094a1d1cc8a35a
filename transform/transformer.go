// Package transform implements the operations that linejson applies to a
// stream of records.  Each operation is a Transformer which receives the
// records one at a time; Uniq also implements Finisher as it only produces
// output once all the records have been seen.
package transform

import (
	"errors"
	"fmt"

	"github.com/steinarvk/linejson/record"
)

// An Emitter receives the output of a Transformer.
type Emitter interface {
	// EmitRecord outputs a record as one line of JSON.
	EmitRecord(record.Value) error

	// EmitText outputs a line of plain text.
	EmitText(string) error

	// EmitRow outputs a row of fields in CSV format, separated by comma.
	EmitRow(row []string, comma rune) error
}

// A Transformer processes records one at a time.
type Transformer interface {
	Transform(rec record.Value, out Emitter) error
}

// A Finisher is a Transformer which has something to output after the last
// record.
type Finisher interface {
	Finish(out Emitter) error
}

// A Config is the configuration of one of the operations: it is one of
// GrepConfig, CompareConfig, ReplaceConfig, ExtractConfig, UniqConfig or
// WhereConfig.
type Config interface {
	build() (Transformer, error)
}

// New validates cfg and returns the Transformer it describes.  The error,
// if any, is a *ConfigError.
func New(cfg Config) (Transformer, error) {
	return cfg.build()
}

// A ConfigError reports an invalid operation configuration, e.g. a regular
// expression that does not compile.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(op string, format string, args ...any) *ConfigError {
	return &ConfigError{Op: op, Err: fmt.Errorf(format, args...)}
}

// ErrNotObject is returned when an operation needs to modify a record which
// is not a JSON object.
var ErrNotObject = errors.New("record is not an object")
