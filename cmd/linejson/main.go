// Command linejson filters and reshapes streams of JSON records, one record
// per line.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/steinarvk/linejson/internal/format"
	"github.com/steinarvk/linejson/pipeline"
	"github.com/steinarvk/linejson/transform"
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see execute).
	signal.Ignore(syscall.SIGPIPE)
	os.Exit(execute(newRootCommand(), os.Args[1:]))
}

// execute runs cmd with the given arguments and returns the exit status.
func execute(cmd *cobra.Command, args []string) (status int) {
	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s", e, debug.Stack())
			status = 1
		}
	}()

	cmd.SetArgs(args)
	failed, err := cmd.ExecuteC()
	if err == nil {
		return 0
	}
	if errors.Is(err, syscall.EPIPE) {
		// stdout is a pipe and something closed it (e.g. 'head' or 'less').
		// In this case we don't want to complain.
		return 0
	}
	newLogger(cmd).Print(err)
	var uerr *usageError
	if errors.As(err, &uerr) {
		if failed == nil {
			failed = cmd
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", failed.CommandPath())
		return 2
	}
	return 1
}

func newLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "linejson: ", 0)
}

// A usageError is an error in the command line itself rather than in what
// it asks linejson to do.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func usageErrorf(msg string, args ...any) error {
	return &usageError{err: fmt.Errorf(msg, args...)}
}

// checkArgs turns the errors of check into usage errors.
func checkArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// app holds the options common to all subcommands.
type app struct {
	filename    string
	color       colorMode
	skipInvalid bool
	verbose     bool
}

// run applies the operation described by cfg to the input.
func (a *app) run(cmd *cobra.Command, cfg transform.Config) error {
	logger := newLogger(cmd)

	transformer, err := transform.New(cfg)
	if err != nil {
		return err
	}

	var stdout io.Writer = cmd.OutOrStdout()
	isTerminal := false
	if f, ok := stdout.(*os.File); ok {
		isTerminal = isatty.IsTerminal(f.Fd())
	}

	var colorizer *format.Colorizer
	switch a.color {
	case "always":
		colorizer = &format.DefaultColorizer
	case "auto":
		if isTerminal {
			colorizer = &format.DefaultColorizer
		}
	}

	// Set up stdout for handling colors
	if f, ok := stdout.(*os.File); ok && colorizer != nil {
		stdout = colorable.NewColorable(f)
	}

	input, err := a.openInput(cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer input.Close()

	// If we are writing to a terminal, flush after each line so user gets
	// feedback early.
	sink := pipeline.NewSink(stdout, colorizer, isTerminal)
	stats, err := pipeline.Run(input, transformer, sink, pipeline.Options{
		SkipInvalid: a.skipInvalid,
		Logger:      logger,
	})
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	if a.verbose {
		logger.Print(stats)
	}
	return err
}

// colorMode is the value of the --color flag.
type colorMode string

var _ pflag.Value = (*colorMode)(nil)

func (m *colorMode) String() string {
	return string(*m)
}

func (m *colorMode) Set(s string) error {
	switch s {
	case "auto", "always", "never":
		*m = colorMode(s)
		return nil
	}
	return fmt.Errorf("invalid value %q (use auto, always, or never)", s)
}

func (m *colorMode) Type() string {
	return "mode"
}

func (a *app) openInput(stdin io.Reader) (io.ReadCloser, error) {
	if a.filename == "" || a.filename == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(a.filename)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}
