package main

import (
	"github.com/spf13/cobra"
	"github.com/steinarvk/linejson/transform"
)

func newRootCommand() *cobra.Command {
	a := &app{color: "auto"}
	root := &cobra.Command{
		Use:   "linejson [flags] COMMAND [args]",
		Short: "Process streams of JSON records, one per line",
		Long: `linejson reads JSON records, one per line, and applies one operation to them.

Records are read from the file given with --filename, or from standard input.
Records that are output are written as compact JSON, one per line.  Fields are
top-level keys of the records; a missing field never causes an error.

Arguments that start with '-' (e.g. negative numbers) must come after '--':

  linejson compare temp lt -- -5`,
		Example: `  linejson grep level '(error|warn)' < app.log
  linejson compare age ge 18 --filename people.json
  linejson replace path '^/home/(\w+)' '~\1'
  linejson extract --csv id name < users.json
  linejson uniq --count status < requests.json
  linejson where 'size > 1000 && type == "file"'`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("a command is required")
			}
			return usageErrorf("unknown command %q", args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.filename, "filename", "", "input filename (if none or '-', reads from stdin)")
	flags.Var(&a.color, "color", "colorize JSON output: auto, always, never")
	flags.BoolVar(&a.skipInvalid, "skip-invalid", false, "skip lines that cannot be processed instead of stopping")
	flags.BoolVar(&a.verbose, "verbose", false, "print a summary of the run to stderr")

	root.AddCommand(
		newGrepCommand(a),
		newCompareCommand(a),
		newReplaceCommand(a),
		newExtractCommand(a),
		newUniqCommand(a),
		newWhereCommand(a),
	)
	return root
}

func newGrepCommand(a *app) *cobra.Command {
	var cfg transform.GrepConfig
	cmd := &cobra.Command{
		Use:   "grep KEY PATTERN",
		Short: "filter by a regex on a particular key",
		Long: `Output the records whose KEY field matches PATTERN.

PATTERN is a regular expression in Python syntax which must match at the start
of the field (use '.*' to match anywhere).  A missing field is the empty
string; fields which are not strings are matched against their JSON text.`,
		Args: checkArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Key, cfg.Pattern = args[0], args[1]
			return a.run(cmd, cfg)
		},
	}
	cmd.Flags().BoolVar(&cfg.Literal, "literal", false, "literal match (no regex)")
	cmd.Flags().BoolVarP(&cfg.Invert, "invert", "v", false, "whether to invert matching")
	return cmd
}

func newCompareCommand(a *app) *cobra.Command {
	var cfg transform.CompareConfig
	cmd := &cobra.Command{
		Use:   "compare KEY OP VALUE",
		Short: "filter by value comparison",
		Long: `Output the records whose KEY field compares with VALUE according to OP, one
of gt, ge, lt, le, eq or ne.

VALUE is a JSON value (or one of True, False, None or a 'quoted string').
Anything else is the name of another field of the record.  With --string,
VALUE is always a string.  Records where KEY is missing or null are never
output.

Numbers compare numerically, strings lexicographically.  Values of different
types are ordered: null < booleans < numbers < strings < arrays < objects.`,
		Args: checkArgs(cobra.MatchAll(cobra.ExactArgs(3), validOperator)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Key, cfg.Operator, cfg.Value = args[0], args[1], args[2]
			return a.run(cmd, cfg)
		},
	}
	cmd.Flags().BoolVarP(&cfg.String, "string", "s", false, "force value to be interpreted as string")
	return cmd
}

func validOperator(cmd *cobra.Command, args []string) error {
	_, err := transform.ParseOperator(args[1])
	return err
}

func newReplaceCommand(a *app) *cobra.Command {
	var cfg transform.ReplaceConfig
	cmd := &cobra.Command{
		Use:   "replace KEY PATTERN REPL",
		Short: "replace by a regex in a particular key",
		Long: `Output every record, replacing all matches of PATTERN in the KEY field with
REPL.  The result is always a string.

REPL can refer to groups of PATTERN with \1, \2, ... or \g<name>.`,
		Args: checkArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Key, cfg.Pattern, cfg.Replacement = args[0], args[1], args[2]
			return a.run(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Output, "output", "", "output key (default: same as input key)")
	return cmd
}

func newExtractCommand(a *app) *cobra.Command {
	var cfg transform.ExtractConfig
	cmd := &cobra.Command{
		Use:   "extract KEY...",
		Short: "extract a key or a set of keys from the JSON",
		Long: `Output the KEY fields of each record as text, one record per line.

With several keys, fields are separated by spaces (or commas with --csv) and
quoted when necessary.  Missing fields are empty unless --require is given, in
which case records missing any of the keys are skipped.`,
		Args: checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Keys = args
			return a.run(cmd, cfg)
		},
	}
	cmd.Flags().BoolVar(&cfg.Require, "require", false, "require all keys to be present")
	cmd.Flags().BoolVar(&cfg.CSV, "csv", false, "use CSV format for output (instead of separating with spaces)")
	return cmd
}

func newUniqCommand(a *app) *cobra.Command {
	var cfg transform.UniqConfig
	cmd := &cobra.Command{
		Use:   "uniq KEY",
		Short: "find (and optionally count) the range of values of a particular key",
		Long: `Output the distinct values of the KEY field, in increasing order.  A missing
field counts as null.

With --count, each value is followed by its number of occurrences and values
are sorted by increasing count.`,
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Key = args[0]
			return a.run(cmd, cfg)
		},
	}
	cmd.Flags().BoolVarP(&cfg.Count, "count", "c", false, "count occurrences and sort by frequency")
	return cmd
}

func newWhereCommand(a *app) *cobra.Command {
	var cfg transform.WhereConfig
	cmd := &cobra.Command{
		Use:   "where EXPR",
		Short: "filter by a boolean expression",
		Long: `Output the records for which EXPR is true.

The fields of the record are variables in EXPR, e.g.

  linejson where 'status >= 500 && path startsWith "/api"'

Fields whose names are not identifiers can be reached with $env["some-key"].
Missing fields are nil.  See https://expr-lang.org for the expression
language.`,
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Expr = args[0]
			return a.run(cmd, cfg)
		},
	}
	cmd.Flags().BoolVarP(&cfg.Invert, "invert", "v", false, "output the records for which EXPR is false")
	return cmd
}
