// Package cli wires argv handling, file I/O, the REPL loop, and process
// exit codes around the core scan/parse/resolve/run pipeline. None of
// this package's decisions feed back into the core pipeline packages.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdecook/golox/internal/interpreter"
)

const (
	exitOK      = 0
	exitStatic  = 65
	exitRuntime = 70
)

// Execute builds the golox command tree, runs it against os.Args, writes
// all output to out, and returns the process's suggested exit code. It
// never calls os.Exit itself so main and tests can observe the code.
func Execute(out io.Writer) int {
	var trace bool
	exitCode := exitOK

	root := &cobra.Command{
		Use:   "golox [script]",
		Short: "A tree-walking interpreter for Lox",
		Long: heredoc.Doc(`
			golox scans, parses, resolves, and evaluates Lox source.

			Run with no file argument for an interactive REPL, or pass a
			single .lox file to run it once and exit.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(out, trace)
			if len(args) == 0 {
				return repl(out, log)
			}
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			return runSource(interpreter.New(out, log), source, log)
		},
	}
	root.PersistentFlags().BoolVar(&trace, "trace", false, "emit debug tracing for scope and call activity")

	root.AddCommand(
		tokenizeCmd(out, &trace),
		parseCmd(out, &trace),
		resolveCmd(out, &trace),
		runCmd(out, &trace),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(out, color.RedString("%s", err))
		exitCode = exitFor(err)
	}
	return exitCode
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func tokenizeCmd(out io.Writer, trace *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print every token the scanner produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(out, *trace)
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			toks, scanErr := scanSource(source, log)
			for _, t := range toks {
				fmt.Fprintln(out, t.String())
			}
			return scanErr
		},
	}
}

func parseCmd(out io.Writer, trace *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the parsed statement list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(out, *trace)
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			stmts, err := parseSource(source, log)
			if err != nil {
				return err
			}
			for _, s := range stmts {
				fmt.Fprintln(out, s.String())
			}
			return nil
		},
	}
}

func resolveCmd(out io.Writer, trace *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Scan, parse, and resolve a program without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(out, *trace)
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			_, _, err = resolveSource(source, log)
			return err
		},
	}
}

func runCmd(out io.Writer, trace *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Lox program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(out, *trace)
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			return runSource(interpreter.New(out, log), source, log)
		},
	}
}
