package cli

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/interpreter"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/parser"
	"github.com/sdecook/golox/internal/resolver"
	"github.com/sdecook/golox/internal/scanner"
	"github.com/sdecook/golox/internal/token"
)

func scanSource(source string, log *logrus.Logger) ([]token.Token, error) {
	return scanner.New(source, log).Scan()
}

func parseSource(source string, log *logrus.Logger) ([]ast.Stmt, error) {
	toks, err := scanSource(source, log)
	if err != nil {
		return nil, err
	}
	return parser.New(toks).Parse()
}

func resolveSource(source string, log *logrus.Logger) ([]ast.Stmt, resolver.Locals, error) {
	stmts, err := parseSource(source, log)
	if err != nil {
		return nil, nil, err
	}
	locals, err := resolver.New(log).Resolve(stmts)
	return stmts, locals, err
}

// runSource resolves source and evaluates it against in, which carries
// Globals across repeated calls (the REPL's one environment for the whole
// session).
func runSource(in *interpreter.Interpreter, source string, log *logrus.Logger) error {
	stmts, locals, err := resolveSource(source, log)
	if err != nil {
		return err
	}
	return in.Run(stmts, locals)
}

// exitFor maps a pipeline error to a sysexits-style exit code: 65 for a
// static error (scan/parse/resolve), 70 for a runtime error.
func exitFor(err error) int {
	if me, ok := err.(*multierror.Error); ok {
		for _, cause := range me.Errors {
			if _, ok := cause.(*loxerr.RuntimeError); !ok {
				return exitStatic
			}
		}
	}
	switch err.(type) {
	case *loxerr.ScanError, *loxerr.ParseError, *loxerr.ResolveError:
		return exitStatic
	case *loxerr.RuntimeError:
		return exitRuntime
	default:
		return exitRuntime
	}
}
