// Package resolver implements a static pre-pass over the AST: it walks the
// tree once, tracking lexical scopes, and records in a resolution map how
// many enclosing scopes separate each variable use from its binding site.
// The evaluator consults that map instead of walking the environment chain
// at run time.
package resolver

import (
	"golang.org/x/exp/slices"

	"github.com/sirupsen/logrus"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Locals is the resolution map: for each variable-bearing expression that
// resolves to a local, the number of enclosing scopes between the use site
// and the scope holding its binding. Absence of a key means the variable is
// global.
type Locals map[ast.Expr]int

// Resolver performs the pre-order walk. A Resolver is single-use: call
// Resolve once per program.
type Resolver struct {
	locals  Locals
	scopes  []map[string]bool
	fnKind  functionKind
	clsKind classKind
	log     *logrus.Logger
}

// New returns a Resolver ready to resolve a freshly parsed program. log may
// be nil to disable tracing.
func New(log *logrus.Logger) *Resolver {
	return &Resolver{locals: make(Locals), log: log}
}

func (r *Resolver) trace(format string, args ...any) {
	if r.log != nil {
		r.log.Debugf(format, args...)
	}
}

// Resolve walks stmts and returns the resolution map, or the first
// *loxerr.ResolveError encountered.
func (r *Resolver) Resolve(stmts []ast.Stmt) (locals Locals, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			re, ok := rec.(*loxerr.ResolveError)
			if !ok {
				panic(rec)
			}
			err = re
		}
	}()

	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
	return r.locals, nil
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
	r.trace("enter scope depth=%d", len(r.scopes))
}

func (r *Resolver) endScope() {
	r.trace("exit scope depth=%d", len(r.scopes))
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.fail(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: global
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFn := r.fnKind
	r.fnKind = kind

	r.beginScope()
	seen := make([]string, 0, len(fn.Params))
	for _, param := range fn.Params {
		if slices.Contains(seen, param.Lexeme) {
			r.fail(param, "Already a variable with this name in this scope.")
		}
		seen = append(seen, param.Lexeme)
		r.declare(param)
		r.define(param)
	}
	for _, stmt := range fn.Body {
		r.resolveStmt(stmt)
	}
	r.endScope()

	r.fnKind = enclosingFn
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		for _, inner := range s.Stmts {
			r.resolveStmt(inner)
		}
		r.endScope()

	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)

	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)

	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.Print:
		r.resolveExpr(s.Expr)

	case *ast.Return:
		if r.fnKind == fnNone {
			r.fail(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.fnKind == fnInitializer {
				r.fail(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)

	case *ast.Class:
		enclosingClass := r.clsKind
		r.clsKind = classClass

		r.declare(s.Name)
		r.define(s.Name)

		if s.Superclass != nil {
			if s.Superclass.Name.Lexeme == s.Name.Lexeme {
				r.fail(s.Superclass.Name, "A class can't inherit from itself.")
			}
			r.clsKind = classSubclass
			r.resolveExpr(s.Superclass)

			r.beginScope()
			r.scopes[len(r.scopes)-1]["super"] = true
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, method := range s.Methods {
			kind := fnMethod
			if method.Name.Lexeme == "init" {
				kind = fnInitializer
			}
			r.resolveFunction(method, kind)
		}

		r.endScope()
		if s.Superclass != nil {
			r.endScope()
		}
		r.clsKind = enclosingClass

	default:
		panic("resolver: unreachable statement kind")
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.fail(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.Assignment:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Value)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Literal:
		// nothing to resolve

	case *ast.This:
		if r.clsKind == classNone {
			r.fail(e.Keyword, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Super:
		switch r.clsKind {
		case classNone:
			r.fail(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.fail(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)

	default:
		panic("resolver: unreachable expression kind")
	}
}

func (r *Resolver) fail(tok token.Token, msg string) {
	panic(&loxerr.ResolveError{Line: tok.Line, Lexeme: tok.Lexeme, Msg: msg})
}
