// Package interpreter walks a resolved AST and evaluates it directly,
// consulting the resolver's resolution map instead of re-deriving scope
// depth at run time.
package interpreter

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/resolver"
	"github.com/sdecook/golox/internal/token"
)

// Interpreter executes one program at a time. It is not safe for concurrent
// use: the env field tracks the currently active lexical frame and is
// mutated in place while a Run is in flight.
type Interpreter struct {
	Globals *Environment
	env     *Environment
	locals  resolver.Locals
	Out     io.Writer
	log     *logrus.Logger
}

// New returns an Interpreter with the standard library installed and output
// directed to out. log may be nil to disable tracing.
func New(out io.Writer, log *logrus.Logger) *Interpreter {
	globals := NewEnvironment(nil)
	installNatives(globals, log)
	return &Interpreter{Globals: globals, env: globals, Out: out, log: log}
}

// Run executes stmts using the resolution map locals produced by resolving
// that same AST. Repeated calls (as in a REPL) share Globals.
func (in *Interpreter) Run(stmts []ast.Stmt, locals resolver.Locals) error {
	in.locals = locals
	for _, stmt := range stmts {
		if _, _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) trace(format string, args ...any) {
	if in.log != nil {
		in.log.Debugf(format, args...)
	}
}

// exec executes one statement. A `return` inside it reports didReturn=true
// with its value; callers (loop bodies, block execution) propagate that
// straight up to the enclosing function call, which is the only place that
// stops it.
func (in *Interpreter) exec(stmt ast.Stmt) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := in.eval(s.Expr)
		return nil, false, err

	case *ast.Print:
		v, err := in.eval(s.Expr)
		if err != nil {
			return nil, false, err
		}
		fmt.Fprintln(in.Out, Stringify(v))
		return nil, false, nil

	case *ast.Var:
		var v Value
		if s.Initializer != nil {
			var err error
			v, err = in.eval(s.Initializer)
			if err != nil {
				return nil, false, err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil, false, nil

	case *ast.Block:
		return in.execBlock(s.Stmts, NewEnvironment(in.env))

	case *ast.If:
		cond, err := in.eval(s.Cond)
		if err != nil {
			return nil, false, err
		}
		if IsTruthy(cond) {
			return in.exec(s.Then)
		} else if s.Else != nil {
			return in.exec(s.Else)
		}
		return nil, false, nil

	case *ast.While:
		for {
			cond, err := in.eval(s.Cond)
			if err != nil {
				return nil, false, err
			}
			if !IsTruthy(cond) {
				return nil, false, nil
			}
			v, didReturn, err := in.exec(s.Body)
			if err != nil || didReturn {
				return v, didReturn, err
			}
		}

	case *ast.Function:
		fn := NewFunction(s, in.env, false)
		in.env.Define(s.Name.Lexeme, fn)
		return nil, false, nil

	case *ast.Return:
		var v Value
		if s.Value != nil {
			var err error
			v, err = in.eval(s.Value)
			if err != nil {
				return nil, false, err
			}
		}
		return v, true, nil

	case *ast.Class:
		return nil, false, in.execClass(s)

	default:
		panic("interpreter: unreachable statement kind")
	}
}

// execBlock runs stmts in env, restoring the previously active frame on
// every exit path (normal completion, early return, or error).
func (in *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) (Value, bool, error) {
	previous := in.env
	in.env = env
	in.trace("enter scope")
	defer func() {
		in.env = previous
		in.trace("exit scope")
	}()

	for _, stmt := range stmts {
		v, didReturn, err := in.exec(stmt)
		if err != nil || didReturn {
			return v, didReturn, err
		}
	}
	return nil, false, nil
}

// execClass declares s.Name ahead of building its methods (so methods may
// reference the class itself), binds every method's closure to the class
// environment (with `super` injected when there's a superclass), and
// finally assigns the built Class over the placeholder binding.
func (in *Interpreter) execClass(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &loxerr.RuntimeError{Line: s.Superclass.Name.Line, Msg: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	methodEnv := in.env
	if superclass != nil {
		methodEnv = NewEnvironment(in.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	in.env.Assign(s.Name.Lexeme, class)
	return nil
}

func (in *Interpreter) eval(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return in.eval(e.Inner)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Variable:
		return in.lookupVariable(e.Name, e)
	case *ast.Assignment:
		return in.evalAssignment(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.Get:
		return in.evalGet(e)
	case *ast.Set:
		return in.evalSet(e)
	case *ast.This:
		return in.lookupVariable(e.Keyword, e)
	case *ast.Super:
		return in.evalSuper(e)
	default:
		panic("interpreter: unreachable expression kind")
	}
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if depth, ok := in.locals[expr]; ok {
		if v, found := in.env.GetAt(depth, name.Lexeme); found {
			return v, nil
		}
		return nil, &loxerr.RuntimeError{Line: name.Line, Msg: "Undefined variable '" + name.Lexeme + "'."}
	}
	if v, found := in.Globals.Get(name.Lexeme); found {
		return v, nil
	}
	return nil, &loxerr.RuntimeError{Line: name.Line, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

func (in *Interpreter) evalAssignment(e *ast.Assignment) (Value, error) {
	v, err := in.eval(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := in.locals[e]; ok {
		in.env.AssignAt(depth, e.Name.Lexeme, v)
		return v, nil
	}
	if !in.Globals.Assign(e.Name.Lexeme, v) {
		return nil, &loxerr.RuntimeError{Line: e.Name.Line, Msg: "Undefined variable '" + e.Name.Lexeme + "'."}
	}
	return v, nil
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.eval(e.Value)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.BANG:
		return !IsTruthy(right), nil
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, &loxerr.RuntimeError{Line: e.Op.Line, Msg: "Operand must be a number."}
		}
		return -n, nil
	}
	panic("interpreter: unreachable unary operator")
}

func (in *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Kind == token.OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else if !IsTruthy(left) {
		return left, nil
	}
	return in.eval(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &loxerr.RuntimeError{Line: e.Op.Line, Msg: "Operands must be two numbers or two strings."}
	case token.MINUS:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a - b })
	case token.STAR:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a * b })
	case token.SLASH:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a / b })
	case token.GREATER:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a > b })
	case token.GREATER_EQUAL:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a >= b })
	case token.LESS:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a < b })
	case token.LESS_EQUAL:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a <= b })
	case token.EQUAL_EQUAL:
		return IsEqual(left, right), nil
	case token.BANG_EQUAL:
		return !IsEqual(left, right), nil
	}
	panic("interpreter: unreachable binary operator")
}

func numberBinary(op token.Token, left, right Value, f func(a, b float64) Value) (Value, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, &loxerr.RuntimeError{Line: op.Line, Msg: "Operands must be numbers."}
	}
	return f(ln, rn), nil
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	call, ok := callee.(Callable)
	if !ok {
		return nil, &loxerr.RuntimeError{Line: e.Paren.Line, Msg: "Can only call functions and classes."}
	}
	if len(args) != call.Arity() {
		return nil, &loxerr.RuntimeError{
			Line: e.Paren.Line,
			Msg:  fmt.Sprintf("Expected %d arguments but got %d.", call.Arity(), len(args)),
		}
	}
	in.trace("call %v args=%d", call, len(args))
	return call.Call(in, args)
}

func (in *Interpreter) evalGet(e *ast.Get) (Value, error) {
	obj, err := in.eval(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &loxerr.RuntimeError{Line: e.Name.Line, Msg: "Only instances have properties."}
	}
	return inst.Get(e.Name)
}

func (in *Interpreter) evalSet(e *ast.Set) (Value, error) {
	obj, err := in.eval(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &loxerr.RuntimeError{Line: e.Name.Line, Msg: "Only instances have fields."}
	}
	v, err := in.eval(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, v)
	return v, nil
}

// evalSuper resolves to a method on e's binding's superclass, bound to the
// `this` captured one scope in from `super` -- both are always present
// because the resolver only ever resolves a Super node inside a subclass
// method body.
func (in *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	depth := in.locals[e]
	superVal, _ := in.env.GetAt(depth, "super")
	super := superVal.(*Class)
	thisVal, _ := in.env.GetAt(depth-1, "this")
	this := thisVal.(*Instance)

	method := super.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &loxerr.RuntimeError{Line: e.Method.Line, Msg: "Undefined property '" + e.Method.Lexeme + "'."}
	}
	return method.Bind(this), nil
}
