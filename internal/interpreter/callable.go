package interpreter

import (
	"fmt"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

// Callable is anything `(...)` call syntax can invoke: user functions and
// methods, classes (as constructors), and native functions.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function or method, closed over the
// environment active at its declaration site.
type Function struct {
	decl          *ast.Function
	closure       *Environment
	isInitializer bool
}

// NewFunction closes decl over closure. isInitializer marks a class's
// `init` method, which always returns the bound instance regardless of its
// body.
func NewFunction(decl *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	value, didReturn, err := in.execBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		this, _ := f.closure.GetAt(0, "this")
		return this, nil
	}
	if didReturn {
		return value, nil
	}
	return nil, nil
}

// Bind returns a copy of f whose closure has `this` bound to instance, used
// when a method is looked up off an instance (or off `super`).
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }

// Class is a Lox class: a name, an optional superclass, and its own
// (unbound) methods. Methods are resolved through the superclass chain at
// lookup time, not flattened at declaration time.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) String() string { return c.Name }

// FindMethod looks up name on c, falling back to the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class defines `init`, runs it
// bound to that instance.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object created by calling a Class.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get looks up a property: fields shadow methods, and an unbound method is
// bound to i before being returned.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.Class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, &loxerr.RuntimeError{Line: name.Line, Msg: "Undefined property '" + name.Lexeme + "'."}
}

// Set assigns a field on i, creating it if absent; Lox instances have no
// fixed field list.
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
