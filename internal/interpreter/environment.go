package interpreter

import "github.com/dolthub/swiss"

// Environment is one frame of the lexical scope chain: a value table plus a
// link to the enclosing frame. Globals is the frame with a nil enclosing.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, Value]
}

// NewEnvironment returns an empty frame chained to enclosing (nil for the
// global frame).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: swiss.NewMap[string, Value](8)}
}

// Define binds name in this frame, shadowing any binding of the same name in
// an enclosing frame. Re-declaring an existing name in the same frame is
// allowed at the global scope (the REPL relies on it).
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get resolves name by walking outward through enclosing frames.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.values.Get(name); ok {
		return v, true
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, false
}

// Assign rebinds an existing name, walking outward through enclosing frames.
// It reports false without effect if name is unbound anywhere in the chain.
func (e *Environment) Assign(name string, value Value) bool {
	if _, ok := e.values.Get(name); ok {
		e.values.Put(name, value)
		return true
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return false
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt resolves name directly in the frame depth scopes out, skipping the
// chain walk Get would otherwise do. depth comes from the resolver's
// resolution map.
func (e *Environment) GetAt(depth int, name string) (Value, bool) {
	return e.ancestor(depth).values.Get(name)
}

// AssignAt rebinds name directly in the frame depth scopes out.
func (e *Environment) AssignAt(depth int, name string, value Value) {
	e.ancestor(depth).values.Put(name, value)
}
