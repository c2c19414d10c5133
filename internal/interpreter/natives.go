package interpreter

import (
	"time"

	"github.com/sirupsen/logrus"
)

// nativeFn adapts a Go closure to Callable for the natives installed into
// the global environment.
type nativeFn struct {
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func (n *nativeFn) Arity() int { return n.arity }

func (n *nativeFn) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}

func (n *nativeFn) String() string { return "<native fn>" }

// installNatives defines the standard library available to every program:
// `clock`, and golox's additive `str` conversion. log may be nil to
// disable tracing.
func installNatives(env *Environment, log *logrus.Logger) {
	trace := func(name string) {
		if log != nil {
			log.Debugf("installed native %s", name)
		}
	}

	env.Define("clock", &nativeFn{
		arity: 0,
		fn: func(in *Interpreter, args []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
	trace("clock")

	env.Define("str", &nativeFn{
		arity: 1,
		fn: func(in *Interpreter, args []Value) (Value, error) {
			return Stringify(args[0]), nil
		},
	})
	trace("str")
}
