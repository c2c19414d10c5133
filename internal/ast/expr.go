// Package ast defines the syntax tree produced by the parser: expression
// and statement node types, each carrying a stable identity the resolver
// hands off to the evaluator by annotating a resolution map.
package ast

import (
	"fmt"
	"strings"

	"github.com/sdecook/golox/internal/token"
)

// Expr is implemented by every expression node. Each node is used behind a
// pointer so its identity (the pointer value) can key the resolver's
// resolution map.
type Expr interface {
	exprNode()
	String() string
}

type Binary struct {
	Left, Right Expr
	Op          token.Token
}

type Unary struct {
	Op    token.Token
	Value Expr
}

type Grouping struct {
	Inner Expr
}

// Literal holds a scanner-produced constant: nil, bool, float64, or string.
type Literal struct {
	Value any
}

type Variable struct {
	Name token.Token
}

type Assignment struct {
	Name  token.Token
	Value Expr
}

// Logical implements and/or with short-circuit evaluation; Op.Kind is
// token.AND or token.OR.
type Logical struct {
	Left, Right Expr
	Op          token.Token
}

type Call struct {
	Callee Expr
	Paren  token.Token // closing ')', used for error locations
	Args   []Expr
}

type Get struct {
	Object Expr
	Name   token.Token
}

type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

type This struct {
	Keyword token.Token
}

type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Binary) exprNode()     {}
func (*Unary) exprNode()      {}
func (*Grouping) exprNode()   {}
func (*Literal) exprNode()    {}
func (*Variable) exprNode()   {}
func (*Assignment) exprNode() {}
func (*Logical) exprNode()    {}
func (*Call) exprNode()       {}
func (*Get) exprNode()        {}
func (*Set) exprNode()        {}
func (*This) exprNode()       {}
func (*Super) exprNode()      {}

func (e *Binary) String() string { return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, e.Left, e.Right) }
func (e *Unary) String() string  { return fmt.Sprintf("(%s %s)", e.Op.Lexeme, e.Value) }
func (e *Grouping) String() string {
	return fmt.Sprintf("(group %s)", e.Inner)
}

func (e *Literal) String() string {
	if e.Value == nil {
		return "nil"
	}
	if s, ok := e.Value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", e.Value)
}

func (e *Variable) String() string   { return e.Name.Lexeme }
func (e *Assignment) String() string { return fmt.Sprintf("%s = %s", e.Name.Lexeme, e.Value) }
func (e *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, e.Left, e.Right)
}

func (e *Call) String() string {
	sb := strings.Builder{}
	sb.WriteString(e.Callee.String())
	sb.WriteByte('(')
	for i, arg := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (e *Get) String() string { return fmt.Sprintf("%s.%s", e.Object, e.Name.Lexeme) }
func (e *Set) String() string {
	return fmt.Sprintf("%s.%s = %s", e.Object, e.Name.Lexeme, e.Value)
}
func (e *This) String() string  { return "this" }
func (e *Super) String() string { return fmt.Sprintf("super.%s", e.Method.Lexeme) }
