package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/scanner"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, err := scanner.New(src, nil).Scan()
	require.NoError(t, err)
	stmts, err := New(toks).Parse()
	require.NoError(t, err)
	return stmts
}

func TestParseExpressionPrecedence(t *testing.T) {
	stmts := parse(t, "print 1 + 2 * 3;")
	require.Len(t, stmts, 1)
	print, ok := stmts[0].(*ast.Print)
	require.True(t, ok)
	binary, ok := print.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", binary.Op.Lexeme)
	_, rightIsMul := binary.Right.(*ast.Binary)
	assert.True(t, rightIsMul)
}

func TestParseVarDeclaration(t *testing.T) {
	stmts := parse(t, "var a = 1;")
	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "a", v.Name.Lexeme)
	lit, ok := v.Initializer.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Value)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	outer, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)
	_, isInit := outer.Stmts[0].(*ast.Var)
	assert.True(t, isInit)
	while, ok := outer.Stmts[1].(*ast.While)
	require.True(t, ok)
	body, ok := while.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parse(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() { print "Woof"; }
		}
	`)
	require.Len(t, stmts, 2)
	dog, ok := stmts[1].(*ast.Class)
	require.True(t, ok)
	require.NotNil(t, dog.Superclass)
	assert.Equal(t, "Animal", dog.Superclass.Name.Lexeme)
	require.Len(t, dog.Methods, 1)
	assert.Equal(t, "speak", dog.Methods[0].Name.Lexeme)
}

func TestParseGetSetAndThis(t *testing.T) {
	stmts := parse(t, `
		class Box {
			fill(v) { this.value = v; }
		}
	`)
	class := stmts[0].(*ast.Class)
	body := class.Methods[0].Body
	exprStmt := body[0].(*ast.ExprStmt)
	set, ok := exprStmt.Expr.(*ast.Set)
	require.True(t, ok)
	assert.Equal(t, "value", set.Name.Lexeme)
	_, ok = set.Object.(*ast.This)
	assert.True(t, ok)
}

func TestParseCallChainedWithPropertyAccess(t *testing.T) {
	stmts := parse(t, "a.b().c;")
	exprStmt := stmts[0].(*ast.ExprStmt)
	get, ok := exprStmt.Expr.(*ast.Get)
	require.True(t, ok)
	assert.Equal(t, "c", get.Name.Lexeme)
	_, ok = get.Object.(*ast.Call)
	assert.True(t, ok)
}

func TestParseInvalidAssignmentTargetErrors(t *testing.T) {
	toks, err := scanner.New("1 = 2;", nil).Scan()
	require.NoError(t, err)
	_, err = New(toks).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestParseMissingSemicolonErrors(t *testing.T) {
	toks, err := scanner.New("print 1", nil).Scan()
	require.NoError(t, err)
	_, err = New(toks).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expect ';' after value.")
}

func TestParseTooManyArgumentsErrors(t *testing.T) {
	src := "f("
	for i := 0; i < 255; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ", 1);"
	toks, err := scanner.New(src, nil).Scan()
	require.NoError(t, err)
	_, err = New(toks).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't have more than 255 arguments.")
}
