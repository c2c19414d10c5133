package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/parser"
	"github.com/sdecook/golox/internal/scanner"
)

func resolveSource(t *testing.T, src string) (Locals, error) {
	t.Helper()
	toks, err := scanner.New(src, nil).Scan()
	require.NoError(t, err)
	stmts, err := parser.New(toks).Parse()
	require.NoError(t, err)
	return New(nil).Resolve(stmts)
}

func TestResolveBlockLocalDepth(t *testing.T) {
	locals, err := resolveSource(t, `
		var a = 1;
		{
			var b = 2;
			print a + b;
		}
	`)
	require.NoError(t, err)
	var found bool
	for expr, depth := range locals {
		if _, ok := expr.(*ast.Variable); ok {
			found = true
			assert.Equal(t, 0, depth)
		}
	}
	assert.True(t, found, "expected the reference to b to resolve to depth 0")
}

func TestResolveDuplicateLocalDeclarationErrors(t *testing.T) {
	_, err := resolveSource(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestResolveReturnAtTopLevelErrors(t *testing.T) {
	_, err := resolveSource(t, "return 1;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestResolveThisOutsideClassErrors(t *testing.T) {
	_, err := resolveSource(t, "print this;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestResolveSuperInNonSubclassErrors(t *testing.T) {
	_, err := resolveSource(t, `
		class A {
			m() { super.m(); }
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'super' in a class with no superclass.")
}

func TestResolveOwnInitializerReadErrors(t *testing.T) {
	_, err := resolveSource(t, `
		var a = 1;
		{
			var a = a;
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't read local variable in its own initializer.")
}

func TestResolveClassSelfInheritanceErrors(t *testing.T) {
	_, err := resolveSource(t, "class A < A {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A class can't inherit from itself.")
}

func TestResolveInitializerReturnValueErrors(t *testing.T) {
	_, err := resolveSource(t, `
		class A {
			init() { return 1; }
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return a value from an initializer.")
}
