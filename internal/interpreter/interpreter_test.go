package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/parser"
	"github.com/sdecook/golox/internal/resolver"
	"github.com/sdecook/golox/internal/scanner"
)

func runProgram(t *testing.T, src string) (string, error) {
	t.Helper()
	toks, err := scanner.New(src, nil).Scan()
	require.NoError(t, err)
	stmts, err := parser.New(toks).Parse()
	require.NoError(t, err)
	locals, err := resolver.New(nil).Resolve(stmts)
	require.NoError(t, err)

	var buf bytes.Buffer
	in := New(&buf, nil)
	runErr := in.Run(stmts, locals)
	return buf.String(), runErr
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := runProgram(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, lines(out))
}

func TestStringConcatAndNumberPrinting(t *testing.T) {
	out, err := runProgram(t, `print "hi " + "there"; print 3.0;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi there", "3"}, lines(out))
}

func TestClosureCapturesVariableByReference(t *testing.T) {
	out, err := runProgram(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}
		var c = makeCounter();
		print c();
		print c();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, lines(out))
}

func TestClosureBindingSurvivesLaterReshadowing(t *testing.T) {
	out, err := runProgram(t, `
		var a = "global";
		{
			fun show() { print a; }
			show();
			var a = "local";
			show();
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"global", "global"}, lines(out))
}

func TestClassInitAndMethodCall(t *testing.T) {
	out, err := runProgram(t, `
		class Greeter {
			init(name) { this.name = name; }
			greet() { print "hi " + this.name; }
		}
		var g = Greeter("sam");
		g.greet();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi sam"}, lines(out))
}

func TestSuperCallsAncestorMethod(t *testing.T) {
	out, err := runProgram(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "Woof";
			}
		}
		Dog().speak();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"...", "Woof"}, lines(out))
}

func TestInitializerAlwaysReturnsInstance(t *testing.T) {
	out, err := runProgram(t, `
		class Box {
			init() { return; }
		}
		print Box();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Box instance"}, lines(out))
}

func TestBlockEnvironmentRestoredAfterRuntimeError(t *testing.T) {
	var buf bytes.Buffer
	in := New(&buf, nil)

	toks, err := scanner.New(`var x = "outer"; { var x = 1 + "a"; }`, nil).Scan()
	require.NoError(t, err)
	stmts, err := parser.New(toks).Parse()
	require.NoError(t, err)
	locals, err := resolver.New(nil).Resolve(stmts)
	require.NoError(t, err)

	runErr := in.Run(stmts, locals)
	require.Error(t, runErr)
	var rerr *loxerr.RuntimeError
	require.ErrorAs(t, runErr, &rerr)
	assert.Same(t, in.Globals, in.env)

	v, ok := in.Globals.Get("x")
	require.True(t, ok)
	assert.Equal(t, "outer", v)
}

func TestArityMismatchErrors(t *testing.T) {
	_, err := runProgram(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestAssignToUndeclaredGlobalErrors(t *testing.T) {
	_, err := runProgram(t, "x = 1;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'x'.")
}

func TestNumberEqualsNumberButNotBool(t *testing.T) {
	assert.True(t, IsEqual(1.0, 1.0))
	assert.False(t, IsEqual(1.0, true))
	assert.True(t, IsEqual(nil, nil))
	assert.False(t, IsEqual(nil, false))
}

func TestStringifyStripsTrailingZero(t *testing.T) {
	assert.Equal(t, "3", Stringify(3.0))
	assert.Equal(t, "3.5", Stringify(3.5))
	assert.Equal(t, "nil", Stringify(nil))
	assert.Equal(t, "true", Stringify(true))
}

func TestClockAndStrNatives(t *testing.T) {
	out, err := runProgram(t, `
		print str(1 + 2);
		print clock() >= 0;
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "true"}, lines(out))
}
