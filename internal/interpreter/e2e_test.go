package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/parser"
	"github.com/sdecook/golox/internal/resolver"
	"github.com/sdecook/golox/internal/scanner"
)

// runFixture runs a testdata/*.lox program through the full pipeline and
// returns everything written to stdout.
func runFixture(t *testing.T, path string) string {
	t.Helper()
	source, err := os.ReadFile(path)
	require.NoError(t, err)

	toks, err := scanner.New(string(source), nil).Scan()
	require.NoError(t, err)
	stmts, err := parser.New(toks).Parse()
	require.NoError(t, err)
	locals, err := resolver.New(nil).Resolve(stmts)
	require.NoError(t, err)

	var buf bytes.Buffer
	in := New(&buf, nil)
	require.NoError(t, in.Run(stmts, locals))
	return buf.String()
}

var fixtureExpectations = map[string]string{
	"arithmetic.lox": "7\n9\n2.5\n",
	"strings.lox":    "hi there\n3\ncount: 4\n",
	"closures.lox":   "1\n2\n3\n",
	"classes.lox":    "Rex makes a sound.\nRex barks.\n",
	"fibonacci.lox":  "0\n1\n1\n2\n3\n5\n8\n13\n",
}

func TestFixtures(t *testing.T) {
	for name, expected := range fixtureExpectations {
		name, expected := name, expected
		t.Run(name, func(t *testing.T) {
			out := runFixture(t, filepath.Join("..", "..", "testdata", name))
			require.Equal(t, expected, out)
			snaps.MatchSnapshot(t, name, out)
		})
	}
}
