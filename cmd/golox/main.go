// Command golox is a tree-walking interpreter for Lox.
package main

import (
	"os"

	"github.com/sdecook/golox/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Stdout))
}
