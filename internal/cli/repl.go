package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/sdecook/golox/internal/interpreter"
	"github.com/sdecook/golox/internal/loxerr"
)

// repl runs the interactive loop: one environment for the whole session, so
// a `var` declared on one line is visible on the next. It exits on EOF (a
// piped-in script, or Ctrl-D) or the literal input "quit".
func repl(out io.Writer, log *logrus.Logger) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
		Stdout: out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	in := interpreter.New(out, log)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil { // io.EOF
			return nil
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit":
			return nil
		}

		if err := runSource(in, line, log); err != nil {
			reportREPLError(out, err)
		}
	}
}

// reportREPLError prints a runtime error with a RuntimeException: prefix;
// every other phase's error already carries its own "[line N] Error ..."
// text and is printed as-is. Either way the REPL keeps running on the
// next input.
func reportREPLError(out io.Writer, err error) {
	if _, ok := err.(*loxerr.RuntimeError); ok {
		fmt.Fprintln(out, color.RedString("RuntimeException: %s", err))
		return
	}
	fmt.Fprintln(out, err)
}
