package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// newLogger returns a logger for --trace diagnostics: scope push/pop,
// native installation, function-call entry. It writes to stderr, never to
// out (the print/REPL output stream), so it has no effect on program
// output.
func newLogger(out io.Writer, trace bool) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &easy.Formatter{LogFormat: "%lvl%: %msg%\n"}
	log.Level = logrus.WarnLevel
	if trace {
		log.Level = logrus.DebugLevel
	}
	return log
}
