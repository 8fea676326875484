package root

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is shared by every gripctl subcommand. It writes to stderr so that
// command output on stdout, such as encoded events, stays clean.
var Logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

// setUpLogs switches to debug output for --verbose, which shows publish
// attempts and rejected tokens.
func setUpLogs(verbose bool) {
	if verbose {
		Logger.SetLevel(logrus.DebugLevel)
		return
	}
	Logger.SetLevel(logrus.InfoLevel)
}
