package textmaze

import (
	"github.com/sirupsen/logrus"
)

// The logger used for diagnostics, such as skipped lines while loading a
// maze file or a failed maze in a batch. Change its output and level, or
// replace it with SetLogger, to redirect these messages.
var Log = logrus.New()

// Replaces the package logger and returns the previous one. A nil logger
// restores a new default logrus.Logger.
func SetLogger(l *logrus.Logger) *logrus.Logger {
	previous := Log
	if l == nil {
		l = logrus.New()
	}
	Log = l
	return previous
}
