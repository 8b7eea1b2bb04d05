package pandemico

import (
	"github.com/sirupsen/logrus"
	"io"
)

// SLogger is the pandemico internal logging interface. A logrus.Logger implements this interface
type SLogger interface {
	Printf(format string, v ...interface{})

	Debugf(format string, v ...interface{})
}

// NewSLogger creates a new pandemico logger writing to out. Debug statements are only logged if debug
// is true
func NewSLogger(out io.Writer, debug bool) (l *logrus.Logger) {
	l = logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}
