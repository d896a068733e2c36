package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewTraceLogger returns a logrus logger for SNMP packet traces. It
// satisfies gosnmp's LoggerInterface (Print/Printf). Traces go to w, or to
// LogFile/stderr when w is nil.
func NewTraceLogger(level logrus.Level, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	switch {
	case w != nil:
		l.SetOutput(w)
	case LogFile != nil:
		l.SetOutput(io.MultiWriter(os.Stderr, LogFile))
	default:
		l.SetOutput(os.Stderr)
	}
	return l
}
