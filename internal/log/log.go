package log

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// string representation that directly corresponds to zerolog.Level
type LogLevel string

const (
	DEBUG    LogLevel = "debug"
	INFO     LogLevel = "info"
	WARN     LogLevel = "warn"
	ERROR    LogLevel = "error"
	DISABLED LogLevel = "disabled"
	TRACE    LogLevel = "trace"
)

var Levels = [6]LogLevel{DEBUG, INFO, WARN, ERROR, DISABLED, TRACE}
var LogFile *os.File

func (ll LogLevel) String() string {
	return string(ll)
}

func (ll *LogLevel) Set(v string) error {
	switch LogLevel(v) {
	case DEBUG, INFO, WARN, ERROR, DISABLED, TRACE:
		*ll = LogLevel(v)
		return nil
	default:
		return fmt.Errorf("must be one of %v", Levels)
	}
}

func (ll LogLevel) Type() string {
	return "LogLevel"
}

// InitWithLogLevel replaces the global zerolog logger. Console output goes
// to stderr; when logPath is set the same events are appended to that file
// as JSON lines.
func InitWithLogLevel(logLevel LogLevel, logPath string) error {
	var (
		level   zerolog.Level
		writers []io.Writer
		err     error
	)

	level, err = strToLogLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to convert log level: %w", err)
	}

	writers = append(writers, &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}},
		Level:  level,
	})

	if logPath != "" {
		LogFile, err = os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: LogFile},
			Level:  level,
		})
	}

	writer := zerolog.MultiLevelWriter(writers...)
	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
	return nil
}

// Close closes the log file opened by InitWithLogLevel, if any.
func Close() error {
	if LogFile == nil {
		return nil
	}
	err := LogFile.Close()
	LogFile = nil
	return err
}

func strToLogLevel(ll LogLevel) (zerolog.Level, error) {
	if index := slices.Index(Levels[:], ll); index >= 0 {
		// DISABLED and TRACE don't follow the zerolog ordering
		switch ll {
		case DISABLED:
			return zerolog.Disabled, nil
		case TRACE:
			return zerolog.TraceLevel, nil
		}
		return zerolog.Level(index), nil
	}
	names := make([]string, 0, len(Levels))
	for _, l := range Levels {
		names = append(names, string(l))
	}
	return zerolog.NoLevel, fmt.Errorf("invalid log level (options: %s)", strings.Join(names, ", "))
}
