package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrToLogLevel(t *testing.T) {
	tests := map[LogLevel]zerolog.Level{
		DEBUG:    zerolog.DebugLevel,
		INFO:     zerolog.InfoLevel,
		WARN:     zerolog.WarnLevel,
		ERROR:    zerolog.ErrorLevel,
		DISABLED: zerolog.Disabled,
		TRACE:    zerolog.TraceLevel,
	}
	for ll, want := range tests {
		got, err := strToLogLevel(ll)
		require.NoError(t, err, ll)
		assert.Equal(t, want, got, ll)
	}

	_, err := strToLogLevel("verbose")
	assert.Error(t, err)
}

func TestLogLevelSet(t *testing.T) {
	var ll LogLevel
	require.NoError(t, ll.Set("warn"))
	assert.Equal(t, WARN, ll)
	assert.Error(t, ll.Set("loud"))
	assert.Equal(t, "LogLevel", ll.Type())
}

func TestInitWithLogLevelFile(t *testing.T) {
	path := t.TempDir() + "/pductl.log"
	require.NoError(t, InitWithLogLevel(INFO, path))
	t.Cleanup(func() { Close() })
	assert.NotNil(t, LogFile)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNewTraceLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTraceLogger(logrus.DebugLevel, &buf)
	l.Printf("SEND INIT %s", "get")
	assert.Contains(t, buf.String(), "SEND INIT get")
}
