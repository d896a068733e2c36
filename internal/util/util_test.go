package util

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatErrorList(t *testing.T) {
	assert.NoError(t, FormatErrorList(nil))

	err := FormatErrorList([]error{
		errors.New("failed to get outlet 3 on pdu1: request timeout"),
		errors.New("failed to get outlet 4 on pdu1: request timeout"),
	})
	require.Error(t, err)
	assert.Equal(t,
		"\t[0] failed to get outlet 3 on pdu1: request timeout\n\t[1] failed to get outlet 4 on pdu1: request timeout",
		err.Error(),
	)
}

func TestSplitPathForViper(t *testing.T) {
	dir, name, ext := SplitPathForViper("/etc/pductl/config.yaml")
	assert.Equal(t, "/etc/pductl", dir)
	assert.Equal(t, "config", name)
	assert.Equal(t, "yaml", ext)
}

func TestMakeParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "states.db")
	require.NoError(t, MakeParentDirectory(path))

	fi, exists := PathExists(filepath.Dir(path))
	assert.True(t, exists)
	assert.True(t, fi.IsDir())
}
