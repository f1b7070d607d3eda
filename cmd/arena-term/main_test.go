package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLog_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.log")
	for _, line := range []string{"one\n", "two\n"} {
		f, closeLog, err := openLog(path)
		require.NoError(t, err)
		_, err = f.WriteString(line)
		require.NoError(t, err)
		closeLog()
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestOpenLog_DiscardsByDefault(t *testing.T) {
	f, closeLog, err := openLog("")
	require.NoError(t, err)
	defer closeLog()
	assert.Equal(t, os.DevNull, f.Name())
}

func TestOpenLog_BadPath(t *testing.T) {
	_, _, err := openLog(filepath.Join(t.TempDir(), "missing", "arena.log"))
	assert.ErrorContains(t, err, "open log")
}

func TestRun_RejectsBadFlags(t *testing.T) {
	t.Setenv("ARENA_WIDTH", "")
	err := run([]string{"-width", "-5"})
	assert.Error(t, err)
}
