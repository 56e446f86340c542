package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.log")
	logger, err := InitLog(path)
	require.NoError(t, err)

	logger.Infof("loaded %d keywords", 3)
	logger.Flush()
	logger.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO")
	assert.Contains(t, string(data), "loaded 3 keywords")
}

func TestInitLog_PathWithXMLSpecialChars(t *testing.T) {
	dir := filepath.Join(t.TempDir(), `logs & <tmp> "q" 'x'`)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "daemon.log")

	logger, err := InitLog(path)
	require.NoError(t, err)
	logger.Infof("reloaded")
	logger.Flush()
	logger.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reloaded")
}

func TestInitLog_Console(t *testing.T) {
	logger, err := InitLog("")
	require.NoError(t, err)
	logger.Close()
}
