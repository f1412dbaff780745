package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rowloom.log")

	logger, err := New(path, false)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
}

func TestVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowloom.log")

	logger, err := New(path, true)
	require.NoError(t, err)
	logger.Debug("noisy detail")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "noisy detail"))
}

func TestQuietSuppressesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowloom.log")

	logger, err := New(path, false)
	require.NoError(t, err)
	logger.Debug("noisy detail")
	logger.Info("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "noisy detail")
	require.Contains(t, string(data), "kept")
}
