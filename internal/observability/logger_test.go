package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("stderr only", func(t *testing.T) {
		var stderr bytes.Buffer
		logger, closeFn, err := NewLogger(LogOptions{Stderr: &stderr})
		require.NoError(t, err)
		defer closeFn() //nolint:errcheck

		logger.Debug("hidden")
		logger.Info("send.ok", "email", "a@x.com")
		assert.NotContains(t, stderr.String(), "hidden")
		assert.Contains(t, stderr.String(), "send.ok")
		assert.Contains(t, stderr.String(), "email=a@x.com")
	})

	t.Run("verbose tees to file", func(t *testing.T) {
		var stderr bytes.Buffer
		path := filepath.Join(t.TempDir(), "logs", "outreach.log")
		logger, closeFn, err := NewLogger(LogOptions{Verbose: true, File: path, Stderr: &stderr})
		require.NoError(t, err)

		logger.Debug("detail")
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "detail")
		assert.Contains(t, stderr.String(), "detail")
	})

	t.Run("unwritable file", func(t *testing.T) {
		dir := t.TempDir()
		_, _, err := NewLogger(LogOptions{File: dir})
		require.Error(t, err)
	})
}
