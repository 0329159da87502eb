package applog

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Code-Assistant/internal/config"
)

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	closer := Setup(config.LogConfig{File: path, MaxSizeMB: 1})
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.Println("hello from test")
	require.NoError(t, closer.Close())
	log.Println("after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.NotContains(t, string(data), "after close")
}

func TestSetupStderrOnly(t *testing.T) {
	closer := Setup(config.LogConfig{})
	assert.NoError(t, closer.Close())
}
