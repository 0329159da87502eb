package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")

	s, err := Open(path)
	require.NoError(t, err)
	assert.True(t, s.Bool(KeyDarkMode, true))

	require.NoError(t, s.SetBool(KeyDarkMode, false))
	assert.False(t, s.Bool(KeyDarkMode, true))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.False(t, reopened.Bool(KeyDarkMode, true))
	assert.True(t, reopened.Bool("other", true))
}

func TestFileStoreKeepsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("font = \"mono\"\n"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetBool(KeyDarkMode, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `font = "mono"`)
	assert.Contains(t, string(data), "dark_mode = true")
}

func TestFileStoreFailedSetKeepsValue(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")
	s, err := Open(filepath.Join(dir, "settings.toml"))
	require.NoError(t, err)
	require.NoError(t, s.SetBool(KeyDarkMode, true))

	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("not a dir"), 0o644))

	require.Error(t, s.SetBool(KeyDarkMode, false))
	assert.True(t, s.Bool(KeyDarkMode, false))
}

func TestFileStoreWrongTypeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("dark_mode = \"yes\"\n"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.True(t, s.Bool(KeyDarkMode, true))
}

func TestOpenBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("dark_mode = = true"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	assert.True(t, m.Bool(KeyDarkMode, true))
	require.NoError(t, m.SetBool(KeyDarkMode, false))
	assert.False(t, m.Bool(KeyDarkMode, true))
}
