package ui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithExtURI(t *testing.T) {
	dir := t.TempDir()

	u, changed, err := WithExtURI(storage.NewFileURI(filepath.Join(dir, "answer")), ".pdf")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "answer.pdf")), filepath.ToSlash(u.Path()))
	assert.Equal(t, ".pdf", u.Extension())

	orig := storage.NewFileURI(filepath.Join(dir, "history.txt"))
	u, changed, err = WithExtURI(orig, ".txt")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, orig.String(), u.String())
}
