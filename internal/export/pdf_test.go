package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "What is Go?", "A language.\n```\nfmt.Println(\"héllo\")\n```"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.pdf")
	require.NoError(t, SavePDF(path, "q", "a"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSavePDFBadPath(t *testing.T) {
	err := SavePDF(filepath.Join(t.TempDir(), "missing", "answer.pdf"), "q", "a")
	require.Error(t, err)
}
