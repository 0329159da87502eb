package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)

func TestEntryString(t *testing.T) {
	e := Entry{Time: t0, Question: "why?", Answer: "because"}
	assert.Equal(t, "[2024-05-06 07:08:09]\nQ: why?\nA: because\n\n", e.String())
}

func TestNewEntryAssignsID(t *testing.T) {
	a := NewEntry(t0, "q", "a")
	b := NewEntry(t0, "q", "a")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLogAppendOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	l := NewLog(dir, nil)

	first := NewEntry(t0, "one", "1")
	second := NewEntry(t0.Add(time.Minute), "two", "2")
	require.NoError(t, l.Append(first))

	// a second process appending to the same file must not clobber it
	require.NoError(t, NewLog(dir, nil).Append(second))

	data, err := os.ReadFile(filepath.Join(dir, "log.txt"))
	require.NoError(t, err)
	assert.Equal(t, first.String()+second.String(), string(data))

	assert.Equal(t, []Entry{first}, l.Entries())
	assert.Equal(t, first.String(), l.Text())
}

func TestLogAppendFailsWhenDirIsFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(dir, nil, 0o644))

	err := NewLog(dir, nil).Append(NewEntry(t0, "q", "a"))
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	tmp := t.TempDir()
	l := NewLog(filepath.Join(tmp, "history"), nil)

	_, err := l.Export(filepath.Join(tmp, "out"))
	require.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, l.Append(NewEntry(t0, "q", "a")))

	path, err := l.Export(filepath.Join(tmp, "out"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "out.txt"), path)

	path, err = l.Export(filepath.Join(tmp, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "keep.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, l.Text(), string(data))
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "a.pdf", WithExt("a", ".pdf"))
	assert.Equal(t, "a.pdf", WithExt("a.pdf", ".pdf"))
	assert.Equal(t, "a.txt.pdf", WithExt("a.txt", ".pdf"))
}

func TestArchiveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	arch := NewArchive(dir)
	l := NewLog(dir, arch)

	later := NewEntry(t0.Add(time.Hour), "How do I loop?", "Use:\n```\nfor i := range 3 {}\n```\n---\nDone")
	earlier := NewEntry(t0, "Hi", "Hello")
	require.NoError(t, l.Append(later))
	require.NoError(t, l.Append(earlier))

	entries, err := arch.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, earlier.ID, entries[0].ID)
	assert.Equal(t, "Hi", entries[0].Question)
	assert.Equal(t, later.Answer, entries[1].Answer)
	assert.True(t, later.Time.Equal(entries[1].Time))

	got, err := arch.Get(later.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, "How do I loop?", got.Question)

	_, err = arch.Get("zzzz")
	require.Error(t, err)
	_, err = arch.Get("")
	require.Error(t, err)
}

func TestArchiveKeepsSeparatorLines(t *testing.T) {
	arch := NewArchive(t.TempDir())
	e := NewEntry(t0, "part one\n---\npart two\n# Question\nthree", "# Answer\n---\n  indented\n")
	require.NoError(t, arch.Save(e))

	got, err := arch.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Question, got.Question)
	assert.Equal(t, e.Answer, got.Answer)
}

func TestParseMarkdownHeadingsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.md")
	md := "# Question\n\npart one\n---\npart two\n\n---\n\n# Answer\n\nyes\n"
	require.NoError(t, os.WriteFile(path, []byte(md), 0o644))
	q, a, err := parseMarkdown(path)
	require.NoError(t, err)
	assert.Equal(t, "part one\n---\npart two", q)
	assert.Equal(t, "yes", a)
}

func TestArchiveMissingMarkdown(t *testing.T) {
	dir := t.TempDir()
	arch := NewArchive(dir)
	e := NewEntry(t0, "q", "a")
	require.NoError(t, arch.Save(e))
	require.NoError(t, os.Remove(filepath.Join(dir, "entries", e.ID+".md")))

	entries, err := arch.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "(unreadable)", entries[0].Question)
	assert.True(t, strings.HasPrefix(entries[0].Answer, "failed to read"))
}

func TestArchiveEmpty(t *testing.T) {
	entries, err := NewArchive(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseMarkdownWithoutSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.md")
	require.NoError(t, os.WriteFile(path, []byte("just text\n"), 0o644))
	q, a, err := parseMarkdown(path)
	require.NoError(t, err)
	assert.Empty(t, q)
	assert.Empty(t, a)
}
