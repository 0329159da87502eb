// Package history keeps the question/answer log: an append-only text file,
// the entries of the running session and a browsable archive.
package history

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	logFileName     = "log.txt"
	timestampLayout = "2006-01-02 15:04:05"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("history is empty")

// Entry is one answered question.
type Entry struct {
	ID       string    `yaml:"id"`
	Time     time.Time `yaml:"time"`
	Question string    `yaml:"-"`
	Answer   string    `yaml:"-"`
}

// NewEntry stamps a question/answer pair with a fresh ID.
func NewEntry(at time.Time, question, answer string) Entry {
	return Entry{ID: uuid.NewString(), Time: at, Question: question, Answer: answer}
}

// String renders the entry the way it is written to log.txt.
func (e Entry) String() string {
	return fmt.Sprintf("[%s]\nQ: %s\nA: %s\n\n", e.Time.Format(timestampLayout), e.Question, e.Answer)
}

// Log appends entries to <dir>/log.txt and remembers the ones written in
// this session. If an archive is attached, every entry is also saved there.
type Log struct {
	mu      sync.Mutex
	dir     string
	entries []Entry
	archive *Archive
}

// NewLog returns a log rooted at dir. Nothing is created until the first Append.
func NewLog(dir string, archive *Archive) *Log {
	return &Log{dir: dir, archive: archive}
}

// Path is the location of the append-only text log.
func (l *Log) Path() string {
	return filepath.Join(l.dir, logFileName)
}

// Append writes e to the text log with a single write on an O_APPEND file.
func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	if _, err := f.WriteString(e.String()); err != nil {
		f.Close()
		return fmt.Errorf("failed to append history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history log: %w", err)
	}
	l.entries = append(l.entries, e)

	if l.archive != nil {
		if err := l.archive.Save(e); err != nil {
			// the text log already has the entry
			log.Printf("history archive: %v", err)
		}
	}
	return nil
}

// Entries returns a copy of the entries appended in this session.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Text is the concatenated text form of the session entries.
func (l *Log) Text() string {
	return Text(l.Entries())
}

// Export writes the session entries to path; see WriteText.
func (l *Log) Export(path string) (string, error) {
	return WriteText(path, l.Entries())
}

// Text concatenates the text form of entries.
func Text(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.String())
	}
	return b.String()
}

// WriteText writes entries to path, adding a .txt extension when missing,
// and returns the path actually written.
func WriteText(path string, entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", ErrEmpty
	}
	path = WithExt(path, ".txt")
	if err := os.WriteFile(path, []byte(Text(entries)), 0o644); err != nil {
		return "", fmt.Errorf("failed to export history: %w", err)
	}
	return path, nil
}

// WithExt appends ext unless path already ends with it.
func WithExt(path, ext string) string {
	if strings.HasSuffix(path, ext) {
		return path
	}
	return path + ext
}
