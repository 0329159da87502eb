package history

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	indexFileName  = "index.yaml"
	entriesDirName = "entries"
)

// indexData は index.yaml の内容です。本文は entries/<id>.md に置きます。
type indexData struct {
	Entries []Entry `yaml:"entries"`
}

// entryFile は entries/<id>.md の先頭に置く YAML front matter です。
// 本文の見出しは閲覧用で、読み込みには front matter を使います。
type entryFile struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

const frontMatterDelim = "---\n"

// Archive stores every entry as a Markdown file plus a YAML index so past
// sessions can be listed and reopened.
type Archive struct {
	mu  sync.Mutex
	dir string
}

func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

func (a *Archive) indexPath() string { return filepath.Join(a.dir, indexFileName) }

func (a *Archive) entryPath(id string) string {
	return filepath.Join(a.dir, entriesDirName, id+".md")
}

// Save は Markdown を書き出し、インデックスに追記します。
func (a *Archive) Save(e Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(a.dir, entriesDirName), 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}
	meta, err := yaml.Marshal(entryFile{Question: e.Question, Answer: e.Answer})
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	var md bytes.Buffer
	md.WriteString(frontMatterDelim)
	md.Write(meta)
	md.WriteString(frontMatterDelim)
	fmt.Fprintf(&md, "\n# Question\n\n%s\n\n# Answer\n\n%s\n", e.Question, e.Answer)
	if err := os.WriteFile(a.entryPath(e.ID), md.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.entryPath(e.ID), err)
	}

	idx, err := a.readIndex()
	if err != nil {
		return err
	}
	idx.Entries = append(idx.Entries, Entry{ID: e.ID, Time: e.Time})
	data, err := yaml.Marshal(&idx)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(a.indexPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// Load は全エントリを時刻順に読み込みます。Markdown が読めないエントリは
// エラーメッセージを本文にして残します。
func (a *Archive) Load() ([]Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.readIndex()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		q, ans, err := parseMarkdown(a.entryPath(e.ID))
		if err != nil {
			log.Printf("history archive: failed to read %s: %v", e.ID, err)
			q = "(unreadable)"
			ans = fmt.Sprintf("failed to read %s: %v", a.entryPath(e.ID), err)
		}
		e.Question, e.Answer = q, ans
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// Get returns the entry whose ID starts with prefix. The prefix must be unambiguous.
func (a *Archive) Get(prefix string) (Entry, error) {
	entries, err := a.Load()
	if err != nil {
		return Entry{}, err
	}
	var found []Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("no history entry matches %q", prefix)
	case 1:
		return found[0], nil
	}
	return Entry{}, fmt.Errorf("%d history entries match %q", len(found), prefix)
}

func (a *Archive) readIndex() (indexData, error) {
	var idx indexData
	data, err := os.ReadFile(a.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return idx, fmt.Errorf("failed to read index: %w", err)
	}
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return idx, fmt.Errorf("failed to parse index: %w", err)
	}
	return idx, nil
}

// parseMarkdown reads an entry file. Files with a front matter block are
// decoded exactly; hand-written files fall back to the "# Question" and
// "# Answer" headings.
func parseMarkdown(filePath string) (string, string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", "", err
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	if rest, ok := bytes.CutPrefix(data, []byte(frontMatterDelim)); ok {
		if end := bytes.Index(rest, []byte("\n"+frontMatterDelim)); end >= 0 {
			var f entryFile
			if err := yaml.Unmarshal(rest[:end+1], &f); err != nil {
				return "", "", fmt.Errorf("failed to parse front matter: %w", err)
			}
			return f.Question, f.Answer, nil
		}
	}
	return parseSections(string(data))
}

func parseSections(text string) (string, string, error) {
	var questionLines, answerLines []string
	var readingQuestion, readingAnswer bool

	for _, line := range strings.Split(text, "\n") {
		switch {
		case !readingAnswer && strings.HasPrefix(line, "# Question"):
			readingQuestion = true
			questionLines = nil
			continue
		case !readingAnswer && strings.HasPrefix(line, "# Answer"):
			readingQuestion = false
			readingAnswer = true
			continue
		}

		if readingQuestion {
			questionLines = append(questionLines, line)
		} else if readingAnswer {
			answerLines = append(answerLines, line)
		}
	}

	question := strings.TrimSpace(strings.Join(questionLines, "\n"))
	// 旧形式では質問と回答の間に区切り線があります
	question = strings.TrimSpace(strings.TrimSuffix(question, "---"))
	return question, strings.TrimSpace(strings.Join(answerLines, "\n")), nil
}
