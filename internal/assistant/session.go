// Package assistant holds the question/answer session behind the desktop
// window and the CLI: asking, regenerating, and everything done with the
// current answer afterwards.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	ai_client "Code-Assistant/internal/ai"
	"Code-Assistant/internal/export"
	"Code-Assistant/internal/formatter"
	"Code-Assistant/internal/history"
	"Code-Assistant/internal/settings"
)

var (
	ErrEmptyQuestion = errors.New("question is empty")
	ErrNoQuestion    = errors.New("no question to regenerate")
	ErrNoAnswer      = errors.New("no answer yet")
	ErrUnavailable   = errors.New("feature not available")
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// Speaker reads text aloud.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Options are the collaborators of a Session. Client, History and Settings
// are required; Clipboard and Speaker may be nil.
type Options struct {
	Client    ai_client.Client
	History   *history.Log
	Settings  settings.Store
	Clipboard Clipboard
	Speaker   Speaker
	Now       func() time.Time
}

// Reply is a formatted answer.
type Reply struct {
	Question string
	Answer   string
	Blocks   []formatter.Block
	Fragment string
}

// Empty reports whether the service returned no text.
func (r *Reply) Empty() bool { return r.Answer == "" }

type Session struct {
	opts Options

	mu       sync.Mutex
	question string
	answer   string
}

func New(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{opts: opts}
}

// Ask sends question to the AI service. A non-empty answer becomes the
// current answer and is appended to the history.
func (s *Session) Ask(ctx context.Context, question string) (*Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	s.mu.Lock()
	s.question = question
	s.mu.Unlock()
	return s.generate(ctx, question)
}

// Regenerate asks the current question again.
func (s *Session) Regenerate(ctx context.Context) (*Reply, error) {
	s.mu.Lock()
	question := s.question
	s.mu.Unlock()
	if question == "" {
		return nil, ErrNoQuestion
	}
	return s.generate(ctx, question)
}

func (s *Session) generate(ctx context.Context, question string) (*Reply, error) {
	answer, err := s.opts.Client.Generate(ctx, question)
	if err != nil {
		return nil, err
	}
	reply := &Reply{Question: question, Answer: answer}
	// 空の回答でも前の回答は破棄する
	s.mu.Lock()
	s.answer = answer
	s.mu.Unlock()
	if reply.Empty() {
		return reply, nil
	}
	reply.Blocks = formatter.Parse(answer)
	reply.Fragment = formatter.HTML(reply.Blocks)
	if formatter.Unterminated(answer) {
		log.Printf("answer to %q has an unterminated code fence", question)
	}

	if err := s.opts.History.Append(history.NewEntry(s.opts.Now(), question, answer)); err != nil {
		return reply, fmt.Errorf("answer received but history was not saved: %w", err)
	}
	return reply, nil
}

// Current returns the current question and answer.
func (s *Session) Current() (question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.question, s.answer
}

// Document is the current answer as a standalone HTML page in the active theme.
func (s *Session) Document() (string, error) {
	q, a := s.Current()
	if a == "" {
		return "", ErrNoAnswer
	}
	return formatter.Document(q, a, s.DarkMode()), nil
}

// Clear forgets the displayed answer. The question stays so it can be regenerated.
func (s *Session) Clear() {
	s.mu.Lock()
	s.answer = ""
	s.mu.Unlock()
}

func (s *Session) Copy(text string) error {
	if s.opts.Clipboard == nil {
		return fmt.Errorf("clipboard: %w", ErrUnavailable)
	}
	return s.opts.Clipboard.WriteAll(text)
}

func (s *Session) Speak(ctx context.Context, text string) error {
	if s.opts.Speaker == nil {
		return fmt.Errorf("text-to-speech: %w", ErrUnavailable)
	}
	return s.opts.Speaker.Speak(ctx, text)
}

// SavePDF writes the current question and answer to path, adding a .pdf
// extension when missing, and returns the path written.
func (s *Session) SavePDF(path string) (string, error) {
	q, a := s.Current()
	if a == "" {
		return "", ErrNoAnswer
	}
	path = history.WithExt(path, ".pdf")
	if err := export.SavePDF(path, q, a); err != nil {
		return "", err
	}
	return path, nil
}

// WritePDF is SavePDF for an already opened destination.
func (s *Session) WritePDF(w io.Writer) error {
	q, a := s.Current()
	if a == "" {
		return ErrNoAnswer
	}
	return export.WritePDF(w, q, a)
}

// ExportHistory writes this session's history to path (.txt enforced).
func (s *Session) ExportHistory(path string) (string, error) {
	return s.opts.History.Export(path)
}

func (s *Session) HistoryText() string {
	return s.opts.History.Text()
}

func (s *Session) DarkMode() bool {
	return s.opts.Settings.Bool(settings.KeyDarkMode, true)
}

// ToggleTheme flips and persists the theme flag, returning the new value.
func (s *Session) ToggleTheme() (bool, error) {
	dark := !s.DarkMode()
	if err := s.opts.Settings.SetBool(settings.KeyDarkMode, dark); err != nil {
		return !dark, err
	}
	return dark, nil
}
