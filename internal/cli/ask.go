package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"Code-Assistant/internal/assistant"
	"Code-Assistant/internal/clipboard"
)

func newAskCmd() *cobra.Command {
	var (
		asHTML     bool
		asDocument bool
		raw        bool
		copyOut    bool
		speak      bool
		pdfPath    string
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question and print the answer (reads stdin when no question is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if strings.TrimSpace(question) == "" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read question: %w", err)
				}
				question = string(b)
			}

			e := getEnv(cmd)
			var clip assistant.Clipboard
			if copyOut {
				clip = clipboard.System{}
			}
			s, err := e.newSession(cmd.Context(), clip)
			if err != nil {
				return err
			}

			reply, err := s.Ask(cmd.Context(), question)
			if err != nil && (reply == nil || reply.Empty()) {
				return err
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			if reply.Empty() {
				fmt.Fprintln(cmd.ErrOrStderr(), "the assistant returned an empty answer")
				return nil
			}

			out := cmd.OutOrStdout()
			switch {
			case asDocument:
				doc, err := s.Document()
				if err != nil {
					return err
				}
				fmt.Fprint(out, doc)
			case asHTML:
				fmt.Fprintln(out, reply.Fragment)
			case raw:
				fmt.Fprintln(out, reply.Answer)
			default:
				fmt.Fprint(out, renderTerminal(reply.Answer, s.DarkMode()))
			}

			if pdfPath != "" {
				path, err := s.SavePDF(pdfPath)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "saved", path)
			}
			if copyOut {
				if err := s.Copy(reply.Answer); err != nil {
					return err
				}
			}
			if speak {
				if err := s.Speak(cmd.Context(), reply.Answer); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Text-to-Speech error:", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "print the formatted HTML fragment")
	cmd.Flags().BoolVar(&asDocument, "document", false, "print a standalone HTML page")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer unformatted")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the answer to the clipboard")
	cmd.Flags().BoolVar(&speak, "speak", false, "read the answer aloud")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "save question and answer as a PDF")
	cmd.MarkFlagsMutuallyExclusive("html", "document", "raw")
	return cmd
}

// renderTerminal renders markdown with glamour, falling back to the raw text.
func renderTerminal(text string, dark bool) string {
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(text, style)
	if err != nil {
		return text + "\n"
	}
	return out
}
