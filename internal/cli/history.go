package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"Code-Assistant/internal/formatter"
	"Code-Assistant/internal/history"
	"Code-Assistant/internal/settings"
	"Code-Assistant/internal/utils"
)

const (
	shortIDLen      = 8
	listQuestionLen = 60
)

var (
	idStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffcc")).Bold(true)
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	headStyle = lipgloss.NewStyle().Bold(true)
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and export past questions",
	}
	cmd.AddCommand(newHistoryListCmd(), newHistoryShowCmd(), newHistoryExportCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := getEnv(cmd).archive.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no history yet")
				return nil
			}
			for _, e := range entries {
				id := e.ID
				if len(id) > shortIDLen {
					id = id[:shortIDLen]
				}
				fmt.Fprintf(out, "%s  %s  %s\n",
					idStyle.Render(id),
					timeStyle.Render(e.Time.Format("2006-01-02 15:04")),
					utils.Preview(e.Question, listQuestionLen))
			}
			return nil
		},
	}
}

func newHistoryShowCmd() *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one archived answer (ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)
			entry, err := e.archive.Get(args[0])
			if err != nil {
				return err
			}
			dark := e.settings.Bool(settings.KeyDarkMode, true)
			out := cmd.OutOrStdout()
			if asHTML {
				fmt.Fprint(out, formatter.Document(entry.Question, entry.Answer, dark))
				return nil
			}
			fmt.Fprintln(out, headStyle.Render("Question:"), entry.Question)
			fmt.Fprintln(out, headStyle.Render("Answer:"))
			fmt.Fprint(out, renderTerminal(entry.Answer, dark))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print as a standalone HTML page")
	return cmd
}

func newHistoryExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write all archived entries as text (.txt is added when missing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := getEnv(cmd).archive.Load()
			if err != nil {
				return err
			}
			path, err := history.WriteText(args[0], entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "exported", len(entries), "entries to", path)
			return nil
		},
	}
}
