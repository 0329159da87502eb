package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	ai_client "Code-Assistant/internal/ai"
	"Code-Assistant/internal/applog"
	"Code-Assistant/internal/assistant"
	"Code-Assistant/internal/config"
	"Code-Assistant/internal/history"
	"Code-Assistant/internal/settings"
	"Code-Assistant/internal/speech"
)

type ctxKey string

const envKey ctxKey = "env"

// env is what every subcommand needs, built once in PersistentPreRunE.
type env struct {
	cfg      *config.Config
	settings settings.Store
	archive  *history.Archive
	history  *history.Log
	logs     io.Closer
}

// newSession builds a Session around the configured AI client. The client
// is created lazily so commands that never ask work without an API key.
func (e *env) newSession(ctx context.Context, clip assistant.Clipboard) (*assistant.Session, error) {
	client, err := ai_client.New(ctx, e.cfg)
	if err != nil {
		return nil, err
	}
	return assistant.New(assistant.Options{
		Client:    client,
		History:   e.history,
		Settings:  e.settings,
		Clipboard: clip,
		Speaker:   speech.New(),
	}), nil
}

// close releases the log file. It is safe to call more than once.
func (e *env) close() error {
	if e.logs == nil {
		return nil
	}
	err := e.logs.Close()
	e.logs = nil
	return err
}

// Execute runs the root command.
func Execute() error {
	_, err := execute(NewRootCmd())
	return err
}

// execute runs root and closes what PersistentPreRunE opened, including
// when the command returns an error.
func execute(root *cobra.Command) (*cobra.Command, error) {
	c, err := root.ExecuteC()
	if c == nil || c.Context() == nil {
		return c, err
	}
	if e, ok := c.Context().Value(envKey).(*env); ok {
		if cerr := e.close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return c, err
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "code-assistant",
		Short:         "Ask an AI coding assistant from the desktop or the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			cfg, err := config.LoadConfig(v)
			if err != nil {
				return err
			}
			store, err := settings.Open(cfg.SettingsFile)
			if err != nil {
				return err
			}
			archive := history.NewArchive(cfg.HistoryDir)
			e := &env{
				cfg:      cfg,
				settings: store,
				archive:  archive,
				history:  history.NewLog(cfg.HistoryDir, archive),
				logs:     applog.Setup(cfg.Log),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey, e))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml|yaml)")

	cmd.AddCommand(newGUICmd())
	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newThemeCmd())

	return cmd
}

func getEnv(cmd *cobra.Command) *env {
	e, ok := cmd.Context().Value(envKey).(*env)
	if !ok {
		panic(fmt.Sprintf("%s: environment not initialized", cmd.Name()))
	}
	return e
}
