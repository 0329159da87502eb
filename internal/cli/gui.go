package cli

import (
	"log"

	"github.com/spf13/cobra"

	"Code-Assistant/internal/assistant"
	"Code-Assistant/internal/service"
)

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd)
		},
	}
}

func runGUI(cmd *cobra.Command) error {
	e := getEnv(cmd)
	ctx := cmd.Context()

	app, err := service.NewMainApp(ctx, func(clip assistant.Clipboard) (*assistant.Session, error) {
		return e.newSession(ctx, clip)
	})
	if err != nil {
		return err
	}
	log.Println("アプリケーションを開始します...")
	app.Run()
	log.Println("アプリケーションを終了します。")
	return nil
}
