package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"Code-Assistant/internal/settings"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the theme used by the window and terminal output",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store := getEnv(cmd).settings
			dark := store.Bool(settings.KeyDarkMode, true)
			if len(args) == 1 {
				switch args[0] {
				case "dark":
					dark = true
				case "light":
					dark = false
				case "toggle":
					dark = !dark
				}
				if err := store.SetBool(settings.KeyDarkMode, dark); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), themeName(dark))
			return nil
		},
	}
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
