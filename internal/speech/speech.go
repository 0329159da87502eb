// Package speech reads text aloud through the platform's speech command.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Command speaks by running Name with Args followed by the text.
type Command struct {
	Name string
	Args []string
}

// ForOS picks the speech command for goos.
func ForOS(goos string) Command {
	switch goos {
	case "darwin":
		return Command{Name: "say"}
	case "windows":
		return Command{
			Name: "powershell",
			Args: []string{"-NoProfile", "-Command",
				"Add-Type -AssemblyName System.Speech; (New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak([Console]::In.ReadToEnd())"},
		}
	}
	return Command{Name: "espeak"}
}

// New returns the command for the running platform.
func New() Command {
	return ForOS(runtime.GOOS)
}

// Speak blocks until the text has been spoken or ctx is done.
func (c Command) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return fmt.Errorf("speech engine %q not available: %w", c.Name, err)
	}
	var cmd *exec.Cmd
	if c.Name == "powershell" {
		cmd = exec.CommandContext(ctx, path, c.Args...)
		cmd.Stdin = strings.NewReader(text)
	} else {
		cmd = exec.CommandContext(ctx, path, append(append([]string{}, c.Args...), text)...)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speech failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
